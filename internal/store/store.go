// Package store sends parameterized SQL to the database through gorm.
package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Rows is a generic result set in column order, ready for display.
type Rows struct {
	Columns []string
	Values  [][]any
}

func (r Rows) Len() int {
	return len(r.Values)
}

// Strings renders every cell as text. NULL becomes an empty string.
func (r Rows) Strings() [][]string {
	out := make([][]string, 0, len(r.Values))
	for _, row := range r.Values {
		cells := make([]string, len(row))
		for i, value := range row {
			cells[i] = formatValue(value)
		}
		out = append(out, cells)
	}
	return out
}

type Executor interface {
	// Query returns the rows of a statement without knowing their shape.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	// Scan maps the rows of a statement onto dest (a pointer to a slice of structs).
	Scan(ctx context.Context, dest any, sql string, args ...any) error
	// Exec runs a write and reports the number of affected rows.
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
}

type GormExecutor struct {
	db *gorm.DB
}

func NewGormExecutor(db *gorm.DB) *GormExecutor {
	return &GormExecutor{db: db}
}

func (e *GormExecutor) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := e.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return Rows{}, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return Rows{}, fmt.Errorf("read columns: %w", err)
	}

	result := Rows{Columns: columns, Values: [][]any{}}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return Rows{}, fmt.Errorf("scan row: %w", err)
		}
		result.Values = append(result.Values, values)
	}
	if err := rows.Err(); err != nil {
		return Rows{}, err
	}

	return result, nil
}

func (e *GormExecutor) Scan(ctx context.Context, dest any, sql string, args ...any) error {
	return e.db.WithContext(ctx).Raw(sql, args...).Scan(dest).Error
}

func (e *GormExecutor) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	result := e.db.WithContext(ctx).Exec(sql, args...)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.Format(time.DateTime)
	default:
		return fmt.Sprint(v)
	}
}
