package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"staff-tracker/internal/apperror"
	"staff-tracker/internal/store"
)

type idRow struct {
	ID uint
}

// Resolver maps the labels users pick from (department name, role title,
// employee full name) back to row ids. Names are not unique: the lowest id
// wins and the ambiguity is logged.
type Resolver struct {
	exec   store.Executor
	logger *zap.Logger
}

func NewResolver(exec store.Executor, logger *zap.Logger) *Resolver {
	return &Resolver{
		exec:   exec,
		logger: logger,
	}
}

func (r *Resolver) DepartmentID(ctx context.Context, name string) (uint, error) {
	return r.first(ctx, "department", name,
		"SELECT id FROM department WHERE name = ? ORDER BY id", name)
}

func (r *Resolver) RoleID(ctx context.Context, title string) (uint, error) {
	return r.first(ctx, "role", title,
		"SELECT id FROM role WHERE title = ? ORDER BY id", title)
}

// EmployeeID tries every split of fullName into first and last name, so
// names that contain spaces still resolve.
func (r *Resolver) EmployeeID(ctx context.Context, fullName string) (uint, error) {
	var (
		conditions []string
		args       []any
	)
	for i, ch := range fullName {
		if ch != ' ' {
			continue
		}
		conditions = append(conditions, "(first_name = ? AND last_name = ?)")
		args = append(args, fullName[:i], fullName[i+1:])
	}
	if len(conditions) == 0 {
		return 0, notFound("employee", fullName)
	}

	query := "SELECT id FROM employee WHERE " + strings.Join(conditions, " OR ") + " ORDER BY id"
	return r.first(ctx, "employee", fullName, query, args...)
}

// ManagerID returns nil for the NoManager choice.
func (r *Resolver) ManagerID(ctx context.Context, label string) (*uint, error) {
	if label == NoManager {
		return nil, nil
	}

	id, err := r.EmployeeID(ctx, label)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (r *Resolver) first(ctx context.Context, entity string, label string, query string, args ...any) (uint, error) {
	var rows []idRow
	if err := r.exec.Scan(ctx, &rows, query, args...); err != nil {
		return 0, fmt.Errorf("look up %s %q: %w", entity, label, err)
	}
	if len(rows) == 0 {
		return 0, notFound(entity, label)
	}
	if len(rows) > 1 {
		r.logger.Warn("label matches several rows, using the lowest id",
			zap.String("entity", entity),
			zap.String("label", label),
			zap.Int("matches", len(rows)),
			zap.Uint("id", rows[0].ID),
		)
	}
	return rows[0].ID, nil
}

func notFound(entity string, label string) error {
	return apperror.New(apperror.CodeNotFound, fmt.Sprintf("%s %q not found", entity, label))
}
