package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"staff-tracker/internal/apperror"
	"staff-tracker/internal/models"
	"staff-tracker/internal/store"
)

const listEmployeesQuery = `
SELECT
	employees_with_managers.id AS employee_id,
	employees_with_managers.first_name,
	employees_with_managers.last_name,
	employee_info.title,
	employee_info.salary,
	employee_info.department_name,
	employees_with_managers.manager_name
FROM employee_info
JOIN employees_with_managers ON employee_info.role_id = employees_with_managers.role_id
ORDER BY employees_with_managers.id`

type StaffService struct {
	*Resolver
	exec store.Executor
}

func NewStaffService(exec store.Executor, logger *zap.Logger) *StaffService {
	return &StaffService{
		Resolver: NewResolver(exec, logger),
		exec:     exec,
	}
}

func (s *StaffService) ListDepartments(ctx context.Context) (store.Rows, error) {
	rows, err := s.exec.Query(ctx, "SELECT * FROM department ORDER BY id")
	if err != nil {
		return store.Rows{}, fmt.Errorf("list departments: %w", err)
	}
	return rows, nil
}

func (s *StaffService) ListRoles(ctx context.Context) (store.Rows, error) {
	rows, err := s.exec.Query(ctx, "SELECT * FROM role ORDER BY id")
	if err != nil {
		return store.Rows{}, fmt.Errorf("list roles: %w", err)
	}
	return rows, nil
}

// ListEmployees only returns employees that hold a role; the views are
// inner joined on role_id.
func (s *StaffService) ListEmployees(ctx context.Context) (store.Rows, error) {
	rows, err := s.exec.Query(ctx, listEmployeesQuery)
	if err != nil {
		return store.Rows{}, fmt.Errorf("list employees: %w", err)
	}
	return rows, nil
}

func (s *StaffService) Departments(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	if err := s.exec.Scan(ctx, &departments, "SELECT id, name FROM department ORDER BY id"); err != nil {
		return nil, fmt.Errorf("load departments: %w", err)
	}
	return departments, nil
}

func (s *StaffService) Roles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if err := s.exec.Scan(ctx, &roles, "SELECT id, title, salary, department_id FROM role ORDER BY id"); err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}
	return roles, nil
}

func (s *StaffService) Employees(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := s.exec.Scan(ctx, &employees,
		"SELECT id, first_name, last_name, role_id, manager_id FROM employee ORDER BY id"); err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	return employees, nil
}

func (s *StaffService) CreateDepartment(ctx context.Context, input CreateDepartmentInput) error {
	if _, err := s.exec.Exec(ctx, "INSERT INTO department (name) VALUES (?)", input.Name); err != nil {
		return mapDatabaseError("insert department", err)
	}
	return nil
}

func (s *StaffService) CreateRole(ctx context.Context, input CreateRoleInput) error {
	if _, err := s.exec.Exec(ctx,
		"INSERT INTO role (title, salary, department_id) VALUES (?, ?, ?)",
		input.Title, input.Salary, input.DepartmentID,
	); err != nil {
		return mapDatabaseError("insert role", err)
	}
	return nil
}

func (s *StaffService) CreateEmployee(ctx context.Context, input CreateEmployeeInput) error {
	if _, err := s.exec.Exec(ctx,
		"INSERT INTO employee (first_name, last_name, role_id, manager_id) VALUES (?, ?, ?, ?)",
		input.FirstName, input.LastName, input.RoleID, input.ManagerID,
	); err != nil {
		return mapDatabaseError("insert employee", err)
	}
	return nil
}

func (s *StaffService) UpdateEmployeeRole(ctx context.Context, employeeID uint, roleID uint) error {
	affected, err := s.exec.Exec(ctx, "UPDATE employee SET role_id = ? WHERE id = ?", roleID, employeeID)
	if err != nil {
		return mapDatabaseError("update employee role", err)
	}
	if affected == 0 {
		return apperror.New(apperror.CodeNotFound, fmt.Sprintf("employee %d not found", employeeID))
	}
	return nil
}

func mapDatabaseError(action string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return apperror.Wrap(apperror.CodeConflict, action, err)
		}
		if pgErr.Code == "23503" {
			return apperror.Wrap(apperror.CodeValidation, action+": invalid foreign key reference", err)
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		if myErr.Number == 1062 {
			return apperror.Wrap(apperror.CodeConflict, action, err)
		}
		if myErr.Number == 1452 {
			return apperror.Wrap(apperror.CodeValidation, action+": invalid foreign key reference", err)
		}
	}

	return fmt.Errorf("%s: %w", action, err)
}
