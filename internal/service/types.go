package service

import (
	"context"

	"staff-tracker/internal/models"
	"staff-tracker/internal/store"
)

// NoManager is the manager choice that stores a NULL manager_id.
const NoManager = "None"

type CreateDepartmentInput struct {
	Name string
}

type CreateRoleInput struct {
	Title        string
	Salary       string
	DepartmentID uint
}

type CreateEmployeeInput struct {
	FirstName string
	LastName  string
	RoleID    uint
	ManagerID *uint
}

type Directory interface {
	ListDepartments(ctx context.Context) (store.Rows, error)
	ListRoles(ctx context.Context) (store.Rows, error)
	ListEmployees(ctx context.Context) (store.Rows, error)

	Departments(ctx context.Context) ([]models.Department, error)
	Roles(ctx context.Context) ([]models.Role, error)
	Employees(ctx context.Context) ([]models.Employee, error)

	DepartmentID(ctx context.Context, name string) (uint, error)
	RoleID(ctx context.Context, title string) (uint, error)
	EmployeeID(ctx context.Context, fullName string) (uint, error)
	ManagerID(ctx context.Context, label string) (*uint, error)

	CreateDepartment(ctx context.Context, input CreateDepartmentInput) error
	CreateRole(ctx context.Context, input CreateRoleInput) error
	CreateEmployee(ctx context.Context, input CreateEmployeeInput) error
	UpdateEmployeeRole(ctx context.Context, employeeID uint, roleID uint) error
}
