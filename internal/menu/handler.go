package menu

import (
	"context"
	"fmt"

	"staff-tracker/internal/apperror"
	"staff-tracker/internal/models"
	"staff-tracker/internal/service"
)

func (m *Menu) handleViewDepartments(ctx context.Context) error {
	rows, err := m.directory.ListDepartments(ctx)
	if err != nil {
		return err
	}
	m.presenter.Table(rows)
	return nil
}

func (m *Menu) handleViewRoles(ctx context.Context) error {
	rows, err := m.directory.ListRoles(ctx)
	if err != nil {
		return err
	}
	m.presenter.Table(rows)
	return nil
}

func (m *Menu) handleViewEmployees(ctx context.Context) error {
	rows, err := m.directory.ListEmployees(ctx)
	if err != nil {
		return err
	}
	m.presenter.Table(rows)
	return nil
}

func (m *Menu) handleAddDepartment(ctx context.Context) error {
	name, err := m.prompter.Input(ctx, "What is the name of the new department?")
	if err != nil {
		return err
	}

	if err := m.directory.CreateDepartment(ctx, service.CreateDepartmentInput{Name: name}); err != nil {
		return err
	}

	m.presenter.Banner("New department added. See below:")
	return m.handleViewDepartments(ctx)
}

func (m *Menu) handleAddRole(ctx context.Context) error {
	departments, err := m.directory.Departments(ctx)
	if err != nil {
		return err
	}
	if len(departments) == 0 {
		return apperror.New(apperror.CodeValidation, "no departments exist yet, add a department first")
	}

	title, err := m.prompter.Input(ctx, "What is the name of the new role?")
	if err != nil {
		return err
	}
	salary, err := m.prompter.Input(ctx, "What is the salary of the new role?")
	if err != nil {
		return err
	}
	department, err := m.prompter.Select(ctx, "What department is the role under?", departmentNames(departments))
	if err != nil {
		return err
	}

	departmentID, err := m.directory.DepartmentID(ctx, department)
	if err != nil {
		return err
	}

	if err := m.directory.CreateRole(ctx, service.CreateRoleInput{
		Title:        title,
		Salary:       salary,
		DepartmentID: departmentID,
	}); err != nil {
		return err
	}

	m.presenter.Banner("New role added. See below:")
	return m.handleViewRoles(ctx)
}

func (m *Menu) handleAddEmployee(ctx context.Context) error {
	roles, err := m.directory.Roles(ctx)
	if err != nil {
		return err
	}
	if len(roles) == 0 {
		return apperror.New(apperror.CodeValidation, "no roles exist yet, add a role first")
	}

	employees, err := m.directory.Employees(ctx)
	if err != nil {
		return err
	}
	managers := append([]string{service.NoManager}, employeeNames(employees)...)

	firstName, err := m.prompter.Input(ctx, "Enter the employee's first name:")
	if err != nil {
		return err
	}
	lastName, err := m.prompter.Input(ctx, "Enter the employee's last name:")
	if err != nil {
		return err
	}
	role, err := m.prompter.Select(ctx, "Select the employee's role:", roleTitles(roles))
	if err != nil {
		return err
	}
	manager, err := m.prompter.Select(ctx, "Select the employee's manager:", managers)
	if err != nil {
		return err
	}

	roleID, err := m.directory.RoleID(ctx, role)
	if err != nil {
		return err
	}
	managerID, err := m.directory.ManagerID(ctx, manager)
	if err != nil {
		return fmt.Errorf("manager: %w", err)
	}

	if err := m.directory.CreateEmployee(ctx, service.CreateEmployeeInput{
		FirstName: firstName,
		LastName:  lastName,
		RoleID:    roleID,
		ManagerID: managerID,
	}); err != nil {
		return err
	}

	m.presenter.Banner("New employee added. See below:")
	return m.handleViewEmployees(ctx)
}

func (m *Menu) handleUpdateEmployeeRole(ctx context.Context) error {
	roles, err := m.directory.Roles(ctx)
	if err != nil {
		return err
	}
	employees, err := m.directory.Employees(ctx)
	if err != nil {
		return err
	}
	if len(employees) == 0 {
		return apperror.New(apperror.CodeValidation, "no employees exist yet, add an employee first")
	}
	if len(roles) == 0 {
		return apperror.New(apperror.CodeValidation, "no roles exist yet, add a role first")
	}

	employee, err := m.prompter.Select(ctx, "Which employee do you want to update?", employeeNames(employees))
	if err != nil {
		return err
	}
	role, err := m.prompter.Select(ctx, "What is the employee's new role?", roleTitles(roles))
	if err != nil {
		return err
	}

	employeeID, err := m.directory.EmployeeID(ctx, employee)
	if err != nil {
		return err
	}
	roleID, err := m.directory.RoleID(ctx, role)
	if err != nil {
		return err
	}

	if err := m.directory.UpdateEmployeeRole(ctx, employeeID, roleID); err != nil {
		return err
	}

	m.presenter.Banner("Employee role updated. See below:")
	return m.handleViewEmployees(ctx)
}

func departmentNames(departments []models.Department) []string {
	names := make([]string, 0, len(departments))
	for _, d := range departments {
		names = append(names, d.Name)
	}
	return names
}

func roleTitles(roles []models.Role) []string {
	titles := make([]string, 0, len(roles))
	for _, r := range roles {
		titles = append(titles, r.Title)
	}
	return titles
}

func employeeNames(employees []models.Employee) []string {
	names := make([]string, 0, len(employees))
	for _, e := range employees {
		names = append(names, e.FullName())
	}
	return names
}
