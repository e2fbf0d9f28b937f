package service

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"staff-tracker/internal/apperror"
	"staff-tracker/internal/store"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	schema, err := os.ReadFile("testdata/schema.sql")
	require.NoError(t, err)

	require.NoError(t, database.Exec("PRAGMA foreign_keys = ON").Error)
	for _, statement := range strings.Split(string(schema), ";") {
		if strings.TrimSpace(statement) == "" {
			continue
		}
		require.NoError(t, database.Exec(statement).Error)
	}

	return database
}

func newTestService(t *testing.T) (*StaffService, *gorm.DB) {
	t.Helper()
	database := openTestDB(t)
	return NewStaffService(store.NewGormExecutor(database), zap.NewNop()), database
}

func mustCreateDepartment(t *testing.T, svc *StaffService, name string) uint {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, svc.CreateDepartment(ctx, CreateDepartmentInput{Name: name}))

	departments, err := svc.Departments(ctx)
	require.NoError(t, err)
	return departments[len(departments)-1].ID
}

func mustCreateRole(t *testing.T, svc *StaffService, title string, salary string, departmentID uint) uint {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, svc.CreateRole(ctx, CreateRoleInput{Title: title, Salary: salary, DepartmentID: departmentID}))

	roles, err := svc.Roles(ctx)
	require.NoError(t, err)
	return roles[len(roles)-1].ID
}

func mustCreateEmployee(t *testing.T, svc *StaffService, first string, last string, roleID uint, managerID *uint) uint {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, svc.CreateEmployee(ctx, CreateEmployeeInput{
		FirstName: first,
		LastName:  last,
		RoleID:    roleID,
		ManagerID: managerID,
	}))

	employees, err := svc.Employees(ctx)
	require.NoError(t, err)
	return employees[len(employees)-1].ID
}

func column(rows store.Rows, name string) int {
	for i, c := range rows.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func TestAddDepartmentThenList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateDepartment(ctx, CreateDepartmentInput{Name: "Engineering"}))

	rows, err := svc.ListDepartments(ctx)
	require.NoError(t, err)

	nameColumn := column(rows, "name")
	require.GreaterOrEqual(t, nameColumn, 0)
	require.Equal(t, 1, rows.Len())
	assert.Equal(t, "Engineering", rows.Strings()[0][nameColumn])
}

func TestAddRoleUsesResolvedDepartment(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustCreateDepartment(t, svc, "Sales")
	legalID := mustCreateDepartment(t, svc, "Legal")

	departmentID, err := svc.DepartmentID(ctx, "Legal")
	require.NoError(t, err)
	assert.Equal(t, legalID, departmentID)

	require.NoError(t, svc.CreateRole(ctx, CreateRoleInput{
		Title:        "Lawyer",
		Salary:       "190000",
		DepartmentID: departmentID,
	}))

	roles, err := svc.Roles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, "Lawyer", roles[0].Title)
	assert.Equal(t, legalID, roles[0].DepartmentID)

	listed, err := svc.ListRoles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, listed.Len())
}

func TestAddEmployeeManagerResolution(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()

	departmentID := mustCreateDepartment(t, svc, "Engineering")
	roleID := mustCreateRole(t, svc, "Software Engineer", "120000", departmentID)

	noManager, err := svc.ManagerID(ctx, NoManager)
	require.NoError(t, err)
	assert.Nil(t, noManager)
	adaID := mustCreateEmployee(t, svc, "Ada", "Lovelace", roleID, noManager)

	managerID, err := svc.ManagerID(ctx, "Ada Lovelace")
	require.NoError(t, err)
	require.NotNil(t, managerID)
	assert.Equal(t, adaID, *managerID)
	alanID := mustCreateEmployee(t, svc, "Alan", "Turing", roleID, managerID)

	var stored []struct {
		ID        uint
		ManagerID *uint
	}
	require.NoError(t, database.Raw("SELECT id, manager_id FROM employee ORDER BY id").Scan(&stored).Error)
	require.Len(t, stored, 2)
	assert.Equal(t, adaID, stored[0].ID)
	assert.Nil(t, stored[0].ManagerID)
	assert.Equal(t, alanID, stored[1].ID)
	require.NotNil(t, stored[1].ManagerID)
	assert.Equal(t, adaID, *stored[1].ManagerID)
}

func TestUpdateEmployeeRoleOnlyTouchesTarget(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	departmentID := mustCreateDepartment(t, svc, "Engineering")
	engineerID := mustCreateRole(t, svc, "Software Engineer", "120000", departmentID)
	leadID := mustCreateRole(t, svc, "Lead Engineer", "150000", departmentID)

	adaID := mustCreateEmployee(t, svc, "Ada", "Lovelace", engineerID, nil)
	mustCreateEmployee(t, svc, "Alan", "Turing", engineerID, &adaID)

	before, err := svc.Employees(ctx)
	require.NoError(t, err)

	employeeID, err := svc.EmployeeID(ctx, "Alan Turing")
	require.NoError(t, err)
	roleID, err := svc.RoleID(ctx, "Lead Engineer")
	require.NoError(t, err)
	require.NoError(t, svc.UpdateEmployeeRole(ctx, employeeID, roleID))

	after, err := svc.Employees(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before))

	for i := range after {
		if after[i].ID == employeeID {
			require.NotNil(t, after[i].RoleID)
			assert.Equal(t, leadID, *after[i].RoleID)
			before[i].RoleID = after[i].RoleID
		}
		assert.Equal(t, before[i], after[i])
	}
}

func TestUpdateEmployeeRoleToSameRole(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	departmentID := mustCreateDepartment(t, svc, "Engineering")
	roleID := mustCreateRole(t, svc, "Software Engineer", "120000", departmentID)
	adaID := mustCreateEmployee(t, svc, "Ada", "Lovelace", roleID, nil)

	assert.NoError(t, svc.UpdateEmployeeRole(ctx, adaID, roleID))
}

func TestUpdateEmployeeRoleMissingEmployee(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	departmentID := mustCreateDepartment(t, svc, "Engineering")
	roleID := mustCreateRole(t, svc, "Software Engineer", "120000", departmentID)

	err := svc.UpdateEmployeeRole(ctx, 42, roleID)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))
}

func TestListEmployeesCountsOnlyEmployeesWithRole(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()

	departmentID := mustCreateDepartment(t, svc, "Engineering")
	roleID := mustCreateRole(t, svc, "Software Engineer", "120000", departmentID)

	adaID := mustCreateEmployee(t, svc, "Ada", "Lovelace", roleID, nil)
	mustCreateEmployee(t, svc, "Alan", "Turing", roleID, &adaID)
	require.NoError(t, database.Exec(
		"INSERT INTO employee (first_name, last_name, role_id, manager_id) VALUES (?, ?, NULL, NULL)",
		"Grace", "Hopper").Error)

	rows, err := svc.ListEmployees(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"employee_id", "first_name", "last_name", "title", "salary", "department_name", "manager_name",
	}, rows.Columns)
	require.Equal(t, 2, rows.Len())

	cells := rows.Strings()
	managerColumn := column(rows, "manager_name")
	departmentColumn := column(rows, "department_name")
	assert.Equal(t, "", cells[0][managerColumn])
	assert.Equal(t, "Ada Lovelace", cells[1][managerColumn])
	assert.Equal(t, "Engineering", cells[1][departmentColumn])
}

func TestResolveMissingLabels(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.RoleID(ctx, "Nonexistent")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))

	_, err = svc.DepartmentID(ctx, "Nowhere")
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))

	_, err = svc.EmployeeID(ctx, "Nobody Here")
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))

	_, err = svc.EmployeeID(ctx, "Mononym")
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))

	_, err = svc.ManagerID(ctx, "Nobody Here")
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))
}

func TestEmployeeIDWithSpacesInName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	departmentID := mustCreateDepartment(t, svc, "Engineering")
	roleID := mustCreateRole(t, svc, "Software Engineer", "120000", departmentID)
	mustCreateEmployee(t, svc, "Ada", "Lovelace", roleID, nil)
	maryID := mustCreateEmployee(t, svc, "Mary Ann", "Smith", roleID, nil)
	vanID := mustCreateEmployee(t, svc, "Ludwig", "van Beethoven", roleID, nil)

	id, err := svc.EmployeeID(ctx, "Mary Ann Smith")
	require.NoError(t, err)
	assert.Equal(t, maryID, id)

	id, err = svc.EmployeeID(ctx, "Ludwig van Beethoven")
	require.NoError(t, err)
	assert.Equal(t, vanID, id)
}

func TestResolveDuplicateLabelUsesLowestID(t *testing.T) {
	database := openTestDB(t)
	core, logs := observer.New(zapcore.WarnLevel)
	svc := NewStaffService(store.NewGormExecutor(database), zap.New(core))
	ctx := context.Background()

	firstID := mustCreateDepartment(t, svc, "Sales")
	mustCreateDepartment(t, svc, "Sales")

	id, err := svc.DepartmentID(ctx, "Sales")
	require.NoError(t, err)
	assert.Equal(t, firstID, id)

	entries := logs.FilterField(zap.Int("matches", 2)).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "department", entries[0].ContextMap()["entity"])
}

func TestCreateRoleWithUnknownDepartmentFails(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.CreateRole(context.Background(), CreateRoleInput{
		Title:        "Ghost",
		Salary:       "1",
		DepartmentID: 99,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert role")
}

func TestQueryFailureIsWrapped(t *testing.T) {
	svc, database := newTestService(t)
	require.NoError(t, database.Exec("DROP VIEW employee_info").Error)

	_, err := svc.ListEmployees(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list employees")
}
