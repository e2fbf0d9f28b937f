// Package menu runs the interactive loop: pick an action, run it, show the
// result, ask again.
package menu

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"staff-tracker/internal/apperror"
	"staff-tracker/internal/display"
	"staff-tracker/internal/prompt"
	"staff-tracker/internal/service"
)

const (
	ViewDepartments    = "View all departments"
	ViewRoles          = "View all roles"
	ViewEmployees      = "View all employees"
	AddDepartment      = "Add a department"
	AddRole            = "Add a role"
	AddEmployee        = "Add an employee"
	UpdateEmployeeRole = "Update an employee role"
)

type action struct {
	label string
	// failure prefixes the message printed when the handler fails.
	failure string
	run     func(ctx context.Context) error
}

type Menu struct {
	directory service.Directory
	prompter  prompt.Prompter
	presenter *display.Presenter
	logger    *zap.Logger
	actions   []action
}

func New(directory service.Directory, prompter prompt.Prompter, presenter *display.Presenter, logger *zap.Logger) *Menu {
	m := &Menu{
		directory: directory,
		prompter:  prompter,
		presenter: presenter,
		logger:    logger,
	}

	m.actions = []action{
		{label: ViewDepartments, failure: "Error occurred while viewing departments", run: m.handleViewDepartments},
		{label: ViewRoles, failure: "Error occurred while viewing roles", run: m.handleViewRoles},
		{label: ViewEmployees, failure: "Error occurred while viewing employees", run: m.handleViewEmployees},
		{label: AddDepartment, failure: "Error occurred while adding department", run: m.handleAddDepartment},
		{label: AddRole, failure: "Error occurred while adding role", run: m.handleAddRole},
		{label: AddEmployee, failure: "Error occurred while adding employee", run: m.handleAddEmployee},
		{label: UpdateEmployeeRole, failure: "Error occurred while updating employee role", run: m.handleUpdateEmployeeRole},
	}
	return m
}

func (m *Menu) labels() []string {
	labels := make([]string, 0, len(m.actions))
	for _, a := range m.actions {
		labels = append(labels, a.label)
	}
	return labels
}

// Run loops until a prompt is interrupted or its input closes. That error
// is returned; handler failures and unusable answers are reported and the
// loop continues.
func (m *Menu) Run(ctx context.Context) error {
	labels := m.labels()

	for {
		selection, err := m.prompter.Select(ctx, "Which action would you like to take?", labels)
		if err != nil {
			if isTerminal(err) {
				return err
			}
			m.presenter.Notice(err)
			continue
		}

		if err := m.dispatch(ctx, selection); err != nil {
			return err
		}
	}
}

func (m *Menu) dispatch(ctx context.Context, selection string) error {
	for _, a := range m.actions {
		if a.label != selection {
			continue
		}

		m.logger.Debug("running action", zap.String("action", a.label))
		err := a.run(ctx)
		if err == nil {
			return nil
		}
		if isTerminal(err) {
			return err
		}

		code := apperror.GetCode(err)
		if errors.Is(err, prompt.ErrUnknownChoice) {
			code = apperror.CodeValidation
		}
		m.logger.Info("action failed",
			zap.String("action", a.label),
			zap.String("code", string(code)),
			zap.Error(err),
		)

		switch code {
		case apperror.CodeValidation, apperror.CodeNotFound:
			m.presenter.Notice(err)
		default:
			m.presenter.Error(a.failure, err)
		}
		return nil
	}

	m.logger.Warn("unknown action", zap.String("selection", selection))
	return nil
}

func isTerminal(err error) bool {
	return errors.Is(err, prompt.ErrInterrupted) ||
		errors.Is(err, prompt.ErrInputClosed) ||
		errors.Is(err, context.Canceled)
}
