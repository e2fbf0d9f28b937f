package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const pageSize = 10

var (
	markStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	questionStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	hintStyle     = lipgloss.NewStyle().Faint(true)
)

type outcome int

const (
	pending outcome = iota
	answered
	aborted
)

func (o outcome) err() error {
	switch o {
	case aborted:
		return ErrInterrupted
	default:
		return nil
	}
}

func question(message string) string {
	return markStyle.Render("?") + " " + questionStyle.Render(message)
}

// selectModel is a scrolling single-choice list.
type selectModel struct {
	message string
	choices []string
	cursor  int
	offset  int
	choice  string
	result  outcome
}

func newSelectModel(message string, choices []string) selectModel {
	return selectModel{
		message: message,
		choices: choices,
	}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.result != pending {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.result = aborted
			return m, tea.Quit
		case "up", "k", "shift+tab":
			m.cursor = (m.cursor - 1 + len(m.choices)) % len(m.choices)
		case "down", "j", "tab":
			m.cursor = (m.cursor + 1) % len(m.choices)
		case "enter", "ctrl+j":
			m.choice = m.choices[m.cursor]
			m.result = answered
			return m, tea.Quit
		}
	}

	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+pageSize {
		m.offset = m.cursor - pageSize + 1
	}
	return m, nil
}

func (m selectModel) View() string {
	var b strings.Builder
	b.WriteString(question(m.message))

	switch m.result {
	case answered:
		b.WriteString(" " + answerStyle.Render(m.choice) + "\n")
		return b.String()
	case aborted:
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n")
	end := min(m.offset+pageSize, len(m.choices))
	for i := m.offset; i < end; i++ {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + m.choices[i]))
		} else {
			b.WriteString("  " + m.choices[i])
		}
		b.WriteString("\n")
	}
	if len(m.choices) > pageSize {
		b.WriteString(hintStyle.Render("(Move up and down to reveal more choices)") + "\n")
	}
	return b.String()
}

type inputModel struct {
	message string
	input   textinput.Model
	value   string
	result  outcome
}

func newInputModel(message string) inputModel {
	input := textinput.New()
	input.Prompt = ""
	input.Focus()

	return inputModel{
		message: message,
		input:   input,
	}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.result != pending {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.result = aborted
			return m, tea.Quit
		case "enter", "ctrl+j":
			m.value = m.input.Value()
			m.result = answered
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	switch m.result {
	case answered:
		return question(m.message) + " " + answerStyle.Render(m.value) + "\n"
	case aborted:
		return question(m.message) + "\n"
	}
	return question(m.message) + " " + m.input.View() + "\n"
}
