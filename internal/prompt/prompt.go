// Package prompt collects a single answer from the terminal: a choice from
// a fixed list or a line of free text.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

var (
	// ErrInterrupted is returned when the user aborts a prompt with
	// ctrl+c or esc, or when the context is cancelled.
	ErrInterrupted   = errors.New("prompt interrupted")
	ErrInputClosed   = errors.New("input closed")
	ErrNoChoices     = errors.New("no choices to select from")
	ErrUnknownChoice = errors.New("answer is not one of the choices")
)

type Prompter interface {
	Select(ctx context.Context, message string, choices []string) (string, error)
	Input(ctx context.Context, message string) (string, error)
}

// TeaPrompter runs one bubbletea program per question on a terminal. Any
// other input (a pipe, a file) is read one line per question from a reader
// shared by the whole session, so queued answers survive between prompts.
type TeaPrompter struct {
	in    io.Reader
	out   io.Writer
	lines *bufio.Reader
}

func NewTeaPrompter(in io.Reader, out io.Writer) *TeaPrompter {
	p := &TeaPrompter{
		in:  in,
		out: out,
	}
	if !isTerminal(in) {
		p.lines = bufio.NewReader(in)
	}
	return p
}

func (p *TeaPrompter) Select(ctx context.Context, message string, choices []string) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("%s: %w", message, ErrNoChoices)
	}

	if p.lines != nil {
		return p.selectLine(ctx, message, choices)
	}

	final, err := p.run(ctx, newSelectModel(message, choices))
	if err != nil {
		return "", err
	}

	m := final.(selectModel)
	if err := m.result.err(); err != nil {
		return "", err
	}
	return m.choice, nil
}

func (p *TeaPrompter) Input(ctx context.Context, message string) (string, error) {
	if p.lines != nil {
		fmt.Fprintln(p.out, question(message))
		return p.readLine(ctx)
	}

	final, err := p.run(ctx, newInputModel(message))
	if err != nil {
		return "", err
	}

	m := final.(inputModel)
	if err := m.result.err(); err != nil {
		return "", err
	}
	return m.value, nil
}

func (p *TeaPrompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	if ctx.Err() != nil {
		return nil, ErrInterrupted
	}

	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) || ctx.Err() != nil {
			return nil, ErrInterrupted
		}
		return nil, fmt.Errorf("run prompt: %w", err)
	}
	return final, nil
}

// selectLine accepts either the choice text or its 1-based number.
func (p *TeaPrompter) selectLine(ctx context.Context, message string, choices []string) (string, error) {
	fmt.Fprintln(p.out, question(message))
	for i, choice := range choices {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, choice)
	}

	answer, err := p.readLine(ctx)
	if err != nil {
		return "", err
	}

	for _, choice := range choices {
		if choice == answer {
			return choice, nil
		}
	}
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(choices) {
		return choices[n-1], nil
	}
	return "", fmt.Errorf("%q: %w", answer, ErrUnknownChoice)
}

// readLine returns the next line ended by \n, \r or \r\n. A final line
// without terminator still counts; EOF with nothing read is ErrInputClosed.
func (p *TeaPrompter) readLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInterrupted
	}

	var b strings.Builder
	for {
		r, _, err := p.lines.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if b.Len() > 0 {
					return b.String(), nil
				}
				return "", ErrInputClosed
			}
			return "", fmt.Errorf("read answer: %w", err)
		}

		switch r {
		case '\n':
			return b.String(), nil
		case '\r':
			if next, _, err := p.lines.ReadRune(); err == nil && next != '\n' {
				_ = p.lines.UnreadRune()
			}
			return b.String(), nil
		default:
			b.WriteRune(r)
		}
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
