package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"staff-tracker/internal/store"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Presenter writes everything the user reads: result tables, banners and
// error lines.
type Presenter struct {
	out io.Writer
}

func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

// Table renders rows with one column per result column, in result order.
func (p *Presenter) Table(rows store.Rows) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(rows.Columns...).
		Rows(rows.Strings()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintf(p.out, "\n%s\n", t.String())
	if rows.Len() == 0 {
		fmt.Fprintln(p.out, "(no rows)")
	}
}

func (p *Presenter) Banner(message string) {
	fmt.Fprintf(p.out, "\n%s\n", bannerStyle.Render(message))
}

func (p *Presenter) Error(message string, err error) {
	fmt.Fprintf(p.out, "%s\n", errorStyle.Render(fmt.Sprintf("%s: %v", message, err)))
}

// Notice prints a problem the user can fix by answering differently.
func (p *Presenter) Notice(err error) {
	fmt.Fprintf(p.out, "%s\n", noticeStyle.Render(err.Error()))
}
