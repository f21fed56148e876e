package wheel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/runger/itempicker/internal/source"
)

// Row positions within the drawn wheel, relative to the first wheel row.
const (
	rowTop    = 0
	rowCentre = 2
	rowBottom = 4
	rowNone   = -1
)

// minWidth keeps very short labels readable.
const minWidth = 5

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	centreStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	blurredStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	edgeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	focusedMarker = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	if m.opts.Title != "" {
		b.WriteString(titleStyle.Render(m.center(m.opts.Title, m.columnWidth())))
		b.WriteRune('\n')
	}

	b.WriteString(m.viewContent())

	if m.opts.ShowHelp && !m.embedded {
		b.WriteRune('\n')
		b.WriteString(m.help.View(m.keys))
	}

	return b.String()
}

// viewContent renders the wheel or a status message in its place.
func (m Model) viewContent() string {
	switch m.state {
	case stateIdle, stateLoading:
		return m.status(dimStyle, "Loading...")

	case stateEmpty:
		return m.status(dimStyle, "No items")

	case stateError:
		msg := "Error"
		if m.err != nil {
			msg = fmt.Sprintf("Error: %s", m.err)
		}
		return m.status(errorStyle, msg)

	case stateCancelled:
		return m.status(dimStyle, "Cancelled")

	default:
		if m.err != nil {
			return m.viewWheel() + "\n" + m.reloadError()
		}
		return m.viewWheel()
	}
}

// reloadError is shown under a wheel whose last reload failed. It may be
// wider than the wheel, up to the terminal width.
func (m Model) reloadError() string {
	w := m.width
	if w <= 0 {
		w = m.columnWidth()
	}
	return errorStyle.Render(Truncate("Reload failed: "+m.err.Error(), w))
}

// status fills the five wheel rows with msg in the middle so the layout does
// not jump once items arrive.
func (m Model) status(style lipgloss.Style, msg string) string {
	w := m.columnWidth()
	blankRow := strings.Repeat(" ", w)
	rows := []string{blankRow, blankRow, style.Render(m.center(msg, w)), blankRow, blankRow}
	return strings.Join(rows, "\n")
}

// viewWheel renders top, centre and bottom rows with dividers around the
// centre.
func (m Model) viewWheel() string {
	w := m.columnWidth()
	seq := m.sel.Sequence()
	c := m.centre()

	label := func(i int) string {
		it, ok := seq.Unpad(i)
		if !ok {
			return ""
		}
		return source.Clean(it.DisplayText())
	}

	divider := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.opts.DividerColor)).
		Render(strings.Repeat(m.opts.DividerChar, w))

	centre := m.center(label(c), w)
	switch {
	case m.embedded && m.focused:
		centre = focusedMarker.Render(centre)
	case m.embedded:
		centre = blurredStyle.Render(centre)
	default:
		centre = centreStyle.Render(centre)
	}

	rows := []string{
		edgeStyle.Render(m.center(label(c-1), w)),
		divider,
		centre,
		divider,
		edgeStyle.Render(m.center(label(c+1), w)),
	}
	return strings.Join(rows, "\n")
}

// rowAt maps a screen row to a wheel row.
func (m Model) rowAt(y int) int {
	if m.opts.Title != "" {
		y--
	}
	switch y {
	case rowTop, rowCentre, rowBottom:
		return y
	default:
		return rowNone
	}
}

// columnWidth is the drawn width of the wheel.
func (m Model) columnWidth() int {
	w := m.opts.Width
	if w <= 0 {
		w = m.naturalWidth()
	}
	if m.width > 0 && w > m.width {
		w = m.width
	}
	return max(w, minWidth)
}

// naturalWidth fits the longest label (and the title) with a column of
// padding on each side.
func (m Model) naturalWidth() int {
	w := runewidth.StringWidth(m.opts.Title)
	if m.sel != nil {
		for _, it := range m.sel.Sequence().Items() {
			w = max(w, runewidth.StringWidth(source.Clean(it.DisplayText())))
		}
	}
	return w + 2
}

// center truncates s to fit w columns less padding and centres it.
func (m Model) center(s string, w int) string {
	inner := max(w-2, 1)
	if m.opts.MiddleEllipsis {
		s = MiddleTruncate(s, inner)
	} else {
		s = Truncate(s, inner)
	}
	sw := runewidth.StringWidth(s)
	left := (w - sw) / 2
	right := w - sw - left
	return strings.Repeat(" ", max(left, 0)) + s + strings.Repeat(" ", max(right, 0))
}
