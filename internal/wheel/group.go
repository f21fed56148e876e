package wheel

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/runger/itempicker/internal/picker"
)

// gap is the number of columns between wheels.
const gap = 2

// Group lays several wheels out side by side. One wheel has focus and
// receives navigation keys; Enter confirms every wheel at once.
type Group struct {
	wheels   []Model
	focus    int
	keys     KeyMap
	help     help.Model
	showHelp bool

	cancelled bool
	confirmed bool
}

// NewGroup takes ownership of wheels. The first wheel starts focused.
func NewGroup(showHelp bool, wheels ...Model) Group {
	g := Group{
		wheels:   wheels,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		showHelp: showHelp,
	}
	for i := range g.wheels {
		g.wheels[i].id = i
		g.wheels[i].embedded = true
		g.wheels[i].focused = i == 0
	}
	return g
}

// Results returns the confirmed item of every wheel in order, or nil if the
// group was not confirmed.
func (g Group) Results() []picker.Item {
	if !g.confirmed {
		return nil
	}
	out := make([]picker.Item, len(g.wheels))
	for i, w := range g.wheels {
		out[i], _ = w.Result()
	}
	return out
}

// IsCancelled reports whether the user cancelled.
func (g Group) IsCancelled() bool { return g.cancelled }

// Focused is the index of the focused wheel.
func (g Group) Focused() int { return g.focus }

// Wheel returns the i'th wheel.
func (g Group) Wheel(i int) Model { return g.wheels[i] }

// Init implements tea.Model.
func (g Group) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(g.wheels))
	for _, w := range g.wheels {
		cmds = append(cmds, w.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (g Group) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return g.handleKey(msg)

	case tea.MouseMsg:
		return g.handleMouse(msg)

	case tea.WindowSizeMsg:
		g.help.Width = msg.Width
		// Each wheel gets an equal share of the width.
		share := msg
		if n := len(g.wheels); n > 0 {
			share.Width = max((msg.Width-gap*(n-1))/n, 1)
		}
		for i := range g.wheels {
			g.wheels[i] = g.update(i, share)
		}
		return g, nil

	case routed:
		i := msg.wheelID()
		if i < 0 || i >= len(g.wheels) {
			return g, nil
		}
		w, cmd := g.wheels[i].Update(msg)
		g.wheels[i] = w.(Model)
		return g, cmd
	}

	return g, nil
}

func (g Group) update(i int, msg tea.Msg) Model {
	w, _ := g.wheels[i].Update(msg)
	return w.(Model)
}

func (g Group) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, g.keys.Cancel):
		g.cancelled = true
		for i := range g.wheels {
			g.wheels[i].cancel()
		}
		return g, tea.Quit

	case key.Matches(msg, g.keys.Confirm):
		for _, w := range g.wheels {
			if w.state != stateLoaded {
				return g, nil
			}
		}
		cmds := make([]tea.Cmd, 0, len(g.wheels)+1)
		for i := range g.wheels {
			g.wheels[i].confirm()
			cmds = append(cmds, g.wheels[i].report())
		}
		g.confirmed = true
		cmds = append(cmds, tea.Quit)
		return g, tea.Sequence(cmds...)

	case key.Matches(msg, g.keys.Next):
		g.setFocus(g.focus + 1)
		return g, nil

	case key.Matches(msg, g.keys.Prev):
		g.setFocus(g.focus - 1)
		return g, nil
	}

	if len(g.wheels) == 0 {
		return g, nil
	}
	w, cmd := g.wheels[g.focus].Update(msg)
	g.wheels[g.focus] = w.(Model)
	return g, cmd
}

// handleMouse hands the event to the wheel under the pointer, focusing it,
// with X made relative to that wheel.
func (g Group) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x := 0
	for i := range g.wheels {
		w := g.wheels[i].columnWidth()
		if msg.X >= x && msg.X < x+w {
			g.setFocus(i)
			local := msg
			local.X -= x
			next, cmd := g.wheels[i].Update(local)
			g.wheels[i] = next.(Model)
			return g, cmd
		}
		x += w + gap
	}
	return g, nil
}

// setFocus moves focus to i, wrapping around.
func (g *Group) setFocus(i int) {
	n := len(g.wheels)
	if n == 0 {
		return
	}
	i = ((i % n) + n) % n
	g.wheels[g.focus].focused = false
	g.focus = i
	g.wheels[g.focus].focused = true
}

// View implements tea.Model.
func (g Group) View() string {
	cols := make([]string, 0, 2*len(g.wheels))
	spacer := strings.Repeat(" ", gap)
	for i, w := range g.wheels {
		if i > 0 {
			cols = append(cols, spacer)
		}
		cols = append(cols, w.View())
	}
	out := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	if g.showHelp {
		out = lipgloss.JoinVertical(lipgloss.Left, out, g.help.View(groupHelp{g.keys}))
	}
	return out
}
