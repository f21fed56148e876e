// Package wheel is the terminal front end of the item picker: a Bubble Tea
// model that scrolls a three-row window over a picker.Selector.
package wheel

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runger/itempicker/internal/config"
	"github.com/runger/itempicker/internal/picker"
	"github.com/runger/itempicker/internal/source"
)

// wheelState represents the current state of the wheel's state machine.
type wheelState int

const (
	stateIdle      wheelState = iota // Initial state before first fetch
	stateLoading                     // Fetch in progress
	stateLoaded                      // Items loaded and a selector built
	stateEmpty                       // Fetch succeeded but returned 0 items
	stateError                       // Fetch or build failed
	stateCancelled                   // User cancelled (Esc / Ctrl+C)
	stateConfirmed                   // User pressed Enter
)

// pageRows is how far PgUp/PgDn move.
const pageRows = 5

// Options configures a wheel.
type Options struct {
	RowUnits       int           // Scroll steps per row
	FrameInterval  time.Duration // Delay between animation frames; 0 jumps
	DividerChar    string
	DividerColor   string
	Width          int  // Column width; 0 sizes to the longest label
	ShowHelp       bool // Only honoured for a standalone wheel
	Mouse          bool
	MiddleEllipsis bool // Cut long labels in the middle instead of the end

	Title    string                 // Optional line above the wheel
	OnChange func(item picker.Item) // Called on every selection change
	Logger   *slog.Logger
}

// OptionsFromConfig maps the wheel section of the config file.
func OptionsFromConfig(c config.WheelConfig) Options {
	return Options{
		RowUnits:       c.RowUnits,
		FrameInterval:  time.Duration(c.FrameIntervalMs) * time.Millisecond,
		DividerChar:    c.DividerChar,
		DividerColor:   c.DividerColor,
		Width:          c.Width,
		ShowHelp:       c.ShowHelp,
		Mouse:          c.Mouse,
		MiddleEllipsis: c.Ellipsis == "middle",
	}
}

func (o Options) withDefaults() Options {
	if o.RowUnits < 1 {
		o.RowUnits = 1
	}
	if o.DividerChar == "" {
		o.DividerChar = "─"
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// SelectionChangedMsg is emitted whenever the centred item changes identity.
type SelectionChangedMsg struct {
	Wheel int
	Item  picker.Item
}

// routed is implemented by messages addressed to one wheel of a Group.
type routed interface {
	wheelID() int
}

// initMsg is sent by Init() to trigger the first fetch via Update(),
// ensuring state mutations are visible to the Bubble Tea runtime.
type initMsg struct{ wheel int }

// fetchDoneMsg is sent when an async Provider.Fetch completes.
type fetchDoneMsg struct {
	wheel     int
	requestID uint64
	items     []picker.Item
	err       error
}

// frameMsg advances a scroll animation by one step. Frames from an older
// animation or an older item generation are dropped.
type frameMsg struct {
	wheel      int
	generation uint64
	anim       uint64
}

func (m initMsg) wheelID() int      { return m.wheel }
func (m fetchDoneMsg) wheelID() int { return m.wheel }
func (m frameMsg) wheelID() int     { return m.wheel }

// Model is the Bubble Tea model for one picker wheel.
//
// The scroll position is kept in sub-row units: pos = slot*RowUnits + offset,
// where slot is the padded index of the row at the top edge of the selection
// band and offset how far it has moved past it. Every change of pos is fed
// to the selector as one scroll frame.
type Model struct {
	id       int
	state    wheelState
	opts     Options
	keys     KeyMap
	help     help.Model
	embedded bool // Owned by a Group: Enter/Esc/Tab are handled there
	focused  bool

	provider    source.Provider
	initial     string // Identity to rest on after the first load
	requestID   uint64 // Monotonic counter for stale detection
	cancelFetch context.CancelFunc

	sel       *picker.Selector
	pos       int
	target    int
	anim      uint64
	animating bool

	err    error
	result picker.Item

	width  int // Terminal width
	height int // Terminal height
}

// New creates a wheel over the items provider returns, resting on the item
// whose identity is initial.
func New(provider source.Provider, initial string, opts Options) Model {
	opts = opts.withDefaults()
	h := help.New()
	return Model{
		state:    stateIdle,
		opts:     opts,
		keys:     DefaultKeyMap(),
		help:     h,
		focused:  true,
		provider: provider,
		initial:  initial,
	}
}

// Result returns the confirmed item, or false if the wheel was cancelled or
// is still open.
func (m Model) Result() (picker.Item, bool) {
	return m.result, m.result != nil
}

// IsCancelled reports whether the user cancelled.
func (m Model) IsCancelled() bool {
	return m.state == stateCancelled
}

// Selected is the currently centred item, nil before the first load.
func (m Model) Selected() picker.Item {
	if m.sel == nil {
		return nil
	}
	return m.sel.Selected()
}

// Err is the last load error.
func (m Model) Err() error { return m.err }

// Init implements tea.Model. It sends an initMsg so that the first fetch
// is triggered through Update, where state mutations are properly captured.
func (m Model) Init() tea.Cmd {
	id := m.id
	return func() tea.Msg { return initMsg{wheel: id} }
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case initMsg:
		if msg.wheel != m.id {
			return m, nil
		}
		return m, m.startFetch()

	case fetchDoneMsg:
		if msg.wheel != m.id {
			return m, nil
		}
		return m.handleFetchDone(msg)

	case frameMsg:
		if msg.wheel != m.id {
			return m, nil
		}
		return m.handleFrame(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.embedded {
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.cancel()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Confirm):
			if m.confirm() {
				return m, tea.Sequence(m.report(), tea.Quit)
			}
			return m, nil
		}
	}

	if key.Matches(msg, m.keys.Reload) && m.state != stateConfirmed {
		return m, m.startFetch()
	}

	if m.state != stateLoaded {
		return m, nil
	}

	slot := m.targetSlot()
	switch {
	case key.Matches(msg, m.keys.Up):
		return m, m.scrollTo(slot - 1)
	case key.Matches(msg, m.keys.Down):
		return m, m.scrollTo(slot + 1)
	case key.Matches(msg, m.keys.PageUp):
		return m, m.scrollTo(slot - pageRows)
	case key.Matches(msg, m.keys.PageDown):
		return m, m.scrollTo(slot + pageRows)
	case key.Matches(msg, m.keys.Home):
		return m, m.scrollTo(1)
	case key.Matches(msg, m.keys.End):
		return m, m.scrollTo(m.sel.Sequence().Len() - 2)
	}

	return m, nil
}

// handleMouse scrolls on wheel events and centres the row that was clicked.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.opts.Mouse || m.state != stateLoaded {
		return m, nil
	}
	slot := m.targetSlot()
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m, m.scrollTo(slot - 1)
	case tea.MouseButtonWheelDown:
		return m, m.scrollTo(slot + 1)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch m.rowAt(msg.Y) {
		case rowTop:
			return m, m.scrollTo(m.centre() - 1)
		case rowBottom:
			return m, m.scrollTo(m.centre() + 1)
		}
	}
	return m, nil
}

// handleFetchDone processes the result of an async fetch.
func (m Model) handleFetchDone(msg fetchDoneMsg) (tea.Model, tea.Cmd) {
	// Discard stale responses.
	if msg.requestID != m.requestID {
		return m, nil
	}
	m.cancelFetch = nil

	if msg.err != nil {
		m.opts.Logger.Warn("wheel fetch failed", "wheel", m.id, "err", msg.err)
		m.err = msg.err
		if m.sel == nil {
			m.state = stateError
		}
		// A failed reload keeps the old items usable.
		return m, nil
	}

	if len(msg.items) == 0 {
		m.state = stateEmpty
		m.sel = nil
		m.animating = false
		m.anim++
		m.err = nil
		return m, nil
	}

	// On reload keep the current item if it survived.
	initial := m.initial
	var before picker.Item
	if m.sel != nil {
		before = m.sel.Selected()
		initial = before.Identity()
	}

	if m.sel == nil {
		sel, err := picker.NewSelector(msg.items, initial, m.selectorOptions()...)
		if err != nil {
			m.state = stateError
			m.err = err
			return m, nil
		}
		m.sel = sel
	} else if err := m.sel.SetItems(msg.items, initial); err != nil {
		m.opts.Logger.Warn("wheel reload rejected", "wheel", m.id, "err", err)
		m.err = err
		return m, nil
	}

	m.state = stateLoaded
	m.err = nil
	m.pos = m.sel.InitialIndex() * m.opts.RowUnits
	m.target = m.pos
	m.anim++ // any in-flight frame belongs to the old items
	m.animating = false
	m.opts.Logger.Debug("wheel loaded", "wheel", m.String(), "items", m.sel.Sequence().Count())

	if before != nil && before.Identity() != m.sel.Selected().Identity() {
		return m, m.changed(m.sel.Selected())
	}
	return m, nil
}

// handleFrame moves one step toward the target and reports the new position.
func (m Model) handleFrame(msg frameMsg) (tea.Model, tea.Cmd) {
	if m.sel == nil || msg.anim != m.anim || msg.generation != m.sel.Generation() {
		return m, nil
	}
	switch {
	case m.pos < m.target:
		m.pos++
	case m.pos > m.target:
		m.pos--
	}
	report := m.report()
	if m.pos == m.target {
		m.animating = false
		return m, report
	}
	return m, tea.Batch(report, m.tick())
}

// scrollTo starts (or retargets) an animation that centres slot.
func (m *Model) scrollTo(slot int) tea.Cmd {
	last := m.sel.Sequence().Len() - 2
	slot = max(1, min(slot, last))
	m.target = slot * m.opts.RowUnits
	if m.target == m.pos {
		return nil
	}
	if m.opts.FrameInterval <= 0 {
		m.pos = m.target
		return m.report()
	}
	if m.animating {
		return nil // the running animation picks up the new target
	}
	m.animating = true
	m.anim++
	return m.tick()
}

// tick schedules the next animation frame.
func (m *Model) tick() tea.Cmd {
	msg := frameMsg{wheel: m.id, generation: m.sel.Generation(), anim: m.anim}
	return tea.Tick(m.opts.FrameInterval, func(time.Time) tea.Msg {
		return msg
	})
}

// report feeds the current position to the selector as one scroll frame.
func (m *Model) report() tea.Cmd {
	if m.sel == nil {
		return nil
	}
	u := m.opts.RowUnits
	it, changed := m.sel.OnScroll(m.pos/u, m.pos%u)
	if !changed {
		return nil
	}
	return m.changed(it)
}

func (m *Model) changed(it picker.Item) tea.Cmd {
	id := m.id
	return func() tea.Msg {
		return SelectionChangedMsg{Wheel: id, Item: it}
	}
}

// confirm snaps to the target and records the result. It reports false when
// there is nothing to select yet.
func (m *Model) confirm() bool {
	if m.state != stateLoaded {
		return false
	}
	m.pos = m.target
	m.animating = false
	m.anim++
	m.cancelInflight()
	m.state = stateConfirmed
	u := m.opts.RowUnits
	idx := m.sel.Sequence().Settle(picker.Resolve(m.pos%u, m.pos/u, m.sel.Sequence().Len()))
	m.result, _ = m.sel.Sequence().Unpad(idx)
	return true
}

func (m *Model) cancel() {
	m.state = stateCancelled
	m.animating = false
	m.anim++
	m.cancelInflight()
}

func (m Model) selectorOptions() []picker.Option {
	opts := []picker.Option{picker.WithLogger(m.opts.Logger)}
	if m.opts.OnChange != nil {
		opts = append(opts, picker.WithOnChange(m.opts.OnChange))
	}
	return opts
}

// startFetch cancels any in-flight fetch, increments requestID, and
// returns a tea.Cmd that calls the provider.
func (m *Model) startFetch() tea.Cmd {
	m.cancelInflight()
	m.requestID++
	if m.sel == nil {
		m.state = stateLoading
	}

	reqID := m.requestID
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelFetch = cancel

	id := m.id
	p := m.provider
	req := source.Request{RequestID: reqID}
	return func() tea.Msg {
		resp, err := p.Fetch(ctx, req)
		if err != nil {
			return fetchDoneMsg{wheel: id, requestID: reqID, err: err}
		}
		return fetchDoneMsg{wheel: id, requestID: reqID, items: resp.Items}
	}
}

// cancelInflight cancels any in-progress fetch context.
func (m *Model) cancelInflight() {
	if m.cancelFetch != nil {
		m.cancelFetch()
		m.cancelFetch = nil
	}
}

// targetSlot is the slot the wheel is heading for (or resting on).
func (m Model) targetSlot() int {
	return m.target / m.opts.RowUnits
}

// centre is the padded index currently drawn in the middle row.
func (m Model) centre() int {
	u := m.opts.RowUnits
	seq := m.sel.Sequence()
	return seq.Settle(picker.Resolve(m.pos%u, m.pos/u, seq.Len()))
}

// String describes the wheel for logs.
func (m Model) String() string {
	return fmt.Sprintf("wheel#%d(state=%d pos=%d target=%d)", m.id, m.state, m.pos, m.target)
}
