package picker

import (
	"fmt"
	"log/slog"
)

// Selector turns a stream of scroll positions into selection changes.
//
// Every scroll frame goes through OnScroll. The change callback fires only
// when the resolved identity differs from the last one reported, so a run of
// frames that all centre the same item produces at most one notification.
// Selector is not safe for concurrent use; it is driven from a single event
// loop.
type Selector struct {
	seq      *Sequence
	selected Item
	initial  int

	onChange func(Item)
	logger   *slog.Logger
}

// Option configures a Selector.
type Option func(*Selector)

// WithOnChange sets the callback invoked on every identity change.
func WithOnChange(fn func(Item)) Option {
	return func(s *Selector) {
		s.onChange = fn
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Selector) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSelector builds a selector over items, resting on the item whose
// identity is initial (or on the first item if there is none).
func NewSelector(items []Item, initial string, opts ...Option) (*Selector, error) {
	s := &Selector{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.SetItems(items, initial); err != nil {
		return nil, err
	}
	return s, nil
}

// SetItems replaces the items wholesale. Padded indices computed before the
// call belong to the previous generation and must not be reused. On error
// the selector keeps its previous items.
//
// The new resting item becomes the last reported identity without firing the
// callback; the caller chose it.
func (s *Selector) SetItems(items []Item, initial string) error {
	seq, err := Build(items)
	if err != nil {
		return fmt.Errorf("set items: %w", err)
	}
	s.seq = seq
	s.initial = seq.InitialIndex(initial)
	s.selected, _ = seq.Unpad(s.initial)
	s.logger.Debug("picker items replaced",
		"count", seq.Count(),
		"generation", seq.Generation(),
		"initial", s.selected.Identity(),
	)
	return nil
}

// OnScroll feeds one scroll frame. visibleIndex is the padded index of the
// topmost visible slot and offset its sub-slot displacement. It returns the
// centred item and whether it differs from the previously reported one.
func (s *Selector) OnScroll(visibleIndex, offset int) (Item, bool) {
	idx := s.seq.Settle(Resolve(offset, visibleIndex, s.seq.Len()))
	it, ok := s.seq.Unpad(idx)
	if !ok {
		return s.selected, false
	}
	if s.selected != nil && s.selected.Identity() == it.Identity() {
		return s.selected, false
	}
	s.selected = it
	s.logger.Debug("picker selection changed",
		"identity", it.Identity(),
		"index", idx,
		"visible_index", visibleIndex,
		"offset", offset,
	)
	if s.onChange != nil {
		s.onChange(it)
	}
	return it, true
}

// Selected is the last reported item.
func (s *Selector) Selected() Item { return s.selected }

// InitialIndex is the padded index the scroll surface should be seeded with
// for the current generation.
func (s *Selector) InitialIndex() int { return s.initial }

// Sequence returns the current padded sequence.
func (s *Selector) Sequence() *Sequence { return s.seq }

// Generation identifies the current padded sequence.
func (s *Selector) Generation() uint64 { return s.seq.Generation() }
