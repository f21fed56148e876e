package picker

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	// ErrInvalidInput is returned when a picker is built without items.
	ErrInvalidInput = errors.New("picker: invalid input")

	// ErrDuplicateIdentity is returned by CheckUnique.
	ErrDuplicateIdentity = errors.New("picker: duplicate identity")
)

// generations hands out a distinct number to every built sequence so that
// indices computed against one build are never mistaken for another's.
var generations atomic.Uint64

// Sequence is the caller's items with one blank slot on either side.
// A Sequence is immutable once built and safe for concurrent reads.
type Sequence struct {
	slots      []Item
	generation uint64
}

// Build pads items with a leading and trailing blank. The input slice is
// copied; later changes to it do not affect the sequence.
func Build(items []Item) (*Sequence, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: a picker needs at least one item", ErrInvalidInput)
	}
	slots := make([]Item, 0, len(items)+2)
	slots = append(slots, blank{})
	for i, it := range items {
		if it == nil {
			return nil, fmt.Errorf("%w: item %d is nil", ErrInvalidInput, i)
		}
		slots = append(slots, it)
	}
	slots = append(slots, blank{})
	return &Sequence{slots: slots, generation: generations.Add(1)}, nil
}

// CheckUnique returns ErrDuplicateIdentity naming the first identity that
// appears twice. Build does not call it; identity lookups take the first
// match.
func CheckUnique(items []Item) error {
	seen := make(map[string]int, len(items))
	for i, it := range items {
		id := it.Identity()
		if j, ok := seen[id]; ok {
			return fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateIdentity, id, j, i)
		}
		seen[id] = i
	}
	return nil
}

// Len is the padded slot count (real items + 2).
func (s *Sequence) Len() int { return len(s.slots) }

// Count is the number of real items.
func (s *Sequence) Count() int { return len(s.slots) - 2 }

// Generation identifies this build.
func (s *Sequence) Generation() uint64 { return s.generation }

// Slot returns the item at a padded index, blanks included.
func (s *Sequence) Slot(i int) (Item, bool) {
	if i < 0 || i >= len(s.slots) {
		return nil, false
	}
	return s.slots[i], true
}

// Items returns a copy of the real items in order.
func (s *Sequence) Items() []Item {
	out := make([]Item, s.Count())
	copy(out, s.slots[1:len(s.slots)-1])
	return out
}

// IndexOf returns the padded index of the first real item with the given
// identity.
func (s *Sequence) IndexOf(identity string) (int, bool) {
	for i := 1; i < len(s.slots)-1; i++ {
		if s.slots[i].Identity() == identity {
			return i, true
		}
	}
	return 0, false
}

// Unpad returns the real item at a padded index. It reports false for the
// blank slots and for indices outside the sequence.
func (s *Sequence) Unpad(paddedIndex int) (Item, bool) {
	if paddedIndex < 1 || paddedIndex > len(s.slots)-2 {
		return nil, false
	}
	return s.slots[paddedIndex], true
}

// InitialIndex is where a picker should rest first: the padded index of the
// desired identity, or 1 (the first real item) when it is absent.
func (s *Sequence) InitialIndex(identity string) int {
	if i, ok := s.IndexOf(identity); ok {
		return i
	}
	return 1
}

// Settle moves a padded index that lands on a blank onto the nearest real
// slot. The leading blank is only centred transiently during layout, and the
// trailing one only when an offset pushes past the last item.
func (s *Sequence) Settle(paddedIndex int) int {
	last := len(s.slots) - 2
	switch {
	case paddedIndex < 1:
		return 1
	case paddedIndex > last:
		return last
	default:
		return paddedIndex
	}
}
