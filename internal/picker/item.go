// Package picker implements the selection model behind a rotary item picker:
// a padded item sequence and the arithmetic that infers which slot sits in
// the centre of a three-row window from the scroll position.
package picker

import "strconv"

// Item is anything a picker can show. Two items are the same item iff their
// identities match.
type Item interface {
	DisplayText() string
	Identity() string
}

// Text is a plain string item whose label is also its identity.
type Text string

func (t Text) DisplayText() string { return string(t) }
func (t Text) Identity() string    { return string(t) }

// Number is an integer item. Its label and identity are the decimal form.
type Number int

func (n Number) DisplayText() string { return strconv.Itoa(int(n)) }
func (n Number) Identity() string    { return strconv.Itoa(int(n)) }

// Keyed carries a label and an identity that may differ, for lists where
// several entries share a label.
type Keyed struct {
	Label string
	Key   string
}

func (k Keyed) DisplayText() string { return k.Label }
func (k Keyed) Identity() string    { return k.Key }

// blank pads both ends of a sequence so the first and last real items can
// reach the centre row. It is recognised by type, not by identity.
type blank struct{}

func (blank) DisplayText() string { return "" }
func (blank) Identity() string    { return "\x00blank" }

// IsBlank reports whether it is a padding slot.
func IsBlank(it Item) bool {
	_, ok := it.(blank)
	return ok
}

// Texts converts labels into Text items.
func Texts(labels ...string) []Item {
	items := make([]Item, len(labels))
	for i, l := range labels {
		items[i] = Text(l)
	}
	return items
}
