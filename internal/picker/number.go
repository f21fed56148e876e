package picker

import (
	"fmt"
	"strconv"
)

// NumberRange returns start..end inclusive, counting down when start > end.
func NumberRange(start, end int) []Item {
	step := 1
	if start > end {
		step = -1
	}
	items, _ := NumberRangeStep(start, end, step)
	return items
}

// NumberRangeStep returns start, start+step, ... up to and including end when
// it is reached exactly. A step pointing away from end yields no items.
func NumberRangeStep(start, end, step int) ([]Item, error) {
	if step == 0 {
		return nil, fmt.Errorf("%w: step must not be zero", ErrInvalidInput)
	}
	// The loops stop before v+step would pass end, so ranges ending near
	// math.MaxInt or math.MinInt never wrap.
	var items []Item
	if step > 0 {
		for v := start; v <= end; v += step {
			items = append(items, Number(v))
			if v > end-step {
				break
			}
		}
	} else {
		for v := start; v >= end; v += step {
			items = append(items, Number(v))
			if v < end-step {
				break
			}
		}
	}
	return items, nil
}

// NumberSelector is a Selector over integers. It adds no behaviour of its
// own beyond converting between ints and items.
type NumberSelector struct {
	*Selector
}

// NewNumberSelector builds a selector over values resting on initial (or on
// the first value when initial is not among them). onChange may be nil.
func NewNumberSelector(values []Item, initial int, onChange func(int), opts ...Option) (*NumberSelector, error) {
	if onChange != nil {
		opts = append(opts, WithOnChange(IntChange(onChange)))
	}
	sel, err := NewSelector(values, strconv.Itoa(initial), opts...)
	if err != nil {
		return nil, err
	}
	return &NumberSelector{Selector: sel}, nil
}

// IntChange adapts fn to the item change callback of a Selector. Items whose
// text is not an integer are skipped.
func IntChange(fn func(int)) func(Item) {
	return func(it Item) {
		if v, err := strconv.Atoi(it.DisplayText()); err == nil {
			fn(v)
		}
	}
}

// Value is the selected integer.
func (n *NumberSelector) Value() int {
	v, _ := strconv.Atoi(n.Selected().DisplayText())
	return v
}
