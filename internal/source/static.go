package source

import (
	"context"
	"fmt"

	"github.com/google/shlex"

	"github.com/runger/itempicker/internal/picker"
)

// Static serves a fixed list.
type Static struct {
	items []picker.Item
}

var _ Provider = (*Static)(nil)

// NewStatic creates a provider over items.
func NewStatic(items []picker.Item) *Static {
	return &Static{items: items}
}

// Fetch returns the fixed items.
func (s *Static) Fetch(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	return Response{RequestID: req.RequestID, Items: s.items}, nil
}

// Words splits a shell-quoted string into labels, so
// `Jan Feb "Late Mar"` yields three.
func Words(s string) ([]string, error) {
	words, err := shlex.Split(s)
	if err != nil {
		return nil, fmt.Errorf("split words: %w", err)
	}
	for i, w := range words {
		words[i] = Clean(w)
	}
	return words, nil
}

// Range serves integers from Start to End inclusive in steps of Step.
type Range struct {
	Start, End, Step int
}

var _ Provider = Range{}

// Fetch generates the range.
func (r Range) Fetch(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	step := r.Step
	if step == 0 {
		step = 1
		if r.Start > r.End {
			step = -1
		}
	}
	items, err := picker.NumberRangeStep(r.Start, r.End, step)
	if err != nil {
		return Response{}, fmt.Errorf("range provider: %w", err)
	}
	return Response{RequestID: req.RequestID, Items: items}, nil
}
