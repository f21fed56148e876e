package picker

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	got []string
}

func (r *recorder) record(it Item) { r.got = append(r.got, it.Identity()) }

func TestSelector_Scenarios(t *testing.T) {
	tests := []struct {
		name         string
		offset       int
		visibleIndex int
		want         string
	}{
		{"leading blank settles on first", 0, 0, "one"},
		{"first", 0, 1, "one"},
		{"second", 0, 2, "two"},
		{"third", 0, 3, "three"},
		{"scrolled off leading blank", 1, 0, "one"},
		{"trailing blank settles on last", 1, 3, "three"},
		{"large offset", 5, 2, "three"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := NewSelector(threeItems(), "")
			require.NoError(t, err)
			it, _ := sel.OnScroll(tt.visibleIndex, tt.offset)
			assert.Equal(t, tt.want, it.Identity())
			assert.Equal(t, tt.want, sel.Selected().Identity())
		})
	}
}

func TestSelector_EmptyItems(t *testing.T) {
	_, err := NewSelector(nil, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSelector_InitialSelection(t *testing.T) {
	sel, err := NewSelector(threeItems(), "three")
	require.NoError(t, err)
	assert.Equal(t, 3, sel.InitialIndex())
	assert.Equal(t, "three", sel.Selected().Identity())

	sel, err = NewSelector(threeItems(), "missing")
	require.NoError(t, err)
	assert.Equal(t, 1, sel.InitialIndex())
	assert.Equal(t, "one", sel.Selected().Identity())
}

func TestSelector_DistinctUntilChanged(t *testing.T) {
	rec := &recorder{}
	sel, err := NewSelector(threeItems(), "", WithOnChange(rec.record))
	require.NoError(t, err)

	// Three frames resolving to "one", then one to "two".
	sel.OnScroll(1, 0)
	sel.OnScroll(0, 1)
	sel.OnScroll(0, 0)
	_, changed := sel.OnScroll(2, 0)

	assert.True(t, changed)
	assert.Equal(t, []string{"two"}, rec.got)
}

func TestSelector_NotifiesInOrder(t *testing.T) {
	rec := &recorder{}
	sel, err := NewSelector(threeItems(), "", WithOnChange(rec.record))
	require.NoError(t, err)

	frames := [][2]int{{1, 0}, {1, 2}, {2, 0}, {2, 3}, {3, 0}, {2, 1}, {2, 0}, {1, 0}}
	for _, f := range frames {
		sel.OnScroll(f[0], f[1])
	}
	assert.Equal(t, []string{"two", "three", "two", "one"}, rec.got)
}

func TestSelector_DedupIsByIdentity(t *testing.T) {
	items := []Item{
		Keyed{Label: "Willamette Valley", Key: "wv"},
		Keyed{Label: "Willamette Valley", Key: "wv2"},
		Keyed{Label: "Delhi", Key: "dl"},
	}
	rec := &recorder{}
	sel, err := NewSelector(items, "wv", WithOnChange(rec.record))
	require.NoError(t, err)

	sel.OnScroll(2, 0)
	assert.Equal(t, []string{"wv2"}, rec.got, "same label, different identity must notify")
}

func TestSelector_SetItems(t *testing.T) {
	rec := &recorder{}
	sel, err := NewSelector(threeItems(), "two", WithOnChange(rec.record))
	require.NoError(t, err)
	gen := sel.Generation()

	require.NoError(t, sel.SetItems(Texts("a", "b"), "b"))
	assert.NotEqual(t, gen, sel.Generation())
	assert.Equal(t, 2, sel.InitialIndex())
	assert.Equal(t, "b", sel.Selected().Identity())
	assert.Empty(t, rec.got, "rebuilding does not notify")

	sel.OnScroll(1, 0)
	assert.Equal(t, []string{"a"}, rec.got)
}

func TestSelector_SetItemsFailureKeepsState(t *testing.T) {
	sel, err := NewSelector(threeItems(), "two")
	require.NoError(t, err)
	gen := sel.Generation()

	err = sel.SetItems(nil, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, gen, sel.Generation())
	assert.Equal(t, "two", sel.Selected().Identity())
	assert.Equal(t, 3, sel.Sequence().Count())
}

func TestSelector_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	sel, err := NewSelector(threeItems(), "", WithLogger(logger))
	require.NoError(t, err)
	sel.OnScroll(3, 0)

	out := buf.String()
	assert.Contains(t, out, "picker items replaced")
	assert.Contains(t, out, "picker selection changed")
	assert.Contains(t, out, "identity=three")
}
