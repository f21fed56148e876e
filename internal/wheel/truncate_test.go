package wheel

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "hello", 5, "hello"},
		{"cut", "hello world", 6, "hello…"},
		{"width one", "hello", 1, "h"},
		{"zero", "hello", 0, ""},
		{"wide runes", "日本語テキスト", 5, "日本…"},
		{"empty", "", 3, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.width)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, runewidth.StringWidth(got), max(tt.width, 0))
		})
	}
}

func TestMiddleTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "short", 10, "short"},
		{"odd split", "abcdefghijkl", 8, "abcd…jkl"},
		{"even split", "abcdefghijkl", 7, "abc…jkl"},
		{"too narrow", "abcdef", 2, "ab"},
		{"zero", "abcdef", 0, ""},
		{"wide runes", "日本語のテキスト", 7, "日…ト"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MiddleTruncate(tt.in, tt.width)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, runewidth.StringWidth(got), max(tt.width, 0))
		})
	}
}
