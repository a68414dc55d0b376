package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Gamma Ray", "Gamma Ray"},
		{"control chars", "a\x07b\x1bc", "abc"},
		{"tab kept", "a\tb", "a\tb"},
		{"nbsp", "a b", "a b"},
		{"c1 control", "a\x85b", "ab"},
		{"c1 rune", "a\u0085b", "ab"},
		{"invalid utf8", "a\xffb", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "a long...", Truncate("a long title", 9))
	assert.LessOrEqual(t, lipgloss.Width(Truncate("日本語のタイトル", 6)), 6)
}

func TestTruncateAndPad(t *testing.T) {
	assert.Equal(t, "ab   ", TruncateAndPad("ab", 5))
	assert.Equal(t, 8, lipgloss.Width(TruncateAndPad("a very long track name", 8)))
	assert.Equal(t, "abc", Pad("abc", 2))
}

func TestRow(t *testing.T) {
	assert.Equal(t, "left   right", Row("left", "right", 12))
	assert.Equal(t, "left right", Row("left", "right", 3), "gap is at least one space")
}

func TestClip(t *testing.T) {
	styled := "\x1b[1mhello world\x1b[0m\nok"

	out := Clip(styled, 5)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, 5, lipgloss.Width(lines[0]))
	assert.Contains(t, lines[0], "\x1b[1m")
	assert.Equal(t, "ok", lines[1])
	assert.Equal(t, styled, Clip(styled, 0))
}
