// Package render provides text helpers for the terminal views.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const (
	ellipsis = "..."
	nbsp     = '\u00a0'
)

// Sanitize drops control characters other than tab and bytes that are not
// valid UTF-8. Non-breaking spaces become plain spaces. Tag metadata is
// the usual source of such bytes.
func Sanitize(s string) string {
	if utf8.ValidString(s) && strings.IndexFunc(s, unprintable) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == nbsp:
			return ' '
		case r == utf8.RuneError, unprintable(r):
			return -1
		}
		return r
	}, s)
}

func unprintable(r rune) bool {
	return r == nbsp || (r != '\t' && unicode.IsControl(r))
}

// Truncate sanitizes s and cuts it to width cells, ending with an ellipsis
// when something was cut.
func Truncate(s string, width int) string {
	return runewidth.Truncate(Sanitize(s), width, ellipsis)
}

// Pad right-fills s with spaces up to width cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// TruncateAndPad returns s in exactly width cells.
func TruncateAndPad(s string, width int) string {
	return Pad(Truncate(s, width), width)
}

// Row puts left and right at the two ends of a width-cell line, with at
// least one space between them.
func Row(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	return left + strings.Repeat(" ", max(gap, 1)) + right
}

// Clip cuts every line of styled output to width cells. Escape sequences
// are kept intact. A non-positive width leaves s unchanged.
func Clip(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if ansi.StringWidth(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	return strings.Join(lines, "\n")
}
