package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// gray stands in for colors that are not "#rrggbb", such as ANSI indexes.
var gray = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// Heading renders a bold title blended from the primary to the secondary
// theme color.
func (t *Theme) Heading(text string) string {
	return Gradient(text, t.Primary, t.Secondary, true)
}

// Gradient colors each grapheme of text along an HCL blend between two
// colors.
func Gradient(text string, from, to lipgloss.Color, bold bool) string {
	var clusters []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}

	base := lipgloss.NewStyle().Bold(bold)
	var b strings.Builder
	for i, hex := range palette(len(clusters), from, to) {
		b.WriteString(base.Foreground(lipgloss.Color(hex)).Render(clusters[i]))
	}
	return b.String()
}

// palette returns n hex colors from one end of the blend to the other.
func palette(n int, from, to lipgloss.Color) []string {
	if n <= 0 {
		return nil
	}
	a, z := toColorful(from), toColorful(to)
	out := make([]string, n)
	for i := range out {
		var f float64
		if n > 1 {
			f = float64(i) / float64(n-1)
		}
		out[i] = a.BlendHcl(z, f).Clamped().Hex()
	}
	return out
}

func toColorful(c lipgloss.Color) colorful.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	return gray
}
