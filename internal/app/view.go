package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tracklet/internal/keymap"
	"github.com/llehouerou/tracklet/internal/player"
	"github.com/llehouerou/tracklet/internal/ui/render"
	"github.com/llehouerou/tracklet/internal/ui/styles"
	"github.com/llehouerou/tracklet/internal/view"
)

// View implements tea.Model.
func (m *Model) View() string {
	root, ok := player.RootView(m.app)
	if !ok || m.closed {
		return ""
	}
	s := styles.T().S()

	parts := []string{view.Output(root)}
	if p := m.prompt.View(); p != "" {
		parts = append(parts, p)
	}
	if m.errorMsg != "" {
		parts = append(parts, s.Error.Render(m.errorMsg))
	}
	if m.showHelp {
		parts = append(parts, m.helpView())
	} else {
		parts = append(parts, s.Subtle.Render("? help · q quit"))
	}
	return render.Clip(lipgloss.JoinVertical(lipgloss.Left, parts...), m.width)
}

func (m *Model) helpView() string {
	s := styles.T().S()
	var lines []string
	for _, context := range []string{"playback", "playlist", "global"} {
		lines = append(lines, s.Title.Render(context))
		for _, b := range keymap.ByContext(context) {
			keys := strings.Join(displayKeys(m.keys.KeysFor(b.Action)), "/")
			lines = append(lines, "  "+s.Muted.Render(render.Pad(keys, 14))+" "+b.Description)
		}
	}
	return strings.Join(lines, "\n")
}

func displayKeys(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		out[i] = k
	}
	return out
}
