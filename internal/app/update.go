package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tracklet/internal/class"
	"github.com/llehouerou/tracklet/internal/controller"
	"github.com/llehouerou/tracklet/internal/keymap"
	"github.com/llehouerou/tracklet/internal/player"
	"github.com/llehouerou/tracklet/internal/view"
)

const minWidth = 30

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.render()
		return m, TickCmd()

	case TrackFinishedMsg:
		if panel, ok := m.find(player.QueryControlPanel); ok {
			player.TrackEnded(panel)
		}
		m.render()
		return m, WatchTrackFinished(m.backend)

	case StderrMsg:
		m.logger.Warn("Audio library output.", "line", msg.Line)
		m.errorMsg = msg.Line
		return m, WatchStderr(m.stderr)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt.Active() {
		cmd := m.prompt.Update(msg)
		m.render()
		return m, cmd
	}

	key := msg.String()
	action := m.keys.Resolve(key)
	if action == "" {
		return m, nil
	}
	m.errorMsg = ""

	switch action {
	case keymap.ActionQuit:
		m.Close()
		return m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
	case keymap.ActionPlayPause:
		m.playPause()
	case keymap.ActionStop:
		m.withView(player.QueryControlPanel, player.StopPlayback)
	case keymap.ActionNextTrack:
		m.withView(player.QueryGrid, func(grid *class.Instance) { player.SelectNextTrack(grid) })
	case keymap.ActionPlayMode:
		m.withView(player.QueryToggleButton, func(btn *class.Instance) { player.Click(btn) })
	case keymap.ActionAddTrack:
		m.withView(player.QueryAddButton, func(btn *class.Instance) { player.Click(btn) })
	default:
		m.withView(player.QueryGrid, func(grid *class.Instance) { m.gridAction(grid, action, key) })
	}

	m.render()
	return m, nil
}

// gridAction runs the cursor-relative playlist actions.
func (m *Model) gridAction(grid *class.Instance, action keymap.Action, key string) {
	coll, ok := player.GridTracks(grid)
	if !ok {
		return
	}
	cur := player.Cursor(grid)
	switch action {
	case keymap.ActionMoveUp:
		player.MoveCursor(grid, -1)
	case keymap.ActionMoveDown:
		player.MoveCursor(grid, 1)
	case keymap.ActionFirstTrack:
		player.MoveCursor(grid, -player.Len(coll))
	case keymap.ActionLastTrack:
		player.MoveCursor(grid, player.Len(coll))
	case keymap.ActionPlayTrack:
		player.SelectRow(grid, cur)
	case keymap.ActionRemove:
		player.RowClick(grid, cur, player.ColRemove)
	case keymap.ActionRate:
		if n, ok := keymap.Digit(key); ok {
			player.Rate(grid, cur, n)
		}
	case keymap.ActionRateUp, keymap.ActionRateDown:
		t, ok := player.TrackAt(coll, cur)
		if !ok {
			return
		}
		step := 1
		if action == keymap.ActionRateDown {
			step = -1
		}
		b := player.Bounds(coll)
		if r := t.Rating + step; r >= b.Min && r <= b.Max {
			player.Rate(grid, cur, r)
		}
	}
}

// playPause toggles the running track, or starts the cursor row when
// nothing plays.
func (m *Model) playPause() {
	panel, ok := m.find(player.QueryControlPanel)
	if !ok {
		return
	}
	if player.Playing(panel) != "" {
		player.Toggle(panel)
		return
	}
	m.withView(player.QueryGrid, func(grid *class.Instance) {
		player.SelectRow(grid, player.Cursor(grid))
	})
}

func (m *Model) resize() {
	width := max(m.width-4, minWidth)
	for _, q := range []string{player.QueryGrid, player.QueryControlPanel} {
		if v, ok := m.find(q); ok {
			v.Set(player.ConfigWidth, width)
		}
	}
	m.render()
}

func (m *Model) render() {
	if root, ok := controller.View(m.player); ok && !view.Destroyed(root) {
		view.Render(root)
	}
}

func (m *Model) find(query string) (*class.Instance, bool) {
	if m.closed {
		return nil, false
	}
	return controller.FindView(m.player, query, false)
}

func (m *Model) withView(query string, fn func(*class.Instance)) {
	if v, ok := m.find(query); ok {
		fn(v)
	}
}
