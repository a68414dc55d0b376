package keymap

import "strconv"

// Binding maps keys to an action, with a description for help.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback" or "playlist"
}

// Bindings contains every key binding of the player.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionStop, []string{"s"}, "Stop", "playback"},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next track", "playback"},
	{ActionPlayMode, []string{"m"}, "Switch play mode", "playback"},

	// Playlist
	{ActionMoveUp, []string{"k", "up"}, "Move up", "playlist"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "playlist"},
	{ActionFirstTrack, []string{"g", "home"}, "First track", "playlist"},
	{ActionLastTrack, []string{"G", "end"}, "Last track", "playlist"},
	{ActionPlayTrack, []string{"enter"}, "Play track", "playlist"},
	{ActionAddTrack, []string{"a"}, "Add track", "playlist"},
	{ActionRemove, []string{"d", "delete"}, "Remove track", "playlist"},
	{ActionRate, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}, "Set rating", "playlist"},
	{ActionRateUp, []string{"+", "="}, "Rating up", "playlist"},
	{ActionRateDown, []string{"-"}, "Rating down", "playlist"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, b := range Bindings {
		if b.Context == context {
			result = append(result, b)
		}
	}
	return result
}

// Digit returns the rating typed with a digit key.
func Digit(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	return n, true
}
