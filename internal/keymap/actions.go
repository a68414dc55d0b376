// Package keymap defines key bindings and action dispatch for the player.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause Action = "play_pause"
	ActionStop      Action = "stop"
	ActionNextTrack Action = "next_track"
	ActionPlayMode  Action = "play_mode"

	// Playlist actions
	ActionMoveUp     Action = "move_up"
	ActionMoveDown   Action = "move_down"
	ActionFirstTrack Action = "first_track"
	ActionLastTrack  Action = "last_track"
	ActionPlayTrack  Action = "play_track"
	ActionAddTrack   Action = "add_track"
	ActionRemove     Action = "remove_track"
	ActionRate       Action = "rate"
	ActionRateUp     Action = "rate_up"
	ActionRateDown   Action = "rate_down"
)
