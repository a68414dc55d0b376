// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants, grouped by domain.
const (
	// Playlist operations
	OpPlaylistLoad   Op = "load saved playlist"
	OpPlaylistSave   Op = "save playlist"
	OpPlaylistImport Op = "import track list"

	// Playback operations
	OpPlaybackStart Op = "start playback"

	// Initialization
	OpInitialize Op = "initialize application"
	OpConfigLoad Op = "load config"
	OpLogOpen    Op = "open log file"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message naming the file or item involved.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
