package app

import "time"

// TickMsg is sent every second to refresh the playback clock.
type TickMsg time.Time

// TrackFinishedMsg is sent when the audio backend played a track to its
// end.
type TrackFinishedMsg struct{}

// StderrMsg carries a line captured from fd 2.
type StderrMsg struct {
	Line string
}
