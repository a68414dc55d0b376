package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tracklet/internal/audio"
)

// TickCmd returns a command that sends TickMsg after 1 second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchTrackFinished waits for the backend to finish a track naturally.
// Manual stops do not signal.
func WatchTrackFinished(backend audio.Interface) tea.Cmd {
	if backend == nil {
		return nil
	}
	ch := backend.FinishedChan()
	return func() tea.Msg {
		<-ch
		return TrackFinishedMsg{}
	}
}

// WatchStderr waits for the next captured stderr line.
func WatchStderr(lines <-chan string) tea.Cmd {
	if lines == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-lines
		if !ok {
			return nil // capture closed
		}
		return StderrMsg{Line: line}
	}
}
