package errmsg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{"nil error returns empty string", OpPlaybackStart, nil, ""},
		{"playback", OpPlaybackStart, errors.New("no audio device"), "Failed to start playback: no audio device"},
		{"import", OpPlaylistImport, errors.New("bad yaml"), "Failed to import track list: bad yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.op, tt.err))
		})
	}
}

func TestFormatWith(t *testing.T) {
	err := errors.New("permission denied")

	assert.Equal(t, "Failed to import track list 'list.yaml': permission denied",
		FormatWith(OpPlaylistImport, "list.yaml", err))
	assert.Equal(t, "Failed to save playlist: permission denied", FormatWith(OpPlaylistSave, "", err))
	assert.Empty(t, FormatWith(OpPlaylistSave, "x", nil))
}
