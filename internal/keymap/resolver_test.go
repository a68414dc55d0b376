package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
		{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
		{ActionMoveUp, []string{"k", "up"}, "Move up", "playlist"},
	})

	assert.Equal(t, ActionQuit, r.Resolve("q"))
	assert.Equal(t, ActionQuit, r.Resolve("ctrl+c"))
	assert.Equal(t, ActionPlayPause, r.Resolve(" "))
	assert.Equal(t, ActionMoveUp, r.Resolve("up"))
	assert.Equal(t, Action(""), r.Resolve("x"))
}

func TestResolver_KeysFor(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionRemove, []string{"d", "delete"}, "Remove", "playlist"},
		{ActionRemove, []string{"d"}, "Remove", "other"},
	})

	assert.Equal(t, []string{"d", "delete"}, r.KeysFor(ActionRemove))
	assert.Nil(t, r.KeysFor(ActionQuit))
}

func TestDefault_ResolvesRatingDigits(t *testing.T) {
	r := Default()
	for _, key := range []string{"1", "5", "9"} {
		assert.Equal(t, ActionRate, r.Resolve(key))
	}
	assert.Equal(t, ActionPlayTrack, r.Resolve("enter"))
}
