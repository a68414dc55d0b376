package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByContext(t *testing.T) {
	tests := []struct {
		context string
		minLen  int
	}{
		{"global", 2},
		{"playback", 4},
		{"playlist", 8},
		{"unknown", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.context, func(t *testing.T) {
			got := ByContext(tt.context)
			assert.GreaterOrEqual(t, len(got), tt.minLen)
			if tt.minLen == 0 {
				assert.Empty(t, got)
			}
			for _, b := range got {
				assert.Equal(t, tt.context, b.Context)
			}
		})
	}
}

func TestBindings_NoKeyBoundTwice(t *testing.T) {
	seen := map[string]Action{}
	for _, b := range Bindings {
		assert.NotEmpty(t, b.Description, "action %s", b.Action)
		for _, key := range b.Keys {
			prev, dup := seen[key]
			assert.False(t, dup, "key %q bound to %s and %s", key, prev, b.Action)
			seen[key] = b.Action
		}
	}
}

func TestDigit(t *testing.T) {
	n, ok := Digit("4")
	assert.True(t, ok)
	assert.Equal(t, 4, n)

	for _, key := range []string{"", "a", "12", "+"} {
		_, ok := Digit(key)
		assert.False(t, ok, "key %q", key)
	}
}
