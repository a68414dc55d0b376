package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Stopped, "Stopped"},
		{Playing, "Playing"},
		{Paused, "Paused"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.String())
		})
	}
}

func TestState_Predicates(t *testing.T) {
	assert.False(t, Stopped.IsActive())
	assert.True(t, Paused.IsActive())
	assert.True(t, Playing.CanPause())
	assert.False(t, Paused.CanPause())
	assert.True(t, Paused.CanResume())
	assert.False(t, Stopped.CanResume())
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("/m/a.MP3"))
	assert.True(t, Supported("b.flac"))
	assert.True(t, Supported("c.wav"))
	assert.False(t, Supported("d.ogg"))
	assert.False(t, Supported("noext"))
}

func TestPlayer_PlayRejectsBadFiles(t *testing.T) {
	p := New()

	err := p.Play("/tmp/track.ogg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")

	err = p.Play(filepath.Join(t.TempDir(), "missing.mp3"))
	require.ErrorIs(t, err, os.ErrNotExist)

	garbage := filepath.Join(t.TempDir(), "garbage.wav")
	require.NoError(t, os.WriteFile(garbage, []byte("definitely not riff"), 0o600))
	require.Error(t, p.Play(garbage))

	assert.Equal(t, Stopped, p.State())
	assert.Empty(t, p.Path())
	assert.Zero(t, p.Duration())
	assert.Zero(t, p.Position())
}

func TestPlayer_ControlsWhileStopped(t *testing.T) {
	p := New()

	p.Pause()
	p.Resume()
	p.Toggle()
	p.Stop()

	assert.Equal(t, Stopped, p.State())
}

func TestPlayer_Volume(t *testing.T) {
	p := New()
	assert.InDelta(t, 1.0, p.Volume(), 1e-9)

	p.SetVolume(2)
	assert.InDelta(t, 1.0, p.Volume(), 1e-9)
	p.SetVolume(-1)
	assert.InDelta(t, 0.0, p.Volume(), 1e-9)

	p.SetMuted(true)
	assert.True(t, p.Muted())
}

func TestLevelToVolume(t *testing.T) {
	assert.InDelta(t, 0.0, levelToVolume(1), 1e-9)
	assert.InDelta(t, -1.0, levelToVolume(0.5), 1e-9)
	assert.InDelta(t, -2.0, levelToVolume(0.25), 1e-9)
	assert.InDelta(t, -10.0, levelToVolume(0), 1e-9)
	assert.False(t, math.IsNaN(levelToVolume(-3)))
}

func TestResample(t *testing.T) {
	src := &beep.Ctrl{Streamer: beep.Silence(100)}

	assert.Same(t, src, resample(src, 44100, 44100))

	out := resample(src, 48000, 44100)
	r, ok := out.(*beep.Resampler)
	require.True(t, ok)
	assert.InDelta(t, 48000.0/44100.0, r.Ratio(), 1e-9)
}

func TestMock(t *testing.T) {
	m := NewMock()

	require.NoError(t, m.Play("/a.mp3"))
	assert.Equal(t, Playing, m.State())
	assert.Equal(t, "/a.mp3", m.Path())

	m.Toggle()
	assert.Equal(t, Paused, m.State())
	m.Toggle()
	assert.Equal(t, Playing, m.State())

	m.SimulateFinished()
	assert.Equal(t, Stopped, m.State())
	select {
	case <-m.FinishedChan():
	default:
		t.Fatal("FinishedChan did not receive")
	}

	m.SetPlayError(errors.New("boom"))
	require.Error(t, m.Play("/b.mp3"))
	assert.Equal(t, []string{"/a.mp3", "/b.mp3"}, m.PlayCalls())
}
