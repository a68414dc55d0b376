// Package audio plays local audio files through the system speaker.
package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// Player is the beep backed implementation of Interface.
type Player struct {
	mu          sync.Mutex
	state       State
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	streamer    beep.StreamSeekCloser
	format      beep.Format
	file        *os.File
	path        string
	generation  int
	finished    chan struct{}
	volumeLevel float64
	muted       bool
}

// resampleQuality is the interpolation quality used when a stream's sample
// rate differs from the speaker's.
const resampleQuality = 4

var speakerOnce struct {
	sync.Mutex
	done bool
	rate beep.SampleRate
}

// New creates a stopped player at full volume.
func New() *Player {
	return &Player{
		state:       Stopped,
		finished:    make(chan struct{}, 1),
		volumeLevel: 1,
	}
}

// Supported reports whether path has an extension the player can decode.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".flac", ".wav":
		return true
	default:
		return false
	}
}

func decode(f *os.File, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext {
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	case ".wav":
		return wav.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported format: %s", ext)
	}
}

// initSpeaker sets the speaker up at the first stream's sample rate and
// returns the rate the speaker runs at.
func initSpeaker(format beep.Format) (beep.SampleRate, error) {
	speakerOnce.Lock()
	defer speakerOnce.Unlock()
	if speakerOnce.done {
		return speakerOnce.rate, nil
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return 0, err
	}
	speakerOnce.done = true
	speakerOnce.rate = format.SampleRate
	return speakerOnce.rate, nil
}

// resample converts s from one sample rate to another. Streams already at
// the target rate are returned as they are.
func resample(s beep.Streamer, from, to beep.SampleRate) beep.Streamer {
	if from == to {
		return s
	}
	return beep.Resample(resampleQuality, from, to, s)
}

// Play stops the current track and starts path.
func (p *Player) Play(path string) error {
	p.Stop()

	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(path) {
		return fmt.Errorf("unsupported format: %s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}

	streamer, format, err := decode(f, ext)
	if err != nil {
		f.Close()
		return err
	}

	rate, err := initSpeaker(format)
	if err != nil {
		streamer.Close()
		f.Close()
		return err
	}

	p.mu.Lock()
	p.file = f
	p.path = path
	p.streamer = streamer
	p.format = format
	p.ctrl = &beep.Ctrl{Streamer: resample(streamer, format.SampleRate, rate)}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2, Silent: p.muted}
	p.volume.Volume = levelToVolume(p.volumeLevel)
	p.state = Playing
	p.generation++
	gen := p.generation
	p.mu.Unlock()

	// the callback runs with the speaker locked, so finish must not block it
	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		go p.finish(gen)
	})))

	return nil
}

// finish runs when a stream ends. Streams replaced by a later Play or
// cleared by Stop are ignored.
func (p *Player) finish(gen int) {
	p.mu.Lock()
	if gen != p.generation {
		p.mu.Unlock()
		return
	}
	p.state = Stopped
	p.mu.Unlock()

	select {
	case p.finished <- struct{}{}:
	default:
	}
}

func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		p.state = Stopped
		return
	}

	p.generation++
	speaker.Clear()

	p.streamer.Close()
	p.streamer = nil
	if p.file != nil {
		p.file.Close()
		p.file = nil
	}

	p.ctrl = nil
	p.volume = nil
	p.path = ""
	p.state = Stopped
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.state.CanPause() || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.state.CanResume() || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = Playing
}

func (p *Player) Toggle() {
	switch p.State() {
	case Playing:
		p.Pause()
	case Paused:
		p.Resume()
	case Stopped:
	}
}

func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Path returns the file being played, or "" when stopped.
func (p *Player) Path() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.format.SampleRate.D(p.streamer.Position())
	speaker.Unlock()
	return pos
}

func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// FinishedChan receives a value each time a track plays to its end.
func (p *Player) FinishedChan() <-chan struct{} {
	return p.finished
}
