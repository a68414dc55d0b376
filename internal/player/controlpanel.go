package player

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/llehouerou/tracklet/internal/audio"
	"github.com/llehouerou/tracklet/internal/class"
	"github.com/llehouerou/tracklet/internal/errmsg"
	"github.com/llehouerou/tracklet/internal/ui/render"
	"github.com/llehouerou/tracklet/internal/ui/styles"
	"github.com/llehouerou/tracklet/internal/view"
)

const (
	privPlaying = "panel.url"
	privStatus  = "panel.status"
)

func controlPanelDescriptor() class.Descriptor {
	return class.Descriptor{
		Extend: view.BaseClass,
		Mixins: viewMixins(),
		Configs: map[string]any{
			ConfigBackend: nil,
			ConfigWidth:   60,
		},
		Methods: map[string]class.Method{
			MethodPlay: func(self *class.Instance, args ...any) any {
				url, _ := firstArg[string](args)
				return playURL(self, url)
			},
			MethodToggle: func(self *class.Instance, _ ...any) any {
				if b, ok := Backend(self); ok {
					b.Toggle()
				}
				return nil
			},
			MethodStop: func(self *class.Instance, _ ...any) any {
				if b, ok := Backend(self); ok {
					b.Stop()
				}
				self.SetPrivate(privPlaying, "")
				return nil
			},
			MethodEnded: func(self *class.Instance, _ ...any) any {
				url := Playing(self)
				if url == "" {
					return false
				}
				self.Trigger(EventPlayed, self, url)
				return true
			},
			class.MethodDestroy: func(self *class.Instance, _ ...any) any {
				if b, ok := Backend(self); ok {
					b.Stop()
				}
				return self.CallParent()
			},
			view.MethodTemplate: panelTemplate,
		},
	}
}

// playURL validates url and hands it to the audio backend. The "play"
// event fires only when playback started.
func playURL(self *class.Instance, url string) bool {
	url = strings.TrimSpace(url)
	if url == "" {
		self.SetPrivate(privStatus, "no track url given")
		self.Report(class.KindMisuse, MethodPlay, "play() needs a track url")
		return false
	}
	b, ok := Backend(self)
	if !ok {
		self.Report(class.KindConfig, MethodPlay, "control panel %q has no audio backend", self.ClassName())
		return false
	}
	if err := b.Play(url); err != nil {
		self.SetPrivate(privStatus, errmsg.Format(errmsg.OpPlaybackStart, err))
		self.SetPrivate(privPlaying, "")
		self.Logger().Warn("Playback failed.", "url", url, "error", err)
		return false
	}
	self.SetPrivate(privPlaying, url)
	self.SetPrivate(privStatus, "")
	self.Trigger(EventPlay, self, url)
	return true
}

func panelTemplate(self *class.Instance, _ ...any) any {
	s := styles.T().S()
	width, _ := class.Value[int](self, ConfigWidth)

	if status, _ := class.PrivateValue[string](self, privStatus); status != "" {
		return s.Error.Render(render.Truncate(status, width))
	}
	url := Playing(self)
	if url == "" {
		return s.Muted.Render("■ nothing playing")
	}

	icon := "▶"
	var pos, dur time.Duration
	if b, ok := Backend(self); ok {
		if b.State() == audio.Paused {
			icon = "⏸"
		}
		pos, dur = b.Position(), b.Duration()
	}
	clock := fmt.Sprintf("%s / %s", formatDuration(pos), formatDuration(dur))
	name := render.Truncate(filepath.Base(url), max(width-lenRunes(clock)-3, 1))
	return render.Row(s.Playing.Render(icon+" "+name), s.Muted.Render(clock), width)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func lenRunes(s string) int {
	return len([]rune(s))
}

// Backend returns the audio backend of a control panel.
func Backend(panel *class.Instance) (audio.Interface, bool) {
	b, ok := class.Value[audio.Interface](panel, ConfigBackend)
	return b, ok && b != nil
}

// Playing returns the url the control panel last started.
func Playing(panel *class.Instance) string {
	url, _ := class.PrivateValue[string](panel, privPlaying)
	return url
}

// Status returns the last playback error shown by the panel.
func Status(panel *class.Instance) string {
	s, _ := class.PrivateValue[string](panel, privStatus)
	return s
}

// Play starts url on the control panel.
func Play(panel *class.Instance, url string) bool {
	ok, _ := panel.Call(MethodPlay, url).(bool)
	return ok
}

// Toggle pauses or resumes the panel's track.
func Toggle(panel *class.Instance) {
	panel.Call(MethodToggle)
}

// StopPlayback stops the panel's track and forgets it.
func StopPlayback(panel *class.Instance) {
	panel.Call(MethodStop)
}

// TrackEnded tells the control panel its track played to the end. It
// triggers "played" with the finished url.
func TrackEnded(panel *class.Instance) bool {
	ok, _ := panel.Call(MethodEnded).(bool)
	return ok
}
