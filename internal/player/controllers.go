package player

import (
	"strings"

	"github.com/llehouerou/tracklet/internal/class"
	"github.com/llehouerou/tracklet/internal/controller"
	"github.com/llehouerou/tracklet/internal/errmsg"
	"github.com/llehouerou/tracklet/internal/mixin"
	"github.com/llehouerou/tracklet/internal/playlist"
	"github.com/llehouerou/tracklet/internal/state"
	"github.com/llehouerou/tracklet/internal/view"
)

// Prompter asks the user for a value. done runs with the answer; it is not
// called when the prompt is cancelled.
type Prompter interface {
	Prompt(label string, done func(value string))
}

// PromptFunc adapts a function to Prompter.
type PromptFunc func(label string, done func(value string))

func (f PromptFunc) Prompt(label string, done func(value string)) { f(label, done) }

const privOwnsTracks = "player.ownsTracks"

// playerOptions are the scalar configs of a Player controller.
type playerOptions struct {
	MinRating     int    `config:"minRating"`
	MaxRating     int    `config:"maxRating"`
	DefaultRating int    `config:"defaultRating"`
	PlayMode      string `config:"playMode"`
	Autoplay      bool   `config:"autoplay"`
	Width         int    `config:"width"`
}

// options decodes the scalar configs. Values that cannot be decoded are
// reported and the defaults are used.
func options(self *class.Instance) playerOptions {
	opts := playerOptions{
		MinRating:     playlist.DefaultBounds.Min,
		MaxRating:     playlist.DefaultBounds.Max,
		DefaultRating: playlist.DefaultBounds.Min,
		PlayMode:      playlist.Sequential.Key(),
		Autoplay:      true,
		Width:         60,
	}
	if err := self.Decode(&opts); err != nil {
		self.Report(class.KindConfig, class.MethodInit, "invalid player config: %v", err)
	}
	return opts
}

func ctrlMixins() []class.MixinBinding {
	return []class.MixinBinding{
		{Key: controller.CtrlKey, Class: controller.ControllerMixin},
		{Key: controller.ViewKey, Class: controller.ViewMixin},
	}
}

func playerDescriptor() class.Descriptor {
	return class.Descriptor{
		Extend: controller.BaseClass,
		Mixins: ctrlMixins(),
		Configs: map[string]any{
			controller.ConfigControllers: []any{"player.Playlist"},
			controller.ConfigView:        "player.Container",
			controller.ConfigNoView:      false,
			ConfigTracks:                 nil,
			ConfigBackend:                nil,
			ConfigStore:                  nil,
			ConfigPrompt:                 nil,
			ConfigMinRating:              playlist.DefaultBounds.Min,
			ConfigMaxRating:              playlist.DefaultBounds.Max,
			ConfigDefaultRating:          playlist.DefaultBounds.Min,
			ConfigPlayMode:               "sequential",
			ConfigAutoplay:               true,
			ConfigWidth:                  60,
		},
		Methods: map[string]class.Method{
			controller.HookInit:          playerOnInit,
			controller.HookAfterInit:     playerOnAfterInit,
			controller.HookBeforeRun:     playerOnBeforeRun,
			controller.HookRun:           playerOnRun,
			controller.HookAfterRun:      playerOnAfterRun,
			controller.HookStop:          playerOnStop,
			controller.HookBeforeDestroy: playerOnBeforeDestroy,
			controller.HookDestroy:       playerOnDestroy,
		},
	}
}

// playerOnInit creates the track collection unless one was passed in and
// restores the saved playlist from the store.
func playerOnInit(self *class.Instance, _ ...any) any {
	if _, ok := Collection(self); !ok {
		opts := options(self)
		cfg := map[string]any{ConfigMinRating: opts.MinRating, ConfigMaxRating: opts.MaxRating}
		if tracks, ok := class.Value[[]playlist.Track](self, ConfigTracks); ok {
			cfg[ConfigTracks] = tracks
		}
		coll, err := self.Registry().Create(CollectionClass, cfg)
		if err != nil {
			self.Report(class.KindConfig, class.MethodInit, "cannot create track collection: %v", err)
			return nil
		}
		self.Set(ConfigTracks, coll)
		self.SetPrivate(privOwnsTracks, true)
	}
	restore(self)
	return nil
}

func restore(self *class.Instance) {
	store, ok := class.Value[state.Interface](self, ConfigStore)
	if !ok || store == nil {
		return
	}
	coll, _ := Collection(self)
	saved, err := store.GetPlaylist()
	if err != nil {
		self.Logger().Warn(errmsg.Format(errmsg.OpPlaylistLoad, err))
		return
	}
	if saved == nil {
		return
	}
	if Len(coll) == 0 {
		Reset(coll, saved.Tracks)
	}
	self.Set(ConfigPlayMode, saved.Mode.Key())
	self.SetPrivate(privCurRow, saved.CurrentIndex)
}

// playerOnAfterInit hands the collection and the playlist container to the
// nested Playlist controller and configures the grid and control panel.
func playerOnAfterInit(self *class.Instance, _ ...any) any {
	coll, ok := Collection(self)
	if !ok {
		return nil
	}
	opts := options(self)

	if pc, ok := controller.FindController(self, "player.Playlist"); ok {
		pc.Set(ConfigTracks, coll)
		pc.Set(ConfigDefaultRating, opts.DefaultRating)
		pc.Set(ConfigPrompt, self.Get(ConfigPrompt))
		if v, ok := controller.RequireView(self, QueryPlaylistContainer); ok {
			pc.Set(controller.ConfigView, v)
		}
	}

	if grid, ok := controller.RequireView(self, QueryGrid); ok {
		grid.Call(MethodSetTracks, coll)
		grid.SetPrivate(privMode, playlist.ParseMode(opts.PlayMode))
		grid.Set(ConfigWidth, opts.Width)
		if row, ok := class.PrivateValue[int](self, privCurRow); ok && row < Len(coll) {
			grid.SetPrivate(privCurRow, row)
			grid.SetPrivate(privCursor, max(row, 0))
		}
	}

	if panel, ok := controller.RequireView(self, QueryControlPanel); ok {
		panel.Set(ConfigBackend, self.Get(ConfigBackend))
		panel.Set(ConfigWidth, opts.Width)
	}
	return nil
}

// playerOnBeforeRun wires the views together. The bindings are tracked by
// the player's observer, so stop drops them and the next run binds again.
func playerOnBeforeRun(self *class.Instance, _ ...any) any {
	grid, okGrid := controller.RequireView(self, QueryGrid)
	panel, okPanel := controller.RequireView(self, QueryControlPanel)
	toggle, okToggle := controller.RequireView(self, QueryToggleButton)
	if !okGrid || !okPanel || !okToggle {
		return controller.Abort
	}

	mixin.Listen(self, toggle, EventClick, func(...any) {
		grid.Call(MethodSwitchMode)
	})
	mixin.Listen(self, grid, EventSelected, func(args ...any) {
		t, ok := trackArg(args, 1)
		if !ok {
			return
		}
		Play(panel, t.URL)
	})
	mixin.Listen(self, panel, EventPlayed, func(...any) {
		if options(self).Autoplay {
			grid.Call(MethodSelectNext, CurRow(grid))
		}
	})

	save := func(...any) { saveState(self) }
	if coll, ok := Collection(self); ok {
		for _, ev := range []string{EventAdd, EventRemove, EventChange} {
			mixin.Listen(self, coll, ev, save)
		}
	}
	mixin.Listen(self, grid, EventSelected, save)
	mixin.Listen(self, grid, EventModeChange, save)
	return nil
}

func playerOnRun(self *class.Instance, _ ...any) any {
	self.CallParent()
	controller.RunControllers(self)
	return nil
}

func playerOnAfterRun(self *class.Instance, _ ...any) any {
	if v, ok := controller.View(self); ok {
		view.Render(v)
	}
	return nil
}

func playerOnStop(self *class.Instance, _ ...any) any {
	self.CallParent()
	for _, c := range controller.Children(self) {
		if controller.StateOf(c) == controller.StateRunning {
			controller.Stop(c)
		}
	}
	return nil
}

// playerOnBeforeDestroy saves while the grid still holds the current row.
func playerOnBeforeDestroy(self *class.Instance, _ ...any) any {
	saveState(self)
	return nil
}

// playerOnDestroy runs after the nested controllers and the view are gone.
func playerOnDestroy(self *class.Instance, _ ...any) any {
	coll, ok := Collection(self)
	if !ok {
		return nil
	}
	if owns, _ := class.PrivateValue[bool](self, privOwnsTracks); owns {
		coll.Call(class.MethodDestroy)
	}
	self.Set(ConfigTracks, nil)
	return nil
}

func saveState(self *class.Instance) {
	store, ok := class.Value[state.Interface](self, ConfigStore)
	if !ok || store == nil {
		return
	}
	coll, ok := Collection(self)
	if !ok {
		return
	}
	st := state.PlaylistState{CurrentIndex: -1, Tracks: Tracks(coll)}
	if grid, ok := controller.FindView(self, QueryGrid, false); ok {
		st.CurrentIndex = CurRow(grid)
		st.Mode = Mode(grid)
	} else {
		st.Mode = playlist.ParseMode(options(self).PlayMode)
	}
	store.SavePlaylistDebounced(st)
}

func trackArg(args []any, i int) (playlist.Track, bool) {
	if i >= len(args) {
		return playlist.Track{}, false
	}
	return argTrack(args[i:])
}

// Collection returns the track collection of a Player or Playlist
// controller.
func Collection(ctrl *class.Instance) (*class.Instance, bool) {
	c, ok := class.Value[*class.Instance](ctrl, ConfigTracks)
	return c, ok && c != nil
}

func playlistDescriptor() class.Descriptor {
	return class.Descriptor{
		Extend: controller.BaseClass,
		Mixins: []class.MixinBinding{{Key: controller.ViewKey, Class: controller.ViewMixin}},
		Configs: map[string]any{
			ConfigTracks:        nil,
			ConfigDefaultRating: playlist.DefaultBounds.Min,
			ConfigPrompt:        nil,
		},
		Methods: map[string]class.Method{
			controller.HookBeforeRun: func(self *class.Instance, _ ...any) any {
				btn, ok := controller.RequireView(self, QueryAddButton)
				if !ok {
					return nil
				}
				mixin.Listen(self, btn, EventClick, func(...any) { promptTrack(self) })
				return nil
			},
			MethodAddTrack: func(self *class.Instance, args ...any) any {
				url, _ := firstArg[string](args)
				return addFromURL(self, url)
			},
		},
	}
}

func promptTrack(self *class.Instance) {
	p, ok := class.Value[Prompter](self, ConfigPrompt)
	if !ok || p == nil {
		self.Report(class.KindConfig, "prompt", "playlist controller %q has no prompt", self.ClassName())
		return
	}
	p.Prompt("Track file", func(url string) {
		addFromURL(self, url)
	})
}

// addFromURL adds a local file with the default rating. Empty answers are
// ignored.
func addFromURL(self *class.Instance, url string) int {
	url = strings.TrimSpace(url)
	coll, ok := Collection(self)
	if url == "" || !ok {
		return -1
	}
	rating, _ := class.Value[int](self, ConfigDefaultRating)
	return AddTrack(coll, playlist.FromPath(url, rating))
}

// AddURL adds a track through a Playlist controller.
func AddURL(ctrl *class.Instance, url string) int {
	idx, ok := ctrl.Call(MethodAddTrack, url).(int)
	if !ok {
		return -1
	}
	return idx
}

func appDescriptor() class.Descriptor {
	return class.Descriptor{
		Mixins: mixin.Bindings(),
		Configs: map[string]any{
			ConfigController:              "player.Player",
			controller.ConfigControllerNs: controller.DefaultControllerNs,
		},
		Methods: map[string]class.Method{
			class.MethodInit: func(self *class.Instance, _ ...any) any {
				if !mixin.Init(self) {
					return false
				}
				self.CallMixin(mixin.ObserverKey, class.MethodInit)
				suffix, cfg, ok := class.ParseEntry(self.Get(ConfigController))
				if !ok {
					self.Report(class.KindConfig, class.MethodInit, "invalid controller %v", self.Get(ConfigController))
					return false
				}
				ns, _ := class.Value[string](self, controller.ConfigControllerNs)
				ctrl, err := self.Registry().Create(class.Join(ns, suffix), cfg)
				if err != nil {
					self.Report(class.KindConfig, class.MethodInit, "cannot create controller %q: %v", suffix, err)
					return false
				}
				self.Set(ConfigController, ctrl)
				return true
			},
			controller.MethodRun: func(self *class.Instance, _ ...any) any {
				ctrl, ok := AppController(self)
				if !ok {
					return false
				}
				ok = controller.Run(ctrl)
				self.Trigger(controller.EventRun, self)
				return ok
			},
			class.MethodDestroy: func(self *class.Instance, _ ...any) any {
				if ctrl, ok := AppController(self); ok {
					controller.Destroy(ctrl)
				}
				self.Set(ConfigController, nil)
				mixin.Teardown(self)
				return true
			},
		},
	}
}

// AppController returns the root controller created by the application.
func AppController(app *class.Instance) (*class.Instance, bool) {
	c, ok := class.Value[*class.Instance](app, ConfigController)
	return c, ok && c != nil
}

// RootView returns the view of the application's root controller.
func RootView(app *class.Instance) (*class.Instance, bool) {
	ctrl, ok := AppController(app)
	if !ok {
		return nil, false
	}
	return controller.View(ctrl)
}
