// Package app hosts the player in a Bubble Tea program: it builds the
// class registry and the application instance, maps keys to player
// operations and renders the root view.
package app

import (
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tracklet/internal/audio"
	"github.com/llehouerou/tracklet/internal/class"
	"github.com/llehouerou/tracklet/internal/config"
	"github.com/llehouerou/tracklet/internal/controller"
	"github.com/llehouerou/tracklet/internal/keymap"
	"github.com/llehouerou/tracklet/internal/player"
	"github.com/llehouerou/tracklet/internal/playlist"
	"github.com/llehouerou/tracklet/internal/state"
)

// Options configures New.
type Options struct {
	Player     config.PlayerConfig
	Namespaces config.NamespaceConfig
	Backend    audio.Interface
	Store      state.Interface
	Tracks     []playlist.Track // initial tracks, used when the store holds none
	Logger     *slog.Logger
	Stderr     <-chan string
}

// Model is the root Bubble Tea model.
type Model struct {
	registry *class.Registry
	app      *class.Instance
	player   *class.Instance
	backend  audio.Interface
	prompt   *Prompt
	keys     *keymap.Resolver
	stderr   <-chan string
	logger   *slog.Logger

	showHelp bool
	errorMsg string
	closed   bool
	width    int
	height   int
}

// New registers the player classes, creates the application and runs its
// root controller.
func New(opts Options) (*Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := class.NewRegistry(class.WithLogger(logger))
	if err := player.Register(r); err != nil {
		return nil, err
	}
	r.Freeze()

	// zero values fall back to the configured defaults
	defaults := config.Config{Player: opts.Player, Namespaces: opts.Namespaces}
	opts.Player = defaults.GetPlayerConfig()
	opts.Namespaces = defaults.GetNamespaces()

	m := &Model{
		registry: r,
		backend:  opts.Backend,
		prompt:   NewPrompt(),
		keys:     keymap.Default(),
		stderr:   opts.Stderr,
		logger:   logger,
	}

	app, err := r.Create(player.AppClass, map[string]any{
		controller.ConfigControllerNs: opts.Namespaces.Controller,
		player.ConfigController:       m.playerConfig(opts),
	})
	if err != nil {
		return nil, err
	}
	ctrl, ok := player.AppController(app)
	if !ok {
		return nil, errors.New("application has no player controller")
	}
	m.app, m.player = app, ctrl

	if coll, ok := player.Collection(ctrl); ok {
		coll.On(player.EventInvalid, func(args ...any) {
			if len(args) > 2 {
				if err, ok := args[2].(error); ok {
					m.errorMsg = err.Error()
				}
			}
		})
	}

	if ran, _ := app.Call(controller.MethodRun).(bool); !ran {
		m.Close()
		return nil, errors.New("player controller did not start")
	}
	return m, nil
}

func (m *Model) playerConfig(opts Options) map[string]any {
	pc := opts.Player
	cfg := map[string]any{
		class.EntryClassKey:           "player.Player",
		controller.ConfigControllerNs: opts.Namespaces.Controller,
		controller.ConfigViewNs:       opts.Namespaces.View,
		controller.ConfigCtrlMixinNs:  opts.Namespaces.ControllerMixin,
		player.ConfigBackend:          opts.Backend,
		player.ConfigStore:            opts.Store,
		player.ConfigPrompt:           player.Prompter(m.prompt),
		player.ConfigMinRating:        pc.MinRating,
		player.ConfigMaxRating:        pc.MaxRating,
		player.ConfigDefaultRating:    pc.DefaultRating,
		player.ConfigPlayMode:         pc.PlayMode,
		player.ConfigAutoplay:         pc.Autoplay(),
	}
	if len(opts.Tracks) > 0 {
		cfg[player.ConfigTracks] = opts.Tracks
	}
	return cfg
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(TickCmd(), WatchTrackFinished(m.backend), WatchStderr(m.stderr))
}

// Close destroys the application. The player saves its playlist and the
// control panel stops playback on the way down. Closing twice is a no-op.
func (m *Model) Close() {
	if m.closed || m.app == nil {
		return
	}
	m.closed = true
	m.app.Call(class.MethodDestroy)
}

// Player returns the root controller.
func (m *Model) Player() *class.Instance {
	return m.player
}

// ErrorMsg returns the message shown under the player.
func (m *Model) ErrorMsg() string {
	return m.errorMsg
}

// Prompting reports whether the track prompt is open.
func (m *Model) Prompting() bool {
	return m.prompt.Active()
}
