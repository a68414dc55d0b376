// Package player is the rated-playlist player built on the class system:
// a track collection, the Player and Playlist controllers, and the views
// they drive (control panel, playlist grid and buttons).
package player

import (
	"errors"

	"github.com/llehouerou/tracklet/internal/class"
	"github.com/llehouerou/tracklet/internal/controller"
	"github.com/llehouerou/tracklet/internal/view"
)

// Class names.
const (
	AppClass               = "app.base.App"
	CollectionClass        = "app.collection.player.Track"
	PlayerClass            = "app.controller.player.Player"
	PlaylistClass          = "app.controller.player.Playlist"
	ButtonClass            = "app.view.Button"
	AddButtonClass         = "app.view.player.AddButton"
	ToggleButtonClass      = "app.view.player.ToggleButton"
	ContainerClass         = "app.view.player.Container"
	ControlPanelClass      = "app.view.player.ControlPanel"
	PlaylistContainerClass = "app.view.player.PlaylistContainer"
	GridClass              = "app.view.player.PlaylistGrid"
)

// View queries used by the controllers, relative to the view namespace.
const (
	QueryControlPanel      = "player.ControlPanel"
	QueryPlaylistContainer = "player.PlaylistContainer"
	QueryGrid              = "player.PlaylistGrid"
	QueryAddButton         = "player.AddButton"
	QueryToggleButton      = "player.ToggleButton"
)

// Config keys.
const (
	ConfigTracks        = "tracks"
	ConfigMinRating     = "minRating"
	ConfigMaxRating     = "maxRating"
	ConfigDefaultRating = "defaultRating"
	ConfigPlayMode      = "playMode"
	ConfigAutoplay      = "autoplay"
	ConfigBackend       = "backend"
	ConfigStore         = "store"
	ConfigPrompt        = "prompt"
	ConfigTitle         = "title"
	ConfigBtnClass      = "btnClass"
	ConfigWidth         = "width"
	ConfigController    = "controller"
)

// Events.
const (
	EventAdd        = "add"
	EventRemove     = "remove"
	EventChange     = "change"
	EventReset      = "reset"
	EventInvalid    = "invalid"
	EventClick      = "click"
	EventSelected   = "selected"
	EventPlay       = "play"
	EventPlayed     = "played"
	EventModeChange = "modechange"
)

// Methods.
const (
	MethodClick      = "click"
	MethodPlay       = "play"
	MethodToggle     = "toggle"
	MethodStop       = "stop"
	MethodEnded      = "ended"
	MethodSetTracks  = "setTracks"
	MethodSelect     = "select"
	MethodSelectNext = "selectNextTrack"
	MethodSwitchMode = "switchPlayMode"
	MethodRowClick   = "rowClick"
	MethodRate       = "rate"
	MethodMoveCursor = "moveCursor"
	MethodAddTrack   = "addTrack"
)

// Register defines every player class in r, registering the controller
// and view base classes first when they are missing.
func Register(r *class.Registry) error {
	var errs []error
	if !r.Has(controller.BaseClass) {
		errs = append(errs, controller.Register(r))
	}
	if !r.Has(view.BaseClass) {
		errs = append(errs, view.Register(r))
	}
	for _, def := range []struct {
		name string
		desc class.Descriptor
	}{
		{AppClass, appDescriptor()},
		{CollectionClass, collectionDescriptor()},
		{PlayerClass, playerDescriptor()},
		{PlaylistClass, playlistDescriptor()},
		{ButtonClass, buttonDescriptor()},
		{AddButtonClass, addButtonDescriptor()},
		{ToggleButtonClass, toggleButtonDescriptor()},
		{ContainerClass, containerDescriptor()},
		{ControlPanelClass, controlPanelDescriptor()},
		{PlaylistContainerClass, playlistContainerDescriptor()},
		{GridClass, gridDescriptor()},
	} {
		if _, err := r.Define(def.name, def.desc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
