// internal/state/interface.go
package state

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	GetPlaylist() (*PlaylistState, error)
	SavePlaylist(st PlaylistState) error
	SavePlaylistDebounced(st PlaylistState)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
