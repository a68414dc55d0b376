// internal/state/mock.go
package state

// Mock is a test double for Manager.
type Mock struct {
	saved  *PlaylistState
	saves  int
	closed bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) GetPlaylist() (*PlaylistState, error) {
	return m.saved, nil
}

func (m *Mock) SavePlaylist(st PlaylistState) error {
	m.saved = &st
	m.saves++
	return nil
}

func (m *Mock) SavePlaylistDebounced(st PlaylistState) {
	_ = m.SavePlaylist(st)
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Saves returns how many times the playlist was saved.
func (m *Mock) Saves() int { return m.saves }

// IsClosed reports whether Close was called.
func (m *Mock) IsClosed() bool { return m.closed }

var _ Interface = (*Mock)(nil)
