package state

import (
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"

	dbutil "github.com/llehouerou/tracklet/internal/db"
	"github.com/llehouerou/tracklet/internal/errmsg"
)

const (
	appName      = "tracklet"
	dbFileName   = "tracklet.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *PlaylistState

	// writeMu is held across every write of a pending save, so Flush
	// waits for a timer write already in flight.
	writeMu  sync.Mutex
	write    func(*sql.DB, PlaylistState) error
	debounce time.Duration
}

// Open opens the database in the XDG data dir.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	return OpenAt(dbPath)
}

// OpenAt opens the database at path. ":memory:" gives a private database.
func OpenAt(path string) (*Manager, error) {
	db, err := dbutil.Open(path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db, write: savePlaylist, debounce: saveDebounce}, nil
}

func (m *Manager) Close() error {
	if err := m.Flush(); err != nil {
		m.db.Close()
		return err
	}
	return m.db.Close()
}

// Flush writes a pending debounced save immediately. It returns once no
// debounced write is running.
func (m *Manager) Flush() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveMu.Unlock()
	return m.writePending()
}

func (m *Manager) writePending() error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.saveMu.Lock()
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	if pending == nil {
		return nil
	}
	return m.write(m.db, *pending)
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// GetPlaylist returns the saved playlist, or nil if none was saved.
func (m *Manager) GetPlaylist() (*PlaylistState, error) {
	return getPlaylist(m.db)
}

// SavePlaylist writes st immediately.
func (m *Manager) SavePlaylist(st PlaylistState) error {
	return savePlaylist(m.db, st)
}

// SavePlaylistDebounced schedules a save; bursts of rating changes end up
// as a single write.
func (m *Manager) SavePlaylistDebounced(st PlaylistState) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &st

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(m.debounce, func() {
		if err := m.writePending(); err != nil {
			slog.Warn(errmsg.Format(errmsg.OpPlaylistSave, err))
		}
	})
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
