package state

import (
	"database/sql"
	"errors"

	dbutil "github.com/llehouerou/tracklet/internal/db"
	"github.com/llehouerou/tracklet/internal/playlist"
)

// PlaylistState is the saved playlist with its playback position.
type PlaylistState struct {
	CurrentIndex int
	Mode         playlist.Mode
	Tracks       []playlist.Track
}

func getPlaylist(db *sql.DB) (*PlaylistState, error) {
	st := &PlaylistState{}
	var mode int
	row := db.QueryRow(`SELECT current_index, play_mode FROM player_state WHERE id = 1`)
	err := row.Scan(&st.CurrentIndex, &mode)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil //nolint:nilnil // nothing saved yet
	case err != nil:
		return nil, err
	}
	st.Mode = playlist.Mode(mode)

	rows, err := db.Query(`
		SELECT url, title, rating
		FROM playlist_tracks
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var t playlist.Track
		var title sql.NullString
		if err := rows.Scan(&t.URL, &title, &t.Rating); err != nil {
			return nil, err
		}
		t.Title = dbutil.NullStringValue(title)
		st.Tracks = append(st.Tracks, t)
	}
	return st, rows.Err()
}

func savePlaylist(db *sql.DB, st PlaylistState) error {
	return dbutil.WithTx(db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO player_state (id, current_index, play_mode)
			VALUES (1, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				current_index = excluded.current_index,
				play_mode = excluded.play_mode
		`, st.CurrentIndex, int(st.Mode))
		if err != nil {
			return err
		}

		if _, err := tx.Exec(`DELETE FROM playlist_tracks`); err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO playlist_tracks (position, url, title, rating)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, t := range st.Tracks {
			var title sql.NullString
			if t.Title != "" {
				title = sql.NullString{String: t.Title, Valid: true}
			}
			if _, err := stmt.Exec(i, t.URL, title, t.Rating); err != nil {
				return err
			}
		}
		return nil
	})
}
