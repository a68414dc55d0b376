package db

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE tracks (id INTEGER PRIMARY KEY, url TEXT NOT NULL UNIQUE)`)
	require.NoError(t, err)
	return db
}

func countTracks(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM tracks`).Scan(&n))
	return n
}

func TestOpen_AppliesPragmas(t *testing.T) {
	db := setupTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestWithTx_Commit(t *testing.T) {
	db := setupTestDB(t)

	err := WithTx(db, func(tx *sql.Tx) error {
		for _, url := range []string{"/a.mp3", "/b.mp3"} {
			if _, err := tx.Exec(`INSERT INTO tracks (url) VALUES (?)`, url); err != nil {
				return err
			}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, countTracks(t, db))
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db := setupTestDB(t)
	boom := errors.New("boom")

	err := WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO tracks (url) VALUES (?)`, "/a.mp3"); err != nil {
			return err
		}
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Zero(t, countTracks(t, db))
}

func TestWithTx_ConstraintRollsBackEarlierRows(t *testing.T) {
	db := setupTestDB(t)

	err := WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO tracks (url) VALUES (?)`, "/a.mp3"); err != nil {
			return err
		}
		_, err := tx.Exec(`INSERT INTO tracks (url) VALUES (?)`, "/a.mp3")
		return err
	})

	require.Error(t, err)
	assert.Zero(t, countTracks(t, db))
}

func TestNullStringValue(t *testing.T) {
	assert.Equal(t, "x", NullStringValue(sql.NullString{String: "x", Valid: true}))
	assert.Empty(t, NullStringValue(sql.NullString{String: "x"}))
}
