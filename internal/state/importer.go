package state

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/llehouerou/tracklet/internal/playlist"
)

// ListEntry is one track of an imported track list.
type ListEntry struct {
	URL    string `yaml:"url"`
	Title  string `yaml:"title"`
	Rating *int   `yaml:"rating"`
}

type listFile struct {
	Tracks []ListEntry `yaml:"tracks"`
}

// ParseTrackList decodes a track list. Both a bare list of entries and a
// document with a "tracks" key are accepted, in YAML or JSON. Entries
// without a rating get defaultRating; relative URLs are resolved against
// baseDir.
func ParseTrackList(data []byte, baseDir string, defaultRating int) ([]playlist.Track, error) {
	var entries []ListEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		var doc listFile
		if err2 := yaml.Unmarshal(data, &doc); err2 != nil {
			return nil, fmt.Errorf("parse track list: %w", err)
		}
		entries = doc.Tracks
	}

	tracks := make([]playlist.Track, 0, len(entries))
	for _, e := range entries {
		t := playlist.Track{URL: e.URL, Title: e.Title, Rating: defaultRating}
		if e.Rating != nil {
			t.Rating = *e.Rating
		}
		if t.URL != "" && baseDir != "" && !filepath.IsAbs(t.URL) {
			t.URL = filepath.Join(baseDir, t.URL)
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}

// ImportFile reads a track list file. Relative URLs in the list are taken
// relative to the file.
func ImportFile(path string, defaultRating int) ([]playlist.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTrackList(data, filepath.Dir(path), defaultRating)
}
