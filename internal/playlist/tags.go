package playlist

import (
	"os"

	"github.com/dhowden/tag"
)

// ReadTitle returns the title tag of a local audio file, or "" when the
// file has no readable tags.
func ReadTitle(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return ""
	}
	return m.Title()
}

// FromPath builds a track for a local file, filling the title from its
// tags.
func FromPath(path string, rating int) Track {
	return Track{
		URL:    path,
		Title:  ReadTitle(path),
		Rating: rating,
	}
}
