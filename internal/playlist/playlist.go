package playlist

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrEmptyURL is returned when a track has no location.
var ErrEmptyURL = errors.New("track url is empty")

// Bounds is the inclusive rating range of a playlist.
type Bounds struct {
	Min int
	Max int
}

// DefaultBounds is used when no player config is available.
var DefaultBounds = Bounds{Min: 1, Max: 5}

// Clamp returns r limited to the bounds.
func (b Bounds) Clamp(r int) int {
	return max(b.Min, min(r, b.Max))
}

// RatingError reports a rating outside the allowed range. Rating holds the
// clamped value that was stored instead.
type RatingError struct {
	Given  int
	Rating int
	Bounds Bounds
}

func (e *RatingError) Error() string {
	return fmt.Sprintf("rating %d is out of range [%d, %d], using %d",
		e.Given, e.Bounds.Min, e.Bounds.Max, e.Rating)
}

// Track represents a single rated track in a playlist.
type Track struct {
	URL    string // local file path
	Title  string // empty means the file name is shown
	Rating int
}

// Name returns the title, or the base name of the URL when untitled.
func (t Track) Name() string {
	if t.Title != "" {
		return t.Title
	}
	return filepath.Base(t.URL)
}

// Validate clamps the rating into b. A clamped rating yields a
// *RatingError, an empty URL yields ErrEmptyURL.
func (t *Track) Validate(b Bounds) error {
	var errs []error
	if strings.TrimSpace(t.URL) == "" {
		errs = append(errs, ErrEmptyURL)
	}
	if r := b.Clamp(t.Rating); r != t.Rating {
		errs = append(errs, &RatingError{Given: t.Rating, Rating: r, Bounds: b})
		t.Rating = r
	}
	return errors.Join(errs...)
}

// Playlist holds an ordered collection of rated tracks and keeps the sum
// of their ratings.
type Playlist struct {
	bounds Bounds
	tracks []Track
	sum    int
}

// NewPlaylist creates a new empty playlist.
func NewPlaylist(b Bounds) *Playlist {
	if b.Max <= b.Min {
		b = DefaultBounds
	}
	return &Playlist{
		bounds: b,
		tracks: make([]Track, 0),
	}
}

// Bounds returns the rating range of the playlist.
func (p *Playlist) Bounds() Bounds {
	return p.bounds
}

// Add validates and appends a track. Tracks without a URL are rejected;
// out-of-range ratings are clamped and reported through the returned error
// while the track is still added.
func (p *Playlist) Add(t Track) (int, error) {
	err := t.Validate(p.bounds)
	if errors.Is(err, ErrEmptyURL) {
		return -1, err
	}
	p.tracks = append(p.tracks, t)
	p.sum += t.Rating
	return len(p.tracks) - 1, err
}

// Remove removes the track at the given index.
// Returns false if index is out of bounds.
func (p *Playlist) Remove(index int) (Track, bool) {
	if index < 0 || index >= len(p.tracks) {
		return Track{}, false
	}
	t := p.tracks[index]
	p.tracks = append(p.tracks[:index], p.tracks[index+1:]...)
	p.sum = max(p.sum-t.Rating, 0)
	return t, true
}

// SetRating changes the rating of the track at index. The stored value is
// clamped as in Add.
func (p *Playlist) SetRating(index, rating int) (Track, error) {
	if index < 0 || index >= len(p.tracks) {
		return Track{}, fmt.Errorf("track index %d out of range", index)
	}
	t := &p.tracks[index]
	old := t.Rating
	t.Rating = rating
	err := t.Validate(p.bounds)
	p.sum = max(p.sum-old+t.Rating, 0)
	return *t, err
}

// Clear removes all tracks from the playlist.
func (p *Playlist) Clear() {
	p.tracks = p.tracks[:0]
	p.sum = 0
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []Track {
	result := make([]Track, len(p.tracks))
	copy(result, p.tracks)
	return result
}

// Track returns the track at the given index, or nil if out of bounds.
func (p *Playlist) Track(index int) *Track {
	if index < 0 || index >= len(p.tracks) {
		return nil
	}
	return &p.tracks[index]
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// Sum returns the sum of all ratings. It is never negative.
func (p *Playlist) Sum() int {
	return p.sum
}
