package playlist

import "math/rand/v2"

// Mode selects how the next track is chosen.
type Mode int

const (
	Sequential Mode = iota
	ByRating
)

func (m Mode) String() string {
	switch m {
	case Sequential:
		return "Sequential"
	case ByRating:
		return "Rating"
	default:
		return "Unknown"
	}
}

// Key returns the config value of m, the inverse of ParseMode.
func (m Mode) Key() string {
	if m == ByRating {
		return "rating"
	}
	return "sequential"
}

// Next returns the mode that follows m.
func (m Mode) Next() Mode {
	if m == ByRating {
		return Sequential
	}
	return ByRating
}

// ParseMode maps a config value to a Mode. Unknown values are sequential.
func ParseMode(s string) Mode {
	if s == "rating" {
		return ByRating
	}
	return Sequential
}

// Rand is the source of randomness for rating mode.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// NextIndex returns the index of the track to play after cur, or -1 if
// the playlist is empty.
//
// Sequential mode wraps around at the end. Rating mode picks any track
// other than cur with a probability proportional to its rating; a single
// track is picked again. rng may be nil.
func (p *Playlist) NextIndex(cur int, mode Mode, rng Rand) int {
	n := len(p.tracks)
	switch {
	case n == 0:
		return -1
	case n == 1:
		return 0
	}
	if cur < 0 || cur >= n {
		cur = -1
	}
	if mode != ByRating {
		return (cur + 1) % n
	}

	total := p.sum
	if cur >= 0 {
		total -= p.tracks[cur].Rating
	}
	if total <= 0 {
		return (cur + 1) % n
	}
	if rng == nil {
		rng = globalRand{}
	}

	pick := rng.IntN(total) + 1
	for i, t := range p.tracks {
		if i == cur {
			continue
		}
		pick -= t.Rating
		if pick <= 0 {
			return i
		}
	}
	return (cur + 1) % n
}
