package player

import "github.com/llehouerou/tracklet/internal/playlist"

func firstArg[T any](args []any) (T, bool) {
	var zero T
	if len(args) == 0 {
		return zero, false
	}
	v, ok := args[0].(T)
	return v, ok
}

func argInt(args []any, i int) (int, bool) {
	if i >= len(args) {
		return 0, false
	}
	v, ok := args[i].(int)
	return v, ok
}

func argTrack(args []any) (playlist.Track, bool) {
	if len(args) == 0 {
		return playlist.Track{}, false
	}
	switch t := args[0].(type) {
	case playlist.Track:
		return t, true
	case *playlist.Track:
		if t != nil {
			return *t, true
		}
	}
	return playlist.Track{}, false
}
