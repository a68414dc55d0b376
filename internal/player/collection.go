package player

import (
	"errors"

	"github.com/llehouerou/tracklet/internal/class"
	"github.com/llehouerou/tracklet/internal/mixin"
	"github.com/llehouerou/tracklet/internal/playlist"
)

const (
	privList = "tracks.list"
	privSum  = "tracks.sum"
)

func collectionDescriptor() class.Descriptor {
	return class.Descriptor{
		Mixins: mixin.Bindings(),
		Configs: map[string]any{
			ConfigMinRating: playlist.DefaultBounds.Min,
			ConfigMaxRating: playlist.DefaultBounds.Max,
			ConfigTracks:    nil,
		},
		Methods: map[string]class.Method{
			mixin.PhaseInitPrivates: func(self *class.Instance, _ ...any) any {
				self.SetPrivate(privSum, 0)
				return nil
			},
			class.MethodInit: collectionInit,
			"add": func(self *class.Instance, args ...any) any {
				t, ok := argTrack(args)
				if !ok {
					self.Report(class.KindMisuse, "add", "add() expects a playlist.Track")
					return -1
				}
				return addTrack(self, t)
			},
			"remove": func(self *class.Instance, args ...any) any {
				idx, ok := argInt(args, 0)
				if !ok {
					return false
				}
				t, ok := list(self).Remove(idx)
				if ok {
					self.Trigger(EventRemove, self, t, idx)
				}
				return ok
			},
			"setRating": func(self *class.Instance, args ...any) any {
				idx, ok1 := argInt(args, 0)
				rating, ok2 := argInt(args, 1)
				if !ok1 || !ok2 {
					return false
				}
				return setRating(self, idx, rating)
			},
			"reset": func(self *class.Instance, args ...any) any {
				tracks, _ := firstArg[[]playlist.Track](args)
				resetTracks(self, tracks)
				return nil
			},
			class.MethodDestroy: func(self *class.Instance, _ ...any) any {
				mixin.Teardown(self)
				return nil
			},
		},
	}
}

func collectionInit(self *class.Instance, _ ...any) any {
	if !mixin.Init(self) {
		return false
	}
	self.CallMixin(mixin.ObserverKey, class.MethodInit)

	minR, _ := class.Value[int](self, ConfigMinRating)
	maxR, _ := class.Value[int](self, ConfigMaxRating)
	self.SetPrivate(privList, playlist.NewPlaylist(playlist.Bounds{Min: minR, Max: maxR}))

	for _, ev := range []string{EventAdd, EventRemove, EventChange, EventReset} {
		mixin.Listen(self, self, ev, func(...any) { recomputeSum(self) })
	}

	if tracks, ok := class.Value[[]playlist.Track](self, ConfigTracks); ok {
		resetTracks(self, tracks)
	}
	self.Set(ConfigTracks, nil)
	return true
}

func list(self *class.Instance) *playlist.Playlist {
	p, _ := class.PrivateValue[*playlist.Playlist](self, privList)
	if p == nil {
		p = playlist.NewPlaylist(playlist.DefaultBounds)
		self.SetPrivate(privList, p)
	}
	return p
}

// recomputeSum walks the tracks; negative totals are stored as 0.
func recomputeSum(self *class.Instance) {
	sum := 0
	for _, t := range list(self).Tracks() {
		sum += t.Rating
	}
	self.SetPrivate(privSum, max(sum, 0))
}

func addTrack(self *class.Instance, t playlist.Track) int {
	idx, err := list(self).Add(t)
	if err != nil {
		self.Trigger(EventInvalid, self, t, err)
		self.Report(class.KindConfig, "add", "track %q: %v", t.URL, err)
	}
	if idx < 0 {
		return -1
	}
	self.Trigger(EventAdd, self, *list(self).Track(idx), idx)
	return idx
}

func setRating(self *class.Instance, idx, rating int) bool {
	t, err := list(self).SetRating(idx, rating)
	var re *playlist.RatingError
	switch {
	case errors.As(err, &re):
		self.Trigger(EventInvalid, self, t, err)
		self.Report(class.KindConfig, "setRating", "track %q: %v", t.URL, err)
	case err != nil:
		self.Report(class.KindMisuse, "setRating", "%v", err)
		return false
	}
	self.Trigger(EventChange, self, t, idx)
	return true
}

func resetTracks(self *class.Instance, tracks []playlist.Track) {
	p := list(self)
	p.Clear()
	for _, t := range tracks {
		if _, err := p.Add(t); err != nil {
			self.Report(class.KindConfig, "reset", "track %q: %v", t.URL, err)
		}
	}
	self.Trigger(EventReset, self)
}

// Tracks returns a copy of the collection's tracks.
func Tracks(coll *class.Instance) []playlist.Track {
	return list(coll).Tracks()
}

// TrackAt returns the track at index.
func TrackAt(coll *class.Instance, index int) (playlist.Track, bool) {
	t := list(coll).Track(index)
	if t == nil {
		return playlist.Track{}, false
	}
	return *t, true
}

// Len returns the number of tracks in the collection.
func Len(coll *class.Instance) int {
	return list(coll).Len()
}

// Sum returns the rating sum maintained by the collection's own
// add/remove/change listeners.
func Sum(coll *class.Instance) int {
	s, _ := class.PrivateValue[int](coll, privSum)
	return s
}

// Bounds returns the rating bounds of the collection.
func Bounds(coll *class.Instance) playlist.Bounds {
	return list(coll).Bounds()
}

// NextIndex picks the track to play after cur.
func NextIndex(coll *class.Instance, cur int, mode playlist.Mode, rng playlist.Rand) int {
	return list(coll).NextIndex(cur, mode, rng)
}

// AddTrack appends t and returns its index, or -1 when it was rejected.
func AddTrack(coll *class.Instance, t playlist.Track) int {
	idx, _ := coll.Call("add", t).(int)
	return idx
}

// RemoveTrack removes the track at index.
func RemoveTrack(coll *class.Instance, index int) bool {
	ok, _ := coll.Call("remove", index).(bool)
	return ok
}

// SetRating changes the rating of the track at index.
func SetRating(coll *class.Instance, index, rating int) bool {
	ok, _ := coll.Call("setRating", index, rating).(bool)
	return ok
}

// Reset replaces every track of the collection.
func Reset(coll *class.Instance, tracks []playlist.Track) {
	coll.Call("reset", tracks)
}
