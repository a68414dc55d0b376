package player

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/llehouerou/tracklet/internal/class"
	"github.com/llehouerou/tracklet/internal/mixin"
	"github.com/llehouerou/tracklet/internal/playlist"
	"github.com/llehouerou/tracklet/internal/ui/render"
	"github.com/llehouerou/tracklet/internal/ui/styles"
	"github.com/llehouerou/tracklet/internal/view"
)

// Grid columns addressed by row clicks.
const (
	ColNumber = iota
	ColTitle
	ColRemove
	ColRating
)

const (
	privCurRow = "grid.curRow"
	privCursor = "grid.cursor"
	privMode   = "grid.mode"
	privRand   = "grid.rand"
)

func gridDescriptor() class.Descriptor {
	return class.Descriptor{
		Extend: view.BaseClass,
		Mixins: viewMixins(),
		Configs: map[string]any{
			ConfigTracks:   nil,
			ConfigPlayMode: "sequential",
			ConfigWidth:    60,
		},
		Methods: map[string]class.Method{
			mixin.PhaseInitPrivates: func(self *class.Instance, _ ...any) any {
				self.CallParent()
				self.SetPrivate(privCurRow, -1)
				self.SetPrivate(privCursor, 0)
				return nil
			},
			class.MethodInit: func(self *class.Instance, _ ...any) any {
				mode, _ := class.Value[string](self, ConfigPlayMode)
				self.SetPrivate(privMode, playlist.ParseMode(mode))
				out := self.CallParent()
				if coll, ok := GridTracks(self); ok {
					bindTracks(self, coll)
				}
				return out
			},
			MethodSetTracks: func(self *class.Instance, args ...any) any {
				coll, ok := firstArg[*class.Instance](args)
				if !ok || coll == nil {
					return false
				}
				self.Set(ConfigTracks, coll)
				bindTracks(self, coll)
				return true
			},
			MethodSelect: func(self *class.Instance, args ...any) any {
				row, ok := argInt(args, 0)
				if !ok {
					return false
				}
				return selectRow(self, row)
			},
			MethodSelectNext: func(self *class.Instance, args ...any) any {
				cur, ok := argInt(args, 0)
				if !ok {
					cur = CurRow(self)
				}
				coll, ok := GridTracks(self)
				if !ok {
					return false
				}
				next := NextIndex(coll, cur, Mode(self), gridRand(self))
				if next < 0 {
					return false
				}
				return selectRow(self, next)
			},
			MethodSwitchMode: func(self *class.Instance, args ...any) any {
				mode := Mode(self).Next()
				if m, ok := firstArg[playlist.Mode](args); ok {
					mode = m
				}
				self.SetPrivate(privMode, mode)
				self.Trigger(EventModeChange, self, mode)
				rerender(self)
				return mode
			},
			MethodRowClick: func(self *class.Instance, args ...any) any {
				row, ok1 := argInt(args, 0)
				col, ok2 := argInt(args, 1)
				if !ok1 || !ok2 {
					return false
				}
				switch col {
				case ColNumber, ColTitle:
					return selectRow(self, row)
				case ColRemove:
					return removeRow(self, row)
				case ColRating:
					rating, ok := argInt(args, 2)
					coll, has := GridTracks(self)
					if !ok || !has {
						return false
					}
					return SetRating(coll, row, rating)
				default:
					return false
				}
			},
			MethodRate: func(self *class.Instance, args ...any) any {
				row, ok1 := argInt(args, 0)
				rating, ok2 := argInt(args, 1)
				coll, ok3 := GridTracks(self)
				if !ok1 || !ok2 || !ok3 {
					return false
				}
				return SetRating(coll, row, rating)
			},
			MethodMoveCursor: func(self *class.Instance, args ...any) any {
				delta, _ := argInt(args, 0)
				moveCursor(self, delta)
				return Cursor(self)
			},
			view.MethodTemplate: gridTemplate,
		},
	}
}

// bindTracks re-renders the grid whenever the collection changes. The
// bindings are tracked by the grid's observer and dropped on destroy.
func bindTracks(self, coll *class.Instance) {
	for _, ev := range []string{EventAdd, EventRemove, EventChange, EventReset} {
		mixin.Listen(self, coll, ev, func(...any) {
			clampCursor(self)
			rerender(self)
		})
	}
}

func rerender(self *class.Instance) {
	if view.Rendered(self) {
		view.Render(self)
	}
}

func selectRow(self *class.Instance, row int) bool {
	coll, ok := GridTracks(self)
	if !ok {
		return false
	}
	t, ok := TrackAt(coll, row)
	if !ok {
		self.Report(class.KindMisuse, MethodSelect, "row %d is out of range", row)
		return false
	}
	self.SetPrivate(privCurRow, row)
	self.SetPrivate(privCursor, row)
	self.Trigger(EventSelected, self, t)
	rerender(self)
	return true
}

// removeRow keeps curRow on the same track when an earlier row goes away.
// Removing the current row leaves curRow on the row that took its place.
func removeRow(self *class.Instance, row int) bool {
	coll, ok := GridTracks(self)
	if !ok {
		return false
	}
	cur := CurRow(self)
	if !RemoveTrack(coll, row) {
		return false
	}
	switch {
	case cur > row:
		cur--
	case cur == row && cur >= Len(coll):
		cur = Len(coll) - 1
	}
	self.SetPrivate(privCurRow, cur)
	clampCursor(self)
	rerender(self)
	return true
}

func moveCursor(self *class.Instance, delta int) {
	self.SetPrivate(privCursor, Cursor(self)+delta)
	clampCursor(self)
	rerender(self)
}

func clampCursor(self *class.Instance) {
	n := 0
	if coll, ok := GridTracks(self); ok {
		n = Len(coll)
	}
	self.SetPrivate(privCursor, max(0, min(Cursor(self), n-1)))
}

func gridRand(self *class.Instance) playlist.Rand {
	r, _ := class.PrivateValue[playlist.Rand](self, privRand)
	return r
}

func gridTemplate(self *class.Instance, _ ...any) any {
	s := styles.T().S()
	width, _ := class.Value[int](self, ConfigWidth)
	coll, ok := GridTracks(self)
	if !ok || Len(coll) == 0 {
		return s.Subtle.Render("no tracks, press a to add one")
	}

	bounds := Bounds(coll)
	starsWidth := bounds.Max
	titleWidth := max(width-starsWidth-10, 8)
	cur, cursor := CurRow(self), Cursor(self)

	lines := make([]string, 0, Len(coll)+1)
	for i, t := range Tracks(coll) {
		marker := "  "
		if i == cur {
			marker = "▶ "
		}
		num := fmt.Sprintf("%3d", i+1)
		title := render.TruncateAndPad(t.Name(), titleWidth)
		stars := s.Rating.Render(strings.Repeat("★", max(t.Rating, 0))) +
			s.RatingEmpty.Render(strings.Repeat("☆", max(bounds.Max-t.Rating, 0)))
		line := marker + num + " " + title + " " + stars + " ✕"

		switch {
		case i == cursor:
			line = s.Cursor.Render(line)
		case i == cur:
			line = s.Playing.Render(line)
		}
		lines = append(lines, line)
	}

	footer := fmt.Sprintf("%s · rating sum %s · %s",
		english.Plural(Len(coll), "track", ""),
		humanize.Comma(int64(Sum(coll))),
		Mode(self))
	lines = append(lines, s.Muted.Render(footer))
	return strings.Join(lines, "\n")
}

// GridTracks returns the collection shown by a grid.
func GridTracks(grid *class.Instance) (*class.Instance, bool) {
	c, ok := class.Value[*class.Instance](grid, ConfigTracks)
	return c, ok && c != nil
}

// CurRow returns the selected row, -1 before the first selection.
func CurRow(grid *class.Instance) int {
	r, ok := class.PrivateValue[int](grid, privCurRow)
	if !ok {
		return -1
	}
	return r
}

// Cursor returns the highlighted row.
func Cursor(grid *class.Instance) int {
	r, _ := class.PrivateValue[int](grid, privCursor)
	return r
}

// Mode returns the grid's play mode.
func Mode(grid *class.Instance) playlist.Mode {
	m, _ := class.PrivateValue[playlist.Mode](grid, privMode)
	return m
}

// SetRand replaces the random source of rating mode.
func SetRand(grid *class.Instance, rng playlist.Rand) {
	grid.SetPrivate(privRand, rng)
}

// SelectRow selects row and triggers "selected" with its track.
func SelectRow(grid *class.Instance, row int) bool {
	ok, _ := grid.Call(MethodSelect, row).(bool)
	return ok
}

// SelectNextTrack selects the track after the current row.
func SelectNextTrack(grid *class.Instance) bool {
	ok, _ := grid.Call(MethodSelectNext).(bool)
	return ok
}

// SwitchPlayMode cycles the play mode and returns the new one.
func SwitchPlayMode(grid *class.Instance) playlist.Mode {
	m, _ := grid.Call(MethodSwitchMode).(playlist.Mode)
	return m
}

// RowClick handles a click on a grid cell. A click in ColRating takes the
// new rating as extra argument.
func RowClick(grid *class.Instance, row, col int, extra ...any) bool {
	ok, _ := grid.Call(MethodRowClick, append([]any{row, col}, extra...)...).(bool)
	return ok
}

// Rate sets the rating of a row.
func Rate(grid *class.Instance, row, rating int) bool {
	ok, _ := grid.Call(MethodRate, row, rating).(bool)
	return ok
}

// MoveCursor moves the highlighted row by delta.
func MoveCursor(grid *class.Instance, delta int) int {
	c, _ := grid.Call(MethodMoveCursor, delta).(int)
	return c
}
