// Command tracklist checks a YAML or JSON track list and optionally
// replaces the saved playlist with it.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/llehouerou/tracklet/internal/config"
	"github.com/llehouerou/tracklet/internal/playlist"
	"github.com/llehouerou/tracklet/internal/state"
)

func main() {
	save := flag.Bool("save", false, "replace the saved playlist with the list")
	dbPath := flag.String("db", "", "state database (default: XDG data dir)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: tracklist [-save] [-db path] <file>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	pc := cfg.GetPlayerConfig()
	bounds := playlist.Bounds{Min: pc.MinRating, Max: pc.MaxRating}

	tracks, err := state.ImportFile(flag.Arg(0), pc.DefaultRating)
	if err != nil {
		log.Fatalf("Failed to read track list: %v", err)
	}

	pl, problems := build(tracks, bounds)
	for _, p := range problems {
		log.Printf("  %s: %v", p.track.Name(), p.err)
	}
	report(os.Stdout, pl)

	if !*save {
		return
	}
	var mgr *state.Manager
	if *dbPath != "" {
		mgr, err = state.OpenAt(*dbPath)
	} else {
		mgr, err = state.Open()
	}
	if err != nil {
		log.Fatalf("Failed to open state: %v", err)
	}
	defer mgr.Close()

	mode := playlist.ParseMode(pc.PlayMode)
	if err := mgr.SavePlaylist(state.PlaylistState{CurrentIndex: -1, Mode: mode, Tracks: pl.Tracks()}); err != nil {
		log.Printf("Failed to save playlist: %v", err)
		return
	}
	log.Printf("Saved playlist to the state database")
}

// problem is a track the playlist did not take as given.
type problem struct {
	track playlist.Track
	err   error
}

// build adds tracks to a playlist bounded by b. Out-of-range ratings are
// clamped and tracks without a URL are dropped; both are returned as
// problems.
func build(tracks []playlist.Track, b playlist.Bounds) (*playlist.Playlist, []problem) {
	pl := playlist.NewPlaylist(b)
	var problems []problem
	for _, t := range tracks {
		if _, err := pl.Add(t); err != nil {
			problems = append(problems, problem{track: t, err: err})
		}
	}
	return pl, problems
}

func report(w io.Writer, pl *playlist.Playlist) {
	for i, t := range pl.Tracks() {
		fmt.Fprintf(w, "%3d  %d  %s\n", i+1, t.Rating, t.Name())
	}
	fmt.Fprintf(w, "%s, rating sum %s\n", english.Plural(pl.Len(), "track", ""), humanize.Comma(int64(pl.Sum())))
}
