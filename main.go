package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tracklet/internal/app"
	"github.com/llehouerou/tracklet/internal/audio"
	"github.com/llehouerou/tracklet/internal/config"
	"github.com/llehouerou/tracklet/internal/errmsg"
	"github.com/llehouerou/tracklet/internal/logging"
	"github.com/llehouerou/tracklet/internal/playlist"
	"github.com/llehouerou/tracklet/internal/state"
	"github.com/llehouerou/tracklet/internal/stderr"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	logFile, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLogOpen, err))
	}
	defer logFile.Close()
	level, format := cfg.GetLogConfig()
	logger := logging.New(level, format, logFile)
	slog.SetDefault(logger)

	// Capture ALSA noise before the speaker is opened
	var stderrLines <-chan string
	if capture, err := stderr.Start(); err != nil {
		logger.Warn("Cannot capture stderr.", "error", err)
	} else {
		defer capture.Close()
		stderrLines = capture.Lines()
	}

	stateMgr, err := state.Open()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpPlaylistLoad, err))
	}
	defer stateMgr.Close()

	pc := cfg.GetPlayerConfig()
	m, err := app.New(app.Options{
		Player:     pc,
		Namespaces: cfg.GetNamespaces(),
		Backend:    audio.New(),
		Store:      stateMgr,
		Tracks:     importTracks(cfg, pc, stateMgr, logger),
		Logger:     logger,
		Stderr:     stderrLines,
	})
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	defer m.Close()

	logger.Info("Player started.", "mode", pc.PlayMode, "min_rating", pc.MinRating, "max_rating", pc.MaxRating)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// importTracks reads the configured track list. It is only used while
// the store holds no saved playlist.
func importTracks(cfg *config.Config, pc config.PlayerConfig, store state.Interface, logger *slog.Logger) []playlist.Track {
	if !cfg.HasTracksFile() {
		return nil
	}
	if saved, err := store.GetPlaylist(); err == nil && saved != nil && len(saved.Tracks) > 0 {
		return nil
	}
	tracks, err := state.ImportFile(cfg.TracksFile, pc.DefaultRating)
	if err != nil {
		logger.Warn(errmsg.FormatWith(errmsg.OpPlaylistImport, cfg.TracksFile, err))
		return nil
	}
	logger.Info("Imported track list.", "path", cfg.TracksFile, "tracks", len(tracks))
	return tracks
}
