// AmarChess - A chess game built with Ebitengine
package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/amarchess/amarchess/internal/engine"
	"github.com/amarchess/amarchess/internal/logging"
	"github.com/amarchess/amarchess/internal/storage"
	"github.com/amarchess/amarchess/internal/ui"
)

var (
	logLevel   = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	pretty     = flag.Bool("pretty", true, "human-readable logs on stderr")
	difficulty = flag.String("difficulty", "", "override the saved difficulty (easy, medium, hard)")
	noStore    = flag.Bool("no-store", false, "do not load or save preferences and statistics")
)

func main() {
	flag.Parse()

	if err := logging.Setup(*logLevel, *pretty, os.Stderr); err != nil {
		log.Fatal().Err(err).Msg("bad logging flags")
	}

	store, prefs := openStore()
	if *difficulty != "" {
		d, err := engine.ParseDifficulty(*difficulty)
		if err != nil {
			log.Fatal().Err(err).Msg("bad difficulty flag")
		}
		prefs.Difficulty = d
	}

	game := ui.NewGame(store, prefs)
	defer func() {
		if err := game.Close(); err != nil {
			log.Error().Err(err).Msg("close-storage")
		}
	}()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("AmarChess")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Error().Err(err).Msg("run-game")
	}
}

// openStore opens the preference store, falling back to defaults without
// persistence when it is unavailable.
func openStore() (*storage.Storage, *storage.UserPreferences) {
	if *noStore {
		return nil, storage.DefaultPreferences()
	}

	store, err := storage.NewStorage()
	if err != nil {
		log.Warn().Err(err).Msg("storage unavailable, preferences will not be saved")
		return nil, storage.DefaultPreferences()
	}

	first, err := store.IsFirstLaunch()
	if err != nil {
		log.Warn().Err(err).Msg("first-launch")
	}
	if first {
		prefs := storage.DefaultPreferences()
		if err := store.SavePreferences(prefs); err != nil {
			log.Warn().Err(err).Msg("save-preferences")
		}
		if err := store.MarkFirstLaunchComplete(); err != nil {
			log.Warn().Err(err).Msg("first-launch")
		}
		return store, prefs
	}

	prefs, err := store.LoadPreferences()
	if err != nil {
		log.Warn().Err(err).Msg("load-preferences")
		prefs = storage.DefaultPreferences()
	}
	return store, prefs
}
