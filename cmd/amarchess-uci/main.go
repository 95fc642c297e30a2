package main

import (
	"flag"
	"os"
	"runtime/pprof"

	"github.com/rs/zerolog/log"

	"github.com/amarchess/amarchess/internal/engine"
	"github.com/amarchess/amarchess/internal/logging"
	"github.com/amarchess/amarchess/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	depth      = flag.Int("depth", uci.DefaultDepth, "default search depth in plies")
	logLevel   = flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	pretty     = flag.Bool("pretty", false, "human-readable logs on stderr")
	noTT       = flag.Bool("no-tt", false, "disable the transposition table")
	noOrdering = flag.Bool("no-ordering", false, "disable capture-first move ordering")
)

func main() {
	flag.Parse()

	if err := logging.Setup(*logLevel, *pretty, os.Stderr); err != nil {
		log.Fatal().Err(err).Msg("bad logging flags")
	}

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("path", profilePath).Msg("cpu-profiling")
	}

	opts := engine.DefaultOptions()
	opts.Transposition = !*noTT
	opts.CaptureFirst = !*noOrdering
	eng := engine.NewEngine(opts)

	// Create and run UCI protocol handler
	protocol := uci.New(eng, os.Stdin, os.Stdout)
	protocol.SetDepth(*depth)
	if err := protocol.Run(); err != nil {
		log.Error().Err(err).Msg("uci-input")
	}
}
