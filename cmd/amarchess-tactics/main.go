package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/rs/zerolog/log"

	"github.com/amarchess/amarchess/internal/engine"
	"github.com/amarchess/amarchess/internal/logging"
	"github.com/amarchess/amarchess/internal/notation"
	"github.com/amarchess/amarchess/internal/tactic"
)

func main() {
	var (
		file        = flag.String("epd", "", "EPD file to solve (default: builtin suite)")
		suite       = flag.String("suite", "basic", "builtin suite name")
		depth       = flag.Int("depth", 6, "search depth in plies (rounded up to even)")
		concurrency = flag.Int("j", 0, "puzzles searched in parallel (0 = GOMAXPROCS)")
		logLevel    = flag.String("log-level", "info", "log level")
		pretty      = flag.Bool("pretty", true, "human-readable logs")
		noTT        = flag.Bool("no-tt", false, "disable the transposition table")
		noOrdering  = flag.Bool("no-ordering", false, "disable capture-first move ordering")
	)
	flag.Parse()

	if err := logging.Setup(*logLevel, *pretty, os.Stderr); err != nil {
		log.Fatal().Err(err).Msg("bad logging flags")
	}

	var puzzles []tactic.Puzzle
	var err error
	if *file != "" {
		puzzles, err = tactic.LoadFile(*file)
	} else {
		puzzles, err = tactic.LoadBuiltin(*suite)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("load puzzles")
	}

	opts := engine.DefaultOptions()
	opts.Transposition = !*noTT
	opts.CaptureFirst = !*noOrdering
	eng := engine.NewEngine(opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().Int("puzzles", len(puzzles)).Int("depth", engine.EvenDepth(*depth)).Msg("tactics-started")
	report, err := tactic.Solve(ctx, eng, puzzles, engine.EvenDepth(*depth), *concurrency)
	if err != nil {
		log.Fatal().Err(err).Msg("solve")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRESULT\tMOVE\tSCORE\tNODES\tTIME")
	for _, o := range report.Outcomes {
		if o.Err != nil {
			fmt.Fprintf(w, "%s\terror\t-\t-\t-\t%v\n", o.Puzzle.ID, o.Err)
			continue
		}
		result := "FAIL"
		if o.Solved {
			result = "ok"
		}
		san, err := notation.FormatSAN(o.Puzzle.Position, o.Move)
		if err != nil {
			san = o.Move.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%v\n", o.Puzzle.ID, result, san,
			engine.ScoreToString(o.Score, engine.EvenDepth(*depth)), o.Nodes, o.Time)
	}
	w.Flush()

	log.Info().
		Int("solved", report.Solved).
		Int("failed", report.Failed).
		Dur("elapsed", report.Time).
		Msg("tactics-finished")
	if report.Failed > 0 {
		os.Exit(1)
	}
}
