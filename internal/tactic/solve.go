package tactic

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/amarchess/amarchess/internal/engine"
	"github.com/amarchess/amarchess/internal/rules"
)

// Outcome is the engine's answer to one puzzle.
type Outcome struct {
	Puzzle Puzzle
	Move   rules.Move
	Score  engine.Score
	Nodes  uint64
	Time   time.Duration
	Solved bool
	Err    error
}

// Report summarizes a suite run. Outcomes keep the suite order.
type Report struct {
	Outcomes []Outcome
	Solved   int
	Failed   int
	Time     time.Duration
}

// Solve searches every puzzle to depth using up to concurrency goroutines
// (GOMAXPROCS when concurrency < 1). Each puzzle is an independent search.
// Puzzles the engine cannot search are reported with Err set.
func Solve(ctx context.Context, eng *engine.Engine, puzzles []Puzzle, depth, concurrency int) (Report, error) {
	if concurrency < 1 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	outcomes := make([]Outcome, len(puzzles))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, p := range puzzles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = solveOne(eng, p, depth)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{Outcomes: outcomes, Time: time.Since(start)}
	for _, o := range outcomes {
		if o.Solved {
			report.Solved++
		} else {
			report.Failed++
		}
	}
	return report, nil
}

func solveOne(eng *engine.Engine, p Puzzle, depth int) Outcome {
	out := Outcome{Puzzle: p}
	if err := engine.CheckRequest(p.Position, depth); err != nil {
		out.Err = err
		log.Warn().Err(err).Str("id", p.ID).Msg("puzzle-skipped")
		return out
	}

	res := eng.Search(p.Position, depth)
	out.Move = res.Move
	out.Score = res.Score
	out.Nodes = res.Nodes
	out.Time = res.Time
	out.Solved = p.Accepts(res.Move)

	log.Debug().
		Str("id", p.ID).
		Str("move", res.Move.String()).
		Bool("solved", out.Solved).
		Uint64("nodes", res.Nodes).
		Msg("puzzle-complete")
	return out
}
