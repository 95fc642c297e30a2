// Package engine selects moves with an iteratively deepened negamax search.
package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/amarchess/amarchess/internal/rules"
)

// SearchInfo contains information about one completed iteration.
type SearchInfo struct {
	Depth     int
	Score     Score
	Nodes     uint64
	Time      time.Duration
	Best      rules.Move
	TableSize int     // Positions cached by this iteration's transposition table
	HitRate   float64 // Percentage of table probes answered by a stored score
}

// Result is the outcome of a full search.
type Result struct {
	Move       rules.Move
	Score      Score
	Depth      int
	Nodes      uint64
	Time       time.Duration
	Ranking    Ranking
	Iterations []SearchInfo
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // 2 ply
	Medium                   // 4 ply
	Hard                     // 6 ply
)

// DifficultyDepths maps difficulty to search depth in plies.
var DifficultyDepths = map[Difficulty]int{
	Easy:   2,
	Medium: 4,
	Hard:   6,
}

// Depth returns the search depth for d, falling back to Medium.
func (d Difficulty) Depth() int {
	if depth, ok := DifficultyDepths[d]; ok {
		return depth
	}
	return DifficultyDepths[Medium]
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// ParseDifficulty parses the names printed by Difficulty.String.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(s) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}

// Engine is the chess AI engine. It keeps no state between searches, so one
// Engine may serve concurrent searches as long as its options and callback
// are not changed while they run.
type Engine struct {
	opts Options

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates a new chess engine.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Options returns the engine's search capabilities.
func (e *Engine) Options() Options {
	return e.opts
}

// SetOptions replaces the engine's search capabilities.
func (e *Engine) SetOptions(opts Options) {
	e.opts = opts
}

// SelectMove returns the best move for the side to move in pos.
// It panics if depth is not a positive even number or pos has no legal moves.
func (e *Engine) SelectMove(pos rules.Position, depth int) rules.Move {
	return e.Search(pos, depth).Move
}

// Search runs iterative deepening from depth 2 to depth in steps of two.
// Each iteration is seeded with the previous iteration's ranking.
// It panics under the same conditions as SelectMove.
func (e *Engine) Search(pos rules.Position, depth int) Result {
	if err := CheckRequest(pos, depth); err != nil {
		panic(err)
	}

	startTime := time.Now()
	res := Result{}
	moves := pos.LegalMoves()
	if e.opts.CaptureFirst {
		moves = CapturesFirst(pos, moves)
	}

	for d := 2; d <= depth; d += 2 {
		s := newSearcher(e.opts)
		ranking := s.root(pos, d, moves)
		best, _ := ranking.Best()
		moves = ranking.Moves()

		res.Ranking = ranking
		res.Move = best.Move
		res.Score = best.Score
		res.Depth = d
		res.Nodes += s.nodes

		info := SearchInfo{
			Depth:     d,
			Score:     best.Score,
			Nodes:     res.Nodes,
			Time:      time.Since(startTime),
			Best:      best.Move,
			TableSize: s.tableSize(),
			HitRate:   s.hitRate(),
		}
		res.Iterations = append(res.Iterations, info)

		log.Debug().
			Int("depth", d).
			Str("best", best.Move.String()).
			Int32("score", int32(best.Score)).
			Uint64("nodes", info.Nodes).
			Int("tt-size", info.TableSize).
			Float64("tt-hit-rate", info.HitRate).
			Dur("elapsed", info.Time).
			Msg("iteration-complete")

		if e.OnInfo != nil {
			e.OnInfo(info)
		}
	}

	res.Time = time.Since(startTime)
	log.Debug().
		Str("fen", pos.FEN()).
		Str("best", res.Move.String()).
		Int32("score", int32(res.Score)).
		Uint64("nodes", res.Nodes).
		Dur("elapsed", res.Time).
		Msg("search-complete")
	return res
}

// Evaluate returns the static evaluation of pos from the side to move's view.
func (e *Engine) Evaluate(pos rules.Position) Score {
	return Score(pos.SideToMove().Sign()) * Evaluate(pos)
}
