package engine

import (
	"slices"

	"github.com/samber/lo"

	"github.com/amarchess/amarchess/internal/rules"
)

// RankedMove is a root move with the score it received.
type RankedMove struct {
	Move  rules.Move
	Score Score
}

// Ranking holds one depth's root moves, best first.
type Ranking []RankedMove

// Moves returns the ranked moves in order, for seeding the next iteration.
func (r Ranking) Moves() []rules.Move {
	return lo.Map(r, func(rm RankedMove, _ int) rules.Move {
		return rm.Move
	})
}

// Best returns the head of the ranking.
func (r Ranking) Best() (RankedMove, bool) {
	if len(r) == 0 {
		return RankedMove{Move: rules.NoMove, Score: -Infinity}, false
	}
	return r[0], true
}

// SearchRoot scores every candidate in moves at the given depth, in the
// order given, and returns them sorted by descending score. Ties keep the
// input order.
func (e *Engine) SearchRoot(pos rules.Position, depth int, moves []rules.Move) Ranking {
	if depth < 1 || depth > MaxDepth {
		panic(invalidDepth(depth))
	}
	return newSearcher(e.opts).root(pos, depth, moves)
}

func (s *searcher) root(pos rules.Position, depth int, moves []rules.Move) Ranking {
	if s.opts.CountNodes {
		s.nodes++
	}

	// beta stays at +Infinity, which no score reaches, so every candidate
	// is scored and the ranking always covers all of moves.
	ranking := make(Ranking, 0, len(moves))
	alpha := -Infinity
	for _, m := range moves {
		score := s.child(pos.Play(m), depth-1, alpha, Infinity)
		ranking = append(ranking, RankedMove{Move: m, Score: score})
		alpha = max(alpha, score)
	}

	slices.SortStableFunc(ranking, func(a, b RankedMove) int {
		return int(b.Score) - int(a.Score)
	})
	return ranking
}
