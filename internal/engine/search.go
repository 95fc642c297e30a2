package engine

import (
	"github.com/amarchess/amarchess/internal/rules"
)

// Options toggles independent search capabilities. None of them changes the
// value of a search without a transposition table.
type Options struct {
	Transposition bool // cache subtree scores by position hash
	CaptureFirst  bool // search captures before quiet moves
	CountNodes    bool // count visited nodes for diagnostics
}

// DefaultOptions enables every capability.
func DefaultOptions() Options {
	return Options{Transposition: true, CaptureFirst: true, CountNodes: true}
}

// searcher performs one root enumeration at one depth.
// It owns its transposition table and node counter.
type searcher struct {
	opts    Options
	orderer MoveOrderer
	tt      *TranspositionTable
	nodes   uint64
}

func newSearcher(opts Options) *searcher {
	s := &searcher{
		opts:    opts,
		orderer: NewMoveOrderer(opts.CaptureFirst),
	}
	if opts.Transposition {
		s.tt = NewTranspositionTable()
	}
	return s
}

// negamax scores pos for the side to move, searching depth more plies
// within the window (alpha, beta). The result is fail-soft.
func (s *searcher) negamax(pos rules.Position, depth int, alpha, beta Score) Score {
	if s.opts.CountNodes {
		s.nodes++
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		if pos.InCheck() {
			return -(MateScore + Score(depth))
		}
		return Draw
	}
	if depth == 0 {
		return Score(pos.SideToMove().Sign()) * Evaluate(pos)
	}

	best := -Infinity
	for _, m := range s.orderer.Order(pos, moves) {
		score := s.child(pos.Play(m), depth-1, alpha, beta)
		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// child returns the score of a successor from the parent's point of view,
// consulting the transposition table when enabled. Only scores strictly
// inside the child's window are exact, so bound scores are never stored.
func (s *searcher) child(next rules.Position, depth int, alpha, beta Score) Score {
	if s.tt == nil {
		return -s.negamax(next, depth, -beta, -alpha)
	}

	hash := next.Hash()
	if cached, ok := s.tt.Lookup(hash, depth); ok {
		return -cached
	}
	score := s.negamax(next, depth, -beta, -alpha)
	if -beta < score && score < -alpha {
		s.tt.Store(hash, score, depth)
	}
	return -score
}

func (s *searcher) tableSize() int {
	if s.tt == nil {
		return 0
	}
	return s.tt.Len()
}

func (s *searcher) hitRate() float64 {
	if s.tt == nil {
		return 0
	}
	return s.tt.HitRate()
}
