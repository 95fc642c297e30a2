package engine

import (
	"github.com/amarchess/amarchess/internal/rules"
)

// MoveOrderer arranges moves to maximize alpha-beta cutoffs.
type MoveOrderer struct {
	captureFirst bool
}

// NewMoveOrderer creates a new move orderer.
func NewMoveOrderer(captureFirst bool) MoveOrderer {
	return MoveOrderer{captureFirst: captureFirst}
}

// Order returns the moves of pos in search order.
// Without capture-first ordering the oracle order is kept.
func (mo MoveOrderer) Order(pos rules.Position, moves []rules.Move) []rules.Move {
	if !mo.captureFirst {
		return moves
	}
	return CapturesFirst(pos, moves)
}

// CapturesFirst partitions moves into two passes: moves landing on a square
// held by an opponent piece, then all others. Relative order within each pass
// is preserved. En passant is not treated as a capture since its destination
// square is empty.
func CapturesFirst(pos rules.Position, moves []rules.Move) []rules.Move {
	ordered := make([]rules.Move, 0, len(moves))
	for _, m := range moves {
		if pos.IsCapture(m) {
			ordered = append(ordered, m)
		}
	}
	for _, m := range moves {
		if !pos.IsCapture(m) {
			ordered = append(ordered, m)
		}
	}
	return ordered
}
