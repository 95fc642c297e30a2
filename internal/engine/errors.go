package engine

import (
	"errors"
	"fmt"

	"github.com/amarchess/amarchess/internal/rules"
)

var (
	// ErrInvalidDepth is raised for depths that are not positive even numbers up to MaxDepth.
	ErrInvalidDepth = errors.New("invalid search depth")
	// ErrNoLegalMoves is raised when a move is requested for a finished game.
	ErrNoLegalMoves = errors.New("no legal moves")
)

// CheckRequest reports whether a move can be selected for pos at depth.
// Front-ends use it to reject user input that SelectMove would panic on.
func CheckRequest(pos rules.Position, depth int) error {
	if depth < 2 || depth > MaxDepth || depth%2 != 0 {
		return invalidDepth(depth)
	}
	if len(pos.LegalMoves()) == 0 {
		return fmt.Errorf("%w: %s", ErrNoLegalMoves, pos.FEN())
	}
	return nil
}

func invalidDepth(depth int) error {
	return fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
}

// EvenDepth rounds depth up to the nearest even depth accepted by Search,
// clamped to [2, MaxDepth].
func EvenDepth(depth int) int {
	if depth < 2 {
		return 2
	}
	if depth > MaxDepth {
		return MaxDepth
	}
	return depth + depth%2
}
