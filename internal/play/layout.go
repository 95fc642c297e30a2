package play

import "github.com/amarchess/amarchess/internal/rules"

// Board geometry in logical pixels.
const (
	BoardSize  = 640
	SquareSize = BoardSize / 8
)

// SquareOrigin returns the top-left pixel of sq. With flipped set, black
// is drawn at the bottom.
func SquareOrigin(sq rules.Square, flipped bool) (int, int) {
	file, rank := sq.File(), sq.Rank()
	if flipped {
		file, rank = 7-file, 7-rank
	}
	return file * SquareSize, (7 - rank) * SquareSize
}

// SquareAt converts board pixel coordinates to a square, or NoSquare when
// the point is off the board.
func SquareAt(x, y int, flipped bool) rules.Square {
	if x < 0 || x >= BoardSize || y < 0 || y >= BoardSize {
		return rules.NoSquare
	}
	file := x / SquareSize
	rank := 7 - y/SquareSize
	if flipped {
		file, rank = 7-file, 7-rank
	}
	return rules.NewSquare(file, rank)
}
