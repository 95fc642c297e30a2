package engine

import "github.com/amarchess/amarchess/internal/rules"

// Material values in centipawns.
const (
	PawnValue   Score = 100
	KnightValue Score = 300
	BishopValue Score = 330
	RookValue   Score = 560
	QueenValue  Score = 950

	BishopPairBonus Score = 50
)

var pieceValues = [...]Score{
	rules.Pawn:   PawnValue,
	rules.Knight: KnightValue,
	rules.Bishop: BishopValue,
	rules.Rook:   RookValue,
	rules.Queen:  QueenValue,
	rules.King:   0,
}

// Evaluate returns the static evaluation of pos, positive when white is ahead.
// Callers orient it to the side to move with Color.Sign.
func Evaluate(pos rules.Position) Score {
	return material(pos, rules.White) - material(pos, rules.Black)
}

func material(pos rules.Position, c rules.Color) Score {
	var s Score
	for _, pt := range rules.PieceTypes {
		s += Score(pos.Count(c, pt)) * pieceValues[pt]
	}
	if pos.Count(c, rules.Bishop) == 2 {
		s += BishopPairBonus
	}
	return s
}
