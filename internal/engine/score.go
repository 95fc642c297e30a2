package engine

import "strconv"

// Score is a centipawn value from the point of view of the side to move.
type Score int32

// Search constants
const (
	Draw      Score = 0
	MateScore Score = 30000 // mated at remaining depth r scores -(MateScore + r)
	Infinity  Score = 32000
	MaxDepth        = 64
)

// IsMate reports whether s encodes a forced mate for either side.
func IsMate(s Score) bool {
	return s >= MateScore || s <= -MateScore
}

// MatePlies converts a root score searched to depth into the number of plies
// until mate. Positive means the side to move mates, negative means it is
// mated, zero means no mate was found.
func MatePlies(s Score, depth int) int {
	switch {
	case s >= MateScore:
		return depth - int(s-MateScore)
	case s <= -MateScore:
		return -(depth - int(-s-MateScore))
	}
	return 0
}

// ScoreToString converts a root score to a human-readable string.
func ScoreToString(s Score, depth int) string {
	if plies := MatePlies(s, depth); plies != 0 {
		if plies > 0 {
			return "Mate in " + strconv.Itoa((plies+1)/2)
		}
		return "Mated in " + strconv.Itoa((-plies+1)/2)
	}

	// Convert centipawns to pawns
	sign := ""
	if s < 0 {
		sign = "-"
		s = -s
	}
	pawns := int(s / 100)
	centipawns := int(s % 100)
	cp := strconv.Itoa(centipawns)
	if centipawns < 10 {
		cp = "0" + cp
	}
	return sign + strconv.Itoa(pawns) + "." + cp
}
