package rules

// Perft counts leaf nodes of the legal move tree to the given depth. It is
// the standard cross-check for a move generator.
func Perft(pos Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := pos.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		nodes += Perft(pos.Play(m), depth-1)
	}
	return nodes
}

// Divide returns the perft count below each root move.
func Divide(pos Position, depth int) map[string]uint64 {
	counts := make(map[string]uint64)
	if depth < 1 {
		return counts
	}
	for _, m := range pos.LegalMoves() {
		counts[m.String()] = Perft(pos.Play(m), depth-1)
	}
	return counts
}
