// Package notation converts between oracle moves and standard algebraic
// notation using notnil/chess.
package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"github.com/amarchess/amarchess/internal/rules"
)

// ErrUnknownMove indicates a SAN string that names no legal move.
var ErrUnknownMove = errors.New("unknown move")

// ParseSAN resolves a SAN move ("Qb7+", "exd5", "O-O", "e8=Q#") against pos.
// Check and annotation suffixes are ignored.
func ParseSAN(pos rules.Position, san string) (rules.Move, error) {
	cp, err := chessPosition(pos)
	if err != nil {
		return rules.NoMove, err
	}
	want := stripSuffixes(san)
	for _, m := range cp.ValidMoves() {
		if stripSuffixes(chess.AlgebraicNotation{}.Encode(cp, m)) == want {
			return pos.FindMove(chess.UCINotation{}.Encode(cp, m))
		}
	}
	return rules.NoMove, fmt.Errorf("%w: %q in %s", ErrUnknownMove, san, pos.FEN())
}

// MustSAN is ParseSAN for fixtures known to be valid.
func MustSAN(pos rules.Position, san string) rules.Move {
	m, err := ParseSAN(pos, san)
	if err != nil {
		panic(err)
	}
	return m
}

// FormatSAN renders m in SAN, including check and mate suffixes.
func FormatSAN(pos rules.Position, m rules.Move) (string, error) {
	cp, err := chessPosition(pos)
	if err != nil {
		return "", err
	}
	uci := m.String()
	for _, cm := range cp.ValidMoves() {
		if (chess.UCINotation{}).Encode(cp, cm) == uci {
			return chess.AlgebraicNotation{}.Encode(cp, cm), nil
		}
	}
	return "", fmt.Errorf("%w: %s in %s", rules.ErrIllegalMove, uci, pos.FEN())
}

// FormatLine renders consecutive moves from pos in SAN separated by spaces.
// Moves that cannot be rendered fall back to UCI.
func FormatLine(pos rules.Position, moves []rules.Move) string {
	parts := make([]string, 0, len(moves))
	for _, m := range moves {
		san, err := FormatSAN(pos, m)
		if err != nil {
			san = m.String()
		}
		parts = append(parts, san)
		pos = pos.Play(m)
	}
	return strings.Join(parts, " ")
}

func chessPosition(pos rules.Position) (*chess.Position, error) {
	opt, err := chess.FEN(pos.FEN())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rules.ErrInvalidFEN, err)
	}
	return chess.NewGame(opt).Position(), nil
}

func stripSuffixes(san string) string {
	return strings.TrimRight(strings.TrimSpace(san), "+#!?")
}

// ParseUCI resolves a long algebraic move ("e2e4", "e7e8q") against pos.
func ParseUCI(pos rules.Position, uci string) (rules.Move, error) {
	m, err := pos.FindMove(strings.ToLower(strings.TrimSpace(uci)))
	if err != nil {
		return rules.NoMove, fmt.Errorf("%w: %v", ErrUnknownMove, err)
	}
	return m, nil
}
