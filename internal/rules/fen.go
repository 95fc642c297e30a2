package rules

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

// FromFEN parses a FEN string. Missing move counters default to "0 1".
// The string is validated with notnil/chess first because dragontoothmg
// does not report malformed input.
func FromFEN(fen string) (Position, error) {
	fields := strings.Fields(fen)
	switch len(fields) {
	case 4:
		fields = append(fields, "0", "1")
	case 5:
		fields = append(fields, "1")
	case 6:
	default:
		return Position{}, fmt.Errorf("%w: %q has %d fields", ErrInvalidFEN, fen, len(fields))
	}
	normalized := strings.Join(fields, " ")
	if _, err := chess.FEN(normalized); err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	return Position{board: dragontoothmg.ParseFen(normalized)}, nil
}

// MustFEN is FromFEN for fixtures known to be valid.
func MustFEN(fen string) Position {
	pos, err := FromFEN(fen)
	if err != nil {
		panic(err)
	}
	return pos
}

// FEN returns the position in Forsyth-Edwards notation.
func (p Position) FEN() string {
	return p.board.ToFen()
}

// Mirror returns the colour-flipped position: ranks reversed, piece colours
// swapped and the other side to move. Material evaluates to the negation.
func (p Position) Mirror() Position {
	mirrored, err := MirrorFEN(p.FEN())
	if err != nil {
		panic(err)
	}
	return MustFEN(mirrored)
}

// MirrorFEN colour-flips a FEN string.
func MirrorFEN(fen string) (string, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return "", fmt.Errorf("%w: %q", ErrInvalidFEN, fen)
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return "", fmt.Errorf("%w: %q has %d ranks", ErrInvalidFEN, fen, len(ranks))
	}
	flipped := make([]string, 8)
	for i, rank := range ranks {
		flipped[7-i] = swapCase(rank)
	}
	fields[0] = strings.Join(flipped, "/")

	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}

	if fields[2] != "-" {
		var castling strings.Builder
		for _, r := range "KQkq" {
			if strings.ContainsRune(fields[2], swapRune(r)) {
				castling.WriteRune(r)
			}
		}
		fields[2] = castling.String()
	}

	if ep := fields[3]; ep != "-" && len(ep) == 2 {
		fields[3] = string([]byte{ep[0], '1' + '8' - ep[1]})
	}
	return strings.Join(fields, " "), nil
}

func swapCase(s string) string {
	return strings.Map(swapRune, s)
}

func swapRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z':
		return r - 'a' + 'A'
	case r >= 'A' && r <= 'Z':
		return r - 'A' + 'a'
	}
	return r
}
