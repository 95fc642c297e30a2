package play

import "github.com/amarchess/amarchess/internal/rules"

// Selection is the click-to-move state of the board: a selected square and
// the legal moves starting there.
type Selection struct {
	From    rules.Square
	Targets []rules.Move
}

// NoSelection is the idle state.
var NoSelection = Selection{From: rules.NoSquare}

// Active reports whether a piece is selected.
func (s Selection) Active() bool {
	return s.From != rules.NoSquare
}

// IsTarget reports whether sq is a destination of the selected piece.
func (s Selection) IsTarget(sq rules.Square) bool {
	for _, m := range s.Targets {
		if m.To() == sq {
			return true
		}
	}
	return false
}

// Click applies a click on sq. It returns the new selection and the move to
// play, or NoMove. Clicking one of the side to move's pieces selects it,
// clicking a highlighted target plays the move (promoting to a queen), and
// anything else clears the selection.
func (s Selection) Click(pos rules.Position, sq rules.Square) (Selection, rules.Move) {
	if sq == rules.NoSquare {
		return NoSelection, rules.NoMove
	}

	if s.Active() {
		if m, ok := s.moveTo(sq); ok {
			return NoSelection, m
		}
	}

	if p, ok := pos.PieceAt(sq); ok && p.Color == pos.SideToMove() {
		if sq == s.From {
			return NoSelection, rules.NoMove
		}
		return Select(pos, sq), rules.NoMove
	}
	return NoSelection, rules.NoMove
}

// Select selects sq and collects its legal moves.
func Select(pos rules.Position, sq rules.Square) Selection {
	sel := Selection{From: sq}
	for _, m := range pos.LegalMoves() {
		if m.From() == sq {
			sel.Targets = append(sel.Targets, m)
		}
	}
	return sel
}

func (s Selection) moveTo(sq rules.Square) (rules.Move, bool) {
	found := rules.NoMove
	for _, m := range s.Targets {
		if m.To() != sq {
			continue
		}
		if m.Promotion() == rules.NoPieceType || m.Promotion() == rules.Queen {
			return m, true
		}
		found = m
	}
	return found, found != rules.NoMove
}
