package rules

import (
	"errors"
	"testing"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestPerftStartingPosition(t *testing.T) {
	pos := NewPosition()

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := Perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("Perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

func TestPerftKiwipete(t *testing.T) {
	pos, err := FromFEN(kiwipete)
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	if got := Perft(pos, 1); got != 48 {
		t.Errorf("Perft(1) = %d, want 48", got)
	}
	if got := Perft(pos, 2); got != 2039 {
		t.Errorf("Perft(2) = %d, want 2039", got)
	}
}

func TestDivideSumsToPerft(t *testing.T) {
	pos := NewPosition()
	var total uint64
	for _, n := range Divide(pos, 2) {
		total += n
	}
	if total != 400 {
		t.Errorf("Divide(2) sums to %d, want 400", total)
	}
}

func TestFromFENRejectsGarbage(t *testing.T) {
	for _, fen := range []string{
		"",
		"not a fen",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
	} {
		if _, err := FromFEN(fen); !errors.Is(err, ErrInvalidFEN) {
			t.Errorf("FromFEN(%q) error = %v, want ErrInvalidFEN", fen, err)
		}
	}
}

func TestFromFENDefaultsMoveCounters(t *testing.T) {
	pos, err := FromFEN("2k3r1/5r2/8/8/8/8/8/7K b - -")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	if pos.SideToMove() != Black {
		t.Errorf("SideToMove = %v, want black", pos.SideToMove())
	}
}

func TestPlayDoesNotMutateReceiver(t *testing.T) {
	pos := NewPosition()
	hash := pos.Hash()
	move, err := pos.FindMove("e2e4")
	if err != nil {
		t.Fatalf("FindMove: %v", err)
	}

	next := pos.Play(move)
	if pos.Hash() != hash {
		t.Error("Play changed the receiver's hash")
	}
	if next.Hash() == hash {
		t.Error("successor has the same hash as its parent")
	}
	if next.SideToMove() != Black {
		t.Errorf("successor side to move = %v, want black", next.SideToMove())
	}
}

func TestHashStableAcrossTranspositions(t *testing.T) {
	pos := NewPosition()
	play := func(p Position, moves ...string) Position {
		for _, s := range moves {
			m, err := p.FindMove(s)
			if err != nil {
				t.Fatalf("FindMove(%s): %v", s, err)
			}
			p = p.Play(m)
		}
		return p
	}

	a := play(pos, "g1f3", "g8f6", "b1c3")
	b := play(pos, "b1c3", "g8f6", "g1f3")
	if a.Hash() != b.Hash() {
		t.Errorf("transposed positions hash differently: %x vs %x", a.Hash(), b.Hash())
	}
}

func TestFindMoveIllegal(t *testing.T) {
	pos := NewPosition()
	if _, err := pos.FindMove("e2e5"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("FindMove(e2e5) error = %v, want ErrIllegalMove", err)
	}
}

func TestIsCaptureAndPieceAt(t *testing.T) {
	pos := MustFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")

	capture, err := pos.FindMove("e4d5")
	if err != nil {
		t.Fatalf("FindMove: %v", err)
	}
	if !pos.IsCapture(capture) {
		t.Error("exd5 not reported as a capture")
	}
	push, err := pos.FindMove("e4e5")
	if err != nil {
		t.Fatalf("FindMove: %v", err)
	}
	if pos.IsCapture(push) {
		t.Error("e5 reported as a capture")
	}

	piece, ok := pos.PieceAt(NewSquare(3, 4))
	if !ok || piece != (Piece{Type: Pawn, Color: Black}) {
		t.Errorf("PieceAt(d5) = %+v, %v", piece, ok)
	}
	if _, ok := pos.PieceAt(NewSquare(0, 0)); ok {
		t.Error("PieceAt(a1) reported a piece on an empty square")
	}
}

func TestCount(t *testing.T) {
	pos := NewPosition()
	tests := []struct {
		pt   PieceType
		want int
	}{
		{Pawn, 8}, {Knight, 2}, {Bishop, 2}, {Rook, 2}, {Queen, 1}, {King, 1},
	}
	for _, tc := range tests {
		for _, c := range []Color{White, Black} {
			if got := pos.Count(c, tc.pt); got != tc.want {
				t.Errorf("Count(%v, %d) = %d, want %d", c, tc.pt, got, tc.want)
			}
		}
	}
}

func TestMirrorFEN(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{Startpos, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1"},
		{"4k3/8/8/8/4Pp2/8/8/4K3 b - e3 0 1", "4k3/8/8/4pP2/8/8/8/4K3 w - e6 0 1"},
		{"r3k2r/8/8/8/8/8/8/R3K2R w Kq - 0 1", "r3k2r/8/8/8/8/8/8/R3K2R b Qk - 0 1"},
	}
	for _, tc := range tests {
		got, err := MirrorFEN(tc.in)
		if err != nil {
			t.Fatalf("MirrorFEN(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("MirrorFEN(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSquareString(t *testing.T) {
	if got := NewSquare(4, 3).String(); got != "e4" {
		t.Errorf("NewSquare(4, 3) = %s, want e4", got)
	}
	if got := NoSquare.String(); got != "-" {
		t.Errorf("NoSquare = %s, want -", got)
	}
}
