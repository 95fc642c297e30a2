package play

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/amarchess/amarchess/internal/engine"
	"github.com/amarchess/amarchess/internal/rules"
)

func sq(t *testing.T, name string) rules.Square {
	t.Helper()
	if len(name) != 2 {
		t.Fatalf("bad square %q", name)
	}
	return rules.NewSquare(int(name[0]-'a'), int(name[1]-'1'))
}

func TestSquareGeometry(t *testing.T) {
	tests := []struct {
		x, y    int
		flipped bool
		want    string
	}{
		{0, BoardSize - 1, false, "a1"},
		{BoardSize - 1, 0, false, "h8"},
		{0, BoardSize - 1, true, "h8"},
		{4*SquareSize + 3, 6*SquareSize + 10, false, "e2"},
		{4*SquareSize + 3, 6*SquareSize + 10, true, "d7"},
	}
	for _, tc := range tests {
		if got := SquareAt(tc.x, tc.y, tc.flipped); got.String() != tc.want {
			t.Errorf("SquareAt(%d, %d, %v) = %s, want %s", tc.x, tc.y, tc.flipped, got, tc.want)
		}
	}

	if got := SquareAt(BoardSize, 10, false); got != rules.NoSquare {
		t.Errorf("off-board point mapped to %s", got)
	}

	for _, flipped := range []bool{false, true} {
		for s := rules.Square(0); s < 64; s++ {
			x, y := SquareOrigin(s, flipped)
			if got := SquareAt(x+SquareSize/2, y+SquareSize/2, flipped); got != s {
				t.Errorf("flipped=%v: origin of %s maps back to %s", flipped, s, got)
			}
		}
	}
}

func TestSelectionClick(t *testing.T) {
	pos := rules.NewPosition()

	sel, m := NoSelection.Click(pos, sq(t, "e2"))
	if m != rules.NoMove || sel.From != sq(t, "e2") || len(sel.Targets) != 2 {
		t.Fatalf("selecting e2: sel=%+v move=%s", sel, m)
	}
	if !sel.IsTarget(sq(t, "e4")) || sel.IsTarget(sq(t, "e5")) {
		t.Error("wrong targets for e2")
	}

	// Switch to another own piece.
	sel, _ = sel.Click(pos, sq(t, "g1"))
	if sel.From != sq(t, "g1") || len(sel.Targets) != 2 {
		t.Fatalf("switching to g1: %+v", sel)
	}

	// Clicking the selected square again deselects.
	if again, _ := sel.Click(pos, sq(t, "g1")); again.Active() {
		t.Error("second click on g1 should deselect")
	}

	// Opponent pieces and empty non-targets clear the selection.
	for _, name := range []string{"e7", "d4"} {
		if cleared, m := sel.Click(pos, sq(t, name)); cleared.Active() || m != rules.NoMove {
			t.Errorf("click on %s: sel=%+v move=%s", name, cleared, m)
		}
	}

	_, m = sel.Click(pos, sq(t, "f3"))
	if m.String() != "g1f3" {
		t.Errorf("move = %s, want g1f3", m)
	}
}

func TestSelectionPromotesToQueen(t *testing.T) {
	pos := rules.MustFEN("8/4P1k1/8/8/8/8/8/4K3 w - - 0 1")
	sel := Select(pos, sq(t, "e7"))
	if len(sel.Targets) != 4 {
		t.Fatalf("got %d promotion targets, want 4", len(sel.Targets))
	}
	if _, m := sel.Click(pos, sq(t, "e8")); m.String() != "e7e8q" {
		t.Errorf("move = %s, want e7e8q", m)
	}
}

func TestSessionHumanVsHuman(t *testing.T) {
	s := NewSession(HumanVsHuman, rules.White, 2, engine.DefaultOptions())

	for _, name := range []string{"e2", "e4", "e7", "e5", "g1", "f3"} {
		s.Click(sq(t, name))
	}

	if diff := cmp.Diff([]string{"e4", "e5", "Nf3"}, s.SANHistory()); diff != "" {
		t.Errorf("history (-want +got):\n%s", diff)
	}
	if s.LastMove().String() != "g1f3" || s.Thinking() {
		t.Errorf("last move %s, thinking %v", s.LastMove(), s.Thinking())
	}
}

func TestSessionEngineReplies(t *testing.T) {
	s := NewSession(HumanVsComputer, rules.White, 2, engine.DefaultOptions())

	s.Click(sq(t, "e2"))
	s.Click(sq(t, "e4"))
	if !s.Thinking() {
		t.Fatal("engine should be thinking after the human move")
	}
	// Clicks are ignored while the engine thinks.
	s.Click(sq(t, "d2"))
	if s.Selection().Active() {
		t.Error("selection accepted during engine search")
	}

	if !s.Wait() {
		t.Fatal("engine move was not played")
	}
	if len(s.Moves()) != 2 || s.Position().SideToMove() != rules.White {
		t.Errorf("moves %v, side %s", s.Moves(), s.Position().SideToMove())
	}
	if s.LastSearch().Depth != 2 || !s.HumanToMove() {
		t.Errorf("last search depth %d, human to move %v", s.LastSearch().Depth, s.HumanToMove())
	}
}

func TestSessionEngineMates(t *testing.T) {
	s := NewSession(HumanVsHuman, rules.White, 2, engine.DefaultOptions())
	s.Reset(rules.MustFEN("2k3r1/5r2/8/8/8/8/8/7K b - - 0 1"))

	s.SetMode(HumanVsComputer)
	if !s.Thinking() {
		t.Fatal("engine should move for black")
	}
	s.Wait()

	if s.Status() != Checkmate || s.ResultText() != "Black wins by checkmate!" {
		t.Errorf("status %v, result %q", s.Status(), s.ResultText())
	}
	if w, ok := s.Winner(); !ok || w != rules.Black {
		t.Errorf("winner = %s, %v", w, ok)
	}
	if s.StartEngine() {
		t.Error("engine must not start after the game ended")
	}
}

func TestSessionDiscardsStaleReply(t *testing.T) {
	s := NewSession(HumanVsHuman, rules.White, 2, engine.DefaultOptions())
	if !s.StartEngine() {
		t.Fatal("StartEngine failed")
	}
	if s.StartEngine() {
		t.Error("second StartEngine should be refused while searching")
	}

	e4, err := s.Position().FindMove("e2e4")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Play(e4); err != nil {
		t.Fatal(err)
	}

	if s.Wait() {
		t.Error("reply for an old position was played")
	}
	if len(s.Moves()) != 1 {
		t.Errorf("got %d moves, want 1", len(s.Moves()))
	}
}

func TestSessionRepetition(t *testing.T) {
	s := NewSession(HumanVsHuman, rules.White, 2, engine.DefaultOptions())
	for i := 0; i < 2; i++ {
		for _, uci := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
			m, err := s.Position().FindMove(uci)
			if err != nil {
				t.Fatal(err)
			}
			if err := s.Play(m); err != nil {
				t.Fatalf("Play(%s): %v", uci, err)
			}
		}
	}

	if s.Status() != Repetition {
		t.Fatalf("status = %v, want Repetition", s.Status())
	}
	m, _ := s.Position().FindMove("g1f3")
	if err := s.Play(m); err == nil {
		t.Error("Play after the game ended should fail")
	}
}
