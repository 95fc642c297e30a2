package tactic

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/amarchess/amarchess/internal/engine"
)

func TestParseEPD(t *testing.T) {
	p, err := ParseEPD(`2k3r1/5r2/8/8/8/8/8/7K b - - bm Rh7#; id "mate1.02";`)
	if err != nil {
		t.Fatalf("ParseEPD: %v", err)
	}
	if p.ID != "mate1.02" {
		t.Errorf("ID = %q, want mate1.02", p.ID)
	}
	got := []string{}
	for _, m := range p.BestMoves {
		got = append(got, m.String())
	}
	if diff := cmp.Diff([]string{"f7h7"}, got); diff != "" {
		t.Errorf("best moves (-want +got):\n%s", diff)
	}
}

func TestParseEPDMultipleBestMoves(t *testing.T) {
	p, err := ParseEPD("4k3/8/8/8/8/8/8/R3K2R w KQ - bm Ra8+ Rh8+;")
	if err != nil {
		t.Fatalf("ParseEPD: %v", err)
	}
	if len(p.BestMoves) != 2 {
		t.Fatalf("got %d best moves, want 2", len(p.BestMoves))
	}
	if !p.Accepts(p.BestMoves[1]) {
		t.Error("Accepts rejected the second best move")
	}
	kingMove, err := p.Position.FindMove("e1e2")
	if err != nil {
		t.Fatal(err)
	}
	if p.Accepts(kingMove) {
		t.Error("Accepts matched a move outside the best move list")
	}
}

func TestParseEPDMalformed(t *testing.T) {
	lines := []string{
		"",
		"8/8/8 w - -",
		"not a fen at all bm e4;",
		"4k3/8/8/8/8/8/8/4K3 w - - id \"no-bm\";",
		"4k3/8/8/8/8/8/8/4K3 w - - bm Qh5;",
	}
	for _, line := range lines {
		if _, err := ParseEPD(line); !errors.Is(err, ErrMalformedEPD) {
			t.Errorf("ParseEPD(%q) error = %v, want ErrMalformedEPD", line, err)
		}
	}
}

func TestLoadReportsLineNumber(t *testing.T) {
	input := "# comment\n\n2k3r1/5r2/8/8/8/8/8/7K b - - bm Rh7#;\nbroken\n"
	_, err := Load(strings.NewReader(input))
	if !errors.Is(err, ErrMalformedEPD) || !strings.Contains(err.Error(), "line 4") {
		t.Errorf("Load error = %v, want malformed EPD on line 4", err)
	}

	puzzles, err := Load(strings.NewReader("2k3r1/5r2/8/8/8/8/8/7K b - - bm Rh7#;\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(puzzles) != 1 || puzzles[0].ID != "line.1" {
		t.Errorf("unexpected puzzles %+v", puzzles)
	}
}

func TestSolveBuiltinSuite(t *testing.T) {
	puzzles, err := LoadBuiltin("basic")
	if err != nil {
		t.Fatalf("LoadBuiltin: %v", err)
	}
	if len(puzzles) != 12 {
		t.Fatalf("loaded %d puzzles, want 12", len(puzzles))
	}

	depth := 4
	if !testing.Short() {
		depth = 6
	}
	// From skewer.01 on, the suite needs depth 6.
	if depth < 6 {
		puzzles = puzzles[:5]
	}

	eng := engine.NewEngine(engine.Options{CountNodes: true})
	report, err := Solve(context.Background(), eng, puzzles, depth, 4)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	for i, o := range report.Outcomes {
		if o.Puzzle.ID != puzzles[i].ID {
			t.Errorf("outcome %d is %s, want %s", i, o.Puzzle.ID, puzzles[i].ID)
		}
		if !o.Solved {
			t.Errorf("%s: engine played %s", o.Puzzle.ID, o.Move)
		}
	}
	if report.Solved != len(puzzles) || report.Failed != 0 {
		t.Errorf("solved %d, failed %d", report.Solved, report.Failed)
	}
}

func TestSolveRecordsUnsearchablePuzzles(t *testing.T) {
	p, err := ParseEPD("2k3r1/5r2/8/8/8/8/8/7K b - - bm Rh7#;")
	if err != nil {
		t.Fatal(err)
	}
	report, err := Solve(context.Background(), engine.NewEngine(engine.Options{}), []Puzzle{p}, 3, 1)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !errors.Is(report.Outcomes[0].Err, engine.ErrInvalidDepth) || report.Failed != 1 {
		t.Errorf("outcome = %+v, want invalid depth failure", report.Outcomes[0])
	}
}

func TestSolveHonorsCancellation(t *testing.T) {
	puzzles, err := LoadBuiltin("basic")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Solve(ctx, engine.NewEngine(engine.Options{}), puzzles, 2, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("Solve error = %v, want context.Canceled", err)
	}
}
