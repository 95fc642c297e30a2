package notation

import (
	"errors"
	"testing"

	"github.com/amarchess/amarchess/internal/rules"
)

func TestParseSAN(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		san  string
		uci  string
	}{
		{"pawn push", rules.Startpos, "e4", "e2e4"},
		{"knight", rules.Startpos, "Nf3", "g1f3"},
		{"check suffix", "r7/5kp1/3p3p/2q2p2/p1P1pP2/4P1P1/1Q1N1K1P/8 w - - 0 2", "Qb7+", "b2b7"},
		{"mate suffix", "1n2kbnr/3ppppp/2b1r3/8/3qP3/1Q3PP1/3N3P/R1B1KBNR w Kk - 0 3", "Qxb8#", "b3b8"},
		{"black rook mate", "2k3r1/5r2/8/8/8/8/8/7K b - - 0 1", "Rh7#", "f7h7"},
		{"castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "O-O", "e1g1"},
		{"promotion", "8/4P1k1/8/8/8/8/8/4K3 w - - 0 1", "e8=Q", "e7e8q"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := rules.MustFEN(tc.fen)
			m, err := ParseSAN(pos, tc.san)
			if err != nil {
				t.Fatalf("ParseSAN(%q): %v", tc.san, err)
			}
			if m.String() != tc.uci {
				t.Errorf("ParseSAN(%q) = %s, want %s", tc.san, m, tc.uci)
			}
		})
	}
}

func TestParseSANUnknown(t *testing.T) {
	if _, err := ParseSAN(rules.NewPosition(), "Ke2"); !errors.Is(err, ErrUnknownMove) {
		t.Errorf("ParseSAN(Ke2) error = %v, want ErrUnknownMove", err)
	}
}

func TestFormatSANRoundTrip(t *testing.T) {
	pos := rules.MustFEN("1n2kbnr/3ppppp/2b1r3/8/3qP3/1Q3PP1/3N3P/R1B1KBNR w Kk - 0 3")
	for _, m := range pos.LegalMoves() {
		san, err := FormatSAN(pos, m)
		if err != nil {
			t.Fatalf("FormatSAN(%s): %v", m, err)
		}
		back, err := ParseSAN(pos, san)
		if err != nil {
			t.Fatalf("ParseSAN(%q): %v", san, err)
		}
		if back != m {
			t.Errorf("round trip %s -> %q -> %s", m, san, back)
		}
	}
}

func TestFormatLine(t *testing.T) {
	pos := rules.NewPosition()
	e4 := MustSAN(pos, "e4")
	e5 := MustSAN(pos.Play(e4), "e5")
	if got := FormatLine(pos, []rules.Move{e4, e5}); got != "e4 e5" {
		t.Errorf("FormatLine = %q, want %q", got, "e4 e5")
	}
}

func TestParseUCI(t *testing.T) {
	pos := rules.NewPosition()
	m, err := ParseUCI(pos, " E2E4 ")
	if err != nil {
		t.Fatalf("ParseUCI: %v", err)
	}
	if m.String() != "e2e4" {
		t.Errorf("ParseUCI = %s, want e2e4", m)
	}

	_, err = ParseUCI(pos, "e2e5")
	if !errors.Is(err, ErrUnknownMove) {
		t.Errorf("ParseUCI(e2e5) error = %v, want ErrUnknownMove", err)
	}
}
