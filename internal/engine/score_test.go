package engine

import "testing"

func TestMatePlies(t *testing.T) {
	tests := []struct {
		score Score
		depth int
		want  int
	}{
		{MateScore + 5, 6, 1},
		{MateScore + 1, 6, 5},
		{-(MateScore + 4), 6, -2},
		{250, 6, 0},
		{-250, 6, 0},
	}

	for _, tc := range tests {
		if got := MatePlies(tc.score, tc.depth); got != tc.want {
			t.Errorf("MatePlies(%d, %d) = %d, want %d", tc.score, tc.depth, got, tc.want)
		}
	}
}

func TestScoreToString(t *testing.T) {
	tests := []struct {
		score Score
		depth int
		want  string
	}{
		{0, 4, "0.00"},
		{105, 4, "1.05"},
		{-330, 4, "-3.30"},
		{MateScore + 3, 4, "Mate in 1"},
		{MateScore + 1, 4, "Mate in 2"},
		{-(MateScore + 2), 4, "Mated in 1"},
	}

	for _, tc := range tests {
		if got := ScoreToString(tc.score, tc.depth); got != tc.want {
			t.Errorf("ScoreToString(%d, %d) = %q, want %q", tc.score, tc.depth, got, tc.want)
		}
	}
}

func TestNegatingMateScoresIsSafe(t *testing.T) {
	worst := -(MateScore + MaxDepth)
	if -worst >= Infinity || worst <= -Infinity {
		t.Errorf("mate scores must stay inside (-Infinity, Infinity): %d", worst)
	}
}
