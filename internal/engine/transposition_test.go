package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTranspositionTable(t *testing.T) {
	tt := NewTranspositionTable()

	// First probe should miss
	if _, found := tt.Probe(42); found {
		t.Error("Expected cache miss on first probe")
	}

	tt.Store(42, -15, 3)
	entry, found := tt.Probe(42)
	if !found {
		t.Fatal("Expected cache hit after store")
	}
	if diff := cmp.Diff(TTEntry{Score: -15, Depth: 3}, entry); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}

	if _, ok := tt.Lookup(42, 4); ok {
		t.Error("entry searched to depth 3 must not answer a depth 4 query")
	}
	if score, ok := tt.Lookup(42, 2); !ok || score != -15 {
		t.Errorf("Lookup(42, 2) = %d, %v; want -15, true", score, ok)
	}

	// Overwrite is unconditional, even with a shallower result.
	tt.Store(42, 7, 1)
	if score, ok := tt.Lookup(42, 1); !ok || score != 7 {
		t.Errorf("after overwrite Lookup = %d, %v; want 7, true", score, ok)
	}

	want := TTStats{Entries: 1, Probes: 5, Hits: 4}
	if diff := cmp.Diff(want, tt.Stats()); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
	if tt.HitRate() != 80 {
		t.Errorf("HitRate = %v, want 80", tt.HitRate())
	}
}
