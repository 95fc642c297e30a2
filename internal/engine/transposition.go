package engine

// TTEntry represents an entry in the transposition table.
type TTEntry struct {
	Score Score // Score for the side to move at the stored position
	Depth int   // Remaining depth the score was searched to
}

// TranspositionTable caches subtree scores by position hash.
// It lives for a single root enumeration and is not safe for concurrent use.
type TranspositionTable struct {
	entries map[uint64]TTEntry

	// Statistics
	hits   uint64
	probes uint64
}

// TTStats summarizes transposition table usage.
type TTStats struct {
	Entries int
	Probes  uint64
	Hits    uint64
}

// NewTranspositionTable creates an empty transposition table.
func NewTranspositionTable() *TranspositionTable {
	return &TranspositionTable{entries: make(map[uint64]TTEntry)}
}

// Probe looks up a position in the transposition table.
// Returns the entry and true if found, otherwise returns empty entry and false.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	tt.probes++
	entry, ok := tt.entries[hash]
	if ok {
		tt.hits++
	}
	return entry, ok
}

// Lookup returns the stored score for hash when it was searched at least depth plies deep.
func (tt *TranspositionTable) Lookup(hash uint64, depth int) (Score, bool) {
	entry, ok := tt.Probe(hash)
	if !ok || entry.Depth < depth {
		return 0, false
	}
	return entry.Score, true
}

// Store saves a score in the transposition table, replacing any previous entry.
func (tt *TranspositionTable) Store(hash uint64, score Score, depth int) {
	tt.entries[hash] = TTEntry{Score: score, Depth: depth}
}

// Len returns the number of stored positions.
func (tt *TranspositionTable) Len() int {
	return len(tt.entries)
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// Stats returns usage counters.
func (tt *TranspositionTable) Stats() TTStats {
	return TTStats{Entries: len(tt.entries), Probes: tt.probes, Hits: tt.hits}
}
