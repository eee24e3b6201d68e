package engine

// Options keeps the engine's options.
type Options struct {
	// HashSizeMB is the transposition table size to allocate on NewEngine,
	// the UCI-facing "Hash" option.
	HashSizeMB int
}

// Stats stores statistics about the current or most recent search.
type Stats struct {
	CacheHit  uint64 // number of times the position was found in the transposition table
	CacheMiss uint64 // number of times the position was not found in the transposition table
	Nodes     uint64 // number of nodes searched
	Depth     int32  // depth currently or most recently completed
}

// CacheHitRatio returns the ratio of transposition table hits over total
// lookups, 0 if there were none.
func (s *Stats) CacheHitRatio() float32 {
	if s.CacheHit+s.CacheMiss == 0 {
		return 0
	}
	return float32(s.CacheHit) / float32(s.CacheHit+s.CacheMiss)
}

// Logger logs search progress, the hook a UCI front-end implements to
// print "info" lines.
type Logger interface {
	// BeginSearch signals a new search is starting.
	BeginSearch()
	// EndSearch signals the search ended.
	EndSearch()
	// PrintPV logs the principal variation after iterative deepening
	// completes one depth.
	PrintPV(stats Stats, score int32, pv []Move)
}

// NulLogger is a Logger that does nothing, used when the engine is driven
// without a UCI front-end (e.g. by perft or the test suite).
type NulLogger struct{}

func (NulLogger) BeginSearch()                                 {}
func (NulLogger) EndSearch()                                   {}
func (NulLogger) PrintPV(stats Stats, score int32, pv []Move) {}
