package optimizer

// Window is one reporting window's counts.
type Window struct {
	Processed uint64
	Skipped   uint64
}

func (w Window) Total() uint64 { return w.Processed + w.Skipped }

// SkipRate returns the skipped share in percent, 0 for an empty window.
func (w Window) SkipRate() float64 {
	total := w.Total()
	if total == 0 {
		return 0
	}
	return 100 * float64(w.Skipped) / float64(total)
}

// Stats counts processed and skipped goal evaluations for the current window.
// Increments, reads and Reset all happen on the game loop goroutine; the
// reporter reaches it only through a job posted onto that goroutine.
type Stats struct {
	processed uint64
	skipped   uint64
}

func (s *Stats) incProcessed() { s.processed++ }
func (s *Stats) incSkipped()   { s.skipped++ }

func (s *Stats) Processed() uint64 { return s.processed }
func (s *Stats) Skipped() uint64   { return s.skipped }

func (s *Stats) Snapshot() Window {
	return Window{Processed: s.processed, Skipped: s.skipped}
}

func (s *Stats) Reset() {
	s.processed = 0
	s.skipped = 0
}
