package optimizer

// Decider answers the single run-or-skip question for one entity on one tick.
type Decider interface {
	ShouldRun(tick uint64, uniqueID int64) bool
}

// TickState caches the last seen tick and its resolved phase. Every entity in
// a tick shares one resolution, so the modulo runs once per tick.
type TickState struct {
	LastTickID   uint64
	CurrentPhase int
}

// PhaseScheduler buckets ticks and entities into phaseCount phases; an entity
// runs only on ticks whose phase matches its own.
// Invariant: 0 <= CurrentPhase < phaseCount.
// Accessed only from the game loop goroutine, no locks.
type PhaseScheduler struct {
	phaseCount uint64
	state      TickState
}

// NewPhaseScheduler returns a scheduler with phaseCount clamped to at least 1.
func NewPhaseScheduler(phaseCount int) *PhaseScheduler {
	if phaseCount < 1 {
		phaseCount = 1
	}
	return &PhaseScheduler{phaseCount: uint64(phaseCount)}
}

func (s *PhaseScheduler) PhaseCount() int  { return int(s.phaseCount) }
func (s *PhaseScheduler) State() TickState { return s.state }

// Reset zeroes the tick cache. A zero cache is always consistent because
// tick 0 resolves to phase 0 for every phase count.
func (s *PhaseScheduler) Reset() {
	s.state = TickState{}
}

// ResolvePhase returns tick % phaseCount, recomputed only when tick changes.
func (s *PhaseScheduler) ResolvePhase(tick uint64) int {
	if tick != s.state.LastTickID {
		s.state.LastTickID = tick
		s.state.CurrentPhase = int(tick % s.phaseCount)
	}
	return s.state.CurrentPhase
}

// EntityPhase maps a unique id to its phase. The id is reinterpreted as
// unsigned first: a signed modulo would go negative for negative ids.
func (s *PhaseScheduler) EntityPhase(uniqueID int64) int {
	return int(uint64(uniqueID) % s.phaseCount)
}

func (s *PhaseScheduler) ShouldRun(tick uint64, uniqueID int64) bool {
	return s.EntityPhase(uniqueID) == s.ResolvePhase(tick)
}
