package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: spawn / despawn requests
	PhasePreUpdate               // 1: target detection
	PhaseUpdate                  // 2: AI goal selection
	PhasePostUpdate              // 3: act on selected goals
	PhasePersist                 // 4: flush stats windows
)

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

// Clock exposes the global tick counter. Monotonic, starts at 1 for the
// first tick and never goes backwards.
type Clock interface {
	TickID() uint64
}
