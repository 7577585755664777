package system

import (
	"sort"
	"time"
)

// Runner executes systems in phase order each tick. It owns the global tick
// counter and the work queue other goroutines use to reach the game loop.
type Runner struct {
	systems []System
	sorted  bool
	tick    uint64
	queue   *WorkQueue
}

func NewRunner(queue *WorkQueue) *Runner {
	return &Runner{
		systems: make([]System, 0, 8),
		queue:   queue,
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

func (r *Runner) TickID() uint64 { return r.tick }

// Tick advances the tick counter, runs work posted since the last tick, then
// every system in phase order.
func (r *Runner) Tick(dt time.Duration) {
	r.tick++
	if r.queue != nil {
		r.queue.Drain()
	}
	r.ensureSorted()
	for _, s := range r.systems {
		s.Update(dt)
	}
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
