package optimizer

import (
	"sync/atomic"
	"time"
)

// DefaultReportInterval is the debug stats window length.
const DefaultReportInterval = 5 * time.Second

// Executor posts work onto the game loop goroutine. Execute may be called from
// any goroutine; fn runs later, serially with all other game loop work.
type Executor interface {
	Execute(fn func())
}

// Reporter wakes every interval on its own goroutine and posts work onto the
// game loop. It never touches game state itself.
//
// Stop is cooperative: the loop notices at its next wake, so a stopped loop
// lingers for up to one interval. gen makes sure a lingering loop exits even
// if Start runs again before it wakes, so at most one loop ever posts work.
type Reporter struct {
	exec     Executor
	interval time.Duration
	work     func()

	running atomic.Bool
	gen     atomic.Uint64
}

func NewReporter(exec Executor, interval time.Duration, work func()) *Reporter {
	if interval <= 0 {
		interval = DefaultReportInterval
	}
	return &Reporter{exec: exec, interval: interval, work: work}
}

// Start launches the loop unless one is already running.
func (r *Reporter) Start() {
	if !r.running.CompareAndSwap(false, true) {
		return
	}
	go r.loop(r.gen.Add(1))
}

// Stop clears the running flag; the loop exits at its next wake.
func (r *Reporter) Stop() {
	r.running.Store(false)
}

func (r *Reporter) Running() bool { return r.running.Load() }

func (r *Reporter) loop(gen uint64) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for range t.C {
		if !r.running.Load() || r.gen.Load() != gen {
			return
		}
		r.exec.Execute(r.work)
	}
}
