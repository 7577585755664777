package system

import "sync/atomic"

// WorkQueue hands work from other goroutines to the game loop. Execute is
// safe from any goroutine; Drain must only be called by the game loop.
type WorkQueue struct {
	ch      chan func()
	dropped atomic.Uint64
}

func NewWorkQueue(size int) *WorkQueue {
	if size < 1 {
		size = 1
	}
	return &WorkQueue{ch: make(chan func(), size)}
}

// Execute queues fn for the next Drain. Never blocks: when the queue is full
// fn is dropped and counted.
func (q *WorkQueue) Execute(fn func()) {
	select {
	case q.ch <- fn:
	default:
		q.dropped.Add(1)
	}
}

// Drain runs everything queued at call time. Work queued by the drained
// functions themselves waits for the next Drain.
func (q *WorkQueue) Drain() int {
	n := len(q.ch)
	for i := 0; i < n; i++ {
		fn := <-q.ch
		fn()
	}
	return n
}

func (q *WorkQueue) Len() int        { return len(q.ch) }
func (q *WorkQueue) Dropped() uint64 { return q.dropped.Load() }
