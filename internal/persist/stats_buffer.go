package persist

import (
	"time"

	"github.com/l1jgo/goalopt/internal/optimizer"
)

// maxBuffered caps the buffer while the database is unreachable; the oldest
// windows are dropped first.
const maxBuffered = 720 // 1 hour of 5s windows

// StatsBuffer collects reported windows in memory until PersistenceSystem
// flushes them. It is an optimizer.Sink; game loop access only.
type StatsBuffer struct {
	rows    []StatsRow
	dropped int
}

func NewStatsBuffer() *StatsBuffer {
	return &StatsBuffer{rows: make([]StatsRow, 0, 16)}
}

func (b *StatsBuffer) Record(w optimizer.Window, phaseCount int, at time.Time) {
	if len(b.rows) >= maxBuffered {
		b.rows = b.rows[1:]
		b.dropped++
	}
	b.rows = append(b.rows, StatsRow{
		RecordedAt: at,
		Processed:  w.Processed,
		Skipped:    w.Skipped,
		SkipRate:   w.SkipRate(),
		PhaseCount: phaseCount,
	})
}

// Take returns the buffered rows and empties the buffer.
func (b *StatsBuffer) Take() []StatsRow {
	if len(b.rows) == 0 {
		return nil
	}
	rows := b.rows
	b.rows = make([]StatsRow, 0, cap(rows))
	return rows
}

// Requeue puts rows back in front after a failed save.
func (b *StatsBuffer) Requeue(rows []StatsRow) {
	merged := append(rows, b.rows...)
	if over := len(merged) - maxBuffered; over > 0 {
		merged = merged[over:]
		b.dropped += over
	}
	b.rows = merged
}

func (b *StatsBuffer) Len() int     { return len(b.rows) }
func (b *StatsBuffer) Dropped() int { return b.dropped }
