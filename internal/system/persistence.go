package system

import (
	"context"
	"time"

	coresys "github.com/l1jgo/goalopt/internal/core/system"
	"github.com/l1jgo/goalopt/internal/persist"
	"go.uber.org/zap"
)

// StatsSaver writes goal stats windows. *persist.StatsRepo implements it.
type StatsSaver interface {
	SaveWindows(ctx context.Context, rows []persist.StatsRow) error
}

// PersistenceSystem periodically flushes buffered goal stats windows to the
// database. Phase 4 (Persist).
type PersistenceSystem struct {
	buf       *persist.StatsBuffer
	repo      StatsSaver
	log       *zap.Logger
	tickCount int
	interval  int // flush every N ticks
}

func NewPersistenceSystem(buf *persist.StatsBuffer, repo StatsSaver, log *zap.Logger, intervalTicks int) *PersistenceSystem {
	if intervalTicks < 1 {
		intervalTicks = 1
	}
	return &PersistenceSystem{
		buf:      buf,
		repo:     repo,
		log:      log,
		interval: intervalTicks,
	}
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	s.Flush()
}

// Flush saves everything buffered now. Failed rows go back into the buffer
// for the next attempt. Also called for graceful shutdown.
func (s *PersistenceSystem) Flush() {
	rows := s.buf.Take()
	if len(rows) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.repo.SaveWindows(ctx, rows); err != nil {
		s.buf.Requeue(rows)
		s.log.Error("goal stats save failed",
			zap.Int("rows", len(rows)),
			zap.Int("buffered", s.buf.Len()),
			zap.Error(err))
		return
	}
	s.log.Debug("goal stats saved", zap.Int("rows", len(rows)))
}
