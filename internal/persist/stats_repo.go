package persist

import (
	"context"
	"fmt"
	"time"
)

// StatsRow is one reported goal optimizer window.
type StatsRow struct {
	RecordedAt time.Time
	Processed  uint64
	Skipped    uint64
	SkipRate   float64 // percent
	PhaseCount int
}

type StatsRepo struct {
	db       *DB
	serverID int
}

func NewStatsRepo(db *DB, serverID int) *StatsRepo {
	return &StatsRepo{db: db, serverID: serverID}
}

// SaveWindows writes a batch of windows in a single transaction.
func (r *StatsRepo) SaveWindows(ctx context.Context, rows []StatsRow) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("goal_stats begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, row := range rows {
		if _, err := tx.Exec(ctx,
			`INSERT INTO goal_stats (server_id, recorded_at, processed, skipped, skip_rate, phase_count)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			r.serverID, row.RecordedAt, int64(row.Processed), int64(row.Skipped), row.SkipRate, row.PhaseCount,
		); err != nil {
			return fmt.Errorf("goal_stats insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// WindowsSince returns this server's windows recorded at or after since,
// oldest first.
func (r *StatsRepo) WindowsSince(ctx context.Context, since time.Time) ([]StatsRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT recorded_at, processed, skipped, skip_rate, phase_count
		 FROM goal_stats WHERE server_id = $1 AND recorded_at >= $2
		 ORDER BY recorded_at`,
		r.serverID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("goal_stats query: %w", err)
	}
	defer rows.Close()

	var out []StatsRow
	for rows.Next() {
		var (
			row                StatsRow
			processed, skipped int64
		)
		if err := rows.Scan(&row.RecordedAt, &processed, &skipped, &row.SkipRate, &row.PhaseCount); err != nil {
			return nil, fmt.Errorf("goal_stats scan: %w", err)
		}
		row.Processed = uint64(processed)
		row.Skipped = uint64(skipped)
		out = append(out, row)
	}
	return out, rows.Err()
}

// Summary aggregates a run of windows.
type Summary struct {
	Windows     int       `yaml:"windows"`
	From        time.Time `yaml:"from"`
	To          time.Time `yaml:"to"`
	Processed   uint64    `yaml:"processed"`
	Skipped     uint64    `yaml:"skipped"`
	SkipRate    float64   `yaml:"skip_rate"`
	PhaseCounts []int     `yaml:"phase_counts"` // distinct, in first-seen order
}

// Summarize folds rows into one Summary. The skip rate is recomputed from the
// totals, not averaged across windows.
func Summarize(rows []StatsRow) Summary {
	var s Summary
	seen := make(map[int]bool)
	for i, r := range rows {
		if i == 0 || r.RecordedAt.Before(s.From) {
			s.From = r.RecordedAt
		}
		if i == 0 || r.RecordedAt.After(s.To) {
			s.To = r.RecordedAt
		}
		s.Processed += r.Processed
		s.Skipped += r.Skipped
		if !seen[r.PhaseCount] {
			seen[r.PhaseCount] = true
			s.PhaseCounts = append(s.PhaseCounts, r.PhaseCount)
		}
	}
	s.Windows = len(rows)
	if total := s.Processed + s.Skipped; total > 0 {
		s.SkipRate = 100 * float64(s.Skipped) / float64(total)
	}
	return s
}
