package persist

import (
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	base := time.Unix(1700000000, 0)
	rows := []StatsRow{
		{RecordedAt: base.Add(5 * time.Second), Processed: 10, Skipped: 30, PhaseCount: 4},
		{RecordedAt: base, Processed: 50, Skipped: 0, PhaseCount: 1},
		{RecordedAt: base.Add(10 * time.Second), Processed: 20, Skipped: 60, PhaseCount: 4},
	}
	s := Summarize(rows)
	if s.Windows != 3 || s.Processed != 80 || s.Skipped != 90 {
		t.Fatalf("Summarize = %+v", s)
	}
	if !s.From.Equal(base) || !s.To.Equal(base.Add(10*time.Second)) {
		t.Fatalf("range = %v..%v", s.From, s.To)
	}
	if want := 100 * 90.0 / 170.0; s.SkipRate != want {
		t.Fatalf("SkipRate = %v, want %v", s.SkipRate, want)
	}
	if len(s.PhaseCounts) != 2 || s.PhaseCounts[0] != 4 || s.PhaseCounts[1] != 1 {
		t.Fatalf("PhaseCounts = %v", s.PhaseCounts)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Windows != 0 || s.SkipRate != 0 || !s.From.IsZero() {
		t.Fatalf("Summarize(nil) = %+v", s)
	}
}
