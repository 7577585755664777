package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/l1jgo/goalopt/internal/persist"
	"gopkg.in/yaml.v3"
)

func TestExportDocRoundTripsThroughYAML(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []persist.StatsRow{{RecordedAt: at, Processed: 25, Skipped: 75, SkipRate: 75, PhaseCount: 4}}

	var buf bytes.Buffer
	if err := writeYAML(&buf, exportDoc(rows, 3)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "phase_count: 4") {
		t.Fatalf("yaml missing phase_count:\n%s", buf.String())
	}

	var got exportYAML
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.ServerID != 3 || len(got.Windows) != 1 || !got.Windows[0].RecordedAt.Equal(at) || got.Windows[0].Skipped != 75 {
		t.Fatalf("decoded = %+v", got)
	}
}

func TestExportDocEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := writeYAML(&buf, exportDoc(nil, 1)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "windows: []") {
		t.Fatalf("empty export = %q", buf.String())
	}
}
