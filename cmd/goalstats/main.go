// goalstats reads persisted goal optimizer windows from the stats database.
//
// Usage:
//
//	go run ./cmd/goalstats <command> [-config path] [-since 1h] [-out file]
//
// Commands: export (all windows as YAML), summary (one aggregate as YAML)
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/l1jgo/goalopt/internal/config"
	"github.com/l1jgo/goalopt/internal/persist"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type windowYAML struct {
	RecordedAt time.Time `yaml:"recorded_at"`
	Processed  uint64    `yaml:"processed"`
	Skipped    uint64    `yaml:"skipped"`
	SkipRate   float64   `yaml:"skip_rate"`
	PhaseCount int       `yaml:"phase_count"`
}

type exportYAML struct {
	ServerID int          `yaml:"server_id"`
	Windows  []windowYAML `yaml:"windows"`
}

func printUsage() {
	fmt.Println("Usage: goalstats <command> [-config path] [-since 1h] [-out file]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  export    dump every window recorded since -since")
	fmt.Println("  summary   aggregate the same windows into one record")
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if cmd == "-h" || cmd == "--help" || cmd == "help" {
		printUsage()
		return
	}

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	cfgPath := fs.String("config", "config/server.toml", "server config file")
	since := fs.Duration("since", time.Hour, "how far back to read")
	outPath := fs.String("out", "", "output file (default stdout)")
	_ = fs.Parse(os.Args[2:])

	commands := map[string]func(rows []persist.StatsRow, serverID int) any{
		"export":  exportDoc,
		"summary": func(rows []persist.StatsRow, _ int) any { return persist.Summarize(rows) },
	}
	build, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err := run(*cfgPath, *since, *outPath, build); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR [%s]: %v\n", cmd, err)
		os.Exit(1)
	}
}

func run(cfgPath string, since time.Duration, outPath string, build func([]persist.StatsRow, int) any) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.Database.Enabled {
		return fmt.Errorf("database disabled in %s", cfgPath)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, zap.NewNop())
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := persist.NewStatsRepo(db, cfg.Server.ID).WindowsSince(ctx, time.Now().Add(-since))
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()
		out = f
	}
	return writeYAML(out, build(rows, cfg.Server.ID))
}

func exportDoc(rows []persist.StatsRow, serverID int) any {
	doc := exportYAML{ServerID: serverID, Windows: make([]windowYAML, 0, len(rows))}
	for _, r := range rows {
		doc.Windows = append(doc.Windows, windowYAML(r))
	}
	return doc
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
