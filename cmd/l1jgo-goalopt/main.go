package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/l1jgo/goalopt/internal/config"
	coresys "github.com/l1jgo/goalopt/internal/core/system"
	"github.com/l1jgo/goalopt/internal/data"
	"github.com/l1jgo/goalopt/internal/optimizer"
	"github.com/l1jgo/goalopt/internal/persist"
	"github.com/l1jgo/goalopt/internal/scripting"
	"github.com/l1jgo/goalopt/internal/system"
	"github.com/l1jgo/goalopt/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName string, serverID int) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        L1JGO-Whale  goal optimizer        \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mserver:\033[0m %s \033[90m(id: %d)\033[0m\n\n", serverName, serverID)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("L1JGO_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name, cfg.Server.ID)

	// 3. Optional stats database
	statsBuf := persist.NewStatsBuffer()
	var statsRepo *persist.StatsRepo
	if cfg.Database.Enabled {
		printSection("database")
		db, err := openStatsDB(cfg, log)
		if err != nil {
			// Stats persistence is optional: keep logging windows only.
			log.Warn("stats database unavailable, windows are only logged", zap.Error(err))
		} else {
			defer db.Close()
			statsRepo = persist.NewStatsRepo(db, cfg.Server.ID)
			printOK("PostgreSQL connected, goal_stats migrated")
		}
		fmt.Println()
	}

	// 4. Load data and spawn actors
	printSection("data")
	npcTable, err := data.LoadNpcTable(cfg.Data.NpcList)
	if err != nil {
		return fmt.Errorf("load npc table: %w", err)
	}
	printStat("npc templates", npcTable.Count())

	spawnList, err := data.LoadSpawnList(cfg.Data.SpawnList)
	if err != nil {
		return fmt.Errorf("load spawn list: %w", err)
	}
	worldState := world.NewState()
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	printStat("actors spawned", system.SpawnActors(worldState, npcTable, spawnList, rnd, log))

	luaEngine, err := scripting.NewEngine(cfg.Scripts.Dir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	printOK("Lua AI scripts loaded")
	fmt.Println()

	// 5. Systems
	queue := coresys.NewWorkQueue(cfg.Network.WorkQueueSize)
	runner := coresys.NewRunner(queue)
	goalSys := system.NewGoalSelectorSystem(worldState, luaEngine, runner, log)
	runner.Register(goalSys)
	runner.Register(system.NewGoalActionSystem(worldState, cfg.Network.TickRate))
	var persistSys *system.PersistenceSystem
	if statsRepo != nil {
		persistSys = system.NewPersistenceSystem(statsBuf, statsRepo, log, cfg.Network.PersistEvery)
		runner.Register(persistSys)
	}

	// 6. Goal optimizer: load (seed config) then enable
	var opts []optimizer.Option
	if persistSys != nil {
		opts = append(opts, optimizer.WithSink(statsBuf))
	}
	opt := optimizer.New(goalSys, queue, log, opts...)
	if err := opt.Load(cfg.Optimizer.Dir); err != nil {
		return fmt.Errorf("goal optimizer: %w", err)
	}
	opt.Enable()

	// 7. Start game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	reloadCh := make(chan os.Signal, 1)
	signal.Notify(reloadCh, syscall.SIGHUP, syscall.SIGUSR1)

	ticker := time.NewTicker(cfg.Network.TickRate)
	defer ticker.Stop()

	printSection("ready")
	printReady(fmt.Sprintf("game loop running (tick: %s)", cfg.Network.TickRate))
	printReady("SIGHUP reloads goal optimizer config, SIGUSR1 toggles it")
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Network.TickRate)
		case sig := <-reloadCh:
			// Lifecycle calls run here on the game loop goroutine, between ticks.
			switch sig {
			case syscall.SIGHUP:
				if err := opt.Reload(); err != nil {
					log.Warn("goal optimizer reload failed, keeping current config", zap.Error(err))
				}
			case syscall.SIGUSR1:
				if opt.Installed() {
					opt.Disable()
				} else {
					opt.Enable()
				}
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			opt.Disable()
			if persistSys != nil {
				persistSys.Flush()
			}
			if n := queue.Dropped(); n > 0 {
				log.Warn("work queue dropped jobs", zap.Uint64("dropped", n))
			}
			log.Info("server stopped",
				zap.Uint64("ticks", runner.TickID()),
				zap.Uint64("goal_failures", goalSys.Failures()))
			return nil
		}
	}
}

func openStatsDB(cfg *config.Config, log *zap.Logger) (*persist.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return db, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
