// Package optimizer throttles per-entity AI goal selection by spreading it
// across ticks: each entity evaluates its goals only on ticks whose phase
// (tick % PhaseCount) matches its own (uniqueID % PhaseCount).
//
// Everything except the Reporter's sleep loop runs on the game loop goroutine.
package optimizer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/l1jgo/goalopt/internal/config"
	"go.uber.org/zap"
)

// Sink receives every reported window, on the game loop goroutine.
type Sink interface {
	Record(w Window, phaseCount int, at time.Time)
}

type Option func(*Optimizer)

// WithSink adds a destination for reported windows besides the log.
func WithSink(s Sink) Option {
	return func(o *Optimizer) { o.sink = s }
}

// WithReportInterval overrides DefaultReportInterval.
func WithReportInterval(d time.Duration) Option {
	return func(o *Optimizer) { o.interval = d }
}

// Optimizer owns all goal optimizer state for one load/enable/disable
// lifetime: config, tick cache, stats, reporter and the hook flag.
type Optimizer struct {
	hook     Hook
	log      *zap.Logger
	sink     Sink
	interval time.Duration

	cfgPath   string
	cfg       config.GoalConfig
	sched     *PhaseScheduler
	stats     Stats
	reporter  *Reporter
	installed bool
}

func New(hook Hook, exec Executor, log *zap.Logger, opts ...Option) *Optimizer {
	o := &Optimizer{
		hook:     hook,
		log:      log.Named("goal_optimizer"),
		interval: DefaultReportInterval,
		cfg:      config.DefaultGoalConfig(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.sched = NewPhaseScheduler(o.cfg.PhaseCount)
	o.reporter = NewReporter(exec, o.interval, o.report)
	return o
}

// Load creates the install directory and loads the goal config from it. A
// missing or corrupt document is replaced with defaults; only a failure to
// create the directory is returned.
func (o *Optimizer) Load(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create optimizer dir %s: %w", dir, err)
	}
	o.cfgPath = filepath.Join(dir, config.GoalFileName)

	cfg, err := config.LoadGoal(o.cfgPath)
	if err != nil {
		o.log.Warn("failed to load config, using defaults and saving", zap.Error(err))
		if err := config.SaveGoal(o.cfgPath, cfg); err != nil {
			o.log.Warn("failed to save default config", zap.Error(err))
		}
	}
	o.setConfig(cfg)

	o.log.Info("goal optimizer loaded",
		zap.Bool("enabled", o.cfg.Enabled),
		zap.Bool("debug", o.cfg.Debug),
		zap.Int("phase_count", o.cfg.PhaseCount),
	)
	return nil
}

// Reload re-reads the config document written by Load. An unreadable
// document keeps the current config.
func (o *Optimizer) Reload() error {
	if o.cfgPath == "" {
		return fmt.Errorf("reload goal config: not loaded")
	}
	cfg, err := config.LoadGoal(o.cfgPath)
	if err != nil {
		return fmt.Errorf("reload goal config: %w", err)
	}
	o.Reconfigure(cfg)
	return nil
}

// Reconfigure swaps the config at runtime. A phase count change drops the
// tick cache; the reporter follows Debug while the hook is installed.
func (o *Optimizer) Reconfigure(cfg config.GoalConfig) {
	o.setConfig(cfg)
	if o.installed {
		if o.cfg.Debug {
			o.reporter.Start()
		} else {
			o.reporter.Stop()
		}
	}
	o.log.Info("goal optimizer reconfigured",
		zap.Bool("enabled", o.cfg.Enabled),
		zap.Bool("debug", o.cfg.Debug),
		zap.Int("phase_count", o.cfg.PhaseCount),
	)
}

func (o *Optimizer) setConfig(cfg config.GoalConfig) {
	cfg = cfg.Clamp()
	if cfg.PhaseCount != o.sched.PhaseCount() {
		o.sched = NewPhaseScheduler(cfg.PhaseCount)
	}
	o.cfg = cfg
}

// Enable installs the hook once and starts the reporter when Debug is set.
func (o *Optimizer) Enable() {
	if !o.installed {
		o.hook.Install(o)
		o.installed = true
	}
	if o.cfg.Debug {
		o.reporter.Start()
	}
	o.log.Info("goal optimizer enabled")
}

// Disable stops the reporter, removes the hook and zeroes tick and stats state.
func (o *Optimizer) Disable() {
	o.reporter.Stop()
	if o.installed {
		o.hook.Uninstall()
		o.installed = false
		o.sched.Reset()
		o.stats.Reset()
	}
	o.log.Info("goal optimizer disabled")
}

func (o *Optimizer) Config() config.GoalConfig { return o.cfg }
func (o *Optimizer) Stats() Window             { return o.stats.Snapshot() }
func (o *Optimizer) TickState() TickState      { return o.sched.State() }
func (o *Optimizer) Installed() bool           { return o.installed }
func (o *Optimizer) Reporting() bool           { return o.reporter.Running() }

// report runs on the game loop goroutine, posted by the Reporter.
func (o *Optimizer) report() {
	if !o.cfg.Debug {
		return
	}
	w := o.stats.Snapshot()
	o.log.Info("goal stats",
		zap.Duration("window", o.interval),
		zap.Uint64("processed", w.Processed),
		zap.Uint64("skipped", w.Skipped),
		zap.String("skip_rate", fmt.Sprintf("%.1f%%", w.SkipRate())),
		zap.Int("phase_count", o.cfg.PhaseCount),
	)
	if o.sink != nil {
		o.sink.Record(w, o.cfg.PhaseCount, time.Now())
	}
	o.stats.Reset()
}
