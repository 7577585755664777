package optimizer

// Entity is the read-only view of a host entity the optimizer needs.
type Entity interface {
	UniqueID() int64
	// Privileged entities (player-controlled) are never throttled.
	Privileged() bool
}

// Interceptor wraps one per-entity goal evaluation. original is the host's
// routine; its error is returned unchanged.
type Interceptor interface {
	Intercept(e Entity, tick uint64, original func() error) error
}

// Hook is the host extension point that routes its per-entity goal routine
// through an Interceptor while installed.
type Hook interface {
	Install(i Interceptor)
	Uninstall()
}

// Intercept decides whether original runs this tick. A suppressed entity keeps
// acting on its last selected goal until its phase comes around again, at
// most PhaseCount-1 ticks later.
func (o *Optimizer) Intercept(e Entity, tick uint64, original func() error) error {
	if !o.cfg.Enabled {
		return original()
	}
	if e.Privileged() {
		o.stats.incProcessed()
		return original()
	}
	if !o.sched.ShouldRun(tick, e.UniqueID()) {
		o.stats.incSkipped()
		return nil
	}
	o.stats.incProcessed()
	return original()
}
