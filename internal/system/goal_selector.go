package system

import (
	"time"

	coresys "github.com/l1jgo/goalopt/internal/core/system"
	"github.com/l1jgo/goalopt/internal/optimizer"
	"github.com/l1jgo/goalopt/internal/scripting"
	"github.com/l1jgo/goalopt/internal/world"
	"go.uber.org/zap"
)

// aggroRange is the Chebyshev distance at which agro actors pick up players.
const aggroRange = 8

// GoalScript selects a goal for one actor. *scripting.Engine implements it.
type GoalScript interface {
	SelectGoal(ctx scripting.AIContext) ([]scripting.AICommand, error)
}

// GoalSelectorSystem re-evaluates every actor's goal each tick: Go handles
// target detection, Lua handles the decision. Phase 2 (Update).
//
// It is the optimizer's hook: while an Interceptor is installed each actor's
// selection goes through it, and the interceptor decides whether it runs.
type GoalSelectorSystem struct {
	world  *world.State
	script GoalScript
	clock  coresys.Clock
	log    *zap.Logger

	interceptor optimizer.Interceptor
	failures    uint64
}

func NewGoalSelectorSystem(ws *world.State, script GoalScript, clock coresys.Clock, log *zap.Logger) *GoalSelectorSystem {
	return &GoalSelectorSystem{world: ws, script: script, clock: clock, log: log}
}

func (s *GoalSelectorSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

// Install routes goal selection through i until Uninstall.
func (s *GoalSelectorSystem) Install(i optimizer.Interceptor) { s.interceptor = i }
func (s *GoalSelectorSystem) Uninstall()                      { s.interceptor = nil }

// Failures counts goal selections whose script returned an error.
func (s *GoalSelectorSystem) Failures() uint64 { return s.failures }

func (s *GoalSelectorSystem) Update(_ time.Duration) {
	tick := s.clock.TickID()
	s.world.Each(func(a *world.Actor) {
		if a.HP <= 0 {
			return
		}
		var err error
		if s.interceptor != nil {
			err = s.interceptor.Intercept(a, tick, func() error {
				return s.selectGoal(a, tick)
			})
		} else {
			err = s.selectGoal(a, tick)
		}
		if err != nil {
			s.failures++
			s.log.Error("goal selection failed",
				zap.Int64("uid", a.UID),
				zap.String("name", a.Name),
				zap.Error(err))
		}
	})
}

// selectGoal is the expensive per-actor routine the optimizer throttles.
func (s *GoalSelectorSystem) selectGoal(a *world.Actor, tick uint64) error {
	target := s.detectTarget(a)

	ctx := scripting.AIContext{
		Tick:       tick,
		Kind:       a.Kind.String(),
		Level:      int(a.Level),
		HP:         int(a.HP),
		MaxHP:      int(a.MaxHP),
		Agro:       a.Agro,
		CanMove:    a.MoveTimer == 0,
		WanderDist: a.WanderDist,
		SpawnDist:  int(world.Chebyshev(a.X, a.Y, a.SpawnX, a.SpawnY)),
	}
	if target != nil {
		ctx.HasTarget = true
		ctx.TargetDist = int(world.Chebyshev(a.X, a.Y, target.X, target.Y))
		ctx.TargetDX = int(target.X - a.X)
		ctx.TargetDY = int(target.Y - a.Y)
	}

	cmds, err := s.script.SelectGoal(ctx)
	if err != nil {
		return err
	}

	goal := make([]world.GoalStep, 0, len(cmds))
	for _, c := range cmds {
		goal = append(goal, world.GoalStep{Type: c.Type, Dir: c.Dir})
	}
	a.Goal = goal
	a.GoalTick = tick
	return nil
}

// detectTarget validates the current aggro target or scans for a new one.
// Player-controlled actors never acquire targets.
func (s *GoalSelectorSystem) detectTarget(a *world.Actor) *world.Actor {
	if a.Kind == world.KindPlayer {
		return nil
	}
	var target *world.Actor
	if a.AggroTarget != 0 {
		target = s.world.Get(a.AggroTarget)
		if target == nil || target.HP <= 0 || target.MapID != a.MapID {
			a.AggroTarget = 0
			target = nil
		}
	}
	if target == nil && (a.Agro || a.Kind == world.KindGuard) {
		target = s.world.NearestPlayer(a.X, a.Y, a.MapID, aggroRange)
		if target != nil {
			a.AggroTarget = target.UID
			a.MoveTimer = 0 // snap out of wander, react immediately
			a.WanderDist = 0
		}
	}
	return target
}
