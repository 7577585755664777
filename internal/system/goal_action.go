package system

import (
	"time"

	coresys "github.com/l1jgo/goalopt/internal/core/system"
	"github.com/l1jgo/goalopt/internal/world"
)

// wanderSteps is how many tiles one wander command walks.
const wanderSteps = 4

// GoalActionSystem executes each actor's last selected goal every tick.
// Phase 3 (PostUpdate).
//
// Selection may be skipped on most ticks, acting never is: an actor whose
// selection was skipped keeps walking its previous goal.
type GoalActionSystem struct {
	world *world.State
	tick  time.Duration // server tick length, for move speed conversion
}

func NewGoalActionSystem(ws *world.State, tickRate time.Duration) *GoalActionSystem {
	return &GoalActionSystem{world: ws, tick: tickRate}
}

func (s *GoalActionSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *GoalActionSystem) Update(_ time.Duration) {
	s.world.Each(func(a *world.Actor) {
		if a.HP <= 0 || a.Kind == world.KindPlayer {
			return
		}
		if a.MoveTimer > 0 {
			a.MoveTimer--
		}
		for _, step := range a.Goal {
			s.apply(a, step)
		}
	})
}

func (s *GoalActionSystem) apply(a *world.Actor, step world.GoalStep) {
	switch step.Type {
	case "move_toward":
		if a.MoveTimer > 0 || step.Dir < 0 {
			return
		}
		x, y := world.Step(a.X, a.Y, int16(step.Dir))
		s.world.MoveActor(a, x, y, int16(step.Dir))
		a.MoveTimer = s.moveTicks(a)
	case "wander":
		if a.WanderDist == 0 {
			if step.Dir < 0 {
				return
			}
			a.WanderDir = int16(step.Dir)
			a.WanderDist = wanderSteps
		}
		if a.MoveTimer > 0 {
			return
		}
		x, y := world.Step(a.X, a.Y, a.WanderDir)
		s.world.MoveActor(a, x, y, a.WanderDir)
		a.WanderDist--
		a.MoveTimer = s.moveTicks(a)
	case "attack":
		if t := s.world.Get(a.AggroTarget); t != nil {
			a.Heading = headingToward(t.X-a.X, t.Y-a.Y, a.Heading)
		}
	case "lose_aggro":
		a.AggroTarget = 0
		a.WanderDist = 0
	}
}

// moveTicks converts the actor's move speed (ms per step) to ticks, at least 1.
func (s *GoalActionSystem) moveTicks(a *world.Actor) int {
	ms := time.Duration(a.MoveSpeed) * time.Millisecond
	if ms <= 0 || s.tick <= 0 {
		return 1
	}
	n := int(ms / s.tick)
	if n < 1 {
		n = 1
	}
	return n
}

// headingToward returns the heading pointing along (dx, dy), or cur for (0, 0).
func headingToward(dx, dy int32, cur int16) int16 {
	for h := int16(0); h < 8; h++ {
		x, y := world.Step(0, 0, h)
		if x == sign(dx) && y == sign(dy) {
			return h
		}
	}
	return cur
}

func sign(v int32) int32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
