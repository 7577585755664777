package system

import (
	"testing"
	"time"

	"github.com/l1jgo/goalopt/internal/world"
)

func TestGoalActionKeepsWalkingStaleGoal(t *testing.T) {
	orc := &world.Actor{UID: 1, Kind: world.KindMonster, HP: 10, X: 10, Y: 10}
	orc.Goal = []world.GoalStep{{Type: "wander", Dir: 2}} // east
	ws := newWorld(t, orc)
	sys := NewGoalActionSystem(ws, 50*time.Millisecond)

	// No selection happens between these ticks; the goal is replayed and a
	// finished wander leg starts over along the same heading.
	for i := 0; i < wanderSteps+2; i++ {
		sys.Update(50 * time.Millisecond)
	}
	if want := int32(10 + wanderSteps + 2); orc.X != want || orc.Y != 10 {
		t.Fatalf("position = (%d,%d), want (%d,10)", orc.X, orc.Y, want)
	}
	if orc.WanderDist != wanderSteps-2 {
		t.Fatalf("WanderDist = %d, want %d", orc.WanderDist, wanderSteps-2)
	}
}

func TestGoalActionMoveSpeed(t *testing.T) {
	wolf := &world.Actor{UID: 1, Kind: world.KindMonster, HP: 10, MoveSpeed: 200}
	wolf.Goal = []world.GoalStep{{Type: "move_toward", Dir: 4}} // south
	ws := newWorld(t, wolf)
	sys := NewGoalActionSystem(ws, 50*time.Millisecond)

	// 200ms per step at 50ms ticks: one step every 4 ticks.
	for i := 0; i < 8; i++ {
		sys.Update(50 * time.Millisecond)
	}
	if wolf.Y != 2 {
		t.Fatalf("Y = %d after 8 ticks, want 2", wolf.Y)
	}
}

func TestGoalActionAttackFacesTarget(t *testing.T) {
	orc := &world.Actor{UID: 1, Kind: world.KindMonster, HP: 10, X: 5, Y: 5, AggroTarget: 2}
	orc.Goal = []world.GoalStep{{Type: "attack", Dir: -1}}
	pc := &world.Actor{UID: 2, Kind: world.KindPlayer, HP: 10, X: 4, Y: 6}
	ws := newWorld(t, orc, pc)

	NewGoalActionSystem(ws, 50*time.Millisecond).Update(0)

	if orc.Heading != 5 { // south-west
		t.Fatalf("Heading = %d, want 5", orc.Heading)
	}
	if orc.X != 5 || orc.Y != 5 {
		t.Fatal("attack must not move the actor")
	}
}

func TestGoalActionLoseAggro(t *testing.T) {
	orc := &world.Actor{UID: 1, Kind: world.KindMonster, HP: 10, AggroTarget: 9, WanderDist: 3}
	orc.Goal = []world.GoalStep{{Type: "lose_aggro", Dir: -1}}
	ws := newWorld(t, orc)

	NewGoalActionSystem(ws, 50*time.Millisecond).Update(0)

	if orc.AggroTarget != 0 || orc.WanderDist != 0 {
		t.Fatalf("AggroTarget=%d WanderDist=%d, want both 0", orc.AggroTarget, orc.WanderDist)
	}
}

func TestGoalActionSkipsPlayers(t *testing.T) {
	pc := &world.Actor{UID: 1, Kind: world.KindPlayer, HP: 10}
	pc.Goal = []world.GoalStep{{Type: "move_toward", Dir: 2}}
	ws := newWorld(t, pc)

	NewGoalActionSystem(ws, 50*time.Millisecond).Update(0)

	if pc.X != 0 {
		t.Fatalf("player moved to X=%d", pc.X)
	}
}
