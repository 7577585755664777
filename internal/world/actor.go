package world

import "sync/atomic"

// uniqueIDCounter generates actor unique IDs for spawns without a pinned ID.
// Starts at 200_000_000 like the old NPC object IDs.
var uniqueIDCounter atomic.Int64

func init() {
	uniqueIDCounter.Store(200_000_000)
}

// NextUniqueID returns a fresh actor unique ID.
func NextUniqueID() int64 {
	return uniqueIDCounter.Add(1)
}

// Kind separates player-controlled actors from AI-driven ones.
type Kind uint8

const (
	KindMonster Kind = iota // L1Monster: agro / wander AI
	KindGuard               // L1Guard: holds position, chases nearby players
	KindPlayer              // player-controlled, never throttled
)

// ParseKind maps a template impl string to a Kind. Unknown impls are monsters.
func ParseKind(impl string) Kind {
	switch impl {
	case "L1Guard":
		return KindGuard
	case "L1Player", "L1Pc":
		return KindPlayer
	default:
		return KindMonster
	}
}

func (k Kind) String() string {
	switch k {
	case KindGuard:
		return "guard"
	case KindPlayer:
		return "player"
	default:
		return "monster"
	}
}

// GoalStep is one action of a selected goal, as returned by the AI script.
type GoalStep struct {
	Type string // "move_toward", "wander", "attack", "lose_aggro", "idle"
	Dir  int    // heading 0-7 for wander (-1 = keep current)
}

// Actor holds runtime data for one AI-driven entity in-world.
// Accessed only from the game loop goroutine, no locks.
type Actor struct {
	UID        int64 // unique ID, may be negative when pinned by the spawn list
	TemplateID int32
	Name       string
	Kind       Kind
	Level      int16
	X          int32
	Y          int32
	MapID      int16
	Heading    int16
	HP         int32
	MaxHP      int32
	Agro       bool  // true = aggressive, chases players on sight
	MoveSpeed  int16 // ms per step (0 = default)

	SpawnX int32
	SpawnY int32

	// AI state
	AggroTarget int64 // UID of chased player (0 = none)
	MoveTimer   int   // ticks until next step
	WanderDist  int   // remaining tiles in current wander direction
	WanderDir   int16 // current wander heading (0-7)

	// Goal is the last selected goal. GoalActionSystem keeps executing it
	// every tick, also on ticks where selection itself was skipped.
	Goal     []GoalStep
	GoalTick uint64 // tick of the last goal selection (0 = never)
}

// UniqueID and Privileged make Actor an optimizer.Entity.
func (a *Actor) UniqueID() int64  { return a.UID }
func (a *Actor) Privileged() bool { return a.Kind == KindPlayer }

var headingDX = [8]int32{0, 1, 1, 1, 0, -1, -1, -1}
var headingDY = [8]int32{-1, -1, 0, 1, 1, 1, 0, -1}

// Step returns the tile one step from (x, y) along heading. An out of range
// heading stays in place.
func Step(x, y int32, heading int16) (int32, int32) {
	if heading < 0 || heading > 7 {
		return x, y
	}
	return x + headingDX[heading], y + headingDY[heading]
}
