package world

import "fmt"

// State tracks all actors currently in-world.
// Single-goroutine access only (game loop).
type State struct {
	actors    map[int64]*Actor // UID → Actor
	actorList []*Actor         // all actors in spawn order (for tick iteration)
	players   *AOIGrid         // player-controlled actors only, for aggro scans

	// 可重用 AOI 查詢 buffer（遊戲迴圈單線程，無需鎖）
	aoiBuf []int64
}

func NewState() *State {
	return &State{
		actors:  make(map[int64]*Actor),
		players: NewAOIGrid(),
	}
}

// Add registers an actor. A UID already in use is rejected.
func (s *State) Add(a *Actor) error {
	if _, ok := s.actors[a.UID]; ok {
		return fmt.Errorf("actor uid %d already in world", a.UID)
	}
	s.actors[a.UID] = a
	s.actorList = append(s.actorList, a)
	if a.Kind == KindPlayer {
		s.players.Add(a.UID, a.X, a.Y, a.MapID)
	}
	return nil
}

// Remove takes an actor out of the world and returns it, or nil if unknown.
func (s *State) Remove(uid int64) *Actor {
	a, ok := s.actors[uid]
	if !ok {
		return nil
	}
	delete(s.actors, uid)
	for i, x := range s.actorList {
		if x == a {
			s.actorList = append(s.actorList[:i], s.actorList[i+1:]...)
			break
		}
	}
	if a.Kind == KindPlayer {
		s.players.Remove(a.UID, a.X, a.Y, a.MapID)
	}
	return a
}

func (s *State) Get(uid int64) *Actor {
	return s.actors[uid]
}

// Each visits actors in spawn order.
func (s *State) Each(fn func(*Actor)) {
	for _, a := range s.actorList {
		fn(a)
	}
}

func (s *State) Count() int {
	return len(s.actorList)
}

// MoveActor updates an actor's position and its AOI cell.
func (s *State) MoveActor(a *Actor, newX, newY int32, heading int16) {
	if a.Kind == KindPlayer {
		s.players.Move(a.UID, a.X, a.Y, newX, newY, a.MapID)
	}
	a.X = newX
	a.Y = newY
	a.Heading = heading
}

// NearestPlayer returns the closest player-controlled actor within maxDist
// (Chebyshev) of the position, or nil. Ties go to the lower UID.
func (s *State) NearestPlayer(x, y int32, mapID int16, maxDist int32) *Actor {
	s.aoiBuf = s.players.GetNearbyInto(x, y, mapID, s.aoiBuf)
	var best *Actor
	bestDist := maxDist + 1
	for _, uid := range s.aoiBuf {
		p := s.actors[uid]
		if p == nil || p.HP <= 0 {
			continue
		}
		d := Chebyshev(x, y, p.X, p.Y)
		if d < bestDist || (d == bestDist && best != nil && p.UID < best.UID) {
			bestDist = d
			best = p
		}
	}
	return best
}

// Chebyshev returns the tile distance between two points.
func Chebyshev(x1, y1, x2, y2 int32) int32 {
	dx := x1 - x2
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y2
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
