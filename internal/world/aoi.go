package world

// AOIGrid implements a cell-based Area of Interest system.
// A 3x3 neighbourhood of cells covers any scan range up to cellSize.
// Accessed only from the game loop goroutine, no locks.

const cellSize = 20

type cellKey struct {
	mapID int16
	cx    int32
	cy    int32
}

func toCellCoord(v int32) int32 {
	if v < 0 {
		return (v - cellSize + 1) / cellSize
	}
	return v / cellSize
}

// AOIGrid tracks which actors are in which cells.
type AOIGrid struct {
	cells map[cellKey]map[int64]struct{} // cellKey → set of actor UIDs
}

func NewAOIGrid() *AOIGrid {
	return &AOIGrid{
		cells: make(map[cellKey]map[int64]struct{}),
	}
}

func (g *AOIGrid) key(x, y int32, mapID int16) cellKey {
	return cellKey{mapID: mapID, cx: toCellCoord(x), cy: toCellCoord(y)}
}

func (g *AOIGrid) Add(uid int64, x, y int32, mapID int16) {
	k := g.key(x, y, mapID)
	cell := g.cells[k]
	if cell == nil {
		cell = make(map[int64]struct{})
		g.cells[k] = cell
	}
	cell[uid] = struct{}{}
}

func (g *AOIGrid) Remove(uid int64, x, y int32, mapID int16) {
	k := g.key(x, y, mapID)
	cell := g.cells[k]
	if cell != nil {
		delete(cell, uid)
		if len(cell) == 0 {
			delete(g.cells, k)
		}
	}
}

// Move updates an actor's cell when its position changes.
func (g *AOIGrid) Move(uid int64, oldX, oldY, newX, newY int32, mapID int16) {
	oldK := g.key(oldX, oldY, mapID)
	newK := g.key(newX, newY, mapID)
	if oldK == newK {
		return
	}
	g.Remove(uid, oldX, oldY, mapID)
	g.Add(uid, newX, newY, mapID)
}

// GetNearbyInto appends all UIDs in the 3x3 neighbourhood around the position
// to buf[:0] and returns it. Caller does fine-grained distance filtering.
func (g *AOIGrid) GetNearbyInto(x, y int32, mapID int16, buf []int64) []int64 {
	buf = buf[:0]
	cx := toCellCoord(x)
	cy := toCellCoord(y)
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			k := cellKey{mapID: mapID, cx: cx + dx, cy: cy + dy}
			for uid := range g.cells[k] {
				buf = append(buf, uid)
			}
		}
	}
	return buf
}
