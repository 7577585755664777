package system

import (
	"math/rand"

	"github.com/l1jgo/goalopt/internal/data"
	"github.com/l1jgo/goalopt/internal/world"
	"go.uber.org/zap"
)

// SpawnActors creates actors from the spawn list and adds them to world state.
// Entries with a pinned unique_id keep it; all others get NextUniqueID.
func SpawnActors(ws *world.State, npcTable *data.NpcTable, spawns []data.SpawnEntry, rnd *rand.Rand, log *zap.Logger) int {
	total := 0
	for _, spawn := range spawns {
		tmpl := npcTable.Get(spawn.NpcID)
		if tmpl == nil {
			log.Warn("spawn: unknown npc id", zap.Int32("npc_id", spawn.NpcID))
			continue
		}
		count := spawn.Count
		if count < 1 {
			count = 1
		}
		for i := 0; i < count; i++ {
			x := spawn.X
			y := spawn.Y
			if spawn.RandomX > 0 {
				x += int32(rnd.Intn(int(spawn.RandomX*2+1))) - spawn.RandomX
			}
			if spawn.RandomY > 0 {
				y += int32(rnd.Intn(int(spawn.RandomY*2+1))) - spawn.RandomY
			}

			uid := spawn.UniqueID
			if uid == 0 {
				uid = world.NextUniqueID()
			}
			a := &world.Actor{
				UID:        uid,
				TemplateID: tmpl.NpcID,
				Name:       tmpl.Name,
				Kind:       world.ParseKind(tmpl.Impl),
				Level:      tmpl.Level,
				X:          x,
				Y:          y,
				MapID:      spawn.MapID,
				Heading:    spawn.Heading,
				HP:         tmpl.HP,
				MaxHP:      tmpl.HP,
				Agro:       tmpl.Agro,
				MoveSpeed:  tmpl.MoveSpeed,
				SpawnX:     x,
				SpawnY:     y,
			}
			if err := ws.Add(a); err != nil {
				log.Warn("spawn: rejected", zap.Int32("npc_id", spawn.NpcID), zap.Error(err))
				continue
			}
			total++
		}
	}
	return total
}
