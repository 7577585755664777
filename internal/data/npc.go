package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NpcTemplate holds static data for an actor type loaded from YAML.
type NpcTemplate struct {
	NpcID     int32  `yaml:"npc_id"`
	Name      string `yaml:"name"`
	Impl      string `yaml:"impl"` // L1Monster, L1Guard, L1Player
	Level     int16  `yaml:"level"`
	HP        int32  `yaml:"hp"`
	Agro      bool   `yaml:"agro"`
	MoveSpeed int16  `yaml:"passive_speed"`
}

// SpawnEntry defines where and how many actors to spawn.
type SpawnEntry struct {
	NpcID    int32 `yaml:"npc_id"`
	MapID    int16 `yaml:"map_id"`
	X        int32 `yaml:"x"`
	Y        int32 `yaml:"y"`
	Count    int   `yaml:"count"`
	RandomX  int32 `yaml:"randomx"`
	RandomY  int32 `yaml:"randomy"`
	Heading  int16 `yaml:"heading"`
	UniqueID int64 `yaml:"unique_id"` // pinned UID for a single spawn (0 = auto); may be negative
}

type npcListFile struct {
	Npcs []NpcTemplate `yaml:"npcs"`
}

type spawnListFile struct {
	Spawns []SpawnEntry `yaml:"spawns"`
}

// NpcTable holds all NPC templates indexed by NpcID.
type NpcTable struct {
	templates map[int32]*NpcTemplate
}

// LoadNpcTable loads NPC templates from a YAML file.
func LoadNpcTable(path string) (*NpcTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read npc_list: %w", err)
	}
	var f npcListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse npc_list: %w", err)
	}
	t := &NpcTable{templates: make(map[int32]*NpcTemplate, len(f.Npcs))}
	for i := range f.Npcs {
		npc := &f.Npcs[i]
		t.templates[npc.NpcID] = npc
	}
	return t, nil
}

// Get returns an NPC template by ID, or nil if not found.
func (t *NpcTable) Get(npcID int32) *NpcTemplate {
	return t.templates[npcID]
}

// Count returns the number of loaded templates.
func (t *NpcTable) Count() int {
	return len(t.templates)
}

// LoadSpawnList loads spawn entries from a YAML file. A pinned unique_id
// only makes sense for a single actor, so it requires count <= 1.
func LoadSpawnList(path string) ([]SpawnEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn_list: %w", err)
	}
	var f spawnListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse spawn_list: %w", err)
	}
	for i, s := range f.Spawns {
		if s.UniqueID != 0 && s.Count > 1 {
			return nil, fmt.Errorf("spawn_list entry %d: unique_id %d with count %d", i, s.UniqueID, s.Count)
		}
	}
	return f.Spawns, nil
}
