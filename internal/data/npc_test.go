package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "list.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadNpcTable(t *testing.T) {
	tbl, err := LoadNpcTable(writeFile(t, `
npcs:
  - npc_id: 45001
    name: orc
    impl: L1Monster
    level: 5
    hp: 40
    agro: true
    passive_speed: 640
  - npc_id: 70001
    name: night guard
    impl: L1Guard
    hp: 300
`))
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", tbl.Count())
	}
	orc := tbl.Get(45001)
	if orc == nil || orc.Name != "orc" || orc.MoveSpeed != 640 || !orc.Agro {
		t.Fatalf("Get(45001) = %+v", orc)
	}
	if tbl.Get(1) != nil {
		t.Fatal("Get(1) should be nil")
	}
}

func TestLoadSpawnList(t *testing.T) {
	spawns, err := LoadSpawnList(writeFile(t, `
spawns:
  - npc_id: 45001
    count: 5
  - npc_id: 70001
    unique_id: -9223372036854775807
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(spawns) != 2 || spawns[1].UniqueID != -9223372036854775807 {
		t.Fatalf("spawns = %+v", spawns)
	}
}

func TestLoadSpawnListRejectsPinnedGroup(t *testing.T) {
	_, err := LoadSpawnList(writeFile(t, `
spawns:
  - npc_id: 45001
    count: 2
    unique_id: 7
`))
	if err == nil || !strings.Contains(err.Error(), "unique_id 7") {
		t.Fatalf("err = %v, want pinned unique_id error", err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := LoadNpcTable(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing npc list accepted")
	}
	if _, err := LoadSpawnList(writeFile(t, "spawns: [")); err == nil {
		t.Fatal("malformed spawn list accepted")
	}
}

// The shipped data files must load together.
func TestShippedData(t *testing.T) {
	tbl, err := LoadNpcTable("../../data/yaml/npc_list.yaml")
	if err != nil {
		t.Fatal(err)
	}
	spawns, err := LoadSpawnList("../../data/yaml/spawn_list.yaml")
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range spawns {
		if tbl.Get(s.NpcID) == nil {
			t.Errorf("spawn references unknown npc_id %d", s.NpcID)
		}
	}
}
