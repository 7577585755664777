package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for AI goal selection.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// Core helpers first, then the AI scripts that use them
	for _, sub := range []string{"core", "ai"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// --- AI Goal Bridge ---

// AIContext holds pre-packed data for one goal selection.
type AIContext struct {
	Tick      uint64
	Kind      string // "monster", "guard", "player"
	Level     int
	HP, MaxHP int
	Agro      bool

	// Target (detected by Go)
	HasTarget  bool
	TargetDist int // Chebyshev distance
	TargetDX   int // target.X - self.X
	TargetDY   int // target.Y - self.Y

	CanMove    bool
	WanderDist int
	SpawnDist  int // distance from spawn point
}

// AICommand is a single action returned by Lua AI.
type AICommand struct {
	Type string // "attack", "move_toward", "wander", "lose_aggro", "idle"
	Dir  int    // heading 0-7 for wander (-1 = continue current)
}

// SelectGoal calls Lua npc_ai(ctx) and returns the selected commands.
// A script error is returned as is; a missing npc_ai means idle.
func (e *Engine) SelectGoal(ctx AIContext) ([]AICommand, error) {
	fn := e.vm.GetGlobal("npc_ai")
	if fn == lua.LNil {
		return nil, nil
	}

	// Build context table
	t := e.vm.NewTable()
	t.RawSetString("tick", lua.LNumber(ctx.Tick))
	t.RawSetString("kind", lua.LString(ctx.Kind))
	t.RawSetString("level", lua.LNumber(ctx.Level))
	t.RawSetString("hp", lua.LNumber(ctx.HP))
	t.RawSetString("max_hp", lua.LNumber(ctx.MaxHP))
	t.RawSetString("agro", lua.LBool(ctx.Agro))
	t.RawSetString("has_target", lua.LBool(ctx.HasTarget))
	t.RawSetString("target_dist", lua.LNumber(ctx.TargetDist))
	t.RawSetString("target_dx", lua.LNumber(ctx.TargetDX))
	t.RawSetString("target_dy", lua.LNumber(ctx.TargetDY))
	t.RawSetString("can_move", lua.LBool(ctx.CanMove))
	t.RawSetString("wander_dist", lua.LNumber(ctx.WanderDist))
	t.RawSetString("spawn_dist", lua.LNumber(ctx.SpawnDist))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		return nil, fmt.Errorf("lua npc_ai: %w", err)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return nil, nil
	}

	// Parse commands array
	var cmds []AICommand
	rt.ForEach(func(_, v lua.LValue) {
		if row, ok := v.(*lua.LTable); ok {
			cmd := AICommand{Type: lStr(row, "type"), Dir: -1}
			if d, ok := row.RawGetString("dir").(lua.LNumber); ok {
				cmd.Dir = int(d)
			}
			cmds = append(cmds, cmd)
		}
	})
	return cmds, nil
}

// lStr reads a string field from a Lua table.
func lStr(t *lua.LTable, key string) string {
	return lua.LVAsString(t.RawGetString(key))
}
