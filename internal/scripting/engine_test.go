package scripting

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func writeScript(t *testing.T, dir, sub, name, body string) {
	t.Helper()
	p := filepath.Join(dir, sub)
	if err := os.MkdirAll(p, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(p, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSelectGoalParsesCommands(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "ai", "test.lua", `
function npc_ai(ctx)
  if ctx.has_target then
    return { { type = "move_toward", dir = 2 }, { type = "attack" } }
  end
  return { { type = "idle" } }
end
`)
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	cmds, err := e.SelectGoal(AIContext{Kind: "monster", HasTarget: true, TargetDist: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) != 2 || cmds[0] != (AICommand{Type: "move_toward", Dir: 2}) || cmds[1] != (AICommand{Type: "attack", Dir: -1}) {
		t.Fatalf("cmds = %+v", cmds)
	}
}

func TestSelectGoalReturnsScriptError(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "ai", "broken.lua", `
function npc_ai(ctx)
  error("no goal for you")
end
`)
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	_, err = e.SelectGoal(AIContext{})
	if err == nil || !strings.Contains(err.Error(), "no goal for you") {
		t.Fatalf("err = %v, want the script error", err)
	}
	// The VM must stay usable after a protected call fails.
	if _, err := e.SelectGoal(AIContext{}); err == nil {
		t.Fatal("second call should fail the same way")
	}
}

func TestSelectGoalWithoutScript(t *testing.T) {
	e, err := NewEngine(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	cmds, err := e.SelectGoal(AIContext{})
	if err != nil || cmds != nil {
		t.Fatalf("SelectGoal() = %v, %v; want nil, nil", cmds, err)
	}
}

func TestNewEngineRejectsBadSyntax(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "core", "bad.lua", "function (")
	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Fatal("want load error for bad syntax")
	}
}

func TestDefaultAIScript(t *testing.T) {
	e, err := NewEngine(filepath.Join("..", "..", "scripts"), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	tests := []struct {
		name string
		ctx  AIContext
		want AICommand
	}{
		{"player idles", AIContext{Kind: "player", HasTarget: true, TargetDist: 1}, AICommand{Type: "idle", Dir: -1}},
		{"adjacent target", AIContext{Kind: "monster", HasTarget: true, TargetDist: 1}, AICommand{Type: "attack", Dir: -1}},
		{"chase east", AIContext{Kind: "monster", HasTarget: true, TargetDist: 5, TargetDX: 5}, AICommand{Type: "move_toward", Dir: 2}},
		{"chase north west", AIContext{Kind: "guard", HasTarget: true, TargetDist: 3, TargetDX: -3, TargetDY: -2}, AICommand{Type: "move_toward", Dir: 7}},
		{"leashed", AIContext{Kind: "monster", HasTarget: true, TargetDist: 4, SpawnDist: 31}, AICommand{Type: "lose_aggro", Dir: -1}},
		{"guard holds", AIContext{Kind: "guard"}, AICommand{Type: "idle", Dir: -1}},
		{"keep wandering", AIContext{Kind: "monster", WanderDist: 2}, AICommand{Type: "wander", Dir: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds, err := e.SelectGoal(tt.ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(cmds) != 1 || cmds[0] != tt.want {
				t.Fatalf("cmds = %+v, want [%+v]", cmds, tt.want)
			}
		})
	}
}
