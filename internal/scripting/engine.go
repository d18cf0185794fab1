// Package scripting hosts the Lua side of zombie AI. Go owns sensing and
// command execution; Lua owns the decision. A missing or broken script falls
// back to the built-in policy, so the simulation never depends on Lua being
// healthy.
package scripting

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/bridgefall/server/internal/world"
)

//go:embed scripts/zombie.lua
var defaultZombieScript string

// Engine wraps a single gopher-lua VM. Single-goroutine access only
// (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine with the embedded default scripts loaded.
func NewEngine(log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := vm.DoString(defaultZombieScript); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load embedded ai script: %w", err)
	}
	return e, nil
}

// LoadDir overlays all .lua files from a directory, letting operators
// replace the embedded decision logic without a rebuild. A missing
// directory is not an error.
func (e *Engine) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
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

func (e *Engine) Close() {
	e.vm.Close()
}

// Decide implements world.Brain by calling the Lua decide_zombie function.
// Any failure degrades to the built-in policy.
func (e *Engine) Decide(s world.ZombieSense) world.ZombieDecision {
	fn := e.vm.GetGlobal("decide_zombie")
	if fn == lua.LNil {
		e.log.Error("lua function decide_zombie not found")
		return world.DefaultDecision(s)
	}

	t := e.vm.NewTable()
	t.RawSetString("kind", lua.LString(s.Kind))
	t.RawSetString("target_dist", lua.LNumber(s.TargetDist))
	t.RawSetString("has_dest", lua.LBool(s.HasDest))
	t.RawSetString("attack_ready", lua.LBool(s.AttackReady))
	t.RawSetString("move_ready", lua.LBool(s.MoveReady))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("decide_zombie failed", zap.Error(err))
		return world.DefaultDecision(s)
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)

	switch lua.LVAsString(ret) {
	case "attack":
		return world.DecideAttack
	case "pursue":
		return world.DecidePursue
	case "wander":
		return world.DecideWander
	case "idle":
		return world.DecideIdle
	default:
		return world.DefaultDecision(s)
	}
}
