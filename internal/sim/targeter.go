package sim

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/plus3/vortex/game"
	"github.com/plus3/vortex/optional"
)

// Targeter picks the point the autopilot shoots at. An absent result holds
// fire.
type Targeter interface {
	Target(player game.Position, enemies []game.Entity) optional.Option[game.Position]
}

// Nearest aims at the enemy closest to the player.
type Nearest struct{}

func (Nearest) Target(player game.Position, enemies []game.Entity) optional.Option[game.Position] {
	best := optional.None[game.Position]()
	bestDist := math.Inf(1)
	for _, e := range enemies {
		if d := math.Hypot(e.Position.X-player.X, e.Position.Y-player.Y); d < bestDist {
			best, bestDist = optional.Some(e.Position), d
		}
	}
	return best
}

// luaTargetFunc is the global a targeting script must define. It receives
// {player = {x, y}, enemies = {{id, x, y, vx, vy, radius}, ...}} and returns
// {x, y} or nil. Entity IDs do not fit a Lua number, so id is a decimal string.
const luaTargetFunc = "choose_target"

// LuaTargeter delegates targeting to a gopher-lua script. Script errors are
// logged and fall back to Nearest. Single-goroutine use only.
type LuaTargeter struct {
	vm  *lua.LState
	fn  lua.LValue
	log *zap.Logger
}

// LoadLuaTargeter runs the script at path.
func LoadLuaTargeter(path string, log *zap.Logger) (*LuaTargeter, error) {
	return newLuaTargeter(func(vm *lua.LState) error { return vm.DoFile(path) }, path, log)
}

// NewLuaTargeter runs source.
func NewLuaTargeter(source string, log *zap.Logger) (*LuaTargeter, error) {
	return newLuaTargeter(func(vm *lua.LState) error { return vm.DoString(source) }, "<inline>", log)
}

func newLuaTargeter(load func(*lua.LState) error, name string, log *zap.Logger) (*LuaTargeter, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState()
	if err := load(vm); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load targeting script %s: %w", name, err)
	}

	fn := vm.GetGlobal(luaTargetFunc)
	if fn.Type() != lua.LTFunction {
		vm.Close()
		return nil, fmt.Errorf("targeting script %s: %w", name, errMissingTargetFunc)
	}
	log.Debug("loaded targeting script", zap.String("file", name))
	return &LuaTargeter{vm: vm, fn: fn, log: log}, nil
}

var errMissingTargetFunc = errors.New("function " + luaTargetFunc + " not defined")

func (t *LuaTargeter) Target(player game.Position, enemies []game.Entity) optional.Option[game.Position] {
	ctx := t.vm.NewTable()

	p := t.vm.NewTable()
	p.RawSetString("x", lua.LNumber(player.X))
	p.RawSetString("y", lua.LNumber(player.Y))
	ctx.RawSetString("player", p)

	list := t.vm.NewTable()
	for _, e := range enemies {
		et := t.vm.NewTable()
		et.RawSetString("id", lua.LString(strconv.FormatUint(uint64(e.ID), 10)))
		et.RawSetString("x", lua.LNumber(e.Position.X))
		et.RawSetString("y", lua.LNumber(e.Position.Y))
		et.RawSetString("vx", lua.LNumber(e.Velocity.X))
		et.RawSetString("vy", lua.LNumber(e.Velocity.Y))
		et.RawSetString("radius", lua.LNumber(e.Body.Radius))
		list.Append(et)
	}
	ctx.RawSetString("enemies", list)

	if err := t.vm.CallByParam(lua.P{
		Fn:      t.fn,
		NRet:    1,
		Protect: true,
	}, ctx); err != nil {
		t.log.Error("lua "+luaTargetFunc+" error", zap.Error(err))
		return Nearest{}.Target(player, enemies)
	}

	result := t.vm.Get(-1)
	t.vm.Pop(1)

	if result == lua.LNil {
		return optional.None[game.Position]()
	}
	rt, ok := result.(*lua.LTable)
	if !ok {
		t.log.Error("lua "+luaTargetFunc+" returned non-table", zap.String("type", result.Type().String()))
		return Nearest{}.Target(player, enemies)
	}
	x, xok := rt.RawGetString("x").(lua.LNumber)
	y, yok := rt.RawGetString("y").(lua.LNumber)
	if !xok || !yok {
		t.log.Error("lua "+luaTargetFunc+" returned a target without numeric x and y",
			zap.String("x", rt.RawGetString("x").Type().String()),
			zap.String("y", rt.RawGetString("y").Type().String()))
		return Nearest{}.Target(player, enemies)
	}
	return optional.Some(game.Position{X: float64(x), Y: float64(y)})
}

func (t *LuaTargeter) Close() {
	t.vm.Close()
}
