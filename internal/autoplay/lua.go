package autoplay

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/vovakirdan/tilemerge/internal/games/t2048"
)

// LuaStrategy runs a user script that defines a global function
//
//	function choose(board) return "left" end
//
// board has fields width, moves, cells (1-indexed rows of tile values, 0 for
// blanks), ranks (same layout, -1 for blanks) and movable (list of direction
// names that would change the board).
//
// A LuaStrategy owns a Lua state and is not safe for concurrent use.
type LuaStrategy struct {
	L    *lua.LState
	name string
}

// NewLuaStrategy compiles and runs script, which must define choose.
func NewLuaStrategy(name, script string) (*LuaStrategy, error) {
	L := lua.NewState()
	if err := L.DoString(script); err != nil {
		L.Close()
		return nil, fmt.Errorf("autoplay: lua script %s: %w", name, err)
	}
	if L.GetGlobal("choose").Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("autoplay: lua script %s does not define choose(board)", name)
	}
	return &LuaStrategy{L: L, name: name}, nil
}

// LoadLuaStrategy reads a script file and builds a strategy from it.
func LoadLuaStrategy(path string) (*LuaStrategy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("autoplay: read lua script: %w", err)
	}
	return NewLuaStrategy(path, string(data))
}

func (s *LuaStrategy) Name() string { return "lua:" + s.name }

// Next calls choose with the current board.
func (s *LuaStrategy) Next(view BoardView) (t2048.Direction, error) {
	L := s.L
	board := s.boardTable(view)

	if err := L.CallByParam(lua.P{
		Fn:      L.GetGlobal("choose"),
		NRet:    1,
		Protect: true,
	}, board); err != nil {
		return 0, fmt.Errorf("autoplay: lua choose: %w", err)
	}

	ret := L.Get(-1)
	L.Pop(1)

	str, ok := ret.(lua.LString)
	if !ok {
		return 0, fmt.Errorf("autoplay: lua choose returned %s, want a direction name", ret.Type())
	}
	dir, err := t2048.ParseDirection(string(str))
	if err != nil {
		return 0, fmt.Errorf("autoplay: lua choose: %w", err)
	}
	return dir, nil
}

func (s *LuaStrategy) boardTable(view BoardView) *lua.LTable {
	L := s.L
	board := L.NewTable()
	board.RawSetString("width", lua.LNumber(view.Width))
	board.RawSetString("moves", lua.LNumber(view.Moves))

	cells := L.NewTable()
	ranks := L.NewTable()
	for r, row := range view.Ranks {
		cellRow := L.NewTable()
		rankRow := L.NewTable()
		for c, rank := range row {
			value := 0
			if rank >= 0 {
				value = t2048.RankValue(rank)
			}
			cellRow.RawSetInt(c+1, lua.LNumber(value)) // Lua arrays are 1-indexed
			rankRow.RawSetInt(c+1, lua.LNumber(rank))
		}
		cells.RawSetInt(r+1, cellRow)
		ranks.RawSetInt(r+1, rankRow)
	}
	board.RawSetString("cells", cells)
	board.RawSetString("ranks", ranks)

	movable := L.NewTable()
	for i, dir := range view.Movable {
		movable.RawSetInt(i+1, lua.LString(dir.String()))
	}
	board.RawSetString("movable", movable)
	return board
}

// Close releases the Lua state.
func (s *LuaStrategy) Close() error {
	if s.L != nil {
		s.L.Close()
		s.L = nil
	}
	return nil
}
