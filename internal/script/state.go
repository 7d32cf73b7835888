package script

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/wheelnorm/internal/logging"
)

// unsafeGlobals are removed from the base library.
var unsafeGlobals = []string{"dofile", "loadfile", "load", "loadstring", "require", "module"}

// newState creates a Lua state with only the safe standard libraries.
// print is redirected to logger.
func newState(logger *logging.Logger) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range unsafeGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, L.GetTop())
		for i := range parts {
			parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
		}
		logger.Info("script print", "text", strings.Join(parts, "\t"))
		return 0
	}))

	return L
}
