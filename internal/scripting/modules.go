package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules installs the engine global into L:
//
//	engine.log.debug(msg), engine.log.info(msg), engine.log.warn(msg)
//
// Precondition: L must come from NewSandboxedState.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	logTbl := L.NewTable()
	levels := map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
	}
	for name, fn := range levels {
		logFn := fn
		L.SetField(logTbl, name, L.NewFunction(func(L *lua.LState) int {
			logFn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	L.SetField(engine, "log", logTbl)
	L.SetGlobal("engine", engine)
}
