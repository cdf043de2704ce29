package scripting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Manager owns a single sandboxed LState and exposes hook dispatch.
//
// The LState is single-threaded; Manager serialises every call through its mutex.
// Each CallHook runs under its own instruction budget.
type Manager struct {
	mu     sync.Mutex
	state  *lua.LState
	cancel context.CancelFunc
	limit  int
	logger *zap.Logger
}

// NewManager creates a Manager with no scripts loaded.
//
// Precondition: logger must be non-nil.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{logger: logger}
}

// LoadDir creates a fresh sandboxed VM, registers the engine module, then
// executes every *.lua file in scriptDir in lexicographic order. A previously
// loaded VM is replaced only when loading succeeds.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: Returns an error on read or Lua load failure.
func (m *Manager) LoadDir(scriptDir string, instLimit int) error {
	L, cancel := NewSandboxedState(instLimit)
	m.RegisterModules(L)

	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		cancel()
		L.Close()
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			cancel()
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	m.closeLocked()
	m.state = L
	m.cancel = cancel
	m.limit = instLimit
	if m.limit <= 0 {
		m.limit = DefaultInstructionLimit
	}
	m.mu.Unlock()

	m.logger.Info("scripts loaded",
		zap.String("dir", scriptDir),
		zap.Int("files", len(luaFiles)),
	)
	return nil
}

// HasHook reports whether a global function named hook is defined.
func (m *Manager) HasHook(hook string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return false
	}
	_, ok := m.state.GetGlobal(hook).(*lua.LFunction)
	return ok
}

// NewTable returns an empty table owned by the loaded VM, or nil when no
// scripts are loaded. Callers use it to build hook arguments.
func (m *Manager) NewTable() *lua.LTable {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil
	}
	return m.state.NewTable()
}

// CallHook calls the named Lua global function. Returns (LNil, nil) if no
// scripts are loaded or the hook is not defined. Lua runtime errors are
// logged at Warn level and never propagated.
//
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == nil {
		m.logger.Debug("scripting: no VM loaded", zap.String("hook", hook))
		return lua.LNil, nil
	}
	L := m.state

	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	ctx, cancel := newCountingContext(m.limit)
	defer cancel()
	L.SetContext(ctx)

	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

// Close releases the loaded VM. Safe to call more than once.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

func (m *Manager) closeLocked() {
	if m.state == nil {
		return
	}
	m.cancel()
	m.state.Close()
	m.state = nil
	m.cancel = nil
}
