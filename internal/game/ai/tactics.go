// Package ai lets Lua scripts steer monster targeting.
//
// A script defines choose_target(monster, heroes) and returns the 1-based
// index of the hero to attack. A variant-specific hook such as
// choose_target_hunter takes precedence over the generic one.
package ai

import (
	"github.com/Aizek31/portfolio/internal/game/combat"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// HookChooseTarget is the generic targeting hook name.
const HookChooseTarget = "choose_target"

// ScriptCaller is the interface ScriptedTactics needs from the scripting layer.
type ScriptCaller interface {
	// CallHook calls a named Lua function. Returns (LNil, nil) if the
	// function is not defined.
	CallHook(hook string, args ...lua.LValue) (lua.LValue, error)
	// HasHook reports whether a named Lua function is defined.
	HasHook(hook string) bool
	// NewTable returns an empty table owned by the VM, or nil when none is loaded.
	NewTable() *lua.LTable
}

// ScriptedTactics implements combat.Tactics by consulting Lua hooks.
//
// Invariant: caller and logger are non-nil.
type ScriptedTactics struct {
	caller ScriptCaller
	logger *zap.Logger
}

// NewScriptedTactics constructs ScriptedTactics.
//
// Precondition: caller must not be nil. A nil logger is replaced by a no-op logger.
func NewScriptedTactics(caller ScriptCaller, logger *zap.Logger) *ScriptedTactics {
	if caller == nil {
		panic("ai.NewScriptedTactics: caller must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScriptedTactics{caller: caller, logger: logger}
}

// HookFor returns the hook consulted for variant: the variant-specific hook
// when defined, else the generic one.
func (s *ScriptedTactics) HookFor(variant combat.Variant) string {
	specific := HookChooseTarget + "_" + variant.String()
	if s.caller.HasHook(specific) {
		return specific
	}
	return HookChooseTarget
}

// ChooseTarget asks the script which living hero self should attack.
//
// Postcondition: returns one of the living members of heroes, or nil when
// the script declines, fails, or answers out of range.
func (s *ScriptedTactics) ChooseTarget(self combat.Combatant, heroes []combat.Combatant) combat.Combatant {
	living := combat.Living(heroes)
	if self == nil || len(living) == 0 {
		return nil
	}
	if s.caller.NewTable() == nil {
		return nil
	}

	ws := BuildWorldState(self, living)
	hook := s.HookFor(self.Variant())
	ret, err := s.caller.CallHook(hook, ws.selfTable(s.caller.NewTable()), ws.heroesTable(s.caller.NewTable))
	if err != nil {
		s.logger.Warn("ai: target hook failed", zap.String("hook", hook), zap.Error(err))
		return nil
	}

	n, ok := ret.(lua.LNumber)
	if !ok {
		if ret != lua.LNil {
			s.logger.Debug("ai: target hook returned a non-number",
				zap.String("hook", hook),
				zap.String("monster", self.Name()),
				zap.String("type", ret.Type().String()),
			)
		}
		return nil
	}
	idx := int(n)
	if float64(idx) != float64(n) || idx < 1 || idx > len(living) {
		s.logger.Debug("ai: target hook index out of range",
			zap.String("hook", hook),
			zap.String("monster", self.Name()),
			zap.Float64("index", float64(n)),
			zap.Int("heroes", len(living)),
		)
		return nil
	}
	return living[idx-1]
}
