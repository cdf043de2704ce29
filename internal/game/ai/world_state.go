package ai

import lua "github.com/yuin/gopher-lua"

// CombatantState captures a combatant's state at targeting time.
type CombatantState struct {
	ID      string
	Name    string
	Role    string
	Variant string
	HP      float64
	Power   float64
}

// WorldState is the snapshot a monster's script sees when picking a target.
//
// Invariant: Heroes holds only living heroes, in roster order.
type WorldState struct {
	Self   CombatantState
	Heroes []CombatantState
}

// selfTable renders the monster as {id, name, hp, power, variant}.
func (ws *WorldState) selfTable(tbl *lua.LTable) *lua.LTable {
	tbl.RawSetString("id", lua.LString(ws.Self.ID))
	tbl.RawSetString("name", lua.LString(ws.Self.Name))
	tbl.RawSetString("hp", lua.LNumber(ws.Self.HP))
	tbl.RawSetString("power", lua.LNumber(ws.Self.Power))
	tbl.RawSetString("variant", lua.LString(ws.Self.Variant))
	return tbl
}

// heroesTable renders the heroes as a 1-based array of {id, name, hp, power, role}.
func (ws *WorldState) heroesTable(newTable func() *lua.LTable) *lua.LTable {
	arr := newTable()
	for _, h := range ws.Heroes {
		t := newTable()
		t.RawSetString("id", lua.LString(h.ID))
		t.RawSetString("name", lua.LString(h.Name))
		t.RawSetString("hp", lua.LNumber(h.HP))
		t.RawSetString("power", lua.LNumber(h.Power))
		t.RawSetString("role", lua.LString(h.Role))
		arr.Append(t)
	}
	return arr
}
