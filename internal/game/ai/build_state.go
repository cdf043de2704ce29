package ai

import "github.com/Aizek31/portfolio/internal/game/combat"

// BuildWorldState snapshots self and the living heroes it may target.
//
// Precondition: self must not be nil.
// Postcondition: dead heroes are omitted; order follows heroes.
func BuildWorldState(self combat.Combatant, heroes []combat.Combatant) *WorldState {
	ws := &WorldState{Self: stateOf(self)}
	ws.Self.Variant = self.Variant().String()
	for _, h := range combat.Living(heroes) {
		ws.Heroes = append(ws.Heroes, stateOf(h))
	}
	return ws
}

func stateOf(c combat.Combatant) CombatantState {
	return CombatantState{
		ID:    c.ID(),
		Name:  c.Name(),
		Role:  c.Role().String(),
		HP:    c.HP(),
		Power: c.Power(),
	}
}
