package combat

import "fmt"

// HealThreshold is the ally hp below which a Healer heals instead of attacking.
const HealThreshold = 60.0

// Healer is a fragile hero that keeps allies alive.
//
// Invariant: magicPower is fixed at three times the power the healer was created with.
type Healer struct {
	Stats
	magicPower float64
}

func newHealer(st Stats) *Healer {
	return &Healer{Stats: st, magicPower: st.power * 3}
}

// MagicPower returns the fixed amount restored by Heal.
func (h *Healer) MagicPower() float64 { return h.magicPower }

// Attack deals half the healer's power to target.
func (h *Healer) Attack(target Combatant) float64 {
	dmg := h.Power() / 2
	target.TakeDamage(dmg)
	return dmg
}

// TakeDamage amplifies incoming damage by 1.2.
func (h *Healer) TakeDamage(amount float64) float64 {
	return settleDamage(&h.Stats, amount*1.2)
}

// Heal raises target's hp by MagicPower. No ceiling is applied.
//
// Postcondition: a living target's hp increases by exactly MagicPower.
func (h *Healer) Heal(target Combatant) float64 {
	before := target.HP()
	target.SetHP(before + h.magicPower)
	return target.HP() - before
}

// DecideMove heals the weakest ally when it is below HealThreshold, otherwise
// attacks the weakest enemy.
func (h *Healer) DecideMove(allies, enemies []Combatant) Move {
	if ally := lowestHP(allies); ally != nil && ally.HP() < HealThreshold {
		healed := h.Heal(ally)
		return Move{
			Action:     ActionHeal,
			ActorID:    h.ID(),
			ActorName:  h.Name(),
			TargetID:   ally.ID(),
			TargetName: ally.Name(),
			Amount:     h.magicPower,
			Effective:  healed,
		}
	}
	target := lowestHP(enemies)
	if target == nil {
		return passMove(h)
	}
	return strike(ActionAttack, h, target)
}

// String returns the healer's status line.
func (h *Healer) String() string {
	return fmt.Sprintf("%s | Magic: %s", h.status(), formatAmount(h.magicPower))
}
