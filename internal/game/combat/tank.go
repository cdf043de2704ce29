package combat

import "fmt"

// ExecuteThreshold is the enemy hp below which a shielded Tank drops its
// shield to finish the enemy off.
const ExecuteThreshold = 20.0

// ShieldState is the Tank's two-state shield machine.
type ShieldState int

const (
	ShieldDown ShieldState = iota
	ShieldUp
)

// String returns "up" or "down".
func (s ShieldState) String() string {
	if s == ShieldUp {
		return "up"
	}
	return "down"
}

// Tank is a hero that trades attack power for damage reduction.
//
// Defense and power are derived from the shield state on read, so any number
// of raise/lower cycles returns exactly to the starting values.
type Tank struct {
	Stats
	baseDefense float64
	shield      ShieldState
}

func newTank(st Stats) *Tank {
	return &Tank{Stats: st, baseDefense: 1, shield: ShieldDown}
}

// Shield returns the current shield state.
func (t *Tank) Shield() ShieldState { return t.shield }

// ShieldActive reports whether the shield is raised.
func (t *Tank) ShieldActive() bool { return t.shield == ShieldUp }

// Defense returns the damage divisor: doubled while the shield is up.
func (t *Tank) Defense() float64 {
	if t.shield == ShieldUp {
		return t.baseDefense * 2
	}
	return t.baseDefense
}

// Power returns attack strength: halved while the shield is up.
func (t *Tank) Power() float64 {
	if t.shield == ShieldUp {
		return t.Stats.Power() / 2
	}
	return t.Stats.Power()
}

// SetPower assigns the effective power for the current shield state.
//
// Postcondition: Power() == power.
func (t *Tank) SetPower(power float64) {
	if t.shield == ShieldUp {
		t.Stats.SetPower(power * 2)
		return
	}
	t.Stats.SetPower(power)
}

// RaiseShield moves to ShieldUp. Idempotent.
func (t *Tank) RaiseShield() { t.shield = ShieldUp }

// LowerShield moves to ShieldDown. Idempotent.
func (t *Tank) LowerShield() { t.shield = ShieldDown }

// Attack deals half the tank's current power.
func (t *Tank) Attack(target Combatant) float64 {
	dmg := t.Power() / 2
	target.TakeDamage(dmg)
	return dmg
}

// TakeDamage divides incoming damage by Defense.
func (t *Tank) TakeDamage(amount float64) float64 {
	return settleDamage(&t.Stats, amount/t.Defense())
}

// DecideMove finishes a nearly dead enemy from behind a raised shield;
// otherwise it braces against hunters and ends the turn.
func (t *Tank) DecideMove(_, enemies []Combatant) Move {
	target := lowestHP(enemies)
	if target == nil {
		return passMove(t)
	}
	if target.HP() < ExecuteThreshold && t.ShieldActive() {
		t.LowerShield()
		return strike(ActionShieldStrike, t, target)
	}
	if target.Variant() == VariantHunter {
		t.RaiseShield()
		return Move{
			Action:     ActionRaiseShield,
			ActorID:    t.ID(),
			ActorName:  t.Name(),
			TargetID:   target.ID(),
			TargetName: target.Name(),
		}
	}
	return passMove(t)
}

// String returns the tank's status line.
func (t *Tank) String() string {
	return fmt.Sprintf("%s | Shield: %s | Defense: %s", t.status(), t.shield, formatAmount(t.Defense()))
}
