package combat

import (
	"fmt"
	"math"
)

// Attacker is a hero that charges a multiplier and releases it in one hit.
//
// The multiplier is stored as an integer charge level n with multiplier 2^n,
// so every PowerUp/PowerDown pair is exact.
type Attacker struct {
	Stats
	charge int
}

func newAttacker(st Stats) *Attacker {
	return &Attacker{Stats: st}
}

// ChargeLevel returns the exponent of the power multiplier.
func (a *Attacker) ChargeLevel() int { return a.charge }

// Charged reports whether the multiplier is above its base value of 1.
func (a *Attacker) Charged() bool { return a.charge > 0 }

// PowerMultiplier returns 2^ChargeLevel.
func (a *Attacker) PowerMultiplier() float64 { return math.Ldexp(1, a.charge) }

// PowerUp doubles the multiplier.
func (a *Attacker) PowerUp() { a.charge++ }

// PowerDown halves the multiplier.
func (a *Attacker) PowerDown() { a.charge-- }

// Attack deals power × multiplier, then halves the multiplier.
func (a *Attacker) Attack(target Combatant) float64 {
	dmg := a.Power() * a.PowerMultiplier()
	target.TakeDamage(dmg)
	a.PowerDown()
	return dmg
}

// TakeDamage scales incoming damage by multiplier / 2.
func (a *Attacker) TakeDamage(amount float64) float64 {
	return settleDamage(&a.Stats, amount*a.PowerMultiplier()/2)
}

// DecideMove charges and strikes the first berserk or hunter enemy.
// Without such an enemy the turn is a no-op.
//
// Postcondition: ChargeLevel is unchanged across the call.
func (a *Attacker) DecideMove(_, enemies []Combatant) Move {
	target := firstOfVariant(enemies, VariantBerserk, VariantHunter)
	if target == nil {
		return passMove(a)
	}
	a.PowerUp()
	return strike(ActionChargedAttack, a, target)
}

// String returns the attacker's status line.
func (a *Attacker) String() string {
	return fmt.Sprintf("%s | Multiplier: %s", a.status(), formatAmount(a.PowerMultiplier()))
}
