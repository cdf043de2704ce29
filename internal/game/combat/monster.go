package combat

import "fmt"

// Tactics picks a monster's target. Returning nil, or a combatant not in
// heroes, makes the monster fall back to its variant's built-in rule.
type Tactics interface {
	ChooseTarget(self Combatant, heroes []Combatant) Combatant
}

// Monster is the shared implementation of every monster variant.
// Variants differ only in target selection and, for berserks, rage.
type Monster struct {
	Stats
	startHP float64
	enraged bool
}

func newMonster(st Stats) *Monster {
	return &Monster{Stats: st, startHP: st.hp}
}

// Enraged reports whether a berserk has entered its rage.
func (m *Monster) Enraged() bool { return m.enraged }

// Attack deals the monster's full power.
func (m *Monster) Attack(target Combatant) float64 {
	dmg := m.Power()
	target.TakeDamage(dmg)
	return dmg
}

// TakeDamage applies the amount unchanged. A berserk pushed below half its
// starting hp enrages, doubling its power once.
func (m *Monster) TakeDamage(amount float64) float64 {
	taken := settleDamage(&m.Stats, amount)
	if m.Variant() == VariantBerserk && !m.enraged && m.IsAlive() && m.HP() < m.startHP/2 {
		m.enraged = true
		m.SetPower(m.Power() * 2)
	}
	return taken
}

// DecideMove attacks one hero chosen by tactics or the variant rule.
func (m *Monster) DecideMove(_, enemies []Combatant) Move {
	target := m.chooseTarget(enemies)
	if target == nil {
		return passMove(m)
	}
	return strike(ActionAttack, m, target)
}

func (m *Monster) chooseTarget(heroes []Combatant) Combatant {
	if len(heroes) == 0 {
		return nil
	}
	if m.tactics != nil {
		if t := m.tactics.ChooseTarget(m, heroes); t != nil && contains(heroes, t) {
			return t
		}
	}
	switch m.Variant() {
	case VariantBerserk:
		return highestHP(heroes)
	case VariantHunter:
		return lowestHP(heroes)
	default:
		return heroes[0]
	}
}

func contains(cs []Combatant, target Combatant) bool {
	for _, c := range cs {
		if c == target {
			return true
		}
	}
	return false
}

// String returns the monster's status line.
func (m *Monster) String() string {
	return fmt.Sprintf("%s | Variant: %s", m.status(), m.Variant())
}
