package combat

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Stats is the numeric and alive state every combatant carries.
// Role types embed it and build their behaviour on top.
//
// Invariant: hp >= 0 and alive == (hp > 0); once alive is false it stays false.
type Stats struct {
	id      string
	name    string
	role    Role
	hp      float64
	power   float64
	alive   bool
	tactics Tactics
}

// Option adjusts a combatant's starting state during NewCombatant.
type Option func(*Stats)

// WithHP overrides the starting hp.
//
// Precondition: hp > 0.
func WithHP(hp float64) Option {
	return func(s *Stats) { s.hp = hp }
}

// WithPower overrides the starting power.
func WithPower(power float64) Option {
	return func(s *Stats) { s.power = power }
}

// WithTactics installs target-selection tactics. Only monsters consult them.
func WithTactics(t Tactics) Option {
	return func(s *Stats) { s.tactics = t }
}

// WithID overrides the generated UUID. Used for reproducible test fixtures.
func WithID(id string) Option {
	return func(s *Stats) { s.id = id }
}

func newStats(role Role, name string, opts []Option) Stats {
	s := Stats{
		id:    uuid.New().String(),
		name:  name,
		role:  role,
		hp:    DefaultMaxHP,
		power: DefaultPower,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.hp < 0 {
		s.hp = 0
	}
	s.alive = s.hp > 0
	return s
}

// ID returns the combatant's unique identifier.
func (s *Stats) ID() string { return s.id }

// Name returns the combatant's display name.
func (s *Stats) Name() string { return s.name }

// Role returns the role the combatant was created with.
func (s *Stats) Role() Role { return s.role }

// Side returns the roster the combatant belongs to.
func (s *Stats) Side() Side { return s.role.Side() }

// Variant returns the monster variant tag; VariantNone for heroes.
func (s *Stats) Variant() Variant { return s.role.Variant() }

// HP returns current health.
func (s *Stats) HP() float64 { return s.hp }

// SetHP assigns hp clamped to a minimum of zero.
//
// Postcondition: hp >= 0 and alive == (hp > 0). A dead combatant is never
// revived; the call leaves it at zero hp.
func (s *Stats) SetHP(hp float64) {
	if !s.alive {
		s.hp = 0
		return
	}
	if hp < 0 {
		hp = 0
	}
	s.hp = hp
	s.settle()
}

// Power returns the combatant's base attack strength.
func (s *Stats) Power() float64 { return s.power }

// SetPower assigns base attack strength.
func (s *Stats) SetPower(power float64) { s.power = power }

// IsAlive reports whether hp is above zero.
func (s *Stats) IsAlive() bool { return s.alive }

// settle applies the permanent alive flip and asserts the invariant.
func (s *Stats) settle() {
	if s.hp <= 0 {
		s.alive = false
	}
	s.mustHoldInvariant()
}

func (s *Stats) mustHoldInvariant() {
	if s.hp < 0 {
		panic(fmt.Sprintf("combat: invariant violated: %s has negative hp %v", s.name, s.hp))
	}
	if s.alive != (s.hp > 0) {
		panic(fmt.Sprintf("combat: invariant violated: %s alive=%t with hp %v", s.name, s.alive, s.hp))
	}
}

// settleDamage is the shared tail of every role's TakeDamage. The role passes
// the already-modified amount; hp is reduced, clamped and the alive flag
// settled.
//
// Precondition: amount >= 0.
// Postcondition: Returns the hp actually removed; hp >= 0; alive == (hp > 0).
func settleDamage(s *Stats, amount float64) float64 {
	if amount < 0 {
		panic(fmt.Sprintf("combat: negative damage %v applied to %s", amount, s.name))
	}
	before := s.hp
	s.SetHP(s.hp - amount)
	return before - s.hp
}

// status renders the shared "Name: X | HP: Y" status line.
func (s *Stats) status() string {
	return fmt.Sprintf("Name: %s | HP: %s", s.name, formatAmount(s.hp))
}

// formatAmount renders a float without trailing zeros.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
