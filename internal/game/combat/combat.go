// Package combat implements the heroes-versus-monsters battle engine.
package combat

import (
	"errors"
	"fmt"
	"strings"
)

// Default starting stats shared by every role.
const (
	DefaultMaxHP = 150.0
	DefaultPower = 10.0
)

// ErrUnknownRole is returned by ParseRole for names that match no role.
var ErrUnknownRole = errors.New("unknown role")

// Side identifies which roster a combatant fights for.
type Side int

const (
	SideNone Side = iota
	SideHeroes
	SideMonsters
)

// String returns a human-readable side label.
func (s Side) String() string {
	switch s {
	case SideHeroes:
		return "heroes"
	case SideMonsters:
		return "monsters"
	default:
		return "none"
	}
}

// Opponent returns the side a combatant of s fights against.
func (s Side) Opponent() Side {
	switch s {
	case SideHeroes:
		return SideMonsters
	case SideMonsters:
		return SideHeroes
	default:
		return SideNone
	}
}

// Role is the fixed behaviour set a combatant is created with.
// The zero value (RoleUnknown) is intentionally invalid.
type Role int

const (
	RoleUnknown Role = iota
	RoleHealer
	RoleTank
	RoleAttacker
	RoleBerserk
	RoleHunter
	RoleMonster
)

var roleNames = map[Role]string{
	RoleHealer:   "healer",
	RoleTank:     "tank",
	RoleAttacker: "attacker",
	RoleBerserk:  "berserk",
	RoleHunter:   "hunter",
	RoleMonster:  "monster",
}

// String returns the lowercase role name, or "unknown".
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Side reports which roster the role belongs to.
func (r Role) Side() Side {
	switch r {
	case RoleHealer, RoleTank, RoleAttacker:
		return SideHeroes
	case RoleBerserk, RoleHunter, RoleMonster:
		return SideMonsters
	default:
		return SideNone
	}
}

// Variant returns the monster variant tag implied by the role.
// Hero roles report VariantNone.
func (r Role) Variant() Variant {
	switch r {
	case RoleBerserk:
		return VariantBerserk
	case RoleHunter:
		return VariantHunter
	case RoleMonster:
		return VariantOther
	default:
		return VariantNone
	}
}

// ParseRole resolves a role name case-insensitively.
//
// Postcondition: Returns a valid Role, or ErrUnknownRole wrapped with the input.
func ParseRole(name string) (Role, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for r, n := range roleNames {
		if n == key {
			return r, nil
		}
	}
	return RoleUnknown, fmt.Errorf("%w %q", ErrUnknownRole, name)
}

// Variant tags a monster so hero decision rules can pick targets
// without inspecting concrete types.
type Variant int

const (
	VariantNone Variant = iota
	VariantBerserk
	VariantHunter
	VariantOther
)

// String returns a human-readable variant label.
func (v Variant) String() string {
	switch v {
	case VariantBerserk:
		return "berserk"
	case VariantHunter:
		return "hunter"
	case VariantOther:
		return "other"
	default:
		return "none"
	}
}

// Combatant is the contract shared by every battle participant, hero or monster.
type Combatant interface {
	ID() string
	Name() string
	Role() Role
	Side() Side
	Variant() Variant

	HP() float64
	// SetHP assigns hp, clamped to >= 0. A dead combatant stays dead.
	SetHP(hp float64)
	Power() float64
	SetPower(power float64)
	IsAlive() bool

	// Attack deals this combatant's role damage to target and returns the
	// amount sent before the target's own modifiers.
	Attack(target Combatant) float64
	// TakeDamage applies the role's intake modifier, then the shared
	// finalisation. Returns the hp actually removed.
	TakeDamage(amount float64) float64
	// DecideMove chooses and executes this combatant's turn.
	// allies includes the combatant itself.
	DecideMove(allies, enemies []Combatant) Move

	// String returns a one-line status description.
	String() string
}

// NewCombatant creates a combatant of the given role with default stats,
// adjusted by opts.
//
// Precondition: role must be a valid Role; an invalid value is a programming
// error and panics.
// Postcondition: Returns a living combatant with a fresh unique ID.
func NewCombatant(role Role, name string, opts ...Option) Combatant {
	st := newStats(role, name, opts)
	switch role {
	case RoleHealer:
		return newHealer(st)
	case RoleTank:
		return newTank(st)
	case RoleAttacker:
		return newAttacker(st)
	case RoleBerserk, RoleHunter, RoleMonster:
		return newMonster(st)
	default:
		panic(fmt.Sprintf("combat: NewCombatant called with invalid role %d", role))
	}
}
