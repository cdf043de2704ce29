// Package roster loads and generates the hero and monster rosters a battle
// is set up with.
package roster

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Aizek31/portfolio/internal/game/combat"
)

// Member describes one combatant in a roster file.
type Member struct {
	Name string `yaml:"name"`
	Role string `yaml:"role"`
	// HP and Power override the role defaults when non-zero.
	HP    float64 `yaml:"hp"`
	Power float64 `yaml:"power"`
}

// File is a roster loaded from YAML.
type File struct {
	Side    string   `yaml:"side"`
	Members []Member `yaml:"members"`
}

// Validate checks that the roster names a known side, has at least one
// member and that every member's role belongs to that side.
//
// Postcondition: Returns nil iff the roster can be built; otherwise an error
// naming the first violation.
func (f *File) Validate() error {
	side, err := parseSide(f.Side)
	if err != nil {
		return err
	}
	if len(f.Members) == 0 {
		return fmt.Errorf("roster %q: members must not be empty", f.Side)
	}
	for i, m := range f.Members {
		if m.Name == "" {
			return fmt.Errorf("roster %q: member %d: name must not be empty", f.Side, i)
		}
		role, err := combat.ParseRole(m.Role)
		if err != nil {
			return fmt.Errorf("roster %q: member %q: %w", f.Side, m.Name, err)
		}
		if role.Side() != side {
			return fmt.Errorf("roster %q: member %q: role %s fights for %s", f.Side, m.Name, role, role.Side())
		}
		if m.HP < 0 {
			return fmt.Errorf("roster %q: member %q: hp must be >= 0", f.Side, m.Name)
		}
	}
	return nil
}

// SideOf returns the combat side named by the roster.
//
// Precondition: f passed Validate.
func (f *File) SideOf() combat.Side {
	side, _ := parseSide(f.Side)
	return side
}

// Build creates one combatant per member, in file order.
//
// Precondition: f passed Validate.
// Postcondition: len(result) == len(f.Members).
func (f *File) Build(opts ...combat.Option) []combat.Combatant {
	out := make([]combat.Combatant, 0, len(f.Members))
	for _, m := range f.Members {
		role, _ := combat.ParseRole(m.Role)
		memberOpts := append([]combat.Option(nil), opts...)
		if m.HP > 0 {
			memberOpts = append(memberOpts, combat.WithHP(m.HP))
		}
		if m.Power != 0 {
			memberOpts = append(memberOpts, combat.WithPower(m.Power))
		}
		out = append(out, combat.NewCombatant(role, m.Name, memberOpts...))
	}
	return out
}

func parseSide(s string) (combat.Side, error) {
	switch s {
	case "heroes":
		return combat.SideHeroes, nil
	case "monsters":
		return combat.SideMonsters, nil
	default:
		return combat.SideNone, fmt.Errorf("roster: side must be one of [heroes, monsters], got %q", s)
	}
}

// LoadFromBytes parses and validates a roster from raw YAML.
//
// Postcondition: Returns a validated *File or an error.
func LoadFromBytes(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing roster YAML: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile reads and validates the roster at path.
//
// Precondition: path must be a readable YAML file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster %q: %w", path, err)
	}
	f, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return f, nil
}
