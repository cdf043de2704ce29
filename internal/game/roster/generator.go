package roster

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Aizek31/portfolio/internal/game/combat"
	"github.com/Aizek31/portfolio/internal/game/dice"
)

var (
	heroRoles    = []combat.Role{combat.RoleHealer, combat.RoleTank, combat.RoleAttacker}
	monsterRoles = []combat.Role{combat.RoleBerserk, combat.RoleHunter, combat.RoleMonster}

	heroSyllables    = []string{"ar", "bel", "cor", "da", "el", "fin", "gal", "ir", "lo", "mir", "ra", "syl", "tor", "wen"}
	monsterSyllables = []string{"grak", "ur", "zog", "mok", "thra", "gul", "snag", "vor", "krul", "bog", "ash", "nar"}
)

// Generator builds random rosters. Only names and roles are random; stats
// stay at the role defaults.
type Generator struct {
	src   dice.Source
	title cases.Caser
}

// NewGenerator returns a Generator drawing from src.
//
// Precondition: src must be non-nil.
func NewGenerator(src dice.Source) *Generator {
	return &Generator{src: src, title: cases.Title(language.English)}
}

// Generate returns n combatants for side. Names are unique within the roster.
//
// Precondition: side is SideHeroes or SideMonsters; n >= 0.
// Postcondition: len(result) == n and every combatant belongs to side.
func (g *Generator) Generate(side combat.Side, n int, opts ...combat.Option) []combat.Combatant {
	roles, syllables := heroRoles, heroSyllables
	if side == combat.SideMonsters {
		roles, syllables = monsterRoles, monsterSyllables
	}

	seen := make(map[string]int, n)
	out := make([]combat.Combatant, 0, n)
	for i := 0; i < n; i++ {
		role := dice.Pick(g.src, roles)
		name := g.name(syllables)
		seen[name]++
		if seen[name] > 1 {
			name = fmt.Sprintf("%s %d", name, seen[name])
		}
		out = append(out, combat.NewCombatant(role, name, opts...))
	}
	return out
}

// name joins two or three syllables and title-cases the result.
func (g *Generator) name(syllables []string) string {
	parts := 2 + g.src.Intn(2)
	var b strings.Builder
	for i := 0; i < parts; i++ {
		b.WriteString(dice.Pick(g.src, syllables))
	}
	return g.title.String(b.String())
}
