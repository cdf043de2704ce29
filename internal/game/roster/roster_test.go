package roster_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Aizek31/portfolio/internal/game/combat"
	"github.com/Aizek31/portfolio/internal/game/dice"
	"github.com/Aizek31/portfolio/internal/game/roster"
)

const heroesYAML = `
side: heroes
members:
  - name: Aria
    role: healer
  - name: Bulwark
    role: tank
    hp: 200
  - name: Blade
    role: attacker
    power: 12
`

func TestLoadFromBytes_Heroes(t *testing.T) {
	f, err := roster.LoadFromBytes([]byte(heroesYAML))
	require.NoError(t, err)
	assert.Equal(t, combat.SideHeroes, f.SideOf())

	cs := f.Build()
	require.Len(t, cs, 3)
	assert.Equal(t, combat.RoleHealer, cs[0].Role())
	assert.Equal(t, combat.DefaultMaxHP, cs[0].HP())
	assert.Equal(t, 200.0, cs[1].HP())
	assert.Equal(t, 12.0, cs[2].Power())
}

func TestLoadFromBytes_Monsters(t *testing.T) {
	f, err := roster.LoadFromBytes([]byte(`
side: monsters
members:
  - {name: Rager, role: berserk}
  - {name: Stalker, role: hunter}
  - {name: Blob, role: monster}
`))
	require.NoError(t, err)
	cs := f.Build()
	require.Len(t, cs, 3)
	assert.Equal(t, combat.VariantBerserk, cs[0].Variant())
	assert.Equal(t, combat.VariantHunter, cs[1].Variant())
	assert.Equal(t, combat.VariantOther, cs[2].Variant())
}

func TestLoadFromBytes_Errors(t *testing.T) {
	cases := map[string]string{
		"bad side":     "side: villains\nmembers: [{name: X, role: tank}]",
		"no members":   "side: heroes\nmembers: []",
		"unknown role": "side: heroes\nmembers: [{name: X, role: wizard}]",
		"wrong side":   "side: heroes\nmembers: [{name: X, role: hunter}]",
		"no name":      "side: monsters\nmembers: [{role: hunter}]",
		"negative hp":  "side: monsters\nmembers: [{name: X, role: hunter, hp: -5}]",
		"bad yaml":     "side: [",
	}
	for name, data := range cases {
		_, err := roster.LoadFromBytes([]byte(data))
		assert.Error(t, err, name)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "heroes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(heroesYAML), 0644))

	f, err := roster.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Members, 3)

	_, err = roster.LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestGenerator_SeededIsReproducible(t *testing.T) {
	a := roster.NewGenerator(dice.NewSeededSource(99)).Generate(combat.SideHeroes, 5)
	b := roster.NewGenerator(dice.NewSeededSource(99)).Generate(combat.SideHeroes, 5)
	require.Len(t, a, 5)
	for i := range a {
		assert.Equal(t, a[i].Name(), b[i].Name())
		assert.Equal(t, a[i].Role(), b[i].Role())
	}
}

func TestProperty_Generator_SideAndUniqueNames(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64Range(1, 1<<40).Draw(rt, "seed")
		n := rapid.IntRange(0, 40).Draw(rt, "n")
		side := rapid.SampledFrom([]combat.Side{combat.SideHeroes, combat.SideMonsters}).Draw(rt, "side")

		cs := roster.NewGenerator(dice.NewSeededSource(seed)).Generate(side, n)
		assert.Len(rt, cs, n)
		names := make(map[string]bool)
		for _, c := range cs {
			assert.Equal(rt, side, c.Side())
			assert.False(rt, names[c.Name()], "duplicate name %q", c.Name())
			names[c.Name()] = true
			assert.NotEmpty(rt, c.Name())
		}
	})
}
