package combat_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/Aizek31/portfolio/internal/game/combat"
)

func roster(cs ...combat.Combatant) []combat.Combatant { return cs }

func TestBattle_StalemateStopsAtTurnLimit(t *testing.T) {
	hero := combat.NewCombatant(combat.RoleAttacker, "Blade")
	monster := combat.NewCombatant(combat.RoleMonster, "Pacifist", combat.WithPower(0))

	out, err := combat.RunBattle(roster(hero), roster(monster), combat.WithMaxTurns(50))
	require.NoError(t, err)
	assert.Equal(t, combat.ResultTurnLimit, out.Result)
	assert.Equal(t, combat.SideNone, out.Winner)
	assert.Equal(t, 50, out.Turns)
	assert.Equal(t, 25, out.Rounds)
	assert.Equal(t, 150.0, out.Heroes[0].HP)
	assert.Equal(t, 150.0, out.Monsters[0].HP)
}

func TestBattle_DefaultTurnLimit(t *testing.T) {
	hero := combat.NewCombatant(combat.RoleAttacker, "Blade")
	monster := combat.NewCombatant(combat.RoleMonster, "Pacifist", combat.WithPower(0))

	out, err := combat.RunBattle(roster(hero), roster(monster), combat.WithMaxTurns(0))
	require.NoError(t, err)
	assert.Equal(t, combat.ResultTurnLimit, out.Result)
	assert.Equal(t, combat.DefaultMaxTurns, out.Turns)
}

func TestBattle_HeroesWin(t *testing.T) {
	hero := combat.NewCombatant(combat.RoleAttacker, "Blade")
	monster := combat.NewCombatant(combat.RoleBerserk, "Rager", combat.WithHP(15))

	out, err := combat.RunBattle(roster(hero), roster(monster))
	require.NoError(t, err)
	assert.Equal(t, combat.ResultHeroesWin, out.Result)
	assert.Equal(t, combat.SideHeroes, out.Winner)
	assert.Equal(t, 1, out.Turns)
	assert.False(t, out.Monsters[0].Alive)
	assert.Equal(t, 0.0, out.Monsters[0].HP)
}

func TestBattle_MonstersWin(t *testing.T) {
	hero := combat.NewCombatant(combat.RoleTank, "Bulwark")
	monster := combat.NewCombatant(combat.RoleBerserk, "Rager")

	out, err := combat.RunBattle(roster(hero), roster(monster))
	require.NoError(t, err)
	assert.Equal(t, combat.ResultMonstersWin, out.Result)
	assert.Equal(t, combat.SideMonsters, out.Winner)
	assert.Equal(t, 30, out.Turns)
	assert.Equal(t, 15, out.Rounds)
	assert.Equal(t, "down", out.Heroes[0].Shield)
}

func TestBattle_EndsMidCycle(t *testing.T) {
	blade := combat.NewCombatant(combat.RoleAttacker, "Blade")
	aria := combat.NewCombatant(combat.RoleHealer, "Aria")
	prey := combat.NewCombatant(combat.RoleHunter, "Stalker", combat.WithHP(10))

	var moves []combat.Move
	out, err := combat.RunBattle(roster(blade, aria), roster(prey),
		combat.WithMoveHook(func(m combat.Move) { moves = append(moves, m) }))
	require.NoError(t, err)
	assert.Equal(t, combat.ResultHeroesWin, out.Result)
	assert.Equal(t, 1, out.Turns)
	require.Len(t, moves, 1)
	assert.Equal(t, blade.ID(), moves[0].ActorID)
}

func TestBattle_EmptyRosters(t *testing.T) {
	out, err := combat.RunBattle(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, combat.ResultDraw, out.Result)
	assert.Equal(t, 0, out.Turns)

	out, err = combat.RunBattle(nil, roster(combat.NewCombatant(combat.RoleHunter, "H")))
	require.NoError(t, err)
	assert.Equal(t, combat.ResultMonstersWin, out.Result)

	out, err = combat.RunBattle(roster(combat.NewCombatant(combat.RoleTank, "T")), nil)
	require.NoError(t, err)
	assert.Equal(t, combat.ResultHeroesWin, out.Result)
}

func TestBattle_RejectsWrongSide(t *testing.T) {
	m := combat.NewCombatant(combat.RoleHunter, "H")
	_, err := combat.NewBattle(roster(m), nil)
	assert.Error(t, err)

	h := combat.NewCombatant(combat.RoleHealer, "A")
	_, err = combat.NewBattle(nil, roster(h))
	assert.Error(t, err)

	_, err = combat.NewBattle([]combat.Combatant{nil}, nil)
	assert.Error(t, err)
}

func TestBattle_PhasesAndResolvedIsTerminal(t *testing.T) {
	hero := combat.NewCombatant(combat.RoleAttacker, "Blade")
	monster := combat.NewCombatant(combat.RoleHunter, "Stalker", combat.WithHP(30))

	b, err := combat.NewBattle(roster(hero), roster(monster))
	require.NoError(t, err)
	assert.Equal(t, combat.PhaseSetup, b.Phase())
	assert.Equal(t, combat.ResultUndecided, b.Outcome().Result)

	_, err = b.Step()
	require.NoError(t, err)
	assert.Equal(t, combat.PhaseTurnCycle, b.Phase())
	live := b.Outcome()
	assert.Equal(t, combat.ResultUndecided, live.Result)
	assert.Equal(t, 1, live.Turns)
	require.Len(t, live.Monsters, 1)
	assert.Less(t, live.Monsters[0].HP, 30.0)

	out := b.Run()
	assert.Equal(t, combat.PhaseResolved, b.Phase())
	assert.True(t, b.Resolved())
	assert.Equal(t, combat.ResultHeroesWin, out.Result)

	turns := b.Turns()
	_, err = b.Step()
	assert.True(t, errors.Is(err, combat.ErrBattleResolved))
	assert.Equal(t, turns, b.Turns(), "no moves after resolution")
}

func TestBattle_DeadCombatantsAreSkipped(t *testing.T) {
	fallen := combat.NewCombatant(combat.RoleAttacker, "Fallen", combat.WithHP(0))
	tankHero := combat.NewCombatant(combat.RoleTank, "Bulwark")
	monster := combat.NewCombatant(combat.RoleMonster, "Pacifist", combat.WithPower(0))

	var actors []string
	_, err := combat.RunBattle(roster(fallen, tankHero), roster(monster),
		combat.WithMaxTurns(10),
		combat.WithMoveHook(func(m combat.Move) { actors = append(actors, m.ActorName) }))
	require.NoError(t, err)
	assert.NotContains(t, actors, "Fallen")
	assert.Len(t, actors, 10)
}

// spy wraps a combatant and records what DecideMove receives.
type spy struct {
	combat.Combatant
	allies  [][]combat.Combatant
	enemies [][]combat.Combatant
}

func (s *spy) DecideMove(allies, enemies []combat.Combatant) combat.Move {
	s.allies = append(s.allies, allies)
	s.enemies = append(s.enemies, enemies)
	return s.Combatant.DecideMove(allies, enemies)
}

func TestBattle_PassesLivingAlliesAndEnemies(t *testing.T) {
	s := &spy{Combatant: combat.NewCombatant(combat.RoleTank, "Bulwark")}
	deadAlly := combat.NewCombatant(combat.RoleHealer, "Ghost", combat.WithHP(0))
	deadEnemy := combat.NewCombatant(combat.RoleMonster, "Husk", combat.WithHP(0))
	enemy := combat.NewCombatant(combat.RoleMonster, "Pacifist", combat.WithPower(0))

	_, err := combat.RunBattle(roster(s, deadAlly), roster(deadEnemy, enemy), combat.WithMaxTurns(2))
	require.NoError(t, err)
	require.Len(t, s.allies, 1)
	assert.Equal(t, []combat.Combatant{s}, s.allies[0], "allies include self and exclude the dead")
	assert.Equal(t, []combat.Combatant{enemy}, s.enemies[0])
}

func TestBattle_HooksSeeEveryMove(t *testing.T) {
	heroes := roster(
		combat.NewCombatant(combat.RoleHealer, "Aria"),
		combat.NewCombatant(combat.RoleTank, "Bulwark"),
		combat.NewCombatant(combat.RoleAttacker, "Blade"),
	)
	monsters := roster(
		combat.NewCombatant(combat.RoleBerserk, "Rager"),
		combat.NewCombatant(combat.RoleHunter, "Stalker"),
	)
	count := 0
	out, err := combat.RunBattle(heroes, monsters, combat.WithMoveHook(func(combat.Move) { count++ }))
	require.NoError(t, err)
	assert.NotEqual(t, combat.ResultUndecided, out.Result)
	assert.Equal(t, out.Turns, count)
}

func TestBattle_LogsResolution(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	hero := combat.NewCombatant(combat.RoleAttacker, "Blade")
	monster := combat.NewCombatant(combat.RoleBerserk, "Rager", combat.WithHP(5))

	_, err := combat.RunBattle(roster(hero), roster(monster), combat.WithLogger(zap.New(core)))
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("battle resolved").Len())
	assert.Equal(t, 1, logs.FilterMessage("move").Len())
}

func TestBattle_OutcomeSnapshotsRoleFields(t *testing.T) {
	heroes := roster(
		combat.NewCombatant(combat.RoleHealer, "Aria"),
		combat.NewCombatant(combat.RoleTank, "Bulwark"),
		combat.NewCombatant(combat.RoleAttacker, "Blade"),
	)
	out, err := combat.RunBattle(heroes, nil)
	require.NoError(t, err)
	require.Len(t, out.Heroes, 3)
	assert.Equal(t, 30.0, out.Heroes[0].MagicPower)
	assert.Equal(t, 1.0, out.Heroes[1].Defense)
	assert.Equal(t, 1.0, out.Heroes[2].PowerMultiplier)
}

type member struct {
	Role combat.Role
	HP   float64
}

func buildRoster(side string, ms []member) []combat.Combatant {
	var out []combat.Combatant
	for i, m := range ms {
		id := fmt.Sprintf("%s-%d", side, i)
		out = append(out, combat.NewCombatant(m.Role, id, combat.WithID(id), combat.WithHP(m.HP)))
	}
	return out
}

func TestProperty_Battle_ReplayIsDeterministic(t *testing.T) {
	heroRole := rapid.SampledFrom([]combat.Role{combat.RoleHealer, combat.RoleTank, combat.RoleAttacker})
	monsterRole := rapid.SampledFrom([]combat.Role{combat.RoleBerserk, combat.RoleHunter, combat.RoleMonster})
	rapid.Check(t, func(rt *rapid.T) {
		hp := rapid.Float64Range(1, 200)
		heroes := rapid.SliceOfN(rapid.Custom(func(rt *rapid.T) member {
			return member{Role: heroRole.Draw(rt, "role"), HP: hp.Draw(rt, "hp")}
		}), 1, 4).Draw(rt, "heroes")
		monsters := rapid.SliceOfN(rapid.Custom(func(rt *rapid.T) member {
			return member{Role: monsterRole.Draw(rt, "role"), HP: hp.Draw(rt, "hp")}
		}), 1, 4).Draw(rt, "monsters")

		run := func() ([]combat.Move, combat.Outcome) {
			var moves []combat.Move
			out, err := combat.RunBattle(buildRoster("h", heroes), buildRoster("m", monsters),
				combat.WithMaxTurns(300),
				combat.WithMoveHook(func(m combat.Move) { moves = append(moves, m) }))
			require.NoError(rt, err)
			return moves, out
		}
		moves1, out1 := run()
		moves2, out2 := run()
		assert.Equal(rt, moves1, moves2)
		assert.Equal(rt, out1, out2)
		assert.NotEqual(rt, combat.ResultUndecided, out1.Result)
	})
}
