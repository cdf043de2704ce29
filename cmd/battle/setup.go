package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Aizek31/portfolio/internal/config"
	"github.com/Aizek31/portfolio/internal/game/ai"
	"github.com/Aizek31/portfolio/internal/game/combat"
	"github.com/Aizek31/portfolio/internal/game/dice"
	"github.com/Aizek31/portfolio/internal/game/roster"
	"github.com/Aizek31/portfolio/internal/scripting"
)

// loadTactics loads the configured Lua scripts and wraps them as monster
// tactics. Returns (nil, nil, nil) when scripting is disabled.
//
// Postcondition: when non-nil, the returned Manager must be closed by the caller.
func loadTactics(cfg config.ScriptingConfig, logger *zap.Logger) (*scripting.Manager, combat.Tactics, error) {
	if cfg.Dir == "" {
		return nil, nil, nil
	}
	mgr := scripting.NewManager(logger)
	if err := mgr.LoadDir(cfg.Dir, cfg.InstructionLimit); err != nil {
		mgr.Close()
		return nil, nil, fmt.Errorf("loading scripts: %w", err)
	}
	return mgr, ai.NewScriptedTactics(mgr, logger), nil
}

// buildRosters loads each side from its file, or generates it when no file
// is configured. Monsters receive tactics when non-nil.
//
// Postcondition: Returns heroes and monsters in turn order, or an error.
func buildRosters(cfg config.RosterConfig, tactics combat.Tactics, logger *zap.Logger) ([]combat.Combatant, []combat.Combatant, error) {
	gen := roster.NewGenerator(dice.NewSeededSource(cfg.Seed))

	var monsterOpts []combat.Option
	if tactics != nil {
		monsterOpts = append(monsterOpts, combat.WithTactics(tactics))
	}

	heroes, err := side(gen, combat.SideHeroes, cfg.HeroesFile, cfg.HeroCount, nil, logger)
	if err != nil {
		return nil, nil, err
	}
	monsters, err := side(gen, combat.SideMonsters, cfg.MonstersFile, cfg.MonsterCount, monsterOpts, logger)
	if err != nil {
		return nil, nil, err
	}
	return heroes, monsters, nil
}

func side(gen *roster.Generator, want combat.Side, path string, n int, opts []combat.Option, logger *zap.Logger) ([]combat.Combatant, error) {
	if path == "" {
		cs := gen.Generate(want, n, opts...)
		logger.Info("roster generated", zap.String("side", want.String()), zap.Int("count", len(cs)))
		return cs, nil
	}
	f, err := roster.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if f.SideOf() != want {
		return nil, fmt.Errorf("roster %q lists %s, expected %s", path, f.SideOf(), want)
	}
	cs := f.Build(opts...)
	logger.Info("roster loaded",
		zap.String("side", want.String()),
		zap.String("file", path),
		zap.Int("count", len(cs)),
	)
	return cs, nil
}
