// Package main runs one heroes-versus-monsters battle from a configuration
// file and narrates it through the logger.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Aizek31/portfolio/internal/config"
	"github.com/Aizek31/portfolio/internal/game/combat"
	"github.com/Aizek31/portfolio/internal/lifecycle"
	"github.com/Aizek31/portfolio/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	report := flag.Bool("report", false, "print the battle outcome as YAML on stdout")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	mgr, tactics, err := loadTactics(cfg.Scripting, logger)
	if err != nil {
		logger.Fatal("loading tactics", zap.Error(err))
	}
	if mgr != nil {
		defer mgr.Close()
	}

	heroes, monsters, err := buildRosters(cfg.Roster, tactics, logger)
	if err != nil {
		logger.Fatal("building rosters", zap.Error(err))
	}

	b, err := combat.NewBattle(heroes, monsters,
		combat.WithMaxTurns(cfg.Battle.MaxTurns),
		combat.WithLogger(logger),
		combat.WithMoveHook(func(mv combat.Move) { logger.Info(mv.Narrative()) }),
	)
	if err != nil {
		logger.Fatal("setting up battle", zap.Error(err))
	}

	lc := lifecycle.New(logger)
	lc.Add("battle", battleService(b))
	if err := lc.Run(context.Background()); err != nil {
		logger.Fatal("battle failed", zap.Error(err))
	}

	out := b.Outcome()
	if !b.Resolved() {
		logger.Warn("battle interrupted", zap.Int("turns", b.Turns()), zap.Int("rounds", b.Rounds()))
	}
	for _, group := range [][]combat.Snapshot{out.Heroes, out.Monsters} {
		for _, s := range group {
			logger.Info("final state",
				zap.String("name", s.Name),
				zap.String("role", s.Role),
				zap.Float64("hp", s.HP),
				zap.Bool("alive", s.Alive),
			)
		}
	}
	logger.Info("battle over",
		zap.String("result", out.Result.String()),
		zap.Int("turns", out.Turns),
		zap.Duration("elapsed", time.Since(start)),
	)

	if *report {
		data, err := yaml.Marshal(out)
		if err != nil {
			logger.Fatal("encoding report", zap.Error(err))
		}
		fmt.Fprint(os.Stdout, string(data))
	}
}

// battleService steps b until it resolves or is stopped.
func battleService(b *combat.Battle) lifecycle.Service {
	var stopped atomic.Bool
	return &lifecycle.FuncService{
		StartFn: func() error {
			for !stopped.Load() {
				if _, err := b.Step(); err != nil {
					if errors.Is(err, combat.ErrBattleResolved) {
						return nil
					}
					return err
				}
			}
			return nil
		},
		StopFn: func() { stopped.Store(true) },
	}
}
