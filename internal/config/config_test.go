package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Battle: BattleConfig{MaxTurns: 1000},
		Roster: RosterConfig{
			HeroCount:    3,
			MonsterCount: 3,
		},
		Scripting: ScriptingConfig{InstructionLimit: 100_000},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestDefaultsAreValid(t *testing.T) {
	cfg, err := LoadFromViper(Defaults())
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Battle.MaxTurns)
	assert.Equal(t, 3, cfg.Roster.HeroCount)
	assert.Equal(t, 3, cfg.Roster.MonsterCount)
	assert.Equal(t, 100_000, cfg.Scripting.InstructionLimit)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
battle:
  max_turns: 250
roster:
  heroes_file: heroes.yaml
  seed: 42
  monster_count: 5
scripting:
  dir: scripts
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 250, cfg.Battle.MaxTurns)
	assert.Equal(t, "heroes.yaml", cfg.Roster.HeroesFile)
	assert.Equal(t, int64(42), cfg.Roster.Seed)
	assert.Equal(t, 5, cfg.Roster.MonsterCount)
	assert.Equal(t, 3, cfg.Roster.HeroCount)
	assert.Equal(t, "scripts", cfg.Scripting.Dir)
	assert.Equal(t, 100_000, cfg.Scripting.InstructionLimit)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte("battle:\n  max_turns: 10\n"), 0644))
	t.Setenv("BATTLE_BATTLE_MAX_TURNS", "77")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 77, cfg.Battle.MaxTurns)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateMaxTurns(t *testing.T) {
	cfg := validConfig()
	cfg.Battle.MaxTurns = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateRosterCounts(t *testing.T) {
	cfg := validConfig()
	cfg.Roster.HeroCount = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Roster.MonsterCount = MaxRosterSize + 1
	assert.Error(t, cfg.Validate())
}

func TestValidateRosterCountsIgnoredWithFile(t *testing.T) {
	cfg := validConfig()
	cfg.Roster.HeroesFile = "heroes.yaml"
	cfg.Roster.HeroCount = 0
	cfg.Roster.MonstersFile = "monsters.yaml"
	cfg.Roster.MonsterCount = -4
	assert.NoError(t, cfg.Validate())
}

func TestValidateInstructionLimit(t *testing.T) {
	cfg := validConfig()
	cfg.Scripting.InstructionLimit = -1
	assert.Error(t, cfg.Validate())
}

func TestValidateReportsEveryViolation(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	cfg.Battle.MaxTurns = -1
	cfg.Scripting.InstructionLimit = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "battle.max_turns")
	assert.Contains(t, err.Error(), "scripting.instruction_limit")
}

// Property-based tests

func TestPropertyValidRosterCounts(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := validConfig()
		cfg.Roster.HeroCount = rapid.IntRange(1, MaxRosterSize).Draw(t, "heroes")
		cfg.Roster.MonsterCount = rapid.IntRange(1, MaxRosterSize).Draw(t, "monsters")
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid counts rejected: %v", err)
		}
	})
}

func TestPropertyInvalidMaxTurns(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := validConfig()
		cfg.Battle.MaxTurns = rapid.IntRange(-1000, 0).Draw(t, "max_turns")
		if cfg.Validate() == nil {
			t.Fatalf("max_turns %d accepted", cfg.Battle.MaxTurns)
		}
	})
}
