// Package config provides Viper-based configuration loading for the battle runner.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// MaxRosterSize bounds generated roster sizes.
const MaxRosterSize = 100

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// BattleConfig holds battle controller settings.
type BattleConfig struct {
	// MaxTurns stops a battle after this many combatant turns.
	MaxTurns int `mapstructure:"max_turns"`
}

// RosterConfig says where the two sides come from. A side with an empty
// file is generated randomly.
type RosterConfig struct {
	HeroesFile   string `mapstructure:"heroes_file"`
	MonstersFile string `mapstructure:"monsters_file"`
	// Seed makes generated rosters reproducible; 0 draws from crypto/rand.
	Seed         int64 `mapstructure:"seed"`
	HeroCount    int   `mapstructure:"hero_count"`
	MonsterCount int   `mapstructure:"monster_count"`
}

// ScriptingConfig holds Lua tactics settings.
type ScriptingConfig struct {
	// Dir holds *.lua scripts; empty disables scripted tactics.
	Dir string `mapstructure:"dir"`
	// InstructionLimit caps opcodes per hook call; 0 uses the scripting default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Battle    BattleConfig    `mapstructure:"battle"`
	Roster    RosterConfig    `mapstructure:"roster"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Battle.MaxTurns < 1 {
		errs = append(errs, fmt.Sprintf("battle.max_turns must be >= 1, got %d", c.Battle.MaxTurns))
	}
	if err := validateRoster(c.Roster); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Scripting.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", c.Scripting.InstructionLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateRoster(r RosterConfig) error {
	var errs []string
	if r.HeroesFile == "" && (r.HeroCount < 1 || r.HeroCount > MaxRosterSize) {
		errs = append(errs, fmt.Sprintf("roster.hero_count must be 1-%d, got %d", MaxRosterSize, r.HeroCount))
	}
	if r.MonstersFile == "" && (r.MonsterCount < 1 || r.MonsterCount > MaxRosterSize) {
		errs = append(errs, fmt.Sprintf("roster.monster_count must be 1-%d, got %d", MaxRosterSize, r.MonsterCount))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with BATTLE_ prefix
	v.SetEnvPrefix("BATTLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default values.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("battle.max_turns", 1000)

	v.SetDefault("roster.heroes_file", "")
	v.SetDefault("roster.monsters_file", "")
	v.SetDefault("roster.seed", 0)
	v.SetDefault("roster.hero_count", 3)
	v.SetDefault("roster.monster_count", 3)

	v.SetDefault("scripting.dir", "")
	v.SetDefault("scripting.instruction_limit", 100_000)
}
