// Package config provides YAML-based configuration loading with
// environment overrides for the progression core.
package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Config contains all configuration for the progression core.
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Progression ProgressionConfig `yaml:"progression"`
	Log         LogConfig         `yaml:"log"`
}

// StorageConfig defines where persistent data lives.
type StorageConfig struct {
	Path string `yaml:"path" env:"DUNGEON_DB"`
}

// ProgressionConfig defines save keys, profiles and the reward RNG seed.
type ProgressionConfig struct {
	AchievementKeyPrefix string `yaml:"achievement_key_prefix"`
	MetaKey              string `yaml:"meta_key"`
	Profile              int    `yaml:"profile" env:"DUNGEON_PROFILE"`
	TotalProfiles        int    `yaml:"total_profiles"`
	// Seed 0 seeds from the clock.
	Seed int64 `yaml:"seed" env:"DUNGEON_SEED"`
}

// LogConfig defines logger verbosity.
type LogConfig struct {
	Level string `yaml:"level" env:"DUNGEON_LOG_LEVEL"`
}

// Validate checks value ranges after loading and overrides.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("config: storage path is required")
	}
	if c.Progression.TotalProfiles < 1 {
		return fmt.Errorf("config: total_profiles must be at least 1, got %d", c.Progression.TotalProfiles)
	}
	if c.Progression.Profile < 0 || c.Progression.Profile >= c.Progression.TotalProfiles {
		return fmt.Errorf("config: profile %d out of range [0,%d)", c.Progression.Profile, c.Progression.TotalProfiles)
	}
	if c.Progression.AchievementKeyPrefix == "" || c.Progression.MetaKey == "" {
		return fmt.Errorf("config: save keys must not be empty")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses the configured level; empty means info.
func (c Config) LogLevel() (log.Level, error) {
	if c.Log.Level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return lvl, fmt.Errorf("config: %w", err)
	}
	return lvl, nil
}
