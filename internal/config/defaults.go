package config

import (
	_ "embed"
)

//go:embed defaults/dungeon.yaml
var defaultDungeonYAML []byte

// DefaultConfig returns the hardcoded configuration used when the
// embedded YAML cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Path: "~/.dungeon/progress.db",
		},
		Progression: ProgressionConfig{
			AchievementKeyPrefix: "achievements",
			MetaKey:              "meta_progression",
			Profile:              0,
			TotalProfiles:        3,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
