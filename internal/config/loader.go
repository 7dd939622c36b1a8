package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const t2048File = "t2048.yaml"

// LoadT2048 loads the game configuration.
// Search order: customPath -> ~/.tilemerge/configs/t2048.yaml -> ./configs/t2048.yaml -> embedded default
//
// Only a custom path reports errors; broken files found by the search are
// skipped.
func LoadT2048(customPath string) (T2048Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return T2048Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseT2048(data)
		if err != nil {
			return T2048Config{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(t2048File); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseT2048(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", t2048File)); err == nil {
		if cfg, err := ParseT2048(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := ParseT2048(defaultT2048YAML)
	if err != nil {
		return DefaultT2048Config(), nil // Fallback to hardcoded if embed is broken
	}
	return cfg, nil
}

// ParseT2048 validates and decodes a YAML document. Fields missing from the
// document keep their default values.
func ParseT2048(data []byte) (T2048Config, error) {
	if err := ValidateYAML(data); err != nil {
		return T2048Config{}, err
	}

	cfg := DefaultT2048Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return T2048Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return T2048Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tilemerge", "configs", filename)
}

// ApplyT2048Preset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyT2048Preset(cfg *T2048Config, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Spawn.RankOneChance = 0.1
	case DifficultyHard:
		cfg.Spawn.RankOneChance = 0.25
	}
}
