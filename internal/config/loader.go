package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "stardodge.yaml"

// Presets selects the balance presets layered around the config file.
type Presets struct {
	// Variant is the explicit variant, e.g. from --variant. It wins over
	// the file's variant key.
	Variant string

	// SkinVariant is used when neither Variant nor the file names one.
	SkinVariant Variant

	// Difficulty is applied after the file. Empty keeps the file values.
	Difficulty string
}

// Load loads the game configuration.
// Search order: customPath -> ~/.stardodge/configs/stardodge.yaml ->
// ./configs/stardodge.yaml -> embedded default.
// Only a failing customPath is reported as an error; the other locations
// are optional and skipped when missing or malformed.
func Load(customPath string) (GameConfig, error) {
	return load(customPath, Presets{})
}

func load(customPath string, p Presets) (GameConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GameConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data, p)
		if err != nil {
			return GameConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data, p); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := parse(data, p); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultYAML, p)
	if err != nil {
		return GameConfig{}, err
	}
	return cfg, nil
}

// Resolve loads the configuration for one game. The variant preset is laid
// down first and the file decoded over it, so keys the file sets always
// survive; the difficulty preset is applied last.
func Resolve(customPath string, p Presets) (GameConfig, error) {
	if p.Variant != "" {
		if _, err := ParseVariant(p.Variant); err != nil {
			return GameConfig{}, err
		}
	}
	d, err := ParseDifficulty(p.Difficulty)
	if err != nil {
		return GameConfig{}, err
	}

	cfg, err := load(customPath, p)
	if err != nil {
		return GameConfig{}, err
	}

	ApplyDifficulty(&cfg, d)
	if err := cfg.Validate(); err != nil {
		return GameConfig{}, err
	}
	return cfg, nil
}

// parse decodes YAML on top of the defaults of the selected variant so
// partial files only override the keys they mention.
func parse(data []byte, p Presets) (GameConfig, error) {
	var head struct {
		Variant string `yaml:"variant"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return GameConfig{}, err
	}

	name := p.Variant
	if name == "" {
		name = head.Variant
	}
	if name == "" {
		name = string(p.SkinVariant)
	}
	v, err := ParseVariant(name)
	if err != nil {
		return GameConfig{}, err
	}

	cfg := DefaultConfig()
	ApplyVariant(&cfg, v)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GameConfig{}, err
	}
	cfg.Variant = v

	if err := cfg.Validate(); err != nil {
		return GameConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stardodge", "configs", filename)
}
