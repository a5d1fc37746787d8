package config

import "fmt"

// Variant names a balance preset inherited from one of the game's skins.
type Variant string

const (
	VariantStarship Variant = "starship" // Large square ship, slow asteroids
	VariantRocket   Variant = "rocket"   // Narrow rocket, faster asteroids
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseVariant validates a variant name. Empty selects the default.
func ParseVariant(name string) (Variant, error) {
	switch Variant(name) {
	case "":
		return VariantStarship, nil
	case VariantStarship, VariantRocket:
		return Variant(name), nil
	default:
		return "", fmt.Errorf("config: unknown variant %q (want starship or rocket)", name)
	}
}

// ParseDifficulty validates a difficulty name. Empty means "keep config".
func ParseDifficulty(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(name) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(name), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// ApplyVariant modifies player geometry and fall speed for a variant.
func ApplyVariant(cfg *GameConfig, v Variant) {
	cfg.Variant = v
	switch v {
	case VariantRocket:
		cfg.Player.WidthRatio = 0.12
		cfg.Player.MinWidth = 48
		cfg.Player.HeightRatio = 0.06
		cfg.Player.MinHeight = 36
		cfg.Obstacles.SpeedScale = 0.001
	default:
		cfg.Player.WidthRatio = 0.18
		cfg.Player.MinWidth = 80
		cfg.Player.HeightRatio = 0
		cfg.Player.MinHeight = 0
		cfg.Obstacles.SpeedScale = 0.0006
	}
}

// ApplyDifficulty modifies spawn cadence and lives for a preset.
func ApplyDifficulty(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Spawn.InitialInterval = 80
		cfg.Spawn.MinInterval = 30
		cfg.Spawn.Fixed = false
		cfg.Scoring.Lives = 5
	case DifficultyNormal:
		cfg.Spawn.InitialInterval = 60
		cfg.Spawn.MinInterval = 20
		cfg.Spawn.Fixed = false
		cfg.Scoring.Lives = 3
	case DifficultyHard:
		cfg.Spawn.InitialInterval = 40
		cfg.Spawn.MinInterval = 15
		cfg.Spawn.Fixed = false
		cfg.Scoring.Lives = 2
	case DifficultyFixed:
		cfg.Spawn.Fixed = true
	}
}
