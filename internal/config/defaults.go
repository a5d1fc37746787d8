package config

import (
	_ "embed"
)

//go:embed defaults/stardodge.yaml
var defaultYAML []byte

// DefaultConfig returns the default configuration (starship variant,
// normal difficulty).
func DefaultConfig() GameConfig {
	return GameConfig{
		Variant: VariantStarship,
		Player: PlayerConfig{
			WidthRatio:   0.18,
			MinWidth:     80,
			HeightRatio:  0, // Square, matches the 64x64 sprite
			MinHeight:    0,
			BottomMargin: 20,
			SpeedRatio:   0.008,
			TouchFactor:  0.6,
		},
		Obstacles: ObstacleConfig{
			MinSizeRatio: 0.05,
			MaxSizeRatio: 0.15,
			SpeedMin:     0.8,
			SpeedRange:   1.5,
			SpeedScale:   0.0006,
			MaxSpin:      0.025,
		},
		Spawn: SpawnConfig{
			InitialInterval: 60,
			MinInterval:     20,
			RampEvery:       300,
		},
		Scoring: ScoringConfig{
			DodgeReward: 10,
			Lives:       3,
		},
		Audio: AudioConfig{
			Volume: 0.5,
			Tempo:  112,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
