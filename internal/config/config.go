// Package config provides YAML-based game configuration loading, variant
// presets and difficulty presets for Star Dodge.
package config

import (
	"errors"
	"fmt"
)

// GameConfig contains all tunable parameters of the simulation.
type GameConfig struct {
	Variant   Variant        `yaml:"variant"`
	Player    PlayerConfig   `yaml:"player"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Spawn     SpawnConfig    `yaml:"spawn"`
	Scoring   ScoringConfig  `yaml:"scoring"`
	Audio     AudioConfig    `yaml:"audio"`
}

// PlayerConfig derives the ship geometry from the surface size.
type PlayerConfig struct {
	WidthRatio   float64 `yaml:"width_ratio"`   // Fraction of surface width
	MinWidth     float64 `yaml:"min_width"`     // Lower bound in surface units
	HeightRatio  float64 `yaml:"height_ratio"`  // Fraction of surface height, 0 = square
	MinHeight    float64 `yaml:"min_height"`    // Lower bound when HeightRatio is set
	BottomMargin float64 `yaml:"bottom_margin"` // Gap between ship and bottom edge
	SpeedRatio   float64 `yaml:"speed_ratio"`   // Horizontal speed as fraction of width per tick
	TouchFactor  float64 `yaml:"touch_factor"`  // Speed multiplier for drag/touch steering
}

// ObstacleConfig controls asteroid size, fall speed and spin.
type ObstacleConfig struct {
	MinSizeRatio float64 `yaml:"min_size_ratio"` // Smallest asteroid as fraction of width
	MaxSizeRatio float64 `yaml:"max_size_ratio"` // Largest asteroid as fraction of width
	SpeedMin     float64 `yaml:"speed_min"`      // Base of the random speed factor
	SpeedRange   float64 `yaml:"speed_range"`    // Spread of the random speed factor
	SpeedScale   float64 `yaml:"speed_scale"`    // Speed factor multiplied by surface width
	MaxSpin      float64 `yaml:"max_spin"`       // Max rotation delta in radians per tick
}

// SpawnConfig defines the spawn cadence and its ramp.
type SpawnConfig struct {
	InitialInterval int  `yaml:"initial_interval"` // Ticks between spawns at start
	MinInterval     int  `yaml:"min_interval"`     // Floor for the interval
	RampEvery       int  `yaml:"ramp_every"`       // Ticks between interval decrements
	Fixed           bool `yaml:"fixed"`            // Disable the ramp entirely
}

// ScoringConfig defines rewards and lives.
type ScoringConfig struct {
	DodgeReward int `yaml:"dodge_reward"`
	Lives       int `yaml:"lives"`
}

// AudioConfig controls background music.
type AudioConfig struct {
	Muted  bool    `yaml:"muted"`
	Volume float64 `yaml:"volume"` // 0.0 - 1.0
	Tempo  int     `yaml:"tempo"`  // Beats per minute
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate checks that the configuration can drive a simulation.
func (c GameConfig) Validate() error {
	switch {
	case c.Player.WidthRatio <= 0 && c.Player.MinWidth <= 0:
		return fmt.Errorf("%w: player width must be positive", ErrInvalidConfig)
	case c.Player.SpeedRatio <= 0:
		return fmt.Errorf("%w: player speed_ratio must be positive", ErrInvalidConfig)
	case c.Obstacles.MinSizeRatio <= 0 || c.Obstacles.MaxSizeRatio < c.Obstacles.MinSizeRatio:
		return fmt.Errorf("%w: obstacle size ratios must satisfy 0 < min <= max", ErrInvalidConfig)
	case c.Obstacles.MaxSizeRatio >= 1:
		return fmt.Errorf("%w: obstacle max_size_ratio must be below 1", ErrInvalidConfig)
	case c.Obstacles.SpeedScale <= 0:
		return fmt.Errorf("%w: obstacle speed_scale must be positive", ErrInvalidConfig)
	case c.Spawn.InitialInterval <= 0 || c.Spawn.MinInterval <= 0:
		return fmt.Errorf("%w: spawn intervals must be positive", ErrInvalidConfig)
	case c.Spawn.MinInterval > c.Spawn.InitialInterval:
		return fmt.Errorf("%w: spawn min_interval %d exceeds initial_interval %d",
			ErrInvalidConfig, c.Spawn.MinInterval, c.Spawn.InitialInterval)
	case !c.Spawn.Fixed && c.Spawn.RampEvery <= 0:
		return fmt.Errorf("%w: spawn ramp_every must be positive", ErrInvalidConfig)
	case c.Scoring.Lives <= 0:
		return fmt.Errorf("%w: lives must be positive", ErrInvalidConfig)
	case c.Scoring.DodgeReward < 0:
		return fmt.Errorf("%w: dodge_reward must not be negative", ErrInvalidConfig)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio volume must be within [0, 1]", ErrInvalidConfig)
	}
	return nil
}
