// Package sim implements the Star Dodge simulation: entity records, the
// spawner, movement, collision and scoring, the game state machine and the
// loop driver. It depends only on core and config, never on a frontend.
package sim

import (
	"math"

	"github.com/vovakirdan/star-dodge/internal/config"
	"github.com/vovakirdan/star-dodge/internal/core"
)

// Player is the ship steered by the user.
type Player struct {
	X, Y          float64 // Top-left corner
	Width, Height float64
	Speed         float64 // Full horizontal speed in surface units per tick
	DX            float64 // Current horizontal velocity intent
}

// NewPlayer derives the ship geometry from the surface size.
// The ship is centred horizontally and rests above the bottom margin.
func NewPlayer(cfg config.PlayerConfig, w, h float64) Player {
	// Never wider than the surface, so the clamp range stays valid
	width := math.Min(w, math.Max(cfg.MinWidth, w*cfg.WidthRatio))
	height := width
	if cfg.HeightRatio > 0 {
		height = math.Max(cfg.MinHeight, h*cfg.HeightRatio)
	}

	p := Player{
		Width:  width,
		Height: height,
		Speed:  w * cfg.SpeedRatio,
	}
	p.X = core.Clamp(w/2-width/2, 0, w-width)
	p.Y = h - height - cfg.BottomMargin
	return p
}

// Rect returns the player's collision box.
func (p Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// Obstacle is a falling, spinning asteroid. It is always square.
type Obstacle struct {
	X, Y          float64 // Top-left corner
	Size          float64 // Both width and height
	Speed         float64 // Downward speed per tick
	Rotation      float64 // Radians, unbounded
	RotationDelta float64 // Radians per tick
}

// Rect returns the obstacle's collision box.
func (o Obstacle) Rect() core.Rect {
	return core.NewRect(o.X, o.Y, o.Size, o.Size)
}

// Bottom returns the y-coordinate of the bottom edge.
func (o Obstacle) Bottom() float64 {
	return o.Y + o.Size
}

// Session is the mutable state of one game attempt.
type Session struct {
	Score         int
	Lives         int
	Running       bool
	Frame         int // Ticks since start, drives the spawn cadence
	SpawnInterval int // Ticks between spawns
	Elapsed       int // Ticks since start, drives the difficulty ramp
	Player        Player
	Obstacles     []Obstacle
}

// NewSession returns a fresh session sized for a w x h surface.
func NewSession(cfg config.GameConfig, w, h float64) *Session {
	return &Session{
		Lives:         cfg.Scoring.Lives,
		SpawnInterval: cfg.Spawn.InitialInterval,
		Player:        NewPlayer(cfg.Player, w, h),
		Obstacles:     make([]Obstacle, 0, 16),
	}
}

// Reset returns the session to its starting values, keeping the obstacle
// slice's backing array.
func (s *Session) Reset(cfg config.GameConfig, w, h float64) {
	s.Score = 0
	s.Lives = cfg.Scoring.Lives
	s.Running = false
	s.Frame = 0
	s.SpawnInterval = cfg.Spawn.InitialInterval
	s.Elapsed = 0
	s.Player = NewPlayer(cfg.Player, w, h)
	s.Obstacles = s.Obstacles[:0]
}
