// Package starship implements the default skin: an animated blue star ship
// dodging red meteorites to the "leap" theme.
package starship

import (
	"github.com/vovakirdan/star-dodge/internal/audio"
	"github.com/vovakirdan/star-dodge/internal/config"
	"github.com/vovakirdan/star-dodge/internal/core"
	"github.com/vovakirdan/star-dodge/internal/registry"
	"github.com/vovakirdan/star-dodge/internal/sim"
	"github.com/vovakirdan/star-dodge/internal/skins"
)

// ticksPerFrame is how many ticks each sprite frame is shown.
const ticksPerFrame = 8

var shipSprite = core.Sprite{
	Name:    "starship",
	File:    "BlueStarShip/Blue Star Ship Idle Sprite Sheet.png",
	Columns: 4,
	Rows:    2,
}

// Skin draws the star ship.
type Skin struct{}

// New creates the skin.
func New() *Skin { return &Skin{} }

func (s *Skin) ID() string { return "starship" }
func (s *Skin) Title() string { return "Blue Star Ship" }
func (s *Skin) Variant() config.Variant { return config.VariantStarship }
func (s *Skin) Theme() audio.Theme { return audio.ThemeLeap }

// Sprites returns the ship sheet and the meteorite.
func (s *Skin) Sprites() []core.Sprite {
	return []core.Sprite{shipSprite, skins.MeteoriteSprite}
}

// DrawPlayer draws the animated sheet, or a hull with cockpit and exhaust
// until the sheet is loaded.
func (s *Skin) DrawPlayer(dst core.Surface, p sim.Player, frame int) {
	anim := (frame / ticksPerFrame) % shipSprite.Frames()
	if ss, ok := dst.(core.SpriteSurface); ok && ss.DrawSprite(shipSprite.Name, anim, p.Rect(), 0) {
		return
	}
	skins.DrawFlame(dst, p, frame)
	skins.DrawPlaceholderShip(dst, p, core.ColorShip)
}

// DrawObstacle draws a meteorite.
func (s *Skin) DrawObstacle(dst core.Surface, o sim.Obstacle) {
	skins.DrawAsteroid(dst, o)
}

func init() {
	registry.Register("starship", func() registry.Skin {
		return New()
	})
}
