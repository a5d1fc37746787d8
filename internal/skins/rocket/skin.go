// Package rocket implements the rocket skin: a narrow rocket with a pointed
// nose, paired with the faster rocket balance preset and the "orbit" theme.
package rocket

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/star-dodge/internal/audio"
	"github.com/vovakirdan/star-dodge/internal/config"
	"github.com/vovakirdan/star-dodge/internal/core"
	"github.com/vovakirdan/star-dodge/internal/registry"
	"github.com/vovakirdan/star-dodge/internal/sim"
	"github.com/vovakirdan/star-dodge/internal/skins"
)

var rocketSprite = core.Sprite{Name: "rocket", File: "rocket.png", Columns: 1, Rows: 1}

// Skin draws the rocket.
type Skin struct{}

// New creates the skin.
func New() *Skin { return &Skin{} }

func (s *Skin) ID() string { return "rocket" }
func (s *Skin) Title() string { return "Rocket" }
func (s *Skin) Variant() config.Variant { return config.VariantRocket }
func (s *Skin) Theme() audio.Theme { return audio.ThemeOrbit }

// Sprites returns the rocket image and the meteorite.
func (s *Skin) Sprites() []core.Sprite {
	return []core.Sprite{rocketSprite, skins.MeteoriteSprite}
}

// DrawPlayer draws the rocket image, or a procedural rocket until it is loaded.
func (s *Skin) DrawPlayer(dst core.Surface, p sim.Player, frame int) {
	if ss, ok := dst.(core.SpriteSurface); ok && ss.DrawSprite(rocketSprite.Name, 0, p.Rect(), 0) {
		return
	}

	skins.DrawFlame(dst, p, frame)

	// Body lies below a nose cone taking the top quarter
	nose := p.Height * 0.25
	body := core.NewRect(p.X+p.Width*0.2, p.Y+nose, p.Width*0.6, p.Height-nose)
	dst.FillRect(body, core.ColorRocket)
	dst.FillPolygon([]mgl64.Vec2{
		{body.X, body.Y},
		{body.Right(), body.Y},
		{p.X + p.Width/2, p.Y},
	}, core.ColorDanger)

	// Fins
	dst.FillRect(core.NewRect(p.X, p.Y+p.Height*0.6, p.Width*0.2, p.Height*0.4), core.ColorShip)
	dst.FillRect(core.NewRect(p.X+p.Width*0.8, p.Y+p.Height*0.6, p.Width*0.2, p.Height*0.4), core.ColorShip)

	// Window
	dst.FillRect(core.NewRect(p.X+p.Width*0.4, p.Y+p.Height*0.4, p.Width*0.2, p.Height*0.2), core.ColorCockpit)
}

// DrawObstacle draws a meteorite.
func (s *Skin) DrawObstacle(dst core.Surface, o sim.Obstacle) {
	skins.DrawAsteroid(dst, o)
}

func init() {
	registry.Register("rocket", func() registry.Skin {
		return New()
	})
}
