// Package skins holds drawing helpers shared by every skin: the procedural
// asteroid, the placeholder ship and the scrolling starfield.
package skins

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/star-dodge/internal/core"
	"github.com/vovakirdan/star-dodge/internal/sim"
)

// MeteoriteSprite is the shared asteroid image.
var MeteoriteSprite = core.Sprite{Name: "meteorite", File: "meteorite.png", Columns: 1, Rows: 1}

const asteroidPoints = 8

// jitter returns a stable pseudo-random value in [0, 1) for an obstacle and
// index, so an asteroid keeps its outline from frame to frame.
func jitter(o sim.Obstacle, i int) float64 {
	h := math.Float64bits(o.Size)*0x9E3779B97F4A7C15 + uint64(i+1)*0xBF58476D1CE4E5B9
	h ^= h >> 31
	h *= 0x94D049BB133111EB
	h ^= h >> 29
	return float64(h>>11) / float64(1<<53)
}

// Transform rotates pts by angle around the origin, then moves them to centre.
func Transform(pts []mgl64.Vec2, centre mgl64.Vec2, angle float64) []mgl64.Vec2 {
	rot := mgl64.Rotate2D(angle)
	out := make([]mgl64.Vec2, len(pts))
	for i, p := range pts {
		out[i] = rot.Mul2x1(p).Add(centre)
	}
	return out
}

// AsteroidOutline returns the rotated irregular polygon for o in surface
// coordinates.
func AsteroidOutline(o sim.Obstacle) []mgl64.Vec2 {
	radius := o.Size / 2
	pts := make([]mgl64.Vec2, asteroidPoints)
	for i := range pts {
		angle := float64(i) * 2 * math.Pi / asteroidPoints
		dist := radius * (0.7 + jitter(o, i)*0.3)
		pts[i] = mgl64.Vec2{math.Cos(angle) * dist, math.Sin(angle) * dist}
	}
	cx, cy := o.Rect().Center()
	return Transform(pts, mgl64.Vec2{cx, cy}, o.Rotation)
}

// DrawAsteroid draws the meteorite sprite when the surface has it loaded,
// otherwise a rocky polygon with a few darker craters.
func DrawAsteroid(dst core.Surface, o sim.Obstacle) {
	if ss, ok := dst.(core.SpriteSurface); ok && ss.DrawSprite(MeteoriteSprite.Name, 0, o.Rect(), o.Rotation) {
		return
	}

	dst.FillPolygon(AsteroidOutline(o), core.ColorRock)

	radius := o.Size / 2
	cx, cy := o.Rect().Center()
	for i := 0; i < 3; i++ {
		offset := mgl64.Vec2{
			(jitter(o, 10+i) - 0.5) * radius,
			(jitter(o, 20+i) - 0.5) * radius,
		}
		pos := mgl64.Rotate2D(o.Rotation).Mul2x1(offset)
		size := math.Max(1, radius*0.25*jitter(o, 30+i))
		dst.FillRect(core.NewRect(cx+pos.X()-size/2, cy+pos.Y()-size/2, size, size), core.ColorRockDark)
	}
}

// DrawPlaceholderShip draws the fallback ship: a hull with a cockpit window.
func DrawPlaceholderShip(dst core.Surface, p sim.Player, hull core.Color) {
	dst.FillRect(p.Rect(), hull)
	dst.FillRect(core.NewRect(
		p.X+p.Width*0.3,
		p.Y+p.Height*0.2,
		p.Width*0.4,
		p.Height*0.4,
	), core.ColorCockpit)
}

// DrawFlame draws a flickering exhaust flame below the ship.
func DrawFlame(dst core.Surface, p sim.Player, frame int) {
	length := p.Height * 0.25
	if (frame/4)%2 == 1 {
		length *= 0.6
	}
	cx := p.X + p.Width/2
	base := p.Y + p.Height
	dst.FillPolygon([]mgl64.Vec2{
		{cx - p.Width*0.12, base},
		{cx + p.Width*0.12, base},
		{cx, base + length},
	}, core.ColorFlame)
}
