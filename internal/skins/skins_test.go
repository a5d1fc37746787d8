package skins

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/star-dodge/internal/core"
	"github.com/vovakirdan/star-dodge/internal/sim"
)

// recordingSurface counts draw calls and optionally pretends sprites are loaded.
type recordingSurface struct {
	rects    []core.Rect
	polygons [][]mgl64.Vec2
	sprites  []string
	loaded   bool
}

func (r *recordingSurface) Size() (float64, float64) { return 640, 480 }
func (r *recordingSurface) Clear(core.Color) {}
func (r *recordingSurface) FillRect(rect core.Rect, _ core.Color) { r.rects = append(r.rects, rect) }
func (r *recordingSurface) FillPolygon(pts []mgl64.Vec2, _ core.Color) {
	r.polygons = append(r.polygons, pts)
}
func (r *recordingSurface) Text(float64, float64, string, core.Color) {}
func (r *recordingSurface) DrawSprite(name string, _ int, _ core.Rect, _ float64) bool {
	if r.loaded {
		r.sprites = append(r.sprites, name)
	}
	return r.loaded
}

func TestAsteroidOutlineInsideBox(t *testing.T) {
	o := sim.Obstacle{X: 100, Y: 50, Size: 60, Rotation: 1.3}
	pts := AsteroidOutline(o)

	if len(pts) != asteroidPoints {
		t.Fatalf("outline has %d points, expected %d", len(pts), asteroidPoints)
	}

	centre := mgl64.Vec2{130, 80}
	for i, p := range pts {
		d := p.Sub(centre).Len()
		if d < 60*0.35-1e-9 || d > 30+1e-9 {
			t.Errorf("point %d at distance %.2f, expected within [21, 30]", i, d)
		}
	}
}

func TestAsteroidOutlineStableAcrossFrames(t *testing.T) {
	o := sim.Obstacle{X: 10, Y: 10, Size: 42}
	a := AsteroidOutline(o)
	b := AsteroidOutline(o)
	for i := range a {
		if !a[i].ApproxEqual(b[i]) {
			t.Fatalf("point %d moved between frames: %v vs %v", i, a[i], b[i])
		}
	}

	// Rotation only spins the outline
	o.Rotation = 0.5
	c := AsteroidOutline(o)
	for i := range a {
		da := a[i].Sub(mgl64.Vec2{31, 31}).Len()
		dc := c[i].Sub(mgl64.Vec2{31, 31}).Len()
		if da-dc > 1e-9 || dc-da > 1e-9 {
			t.Errorf("point %d radius changed with rotation: %.4f vs %.4f", i, da, dc)
		}
	}
}

func TestDrawAsteroidFallsBackToPolygon(t *testing.T) {
	o := sim.Obstacle{X: 10, Y: 10, Size: 40}

	placeholder := &recordingSurface{}
	DrawAsteroid(placeholder, o)
	if len(placeholder.polygons) != 1 || len(placeholder.rects) != 3 {
		t.Errorf("placeholder drew %d polygons and %d rects, expected 1 and 3",
			len(placeholder.polygons), len(placeholder.rects))
	}

	sprited := &recordingSurface{loaded: true}
	DrawAsteroid(sprited, o)
	if len(sprited.sprites) != 1 || sprited.sprites[0] != MeteoriteSprite.Name {
		t.Errorf("sprites = %v, expected the meteorite", sprited.sprites)
	}
	if len(sprited.polygons) != 0 {
		t.Error("loaded sprite must replace the placeholder")
	}
}

func TestTransform(t *testing.T) {
	pts := Transform([]mgl64.Vec2{{1, 0}}, mgl64.Vec2{10, 10}, 1.5707963267948966)
	if !pts[0].ApproxEqualThreshold(mgl64.Vec2{10, 11}, 1e-9) {
		t.Errorf("rotated point = %v, expected (10, 11)", pts[0])
	}
}

func TestStarfieldWraps(t *testing.T) {
	sf := NewStarfield(3, 50, 200, 100)
	if sf.Len() != 50 {
		t.Fatalf("Len() = %d, expected 50", sf.Len())
	}

	for i := 0; i < 1000; i++ {
		sf.Update(200, 100)
	}
	for i, s := range sf.stars {
		if s.y < 0 || s.y > 100 || s.x < 0 || s.x > 200 {
			t.Errorf("star %d at (%.1f, %.1f) left the surface", i, s.x, s.y)
		}
	}

	surf := &recordingSurface{}
	sf.Draw(surf)
	if len(surf.rects) != 50 {
		t.Errorf("drew %d stars, expected 50", len(surf.rects))
	}
}
