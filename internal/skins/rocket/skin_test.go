package rocket

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/star-dodge/internal/config"
	"github.com/vovakirdan/star-dodge/internal/core"
	"github.com/vovakirdan/star-dodge/internal/registry"
	"github.com/vovakirdan/star-dodge/internal/sim"
)

// boundsSurface records how far draws reach.
type boundsSurface struct {
	minY, maxY float64
	draws      int
}

func (b *boundsSurface) Size() (float64, float64) { return 800, 600 }
func (b *boundsSurface) Clear(core.Color) {}
func (b *boundsSurface) Text(float64, float64, string, core.Color) {}

func (b *boundsSurface) track(y float64) {
	if b.draws == 0 || y < b.minY {
		b.minY = y
	}
	if b.draws == 0 || y > b.maxY {
		b.maxY = y
	}
	b.draws++
}

func (b *boundsSurface) FillRect(r core.Rect, _ core.Color) {
	b.track(r.Y)
	b.track(r.Bottom())
}

func (b *boundsSurface) FillPolygon(pts []mgl64.Vec2, _ core.Color) {
	for _, p := range pts {
		b.track(p.Y())
	}
}

func TestRegistered(t *testing.T) {
	s, err := registry.Create("rocket")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if s.Variant() != config.VariantRocket {
		t.Errorf("variant = %q, expected rocket", s.Variant())
	}
	if s.Theme().Name != "orbit" {
		t.Errorf("theme = %q, expected orbit", s.Theme().Name)
	}
}

func TestPlaceholderStaysOnShip(t *testing.T) {
	p := sim.Player{X: 100, Y: 400, Width: 96, Height: 60}
	surf := &boundsSurface{}

	New().DrawPlayer(surf, p, 0)

	if surf.draws == 0 {
		t.Fatal("nothing drawn")
	}
	if surf.minY < p.Y {
		t.Errorf("drawing starts at y %.1f above the ship at %.1f", surf.minY, p.Y)
	}
	// Only the exhaust flame may reach below the hull
	if surf.maxY > p.Y+p.Height*1.25+1e-9 {
		t.Errorf("drawing reaches y %.1f, too far below the ship", surf.maxY)
	}
}
