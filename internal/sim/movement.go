package sim

import "github.com/vovakirdan/star-dodge/internal/core"

// Advance moves the player by its velocity intent, clamps it to the surface
// and lets every obstacle fall and spin by one tick.
// surfaceH is unused by movement itself; removal happens in Resolve.
func Advance(s *Session, surfaceW, surfaceH float64) {
	p := &s.Player
	p.X += p.DX
	p.X = core.Clamp(p.X, 0, surfaceW-p.Width)

	for i := range s.Obstacles {
		o := &s.Obstacles[i]
		o.Y += o.Speed
		o.Rotation += o.RotationDelta
	}
}
