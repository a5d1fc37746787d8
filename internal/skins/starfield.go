package skins

import (
	"math/rand"

	"github.com/vovakirdan/star-dodge/internal/core"
)

type star struct {
	x, y       float64
	size       float64
	speed      float64
	brightness float64
}

// Starfield is the slowly falling parallax background. It is purely
// decorative and owned by a frontend, not by the session.
type Starfield struct {
	stars []star
	rng   *rand.Rand
}

// NewStarfield scatters n stars over a w x h surface.
func NewStarfield(seed int64, n int, w, h float64) *Starfield {
	sf := &Starfield{
		stars: make([]star, n),
		rng:   rand.New(rand.NewSource(seed)),
	}
	for i := range sf.stars {
		sf.stars[i] = star{
			x:          sf.rng.Float64() * w,
			y:          sf.rng.Float64() * h,
			size:       sf.rng.Float64()*2 + 0.5,
			speed:      sf.rng.Float64()*0.5 + 0.2,
			brightness: sf.rng.Float64(),
		}
	}
	return sf
}

// Update moves every star down; stars leaving the bottom wrap to the top at
// a new horizontal position.
func (sf *Starfield) Update(w, h float64) {
	for i := range sf.stars {
		s := &sf.stars[i]
		s.y += s.speed
		if s.y > h {
			s.y = 0
			s.x = sf.rng.Float64() * w
		}
	}
}

// Draw paints the stars. Dim stars use the muted color.
func (sf *Starfield) Draw(dst core.Surface) {
	for _, s := range sf.stars {
		c := core.ColorStar
		if s.brightness < 0.4 {
			c = core.ColorMuted
		}
		dst.FillRect(core.NewRect(s.x, s.y, s.size, s.size), c)
	}
}

// Len returns the number of stars.
func (sf *Starfield) Len() int { return len(sf.stars) }
