package sim

import (
	"errors"
	"fmt"
)

// ErrInvariant is wrapped by every CheckInvariants failure. A failure is a
// programming error, never a recoverable condition.
var ErrInvariant = errors.New("sim: invariant violated")

// CheckInvariants validates a session after a complete tick on a w x h surface.
func CheckInvariants(s *Session, w, h float64) error {
	if s.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvariant, s.Score)
	}
	if s.Lives < 0 {
		return fmt.Errorf("%w: negative lives %d", ErrInvariant, s.Lives)
	}
	if s.SpawnInterval <= 0 {
		return fmt.Errorf("%w: spawn interval %d", ErrInvariant, s.SpawnInterval)
	}

	p := s.Player
	if p.X < 0 || p.X > w-p.Width {
		return fmt.Errorf("%w: player x %.2f outside [0, %.2f]", ErrInvariant, p.X, w-p.Width)
	}

	for i, o := range s.Obstacles {
		if o.Y >= h+o.Size {
			return fmt.Errorf("%w: obstacle %d at y %.2f should have been removed", ErrInvariant, i, o.Y)
		}
	}
	return nil
}
