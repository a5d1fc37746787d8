package sim

// Transition is a state change requested by the simulation.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionGameOver
)

// String returns a human-readable name for the transition.
func (t Transition) String() string {
	switch t {
	case TransitionNone:
		return "None"
	case TransitionGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Resolve removes obstacles that left the surface (awarding reward each)
// and obstacles that hit the player (costing a life each).
// Lives never drop below zero and at most one GameOver is returned.
func Resolve(s *Session, surfaceH float64, reward int) Transition {
	result := TransitionNone
	player := s.Player.Rect()

	kept := s.Obstacles[:0]
	for _, o := range s.Obstacles {
		switch {
		case o.Y > surfaceH:
			// Fully past the bottom edge: dodged
			s.Score += reward
		case player.Intersects(o.Rect()):
			if s.Lives > 0 {
				s.Lives--
				if s.Lives == 0 {
					result = TransitionGameOver
				}
			}
		default:
			kept = append(kept, o)
		}
	}
	s.Obstacles = kept

	return result
}
