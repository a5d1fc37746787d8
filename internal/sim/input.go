package sim

import "time"

// TouchThreshold is the drag distance, in surface units, before a touch
// steers the ship.
const TouchThreshold = 10.0

// Input is the horizontal intent produced by frontend event handlers and
// read once per tick by the machine.
//
// Keyboards that report key-up (windows, browsers) call Press and Release.
// Terminals never report key-up, so they configure a hold timeout instead:
// a press keeps steering until no repeat arrives within the timeout.
type Input struct {
	touchFactor float64
	hold        time.Duration

	held      [2]bool // left, right
	last      int     // Most recently pressed direction
	pressedAt time.Time

	touching    bool
	touchStartX float64
	touchDir    int
}

// NewInput creates an input state. touchFactor scales drag steering
// relative to key steering. hold of zero disables the hold timeout.
func NewInput(touchFactor float64, hold time.Duration) *Input {
	return &Input{touchFactor: touchFactor, hold: hold}
}

func dirIndex(dir int) int {
	if dir < 0 {
		return 0
	}
	return 1
}

// Press records a key press in direction dir (-1 left, +1 right).
func (in *Input) Press(dir int, now time.Time) {
	if dir == 0 {
		return
	}
	if in.hold > 0 {
		// Without key-up events a new direction replaces the old one
		in.held = [2]bool{}
	}
	in.held[dirIndex(dir)] = true
	in.last = dir
	in.pressedAt = now
}

// Release records a key release in direction dir.
func (in *Input) Release(dir int) {
	if dir == 0 {
		return
	}
	in.held[dirIndex(dir)] = false
}

// TouchStart begins a drag at x.
func (in *Input) TouchStart(x float64) {
	in.touching = true
	in.touchStartX = x
	in.touchDir = 0
}

// TouchMove steers according to how far the drag moved from its start.
func (in *Input) TouchMove(x float64) {
	if !in.touching {
		return
	}
	diff := x - in.touchStartX
	switch {
	case diff > TouchThreshold:
		in.touchDir = 1
	case diff < -TouchThreshold:
		in.touchDir = -1
	default:
		in.touchDir = 0
	}
}

// TouchEnd stops drag steering.
func (in *Input) TouchEnd() {
	in.touching = false
	in.touchDir = 0
}

// Reset clears every pressed key and touch.
func (in *Input) Reset() {
	in.held = [2]bool{}
	in.last = 0
	in.pressedAt = time.Time{}
	in.TouchEnd()
}

// Factor returns the current intent as a multiple of the player's speed:
// -1, 0 or +1 for keys, plus or minus touchFactor for a drag.
func (in *Input) Factor(now time.Time) float64 {
	if in.touching && in.touchDir != 0 {
		return float64(in.touchDir) * in.touchFactor
	}

	if in.hold > 0 && now.Sub(in.pressedAt) > in.hold {
		in.held = [2]bool{}
		return 0
	}

	if in.last != 0 && in.held[dirIndex(in.last)] {
		return float64(in.last)
	}
	// The latest key was released but the other one is still down
	switch {
	case in.held[0]:
		return -1
	case in.held[1]:
		return 1
	}
	return 0
}
