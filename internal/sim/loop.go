package sim

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Driver runs one simulation tick per display refresh. The host calls Tick
// from its refresh callback and schedules the next callback only while Tick
// returns true.
type Driver struct {
	machine *Machine
	redraw  func()
	logger  *log.Logger

	run       int // Machine run the timing below belongs to
	last      time.Time
	lastDelta time.Duration
	fps       float64
}

// NewDriver creates a driver for m. redraw may be nil when the host redraws
// on its own after every tick.
func NewDriver(m *Machine, redraw func(), logger *log.Logger) *Driver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Driver{machine: m, redraw: redraw, logger: logger}
}

// Machine returns the driven machine.
func (d *Driver) Machine() *Machine { return d.machine }

// Tick performs one tick and reports whether the host should schedule the
// next one. A tick arriving when the machine is not running does nothing.
func (d *Driver) Tick(now time.Time) bool {
	if d.machine.State() != StateRunning {
		return false
	}

	d.measure(now)

	if d.machine.Step(now) == TransitionGameOver {
		d.logger.Debug("loop stopping", "score", d.machine.FinalScore(), "fps", d.fps)
	}

	if d.redraw != nil {
		d.redraw()
	}
	return d.machine.State() == StateRunning
}

// measure updates the frame timing. Timing is diagnostic only; the
// simulation advances by whole ticks regardless of elapsed time.
func (d *Driver) measure(now time.Time) {
	if run := d.machine.Run(); run != d.run || d.last.IsZero() {
		d.run = run
		d.last = now
		d.lastDelta = 0
		d.fps = 0
		return
	}

	d.lastDelta = now.Sub(d.last)
	d.last = now
	if d.lastDelta <= 0 {
		return
	}

	instant := float64(time.Second) / float64(d.lastDelta)
	if d.fps == 0 {
		d.fps = instant
	} else {
		d.fps = d.fps*0.9 + instant*0.1
	}

	if d.logger.GetLevel() <= log.DebugLevel && d.machine.Session().Frame%300 == 0 {
		d.logger.Debug("frame timing", "dt", d.lastDelta, "fps", int(d.fps))
	}
}

// LastDelta returns the time between the two most recent ticks.
func (d *Driver) LastDelta() time.Duration { return d.lastDelta }

// FPS returns a smoothed tick rate.
func (d *Driver) FPS() float64 { return d.fps }
