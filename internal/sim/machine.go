package sim

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/star-dodge/internal/config"
	"github.com/vovakirdan/star-dodge/internal/core"
)

// State is the lifecycle state of the machine.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Sizer reports the current surface size. Every core.Surface is a Sizer.
type Sizer interface {
	Size() (w, h float64)
}

// Options wires the machine to its collaborators. Nil fields get no-op
// implementations.
type Options struct {
	Seed        int64
	HoldTimeout time.Duration // Key hold timeout for terminals, 0 for key-up capable frontends
	Sinks       core.Sinks
	Hooks       core.Hooks
	Audio       core.Audio
	Logger      *log.Logger
}

// Machine owns the session and applies the Idle -> Running -> GameOver
// transitions.
type Machine struct {
	cfg     config.GameConfig
	surface Sizer
	spawner *Spawner
	input   *Input
	session *Session

	state      State
	paused     bool
	finalScore int
	run        int     // Incremented on every start
	width      float64 // Surface width the player geometry was derived for

	sinks  core.Sinks
	hooks  core.Hooks
	audio  core.Audio
	logger *log.Logger
}

// NewMachine creates an idle machine.
func NewMachine(cfg config.GameConfig, surface Sizer, opts Options) *Machine {
	m := &Machine{
		cfg:     cfg,
		surface: surface,
		spawner: NewSpawner(opts.Seed, cfg),
		input:   NewInput(cfg.Player.TouchFactor, opts.HoldTimeout),
		sinks:   opts.Sinks,
		hooks:   opts.Hooks,
		audio:   opts.Audio,
		logger:  opts.Logger,
	}
	if m.sinks == nil {
		m.sinks = core.NopSinks{}
	}
	if m.hooks == nil {
		m.hooks = core.NopHooks{}
	}
	if m.audio == nil {
		m.audio = core.NopAudio{}
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}

	w, h := surface.Size()
	m.session = NewSession(cfg, w, h)
	m.width = w
	return m
}

// State returns the current lifecycle state.
func (m *Machine) State() State { return m.state }

// Session returns the live session. Renderers must treat it as read-only.
func (m *Machine) Session() *Session { return m.session }

// Input returns the input state frontends write to.
func (m *Machine) Input() *Input { return m.input }

// Config returns the configuration the machine was built with.
func (m *Machine) Config() config.GameConfig { return m.cfg }

// Paused reports whether a running game is paused.
func (m *Machine) Paused() bool { return m.paused }

// FinalScore returns the score frozen at the last game over.
func (m *Machine) FinalScore() int { return m.finalScore }

// Run returns a counter that changes on every start.
func (m *Machine) Run() int { return m.run }

// Start begins a new session from Idle or GameOver.
// It is a no-op while running and reports whether a session started.
func (m *Machine) Start() bool {
	if m.state == StateRunning {
		return false
	}

	w, h := m.surface.Size()
	m.session.Reset(m.cfg, w, h)
	m.session.Running = true
	m.width = w
	m.input.Reset()
	m.state = StateRunning
	m.paused = false
	m.run++

	if err := m.audio.Play(); err != nil {
		m.logger.Warn("music unavailable", "err", err)
	}

	m.sinks.ScoreChanged(m.session.Score)
	m.sinks.LivesChanged(m.session.Lives)
	m.hooks.OnStart()

	m.logger.Debug("session started", "run", m.run, "width", w, "height", h)
	return true
}

// Restart has the same effect as Start.
func (m *Machine) Restart() bool {
	return m.Start()
}

// Stop ends a running session without a game over and returns to Idle.
// Calling it when not running only moves GameOver back to Idle.
func (m *Machine) Stop() {
	if m.state == StateRunning {
		m.stopAudio()
		m.session.Running = false
		m.logger.Debug("session stopped", "score", m.session.Score)
	}
	m.state = StateIdle
	m.paused = false
}

// Pause toggles the pause flag of a running session and returns it.
func (m *Machine) Pause() bool {
	if m.state != StateRunning {
		return false
	}
	m.paused = !m.paused
	m.input.Reset()
	return m.paused
}

// Resize re-derives the player geometry for the current surface size while
// running. The ship keeps its relative horizontal position.
func (m *Machine) Resize() {
	w, h := m.surface.Size()
	prevW := m.width
	m.width = w
	if m.state != StateRunning {
		return
	}

	old := m.session.Player
	p := NewPlayer(m.cfg.Player, w, h)
	if prevW > 0 {
		centre := (old.X + old.Width/2) / prevW
		p.X = core.Clamp(centre*w-p.Width/2, 0, w-p.Width)
	}
	m.session.Player = p
}

// Step advances a running, unpaused session by one tick: movement, spawn,
// ramp, then collision and scoring. A requested game over is applied before
// returning.
func (m *Machine) Step(now time.Time) Transition {
	if m.state != StateRunning || m.paused {
		return TransitionNone
	}

	w, h := m.surface.Size()
	s := m.session
	s.Frame++
	s.Elapsed++

	s.Player.DX = m.input.Factor(now) * s.Player.Speed
	Advance(s, w, h)

	if o, ok := m.spawner.MaybeSpawn(s, w); ok {
		s.Obstacles = append(s.Obstacles, o)
	}
	if m.spawner.Ramp(s) {
		m.logger.Debug("spawn interval ramped", "interval", s.SpawnInterval, "frame", s.Elapsed)
	}

	score, lives := s.Score, s.Lives
	t := Resolve(s, h, m.cfg.Scoring.DodgeReward)
	if s.Score != score {
		m.sinks.ScoreChanged(s.Score)
	}
	if s.Lives != lives {
		m.sinks.LivesChanged(s.Lives)
	}

	if t == TransitionGameOver {
		m.gameOver()
	}
	return t
}

func (m *Machine) gameOver() {
	m.state = StateGameOver
	m.session.Running = false
	m.paused = false
	m.finalScore = m.session.Score
	m.stopAudio()

	m.logger.Info("game over", "score", m.finalScore, "frames", m.session.Frame)
	m.hooks.OnGameOver(m.finalScore)
}

func (m *Machine) stopAudio() {
	if err := m.audio.Stop(); err != nil {
		m.logger.Warn("failed to stop music", "err", err)
	}
}
