package sim

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/star-dodge/internal/config"
)

// recorder captures every collaborator callback.
type recorder struct {
	scores    []int
	lives     []int
	starts    int
	gameOvers []int
	plays     int
	stops     int
	playErr   error
}

func (r *recorder) ScoreChanged(score int) { r.scores = append(r.scores, score) }
func (r *recorder) LivesChanged(lives int) { r.lives = append(r.lives, lives) }
func (r *recorder) OnStart() { r.starts++ }
func (r *recorder) OnGameOver(finalScore int) { r.gameOvers = append(r.gameOvers, finalScore) }
func (r *recorder) Play() error { r.plays++; return r.playErr }
func (r *recorder) Stop() error { r.stops++; return nil }

func newTestMachine(t *testing.T, rec *recorder) (*Machine, *fixedSurface) {
	t.Helper()
	surface := &fixedSurface{w: 1000, h: 800}
	m := NewMachine(config.DefaultConfig(), surface, Options{
		Seed:  42,
		Sinks: rec,
		Hooks: rec,
		Audio: rec,
	})
	return m, surface
}

// placeHit puts an obstacle right on top of the player so the next tick
// collides with it.
func placeHit(m *Machine) {
	p := m.Session().Player
	m.Session().Obstacles = append(m.Session().Obstacles, Obstacle{
		X:    p.X + 10,
		Y:    p.Y + 10,
		Size: 20,
	})
}

func TestMachineStartsIdle(t *testing.T) {
	m, _ := newTestMachine(t, &recorder{})

	if m.State() != StateIdle {
		t.Errorf("state = %v, expected Idle", m.State())
	}
	if m.Step(time.Now()) != TransitionNone || m.Session().Frame != 0 {
		t.Error("Step() must do nothing while idle")
	}
}

func TestMachineStart(t *testing.T) {
	rec := &recorder{}
	m, _ := newTestMachine(t, rec)

	if !m.Start() {
		t.Fatal("Start() from Idle should succeed")
	}

	s := m.Session()
	if m.State() != StateRunning || !s.Running {
		t.Errorf("state = %v running=%v, expected Running", m.State(), s.Running)
	}
	if s.Score != 0 || s.Lives != 3 || s.Frame != 0 || s.SpawnInterval != 60 || len(s.Obstacles) != 0 {
		t.Errorf("session not reset: %+v", s)
	}
	if rec.plays != 1 || rec.starts != 1 {
		t.Errorf("plays=%d starts=%d, expected 1 each", rec.plays, rec.starts)
	}
	if len(rec.scores) != 1 || rec.scores[0] != 0 || len(rec.lives) != 1 || rec.lives[0] != 3 {
		t.Errorf("sinks should be told the initial values: scores=%v lives=%v", rec.scores, rec.lives)
	}
}

func TestMachineDoubleStartIsNoop(t *testing.T) {
	rec := &recorder{}
	m, _ := newTestMachine(t, rec)

	m.Start()
	for i := 0; i < 120; i++ {
		m.Step(time.Now())
	}

	before := *m.Session()
	obstacles := append([]Obstacle(nil), m.Session().Obstacles...)
	run := m.Run()

	if m.Start() {
		t.Error("second Start() should report false")
	}

	after := m.Session()
	if after.Score != before.Score || after.Lives != before.Lives || after.Frame != before.Frame ||
		after.SpawnInterval != before.SpawnInterval || after.Player != before.Player {
		t.Errorf("session changed by second Start():\nbefore %+v\nafter  %+v", before, *after)
	}
	if len(after.Obstacles) != len(obstacles) {
		t.Fatalf("obstacles changed: %d -> %d", len(obstacles), len(after.Obstacles))
	}
	for i := range obstacles {
		if after.Obstacles[i] != obstacles[i] {
			t.Errorf("obstacle %d changed", i)
		}
	}
	if m.Run() != run || rec.plays != 1 || rec.starts != 1 {
		t.Error("second Start() must not restart audio or fire hooks")
	}
}

func TestMachineGameOverExactlyAtZero(t *testing.T) {
	rec := &recorder{}
	m, _ := newTestMachine(t, rec)
	m.Start()

	for lives := 3; lives > 1; lives-- {
		placeHit(m)
		if tr := m.Step(time.Now()); tr != TransitionNone {
			t.Fatalf("game over at lives %d", lives-1)
		}
		if m.State() != StateRunning {
			t.Fatalf("state = %v with %d lives", m.State(), m.Session().Lives)
		}
	}
	if m.Session().Lives != 1 {
		t.Fatalf("lives = %d, expected 1", m.Session().Lives)
	}

	m.Session().Score = 70
	placeHit(m)
	if tr := m.Step(time.Now()); tr != TransitionGameOver {
		t.Fatalf("transition = %v, expected GameOver", tr)
	}

	if m.State() != StateGameOver || m.Session().Running {
		t.Errorf("state = %v, expected GameOver", m.State())
	}
	if m.FinalScore() != 70 {
		t.Errorf("final score = %d, expected 70", m.FinalScore())
	}
	if len(rec.gameOvers) != 1 || rec.gameOvers[0] != 70 {
		t.Errorf("OnGameOver calls = %v, expected [70]", rec.gameOvers)
	}
	if rec.stops != 1 {
		t.Errorf("audio stops = %d, expected 1", rec.stops)
	}
	want := []int{3, 2, 1, 0}
	if len(rec.lives) != len(want) {
		t.Fatalf("lives notifications = %v, expected %v", rec.lives, want)
	}
	for i := range want {
		if rec.lives[i] != want[i] {
			t.Errorf("lives notifications = %v, expected %v", rec.lives, want)
			break
		}
	}

	// Ticks after game over change nothing
	frame := m.Session().Frame
	m.Step(time.Now())
	if m.Session().Frame != frame {
		t.Error("Step() after game over advanced the session")
	}
}

func TestMachineRestartAfterGameOver(t *testing.T) {
	rec := &recorder{}
	m, _ := newTestMachine(t, rec)
	m.Start()
	m.Session().Lives = 1
	m.Session().Score = 40
	placeHit(m)
	m.Step(time.Now())

	if !m.Restart() {
		t.Fatal("Restart() from GameOver should succeed")
	}
	s := m.Session()
	if s.Score != 0 || s.Lives != 3 || s.SpawnInterval != 60 || len(s.Obstacles) != 0 {
		t.Errorf("session not reset: %+v", s)
	}
	if m.Run() != 2 || rec.plays != 2 {
		t.Errorf("run=%d plays=%d, expected 2 each", m.Run(), rec.plays)
	}
}

func TestMachineAudioFailureIsNonFatal(t *testing.T) {
	rec := &recorder{playErr: errors.New("autoplay blocked")}
	m, _ := newTestMachine(t, rec)

	if !m.Start() {
		t.Fatal("Start() should succeed without audio")
	}
	m.Step(time.Now())
	if m.State() != StateRunning {
		t.Errorf("state = %v, expected Running", m.State())
	}
}

func TestMachineStop(t *testing.T) {
	rec := &recorder{}
	m, _ := newTestMachine(t, rec)
	m.Start()

	m.Stop()
	m.Stop()

	if m.State() != StateIdle {
		t.Errorf("state = %v, expected Idle", m.State())
	}
	if rec.stops != 1 {
		t.Errorf("audio stops = %d, expected 1", rec.stops)
	}
	if len(rec.gameOvers) != 0 {
		t.Error("Stop() must not report a game over")
	}
}

func TestMachinePause(t *testing.T) {
	m, _ := newTestMachine(t, &recorder{})

	if m.Pause() {
		t.Error("Pause() should do nothing while idle")
	}

	m.Start()
	if !m.Pause() {
		t.Fatal("Pause() should pause a running game")
	}
	m.Step(time.Now())
	if m.Session().Frame != 0 {
		t.Error("paused game advanced")
	}

	if m.Pause() {
		t.Fatal("second Pause() should resume")
	}
	m.Step(time.Now())
	if m.Session().Frame != 1 {
		t.Errorf("frame = %d, expected 1", m.Session().Frame)
	}
}

func TestMachineResizeKeepsRelativePosition(t *testing.T) {
	m, surface := newTestMachine(t, &recorder{})
	m.Start()
	m.Session().Player.X = 0
	m.Session().Score = 30

	surface.w, surface.h = 500, 400
	m.Resize()

	p := m.Session().Player
	if p.Width != 90 || p.Y != 400-90-20 {
		t.Errorf("player not re-derived: %+v", p)
	}
	if math.Abs(p.X) > 1e-9 {
		t.Errorf("x = %.2f, expected 0", p.X)
	}
	if m.Session().Score != 30 {
		t.Error("Resize() must keep the session")
	}
}

func TestMachineFollowsInput(t *testing.T) {
	m, _ := newTestMachine(t, &recorder{})
	m.Start()
	now := time.Now()
	x := m.Session().Player.X

	m.Input().Press(1, now)
	m.Step(now)
	if got := m.Session().Player.X; got != x+8 {
		t.Errorf("x = %.2f, expected %.2f", got, x+8)
	}

	m.Input().Release(1)
	m.Input().TouchStart(0)
	m.Input().TouchMove(-50)
	m.Step(now)
	if got := m.Session().Player.X; got != x+8-8*0.6 {
		t.Errorf("x = %.2f, expected %.2f", got, x+8-8*0.6)
	}
}

func TestLongRunKeepsInvariants(t *testing.T) {
	m, surface := newTestMachine(t, &recorder{})
	m.Start()
	now := time.Unix(0, 0)

	for i := 0; i < 20000 && m.State() == StateRunning; i++ {
		now = now.Add(16 * time.Millisecond)
		switch (i / 90) % 3 {
		case 0:
			m.Input().Press(-1, now)
		case 1:
			m.Input().Release(-1)
			m.Input().Press(1, now)
		default:
			m.Input().Release(1)
		}
		m.Step(now)

		if err := CheckInvariants(m.Session(), surface.w, surface.h); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
}

func TestMachineDeterminism(t *testing.T) {
	run := func() (int, int, int) {
		m, _ := newTestMachine(t, &recorder{})
		m.Start()
		now := time.Unix(0, 0)
		for i := 0; i < 5000 && m.State() == StateRunning; i++ {
			m.Step(now)
		}
		s := m.Session()
		return s.Score, s.Lives, s.Frame
	}

	s1, l1, f1 := run()
	s2, l2, f2 := run()
	if s1 != s2 || l1 != l2 || f1 != f2 {
		t.Errorf("runs differ: (%d,%d,%d) vs (%d,%d,%d)", s1, l1, f1, s2, l2, f2)
	}
}

func TestDriverStopsAfterGameOver(t *testing.T) {
	m, _ := newTestMachine(t, &recorder{})
	redraws := 0
	d := NewDriver(m, func() { redraws++ }, nil)

	if d.Tick(time.Now()) {
		t.Fatal("Tick() must not reschedule while idle")
	}
	if redraws != 0 {
		t.Fatal("idle tick must not redraw")
	}

	m.Start()
	now := time.Unix(0, 0)
	for i := 0; i < 5; i++ {
		now = now.Add(16 * time.Millisecond)
		if !d.Tick(now) {
			t.Fatalf("tick %d should reschedule", i)
		}
	}
	if redraws != 5 {
		t.Errorf("redraws = %d, expected 5", redraws)
	}
	if d.LastDelta() != 16*time.Millisecond {
		t.Errorf("last delta = %v, expected 16ms", d.LastDelta())
	}
	if d.FPS() < 62 || d.FPS() > 63 {
		t.Errorf("fps = %.2f, expected about 62.5", d.FPS())
	}

	m.Session().Lives = 1
	placeHit(m)
	if d.Tick(now.Add(16 * time.Millisecond)) {
		t.Error("Tick() should stop scheduling on the game-over tick")
	}
	if redraws != 6 {
		t.Errorf("game-over tick should still redraw, redraws = %d", redraws)
	}

	// A stale queued tick is harmless
	frame := m.Session().Frame
	if d.Tick(now.Add(32*time.Millisecond)) || m.Session().Frame != frame {
		t.Error("stale tick re-entered the simulation")
	}
}

func TestDriverResetsTimingOnRestart(t *testing.T) {
	m, _ := newTestMachine(t, &recorder{})
	d := NewDriver(m, nil, nil)

	m.Start()
	now := time.Unix(0, 0)
	d.Tick(now)
	d.Tick(now.Add(20 * time.Millisecond))

	m.Stop()
	m.Start()
	d.Tick(now.Add(time.Minute))
	if d.LastDelta() != 0 {
		t.Errorf("first tick of a new run should have no delta, got %v", d.LastDelta())
	}
}
