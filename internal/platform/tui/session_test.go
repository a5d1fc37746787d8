package tui

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"

	"github.com/vovakirdan/star-dodge/internal/config"
	"github.com/vovakirdan/star-dodge/internal/core"
	"github.com/vovakirdan/star-dodge/internal/registry"
	"github.com/vovakirdan/star-dodge/internal/sim"
	"github.com/vovakirdan/star-dodge/internal/storage"
)

// leaveRecorder counts the hooks a session fires.
type leaveRecorder struct {
	starts, leaves int
}

func (r *leaveRecorder) OnStart() { r.starts++ }
func (r *leaveRecorder) OnGameOver(int) {}
func (r *leaveRecorder) Leave() { r.leaves++ }

func newTestSession(opts SessionOptions) SessionModel {
	opts.Runtime = core.RuntimeConfig{ScreenW: 100, ScreenH: 40, TickRate: 60}
	return NewSessionModel(opts)
}

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func TestSessionMenuGameMenu(t *testing.T) {
	m := newTestSession(SessionOptions{Skin: "rocket", Difficulty: config.DifficultyHard})
	if m.view != sessionMenu || m.menu.items[m.menu.cursor].SkinID != "rocket" {
		t.Fatalf("session should open on the menu with rocket focused")
	}

	m, cmd := sessionUpdate(t, m, keyMsg("enter"))
	if m.view != sessionGame {
		t.Fatalf("enter should open the game, view=%d", m.view)
	}
	if cmd == nil {
		t.Error("opening a game should run its Init")
	}
	game := m.game.opts.Config
	if game.Variant != config.VariantRocket || game.Scoring.Lives != 2 {
		t.Errorf("game config = %s with %d lives, expected rocket on hard", game.Variant, game.Scoring.Lives)
	}

	m, _ = sessionUpdate(t, m, keyMsg("enter"))
	machine := m.game.Machine()
	if machine.State() != sim.StateRunning {
		t.Fatal("enter on the home screen should start playing")
	}

	// b is ignored until the game is paused
	m, _ = sessionUpdate(t, m, keyMsg("b"))
	if m.view != sessionGame || machine.State() != sim.StateRunning {
		t.Fatal("b must not leave a running game")
	}

	m, _ = sessionUpdate(t, m, keyMsg("p"))
	m, cmd = sessionUpdate(t, m, keyMsg("b"))
	if m.view != sessionMenu || m.quitting {
		t.Fatalf("b while paused should return to the menu, view=%d", m.view)
	}
	if cmd != nil {
		t.Error("returning to the menu must not quit the program")
	}
	if machine.State() != sim.StateIdle {
		t.Errorf("abandoned game state = %v, expected Idle", machine.State())
	}
	if m.menu.Difficulty() != config.DifficultyHard || m.menu.items[m.menu.cursor].SkinID != "rocket" {
		t.Error("menu should keep the difficulty and the last ship")
	}
}

func TestSessionScoreboardAndQuit(t *testing.T) {
	m := newTestSession(SessionOptions{})

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != sessionBoard {
		t.Fatalf("tab should open the scoreboard, view=%d", m.view)
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard view expected")
	}

	m, cmd := sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != sessionMenu || cmd != nil {
		t.Fatalf("esc should return to the menu without quitting, view=%d", m.view)
	}

	m, cmd = sessionUpdate(t, m, keyMsg("q"))
	if !m.quitting || cmd == nil {
		t.Error("q on the menu should end the session")
	}
	if m.View() != "" {
		t.Error("a finished session renders nothing")
	}
}

func TestSessionResolveFailureStaysInMenu(t *testing.T) {
	m := newTestSession(SessionOptions{
		Resolve: func(registry.Skin, config.DifficultyPreset) (config.GameConfig, error) {
			return config.GameConfig{}, errors.New("broken balance")
		},
	})

	m, cmd := sessionUpdate(t, m, keyMsg("enter"))
	if m.view != sessionMenu || cmd != nil {
		t.Fatalf("a failed resolve should keep the menu, view=%d", m.view)
	}
	if m.menu.Selected() != nil {
		t.Error("the failed selection should be cleared")
	}
}

func TestSessionEndStopsGame(t *testing.T) {
	rec := &leaveRecorder{}
	m := newTestSession(SessionOptions{Hooks: rec})
	first := m

	m, _ = sessionUpdate(t, m, keyMsg("enter"))
	m, _ = sessionUpdate(t, m, keyMsg("enter"))
	machine := m.game.Machine()
	if machine.State() != sim.StateRunning || rec.starts != 1 {
		t.Fatalf("game should be running, state=%v starts=%d", machine.State(), rec.starts)
	}

	// Any copy of the model ends the same session
	first.End()
	if machine.State() != sim.StateIdle {
		t.Errorf("state after End = %v, expected Idle", machine.State())
	}
	if rec.leaves != 1 {
		t.Errorf("leaves = %d, expected 1", rec.leaves)
	}

	m.End()
	if rec.leaves != 1 {
		t.Error("End must only take effect once")
	}
}

// fakeSSHContext keeps context values for the middleware tests.
type fakeSSHContext struct {
	ssh.Context
	values map[any]any
}

func (c *fakeSSHContext) Value(key any) any { return c.values[key] }
func (c *fakeSSHContext) SetValue(key, value any) { c.values[key] = value }

type fakeSSHSession struct {
	ssh.Session
	ctx *fakeSSHContext
}

func (s fakeSSHSession) Context() ssh.Context { return s.ctx }
func (s fakeSSHSession) User() string { return "ada" }

func TestSessionEndMiddlewareStopsGame(t *testing.T) {
	rec := &leaveRecorder{}
	m := newTestSession(SessionOptions{Hooks: rec})
	sess := fakeSSHSession{ctx: &fakeSSHContext{values: map[any]any{}}}
	sess.ctx.SetValue(sessionKey{}, m)

	// The program keeps playing after the handler stored the model
	m, _ = sessionUpdate(t, m, keyMsg("enter"))
	m, _ = sessionUpdate(t, m, keyMsg("enter"))
	machine := m.game.Machine()

	srv := &SSHServer{logger: log.New(io.Discard)}
	called := false
	srv.sessionEndMiddleware(func(ssh.Session) { called = true })(sess)

	if !called {
		t.Error("middleware must call the next handler")
	}
	if machine.State() != sim.StateIdle || rec.leaves != 1 {
		t.Errorf("disconnect should stop the game: state=%v leaves=%d", machine.State(), rec.leaves)
	}
}

func TestSSHServerResolveVariant(t *testing.T) {
	rocket, err := registry.Create("rocket")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		variant string
		want    config.Variant
	}{
		{"skin variant", "", config.VariantRocket},
		{"configured variant wins", "starship", config.VariantStarship},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := &SSHServer{config: SSHServerConfig{Variant: tc.variant}}
			game, err := srv.resolve(rocket, config.DifficultyHard)
			if err != nil {
				t.Fatalf("resolve() failed: %v", err)
			}
			if game.Variant != tc.want || game.Scoring.Lives != 2 {
				t.Errorf("got %s with %d lives, expected %s on hard", game.Variant, game.Scoring.Lives, tc.want)
			}
		})
	}
}

func TestNewSSHServerRejectsBadPresets(t *testing.T) {
	tests := []struct {
		name string
		cfg  SSHServerConfig
	}{
		{"skin", SSHServerConfig{Skin: "ufo"}},
		{"difficulty", SSHServerConfig{Skin: "starship", Difficulty: "nightmare"}},
		{"variant", SSHServerConfig{Skin: "starship", Variant: "ufo"}},
		{"config", SSHServerConfig{Skin: "starship", ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logger = log.New(io.Discard)
			tc.cfg.DBPath = filepath.Join(t.TempDir(), "scores.db")
			if _, err := NewSSHServer(tc.cfg); err == nil {
				t.Error("NewSSHServer() should fail")
			}
		})
	}
}

func TestStatsFailureIsLogged(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	store.Close()

	var buf bytes.Buffer
	logger := log.New(&buf)

	menu := NewMenuModel(store, core.DefaultConfig(), config.DifficultyNormal, logger)
	if len(menu.items) == 0 || menu.items[0].Best != 0 {
		t.Error("menu should still list ships without stats")
	}
	NewScoreboardModel(store, 80, 24, logger)

	if got := strings.Count(buf.String(), "Could not load stats"); got != 2 {
		t.Errorf("logged %d stats warnings, expected 2:\n%s", got, buf.String())
	}
}
