package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/star-dodge/internal/config"
	"github.com/vovakirdan/star-dodge/internal/core"
	"github.com/vovakirdan/star-dodge/internal/registry"
	"github.com/vovakirdan/star-dodge/internal/sim"
	"github.com/vovakirdan/star-dodge/internal/storage"
)

// ResolveFunc returns the balance for a skin at a difficulty.
type ResolveFunc func(skin registry.Skin, difficulty config.DifficultyPreset) (config.GameConfig, error)

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Runtime    core.RuntimeConfig
	Player     string
	Store      *storage.Store
	Skin       string // Ship the menu cursor starts on
	Difficulty config.DifficultyPreset
	Resolve    ResolveFunc
	Sinks      core.Sinks
	Hooks      core.Hooks
	Logger     *log.Logger
}

// leaver is implemented by observers that want to know when a session is
// abandoned, e.g. the spectator feed.
type leaver interface {
	Leave()
}

// sessionLink is shared by every copy of a SessionModel so the session can
// be ended after its program has exited.
type sessionLink struct {
	machine *sim.Machine // Machine of the game on screen, nil in the menus
	ended   bool
}

type sessionView int

const (
	sessionMenu sessionView = iota
	sessionBoard
	sessionGame
)

// SessionModel manages the full flow of one remote player: menu -> game ->
// menu, with the scoreboard reachable from the menu.
type SessionModel struct {
	opts     SessionOptions
	runtime  core.RuntimeConfig
	view     sessionView
	menu     MenuModel
	board    ScoreboardModel
	game     Model
	skinID   string // Last ship picked
	link     *sessionLink
	quitting bool
}

// NewSessionModel creates a session on the ship picker.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Resolve == nil {
		opts.Resolve = func(skin registry.Skin, d config.DifficultyPreset) (config.GameConfig, error) {
			return config.Resolve("", config.Presets{SkinVariant: skin.Variant(), Difficulty: string(d)})
		}
	}

	m := SessionModel{
		opts:    opts,
		runtime: opts.Runtime,
		skinID:  opts.Skin,
		link:    &sessionLink{},
	}
	m.menu = m.newMenu(opts.Difficulty)
	return m
}

func (m SessionModel) newMenu(difficulty config.DifficultyPreset) MenuModel {
	menu := NewMenuModel(m.opts.Store, m.runtime, difficulty, m.opts.Logger)
	menu.focus(m.skinID)
	return menu
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.runtime.ScreenW = wsm.Width
		m.runtime.ScreenH = wsm.Height
	}

	switch m.view {
	case sessionGame:
		return m.updateGame(msg)
	case sessionBoard:
		return m.updateBoard(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates on the ship picker.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.board = NewScoreboardModel(m.opts.Store, m.runtime.ScreenW, m.runtime.ScreenH, m.opts.Logger)
		m.view = sessionBoard
		return m, m.board.Init()

	case m.menu.Selected() != nil:
		return m.startGame(m.menu.Selected().SkinID, m.menu.Difficulty())
	}

	return m, cmd
}

// startGame builds a game for the picked ship. The menu's tea.Quit is
// dropped so the session keeps running.
func (m SessionModel) startGame(skinID string, difficulty config.DifficultyPreset) (tea.Model, tea.Cmd) {
	m.skinID = skinID

	skin, err := registry.Create(skinID)
	var game config.GameConfig
	if err == nil {
		game, err = m.opts.Resolve(skin, difficulty)
	}
	if err != nil {
		m.opts.Logger.Error("Could not start game", "skin", skinID, "error", err)
		m.menu = m.newMenu(difficulty)
		return m, nil
	}

	rt := m.runtime
	rt.Seed = time.Now().UnixNano()
	m.game = NewModel(Options{
		Config:  game,
		Skin:    skin,
		Runtime: rt,
		Player:  m.opts.Player,
		Store:   m.opts.Store,
		Sinks:   m.opts.Sinks,
		Hooks:   m.opts.Hooks,
		Logger:  m.opts.Logger.With("skin", skinID),
	})
	m.link.machine = m.game.Machine()
	m.view = sessionGame

	m.opts.Logger.Info("game starting", "skin", skinID, "variant", game.Variant, "difficulty", difficulty)
	return m, m.game.Init()
}

// updateGame handles updates while a game is on screen.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = game
	}

	// Back to the menu, keeping the difficulty
	if m.game.BackToMenu() {
		m.link.machine = nil
		m.menu = m.newMenu(m.menu.Difficulty())
		m.view = sessionMenu
		return m, m.menu.Init()
	}

	if m.game.IsQuitting() {
		m.link.machine = nil
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateBoard handles updates on the scoreboard.
func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	if board, ok := next.(ScoreboardModel); ok {
		m.board = board
	}

	switch {
	case m.board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.board.IsGoingBack():
		m.menu = m.newMenu(m.menu.Difficulty())
		m.view = sessionMenu
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case sessionGame:
		return m.game.View()
	case sessionBoard:
		return m.board.View()
	}
	return m.menu.View()
}

// End stops the game in progress and tells leavers among the hooks that
// the player is gone. Only the first call has an effect. It must not run
// while the session's program is still processing messages.
func (m SessionModel) End() {
	if m.link.ended {
		return
	}
	m.link.ended = true

	if m.link.machine != nil {
		m.link.machine.Stop()
		m.link.machine = nil
	}
	if l, ok := m.opts.Hooks.(leaver); ok {
		l.Leave()
	}
}
