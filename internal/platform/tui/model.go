package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/star-dodge/internal/config"
	"github.com/vovakirdan/star-dodge/internal/core"
	"github.com/vovakirdan/star-dodge/internal/registry"
	"github.com/vovakirdan/star-dodge/internal/sim"
	"github.com/vovakirdan/star-dodge/internal/skins"
	"github.com/vovakirdan/star-dodge/internal/storage"
)

// HoldTimeout is how long a key press steers without a repeat. Terminals
// report key repeats but never key releases.
const HoldTimeout = 200 * time.Millisecond

// boardRows is the number of scores shown on the game-over screen.
const boardRows = 5

type screenID int

const (
	screenHome screenID = iota
	screenPlaying
	screenGameOver
)

// Options configures a game model.
type Options struct {
	Config  config.GameConfig
	Skin    registry.Skin
	Runtime core.RuntimeConfig
	Player  string         // Name saved with scores
	Store   *storage.Store // Optional score storage
	Audio   core.Audio     // Optional music
	Sinks   core.Sinks     // Optional extra observers, e.g. spectators
	Hooks   core.Hooks
	Logger  *log.Logger
}

// muter is implemented by audio backends that can be silenced.
type muter interface {
	ToggleMute() bool
}

// hud mirrors the machine's notifications for the model.
type hud struct {
	score int
	lives int
	over  bool
	final int
}

func (h *hud) ScoreChanged(score int) { h.score = score }
func (h *hud) LivesChanged(lives int) { h.lives = lives }
func (h *hud) OnStart() { h.over = false }
func (h *hud) OnGameOver(finalScore int) { h.over, h.final = true, finalScore }

// Model is the Bubble Tea model for one star-dodge player.
type Model struct {
	opts      Options
	skin      registry.Skin
	machine   *sim.Machine
	driver    *sim.Driver
	canvas    *Canvas
	screen    *core.Screen
	stars     *skins.Starfield
	hud       *hud
	keys      KeyMap
	keyMapper *KeyMapper
	help      help.Model
	board     table.Model
	logger    *log.Logger

	view       screenID
	highScore  int
	saved      bool // Whether the score has been saved for the current game over
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given skin.
func NewModel(opts Options) Model {
	rt := opts.Runtime
	if rt.ScreenW <= 0 || rt.ScreenH <= 0 {
		def := core.DefaultConfig()
		rt.ScreenW, rt.ScreenH = def.ScreenW, def.ScreenH
	}
	if rt.TickRate <= 0 {
		rt.TickRate = 60
	}
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	opts.Runtime = rt

	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Audio == nil {
		opts.Audio = core.NopAudio{}
	}

	h := &hud{}
	sinks := core.MultiSink{h}
	if opts.Sinks != nil {
		sinks = append(sinks, opts.Sinks)
	}
	hooks := core.MultiHooks{h}
	if opts.Hooks != nil {
		hooks = append(hooks, opts.Hooks)
	}

	canvas := NewCanvas(rt.ScreenW, rt.ScreenH)
	machine := sim.NewMachine(opts.Config, canvas, sim.Options{
		Seed:        rt.Seed,
		HoldTimeout: HoldTimeout,
		Sinks:       sinks,
		Hooks:       hooks,
		Audio:       opts.Audio,
		Logger:      opts.Logger,
	})

	keys := DefaultKeyMap()
	m := Model{
		opts:      opts,
		skin:      opts.Skin,
		machine:   machine,
		driver:    sim.NewDriver(machine, nil, opts.Logger),
		canvas:    canvas,
		screen:    core.NewScreen(rt.ScreenW, rt.ScreenH),
		hud:       h,
		keys:      keys,
		keyMapper: NewKeyMapper(keys),
		help:      help.New(),
		board:     newBoard(),
		logger:    opts.Logger,
	}
	m.resetStars()
	m.loadHighScore()
	return m
}

// resetStars scatters a starfield sized for the current canvas.
func (m *Model) resetStars() {
	cols, rows := m.canvas.Cells()
	w, h := m.canvas.Size()
	m.stars = skins.NewStarfield(m.opts.Runtime.Seed, max(1, cols*rows/40), w, h)
}

// Init initializes the model on the home screen.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("Star Dodge")
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keyMapper.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.machine.Stop()
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		// A running game must be paused first
		if m.view != screenPlaying || m.machine.Paused() {
			m.machine.Stop()
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil
	case core.ActionMute:
		if mt, ok := m.opts.Audio.(muter); ok {
			muted := mt.ToggleMute()
			m.logger.Debug("Music toggled", "muted", muted)
		}
		return m, nil
	}

	switch m.view {
	case screenHome, screenGameOver:
		if action == core.ActionConfirm || action == core.ActionRestart {
			return m.start()
		}

	case screenPlaying:
		switch action {
		case core.ActionLeft, core.ActionRight:
			m.machine.Input().Press(action.Direction(), time.Now())
		case core.ActionPause:
			m.machine.Pause()
		}
	}

	return m, nil
}

// handleMouse turns left-button drags into touch steering. A click on the
// home or game-over screen starts a game.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.view != screenPlaying {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return m.start()
		}
		return m, nil
	}

	x := float64(msg.X*CellW + CellW/2)
	in := m.machine.Input()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			in.TouchStart(x)
		}
	case tea.MouseActionMotion:
		in.TouchMove(x)
	case tea.MouseActionRelease:
		in.TouchEnd()
	}
	return m, nil
}

// handleResize resizes the canvas and lets the machine re-derive the ship.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.canvas.Resize(msg.Width, msg.Height)
	m.screen.Resize(msg.Width, msg.Height)
	m.machine.Resize()
	m.resetStars()
	m.help.Width = msg.Width
	return m, nil
}

// start begins a new session and schedules its first tick.
func (m Model) start() (tea.Model, tea.Cmd) {
	if !m.machine.Start() {
		return m, nil
	}
	m.view = screenPlaying
	m.saved = false
	return m, tickCmd(m.opts.Runtime.TickRate, m.machine.Run())
}

// handleTick processes simulation ticks.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if m.view != screenPlaying || msg.Run != m.machine.Run() {
		return m, nil
	}

	if !m.machine.Paused() {
		w, h := m.canvas.Size()
		m.stars.Update(w, h)
	}

	if m.driver.Tick(msg.Time) {
		return m, tickCmd(m.opts.Runtime.TickRate, msg.Run)
	}

	if m.machine.State() == sim.StateGameOver {
		m.finish()
	}
	return m, nil
}

// finish switches to the game-over screen and saves the score once.
func (m *Model) finish() {
	m.view = screenGameOver
	final := m.machine.FinalScore()

	if !m.saved && final > 0 && m.opts.Store != nil {
		if _, err := m.opts.Store.SaveScore(m.skin.ID(), m.opts.Player, final); err != nil {
			m.logger.Warn("Could not save score", "error", err)
		}
	}
	m.saved = true

	m.loadHighScore()
	m.loadBoard()
}

func (m *Model) loadHighScore() {
	if m.opts.Store == nil {
		return
	}
	high, err := m.opts.Store.HighScore(m.skin.ID())
	if err != nil {
		m.logger.Warn("Could not load high score", "error", err)
		return
	}
	m.highScore = high
}

func newBoard() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Player", Width: 12},
			{Title: "Score", Width: 8},
			{Title: "Date", Width: 12},
		}),
		table.WithHeight(boardRows+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
	return t
}

// loadBoard fills the score table with the best runs of the skin.
func (m *Model) loadBoard() {
	if m.opts.Store == nil {
		return
	}
	scores, err := m.opts.Store.TopScores(m.skin.ID(), boardRows)
	if err != nil {
		m.logger.Warn("Could not load scores", "error", err)
		return
	}

	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		player := s.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			player,
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.board.SetRows(rows)
}

// draw renders the running session into the canvas.
func (m Model) draw() {
	c := m.canvas
	c.Clear(core.ColorSpace)
	m.stars.Draw(c)

	s := m.machine.Session()
	for _, o := range s.Obstacles {
		m.skin.DrawObstacle(c, o)
	}
	m.skin.DrawPlayer(c, s.Player, s.Frame)

	c.Text(CellW, 0, fmt.Sprintf("Score: %d", m.hud.score), core.ColorText)
	lives := fmt.Sprintf("Lives: %s", strings.Repeat("♥", max(0, m.hud.lives)))
	w, _ := c.Size()
	c.Text(w-float64((len([]rune(lives))+1)*CellW), 0, lives, core.ColorDanger)

	if m.machine.Paused() {
		cols, rows := c.Cells()
		text := "PAUSED - press p"
		c.Text(float64((cols-len(text))/2*CellW), float64(rows/2*CellH), text, core.ColorAccent)
	}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorAccent.ANSI()))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 3)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(core.ColorMuted.ANSI()))
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	switch m.view {
	case screenPlaying:
		m.draw()
		m.canvas.Flush(m.screen)
		return RenderScreen(m.screen)
	case screenGameOver:
		return m.place(m.gameOverView())
	default:
		return m.place(m.homeView())
	}
}

func (m Model) place(content string) string {
	return lipgloss.Place(m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH,
		lipgloss.Center, lipgloss.Center, content)
}

func (m Model) homeView() string {
	lines := []string{
		titleStyle.Render("★ STAR DODGE ★"),
		"",
		fmt.Sprintf("Ship: %s", m.skin.Title()),
		fmt.Sprintf("Best: %d", m.highScore),
		"",
		"Dodge the falling meteorites.",
		dimStyle.Render("Press enter or click to start"),
		"",
		m.help.View(m.keys),
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m Model) gameOverView() string {
	final := m.machine.FinalScore()
	lines := []string{
		titleStyle.Foreground(lipgloss.Color(core.ColorDanger.ANSI())).Render("GAME OVER"),
		"",
		fmt.Sprintf("Score: %d", final),
		fmt.Sprintf("Best:  %d", max(final, m.highScore)),
	}
	if len(m.board.Rows()) > 0 {
		lines = append(lines, "", m.board.View())
	}
	lines = append(lines, "", m.help.ShortHelpView(m.keys.GameOverHelp()))
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// saveScreenshot saves the current frame as plain text.
func (m *Model) saveScreenshot() {
	m.draw()
	m.canvas.Flush(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".stardodge", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.skin.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// Machine returns the state machine behind the model.
func (m Model) Machine() *sim.Machine { return m.machine }

// BackToMenu reports whether the player left for the ship picker.
func (m Model) BackToMenu() bool { return m.backToMenu }

// IsQuitting reports whether the player quit.
func (m Model) IsQuitting() bool { return m.quitting }

// Run starts the Bubble Tea program for a local player.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
