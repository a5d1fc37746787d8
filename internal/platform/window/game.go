package window

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/star-dodge/internal/config"
	"github.com/vovakirdan/star-dodge/internal/core"
	"github.com/vovakirdan/star-dodge/internal/registry"
	"github.com/vovakirdan/star-dodge/internal/sim"
	"github.com/vovakirdan/star-dodge/internal/skins"
	"github.com/vovakirdan/star-dodge/internal/storage"
)

// starCount is the number of background stars.
const starCount = 150

// steerKeys are applied in order, so right wins when both directions are
// pressed in the same frame.
var steerKeys = []struct {
	dir  int
	keys []ebiten.Key
}{
	{-1, []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}},
	{1, []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}},
}

// keyState reports the keyboard for one frame.
type keyState struct {
	justPressed  func(ebiten.Key) bool
	justReleased func(ebiten.Key) bool
	pressed      func(ebiten.Key) bool
}

var ebitenKeys = keyState{
	justPressed:  inpututil.IsKeyJustPressed,
	justReleased: inpututil.IsKeyJustReleased,
	pressed:      ebiten.IsKeyPressed,
}

// Options configures the window frontend.
type Options struct {
	Config    config.GameConfig
	Skin      registry.Skin
	Runtime   core.RuntimeConfig // ScreenW/ScreenH are the initial window size in pixels
	AssetsDir string
	Player    string
	Store     *storage.Store
	Sinks     core.Sinks
	Hooks     core.Hooks
	Logger    *log.Logger
}

// Game implements ebiten.Game. Update is driven once per display refresh
// and forwards to the simulation driver while a session runs.
type Game struct {
	opts    Options
	skin    registry.Skin
	machine *sim.Machine
	driver  *sim.Driver
	surface *Surface
	stars   *skins.Starfield
	music   *Music
	logger  *log.Logger

	width, height int
	touchID       ebiten.TouchID
	touching      bool
	saved         bool
	highScore     int
}

// NewGame creates the game. Sprites start loading in the background.
func NewGame(opts Options, music *Music) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}

	assets := NewAssets(opts.AssetsDir, opts.Logger)
	assets.LoadAsync(opts.Skin.Sprites())

	surface := NewSurface(assets)
	surface.SetSize(opts.Runtime.ScreenW, opts.Runtime.ScreenH)

	var au core.Audio = core.NopAudio{}
	if music != nil {
		au = music
	}

	machine := sim.NewMachine(opts.Config, surface, sim.Options{
		Seed:   opts.Runtime.Seed,
		Sinks:  opts.Sinks,
		Hooks:  opts.Hooks,
		Audio:  au,
		Logger: opts.Logger,
	})

	g := &Game{
		opts:    opts,
		skin:    opts.Skin,
		machine: machine,
		driver:  sim.NewDriver(machine, nil, opts.Logger),
		surface: surface,
		stars:   skins.NewStarfield(opts.Runtime.Seed, starCount, float64(opts.Runtime.ScreenW), float64(opts.Runtime.ScreenH)),
		music:   music,
		logger:  opts.Logger,
		width:   opts.Runtime.ScreenW,
		height:  opts.Runtime.ScreenH,
	}
	g.loadHighScore()
	return g
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	now := time.Now()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.machine.Stop()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && g.music != nil {
		g.logger.Debug("Music toggled", "muted", g.music.ToggleMute())
	}

	if g.machine.State() != sim.StateRunning {
		if g.startRequested() {
			g.machine.Start()
			g.saved = false
		}
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.machine.Pause()
	}
	g.steer(now)

	if !g.machine.Paused() {
		g.stars.Update(g.surface.Size())
	}

	if !g.driver.Tick(now) && g.machine.State() == sim.StateGameOver {
		g.finish()
	}
	return nil
}

func (g *Game) startRequested() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
}

// steer forwards key transitions and drags to the machine input.
func (g *Game) steer(now time.Time) {
	in := g.machine.Input()
	steerWithKeys(in, ebitenKeys, now)

	// Touch
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 && !g.touching {
		g.touchID, g.touching = ids[0], true
		x, _ := ebiten.TouchPosition(g.touchID)
		in.TouchStart(float64(x))
	}
	if g.touching {
		if inpututil.IsTouchJustReleased(g.touchID) {
			g.touching = false
			in.TouchEnd()
		} else {
			x, _ := ebiten.TouchPosition(g.touchID)
			in.TouchMove(float64(x))
		}
		return
	}

	// Mouse drags behave like touch
	x, _ := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		in.TouchStart(float64(x))
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		in.TouchEnd()
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		in.TouchMove(float64(x))
	}
}

// steerWithKeys forwards the frame's key transitions to in.
func steerWithKeys(in *sim.Input, ks keyState, now time.Time) {
	for _, b := range steerKeys {
		for _, k := range b.keys {
			if ks.justPressed(k) {
				in.Press(b.dir, now)
			}
			if ks.justReleased(k) && !anyPressed(ks, b.keys) {
				in.Release(b.dir)
			}
		}
	}
}

func anyPressed(ks keyState, keys []ebiten.Key) bool {
	for _, k := range keys {
		if ks.pressed(k) {
			return true
		}
	}
	return false
}

// finish saves the final score once.
func (g *Game) finish() {
	if g.saved {
		return
	}
	g.saved = true

	final := g.machine.FinalScore()
	if final > 0 && g.opts.Store != nil {
		if _, err := g.opts.Store.SaveScore(g.skin.ID(), g.opts.Player, final); err != nil {
			g.logger.Warn("Could not save score", "error", err)
		}
	}
	g.loadHighScore()
}

func (g *Game) loadHighScore() {
	if g.opts.Store == nil {
		return
	}
	high, err := g.opts.Store.HighScore(g.skin.ID())
	if err != nil {
		g.logger.Warn("Could not load high score", "error", err)
		return
	}
	g.highScore = high
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	s := g.surface
	s.Begin(screen)
	s.Clear(core.ColorSpace)
	g.stars.Draw(s)

	w, h := s.Size()
	session := g.machine.Session()

	switch g.machine.State() {
	case sim.StateIdle:
		s.CenteredText(w/2, h/3, "STAR DODGE", 32, core.ColorAccent)
		s.CenteredText(w/2, h/2, "Press Enter or tap to start", 16, core.ColorText)
		s.CenteredText(w/2, h/2+40, "Arrow keys / drag to steer", 12, core.ColorMuted)
		s.CenteredText(w/2, h/2+64, fmt.Sprintf("Best: %d", g.highScore), 12, core.ColorMuted)
		return

	case sim.StateGameOver:
		s.CenteredText(w/2, h/3, "GAME OVER", 32, core.ColorDanger)
		s.CenteredText(w/2, h/2, fmt.Sprintf("Score: %d", g.machine.FinalScore()), 16, core.ColorText)
		s.CenteredText(w/2, h/2+32, fmt.Sprintf("Best: %d", max(g.highScore, g.machine.FinalScore())), 16, core.ColorAccent)
		s.CenteredText(w/2, h/2+72, "Press Enter or tap to play again", 12, core.ColorMuted)
		return
	}

	for _, o := range session.Obstacles {
		g.skin.DrawObstacle(s, o)
	}
	g.skin.DrawPlayer(s, session.Player, session.Frame)

	s.Text(12, 12, fmt.Sprintf("Score: %d", session.Score), core.ColorText)
	lives := fmt.Sprintf("Lives: %d", session.Lives)
	s.Text(w-float64(len(lives)*fontSize)-12, 12, lives, core.ColorDanger)

	if g.machine.Paused() {
		s.CenteredText(w/2, h/2, "PAUSED", 32, core.ColorAccent)
	}
}

// Layout implements ebiten.Game. The surface always matches the window, so
// a resize re-derives the ship geometry.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.surface.SetSize(outsideWidth, outsideHeight)
		g.machine.Resize()
	}
	return outsideWidth, outsideHeight
}

// Machine returns the state machine behind the game.
func (g *Game) Machine() *sim.Machine { return g.machine }

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	if opts.Runtime.ScreenW <= 0 || opts.Runtime.ScreenH <= 0 {
		opts.Runtime.ScreenW, opts.Runtime.ScreenH = 800, 600
	}

	g := NewGame(opts, NewMusic(opts.Skin.Theme(), opts.Config.Audio, opts.Logger))

	ebiten.SetWindowSize(opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	ebiten.SetWindowTitle("Star Dodge - " + opts.Skin.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if opts.Runtime.TickRate > 0 {
		ebiten.SetTPS(opts.Runtime.TickRate)
	} else {
		ebiten.SetTPS(ebiten.SyncWithFPS)
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
