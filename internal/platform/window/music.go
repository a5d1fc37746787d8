package window

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/vovakirdan/star-dodge/internal/audio"
	"github.com/vovakirdan/star-dodge/internal/config"
)

// Music plays a theme through ebiten's audio context. The window frontend
// uses it instead of the beep speaker so only one library opens the device.
type Music struct {
	ctx    *ebaudio.Context
	theme  audio.Theme
	cfg    config.AudioConfig
	player *ebaudio.Player
	logger *log.Logger
}

// NewMusic creates the audio context. ebiten allows one context per process.
func NewMusic(theme audio.Theme, cfg config.AudioConfig, logger *log.Logger) *Music {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Music{
		ctx:    ebaudio.NewContext(int(audio.SampleRate)),
		theme:  theme,
		cfg:    cfg,
		logger: logger,
	}
}

// Play restarts the theme from its beginning.
func (m *Music) Play() error {
	if m.player != nil {
		m.player.Close()
		m.player = nil
	}

	p, err := m.ctx.NewPlayerF32(audio.NewThemeReader(m.theme, m.cfg.Tempo, m.cfg.Volume))
	if err != nil {
		return fmt.Errorf("window: new audio player: %w", err)
	}
	p.SetBufferSize(bufferSize)
	m.setVolume(p)
	p.Play()

	m.player = p
	m.logger.Debug("music started", "theme", m.theme.Name)
	return nil
}

// bufferSize keeps latency low for an endless generated stream.
const bufferSize = 100 * time.Millisecond

// Stop pauses the theme.
func (m *Music) Stop() error {
	if m.player != nil {
		m.player.Pause()
	}
	return nil
}

// ToggleMute flips the mute flag and returns the new value.
func (m *Music) ToggleMute() bool {
	m.cfg.Muted = !m.cfg.Muted
	if m.player != nil {
		m.setVolume(m.player)
	}
	return m.cfg.Muted
}

// Muted reports whether the music is muted.
func (m *Music) Muted() bool { return m.cfg.Muted }

func (m *Music) setVolume(p *ebaudio.Player) {
	if m.cfg.Muted {
		p.SetVolume(0)
		return
	}
	// The reader already applies the configured volume
	p.SetVolume(1)
}
