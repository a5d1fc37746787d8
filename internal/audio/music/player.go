// Package music plays a soundtrack theme on the default audio device
// through beep's speaker.
package music

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/star-dodge/internal/audio"
	"github.com/vovakirdan/star-dodge/internal/config"
)

// speakerBackend is the slice of beep's speaker package the player uses.
type speakerBackend struct {
	init   func(sr beep.SampleRate, bufferSize int) error
	play   func(s ...beep.Streamer)
	lock   func()
	unlock func()
}

var defaultSpeaker = speakerBackend{
	init:   speaker.Init,
	play:   speaker.Play,
	lock:   speaker.Lock,
	unlock: speaker.Unlock,
}

// Player plays a theme on the default audio device. The speaker is
// initialised on the first Play; if that fails the player stays silent.
type Player struct {
	mu      sync.Mutex
	theme   audio.Theme
	cfg     config.AudioConfig
	backend speakerBackend
	logger  *log.Logger

	initialized bool
	failed      bool
	mixer       *beep.Mixer
	ctrl        *beep.Ctrl
	volume      *effects.Volume
}

// NewPlayer creates a player for theme. Nothing touches the audio device
// until Play is called.
func NewPlayer(theme audio.Theme, cfg config.AudioConfig, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		theme:   theme,
		cfg:     cfg,
		backend: defaultSpeaker,
		logger:  logger,
		mixer:   &beep.Mixer{},
	}
}

func (p *Player) initialize() error {
	if p.initialized {
		return nil
	}
	if p.failed {
		return nil
	}
	if err := p.backend.init(audio.SampleRate, audio.SampleRate.N(100*time.Millisecond)); err != nil {
		p.failed = true
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	p.backend.play(p.mixer)
	p.initialized = true
	return nil
}

// Play restarts the theme from its beginning.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.initialize(); err != nil {
		return err
	}
	if !p.initialized {
		return nil
	}

	stream := audio.NewThemeStreamer(p.theme, audio.SampleRate, p.cfg.Tempo)
	vol := audio.WithVolume(stream, p.cfg.Volume)
	vol.Silent = vol.Silent || p.cfg.Muted
	ctrl := &beep.Ctrl{Streamer: vol, Paused: false}

	p.backend.lock()
	if p.ctrl != nil {
		// A nil streamer drains out of the mixer
		p.ctrl.Streamer = nil
	}
	p.mixer.Add(ctrl)
	p.backend.unlock()

	p.ctrl = ctrl
	p.volume = vol
	p.logger.Debug("music started", "theme", p.theme.Name)
	return nil
}

// Stop pauses the theme.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil {
		return nil
	}
	p.backend.lock()
	p.ctrl.Paused = true
	p.backend.unlock()
	return nil
}

// SetMuted silences or restores the music without stopping it.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cfg.Muted = muted
	if p.volume == nil {
		return
	}
	p.backend.lock()
	p.volume.Silent = muted || p.cfg.Volume <= 0
	p.backend.unlock()
}

// ToggleMute flips the mute flag and returns the new value.
func (p *Player) ToggleMute() bool {
	muted := !p.Muted()
	p.SetMuted(muted)
	return muted
}

// Muted reports whether the music is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg.Muted
}

// Available reports whether the audio device is usable. It is false before
// the first Play and after a failed initialisation.
func (p *Player) Available() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}
