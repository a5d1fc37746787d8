package music

import (
	"errors"
	"testing"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/star-dodge/internal/audio"
	"github.com/vovakirdan/star-dodge/internal/config"
	"github.com/vovakirdan/star-dodge/internal/core"
)

var _ core.Audio = (*Player)(nil)

func TestPlayerInitFailureIsSilent(t *testing.T) {
	p := NewPlayer(audio.ThemeLeap, config.AudioConfig{Volume: 0.5}, nil)
	calls := 0
	p.backend = speakerBackend{
		init:   func(beep.SampleRate, int) error { calls++; return errors.New("no device") },
		play:   func(...beep.Streamer) {},
		lock:   func() {},
		unlock: func() {},
	}

	if err := p.Play(); err == nil {
		t.Fatal("first Play() should report the init failure")
	}
	if err := p.Play(); err != nil {
		t.Errorf("later Play() should be silent, got %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Errorf("Stop() = %v", err)
	}
	if calls != 1 || p.Available() {
		t.Errorf("init calls = %d available = %v, expected one failed init", calls, p.Available())
	}
}

func TestPlayerPlayStopMute(t *testing.T) {
	p := NewPlayer(audio.ThemeOrbit, config.AudioConfig{Volume: 0.5, Tempo: 100}, nil)
	var played []beep.Streamer
	p.backend = speakerBackend{
		init:   func(beep.SampleRate, int) error { return nil },
		play:   func(s ...beep.Streamer) { played = append(played, s...) },
		lock:   func() {},
		unlock: func() {},
	}

	if err := p.Play(); err != nil {
		t.Fatalf("Play() failed: %v", err)
	}
	if len(played) != 1 || !p.Available() {
		t.Fatalf("speaker should be started once, got %d", len(played))
	}
	first := p.ctrl

	if err := p.Play(); err != nil {
		t.Fatalf("second Play() failed: %v", err)
	}
	if len(played) != 1 {
		t.Error("speaker must only be started once")
	}
	if first.Streamer != nil {
		t.Error("previous stream should be drained on restart")
	}

	if err := p.Stop(); err != nil || !p.ctrl.Paused {
		t.Errorf("Stop() = %v paused=%v", err, p.ctrl.Paused)
	}

	if !p.ToggleMute() || !p.volume.Silent {
		t.Error("ToggleMute() should silence the stream")
	}
	if p.ToggleMute() || p.volume.Silent {
		t.Error("second ToggleMute() should restore the stream")
	}
}
