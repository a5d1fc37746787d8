// Package audio synthesises the looping soundtrack as beep streams. It
// never opens an audio device: the music package plays the streams through
// beep's speaker, and frontends that own their own device read the same
// soundtrack as raw PCM through PCMReader.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is used for every generated stream.
const SampleRate = beep.SampleRate(44100)

// Wave selects a voice's oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// Note is one step of a voice. MIDI 0 is a rest.
type Note struct {
	MIDI  int
	Beats float64
}

// Voice is a looping note sequence played with one oscillator.
type Voice struct {
	Wave  Wave
	Gain  float64
	Notes []Note
}

// Theme is a looping multi-voice tune.
type Theme struct {
	Name   string
	Tempo  int // Beats per minute, overridden by config when set
	Voices []Voice
}

// NoteFreq returns the frequency in Hz for a MIDI note (A4 = 69 = 440 Hz).
func NoteFreq(midi int) float64 {
	if midi <= 0 || midi >= 128 {
		return 0
	}
	return 440.0 * math.Pow(2, float64(midi-69)/12.0)
}

// Envelope lengths in seconds; they keep note boundaries click-free.
const (
	attack  = 0.005
	release = 0.03
)

// voiceState walks one voice's notes sample by sample.
type voiceState struct {
	voice     Voice
	idx       int
	left      int // Samples left in the current note
	length    int // Samples in the current note
	phase     float64
	step      float64 // Phase increment per sample
	perBeat   float64 // Samples per beat
	attackN   float64
	releaseN  float64
	exhausted bool
}

func newVoiceState(v Voice, sr beep.SampleRate, tempo int) *voiceState {
	vs := &voiceState{
		voice:    v,
		idx:      -1,
		perBeat:  float64(sr) * 60 / float64(tempo),
		attackN:  float64(sr) * attack,
		releaseN: float64(sr) * release,
	}
	vs.exhausted = len(v.Notes) == 0
	return vs
}

func (vs *voiceState) next(sr beep.SampleRate) {
	vs.idx = (vs.idx + 1) % len(vs.voice.Notes)
	n := vs.voice.Notes[vs.idx]
	vs.length = max(1, int(n.Beats*vs.perBeat))
	vs.left = vs.length
	vs.step = NoteFreq(n.MIDI) / float64(sr)
}

func (vs *voiceState) sample(sr beep.SampleRate) float64 {
	if vs.exhausted {
		return 0
	}
	if vs.left == 0 {
		vs.next(sr)
	}
	pos := float64(vs.length - vs.left)
	vs.left--
	if vs.step == 0 {
		return 0
	}

	env := math.Min(1, math.Min(pos/vs.attackN, float64(vs.left)/vs.releaseN))
	vs.phase += vs.step
	vs.phase -= math.Floor(vs.phase)

	var v float64
	switch vs.voice.Wave {
	case WaveSquare:
		v = 1
		if vs.phase >= 0.5 {
			v = -1
		}
	case WaveTriangle:
		v = 4*math.Abs(vs.phase-0.5) - 1
	default:
		v = math.Sin(2 * math.Pi * vs.phase)
	}
	return v * env * vs.voice.Gain
}

// themeStreamer is an endless beep.Streamer mixing every voice of a theme.
type themeStreamer struct {
	sr     beep.SampleRate
	voices []*voiceState
}

// NewThemeStreamer renders t as an endless stereo stream. A positive tempo
// overrides the theme's own.
func NewThemeStreamer(t Theme, sr beep.SampleRate, tempo int) beep.Streamer {
	if tempo <= 0 {
		tempo = t.Tempo
	}
	if tempo <= 0 {
		tempo = 120
	}
	ts := &themeStreamer{sr: sr}
	for _, v := range t.Voices {
		ts.voices = append(ts.voices, newVoiceState(v, sr, tempo))
	}
	return ts
}

func (ts *themeStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		var mix float64
		for _, v := range ts.voices {
			mix += v.sample(ts.sr)
		}
		mix = math.Max(-1, math.Min(1, mix))
		samples[i][0] = mix
		samples[i][1] = mix
	}
	return len(samples), true
}

func (ts *themeStreamer) Err() error { return nil }

// WithVolume scales a stream by a linear gain in [0, 1].
func WithVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// LoopLength returns how long one pass through the theme's longest voice lasts.
func (t Theme) LoopLength(tempo int) time.Duration {
	if tempo <= 0 {
		tempo = t.Tempo
	}
	if tempo <= 0 {
		tempo = 120
	}
	var longest float64
	for _, v := range t.Voices {
		var beats float64
		for _, n := range v.Notes {
			beats += n.Beats
		}
		longest = math.Max(longest, beats)
	}
	return time.Duration(longest * 60 / float64(tempo) * float64(time.Second))
}
