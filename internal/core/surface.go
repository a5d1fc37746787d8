package core

import "github.com/go-gl/mathgl/mgl64"

// Surface is the render target a frontend hands to the game.
// Coordinates are surface units with the origin in the top-left corner.
type Surface interface {
	// Size reports the current drawable width and height.
	Size() (w, h float64)

	// Clear fills the whole surface with a background color.
	Clear(c Color)

	// FillRect fills an axis-aligned rectangle.
	FillRect(r Rect, c Color)

	// FillPolygon fills a simple (convex or star-shaped) polygon.
	FillPolygon(pts []mgl64.Vec2, c Color)

	// Text draws a short label with its top-left corner at (x, y).
	Text(x, y float64, s string, c Color)
}

// ScoreSink observes every score change.
type ScoreSink interface {
	ScoreChanged(score int)
}

// LivesSink observes every lives change.
type LivesSink interface {
	LivesChanged(lives int)
}

// Audio is background music playback. Failures are reported, never fatal.
type Audio interface {
	Play() error
	Stop() error
}

// Hooks are lifecycle callbacks used by the presentation to switch screens.
type Hooks interface {
	OnStart()
	OnGameOver(finalScore int)
}

// Sinks bundles the score and lives observers.
type Sinks interface {
	ScoreSink
	LivesSink
}

// MultiSink fans score and lives notifications out to several observers.
type MultiSink []Sinks

// ScoreChanged implements ScoreSink.
func (m MultiSink) ScoreChanged(score int) {
	for _, s := range m {
		s.ScoreChanged(score)
	}
}

// LivesChanged implements LivesSink.
func (m MultiSink) LivesChanged(lives int) {
	for _, s := range m {
		s.LivesChanged(lives)
	}
}

// MultiHooks fans lifecycle callbacks out to several observers.
type MultiHooks []Hooks

// OnStart implements Hooks.
func (m MultiHooks) OnStart() {
	for _, h := range m {
		h.OnStart()
	}
}

// OnGameOver implements Hooks.
func (m MultiHooks) OnGameOver(finalScore int) {
	for _, h := range m {
		h.OnGameOver(finalScore)
	}
}

// NopSinks ignores all notifications.
type NopSinks struct{}

func (NopSinks) ScoreChanged(int) {}
func (NopSinks) LivesChanged(int) {}

// NopHooks ignores all lifecycle callbacks.
type NopHooks struct{}

func (NopHooks) OnStart() {}
func (NopHooks) OnGameOver(int) {}

// NopAudio never plays anything.
type NopAudio struct{}

func (NopAudio) Play() error { return nil }
func (NopAudio) Stop() error { return nil }

// Sprite describes an image asset a skin can draw. Sheets are split into
// Columns x Rows equally sized frames.
type Sprite struct {
	Name    string // Key used in DrawSprite
	File    string // Path relative to the asset directory
	Columns int
	Rows    int
}

// Frames returns the number of frames in the sheet.
func (s Sprite) Frames() int {
	return max(1, s.Columns) * max(1, s.Rows)
}

// SpriteSurface is implemented by surfaces that can draw loaded images.
type SpriteSurface interface {
	Surface

	// DrawSprite draws a frame of the named sprite into dst, rotated by angle
	// radians around the centre of dst. It returns false when the sprite is
	// not loaded (yet), in which case the caller draws a placeholder.
	DrawSprite(name string, frame int, dst Rect, angle float64) bool
}
