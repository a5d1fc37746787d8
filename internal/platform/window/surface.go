// Package window provides the desktop frontend: an ebiten game drawing the
// session with vector shapes and sprite sheets, and playing the soundtrack
// through ebiten's audio context.
package window

import (
	"bytes"
	"image"
	"image/color"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/star-dodge/internal/core"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)

	arcadeFaceSource *text.GoTextFaceSource
)

func init() {
	whiteImage.Fill(color.White)

	s, err := text.NewGoTextFaceSource(bytes.NewReader(fonts.PressStart2P_ttf))
	if err != nil {
		log.Fatal(err)
	}
	arcadeFaceSource = s
}

// fontSize is the HUD text size in pixels.
const fontSize = 16

// Surface draws onto the ebiten screen image of the current frame.
type Surface struct {
	dst    *ebiten.Image
	w, h   float64
	assets *Assets
}

// NewSurface creates a surface drawing sprites from assets, which may be nil.
func NewSurface(assets *Assets) *Surface {
	return &Surface{assets: assets}
}

// SetSize records the layout size.
func (s *Surface) SetSize(w, h int) {
	s.w, s.h = float64(w), float64(h)
}

// Begin targets the screen image of a frame.
func (s *Surface) Begin(dst *ebiten.Image) {
	s.dst = dst
}

// Size implements core.Surface.
func (s *Surface) Size() (w, h float64) { return s.w, s.h }

// Clear implements core.Surface.
func (s *Surface) Clear(c core.Color) {
	s.dst.Fill(c.RGBA())
}

// FillRect implements core.Surface.
func (s *Surface) FillRect(r core.Rect, c core.Color) {
	vector.DrawFilledRect(s.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c.RGBA(), true)
}

// FillPolygon implements core.Surface.
func (s *Surface) FillPolygon(pts []mgl64.Vec2, c core.Color) {
	if len(pts) < 3 {
		return
	}

	var path vector.Path
	path.MoveTo(float32(pts[0].X()), float32(pts[0].Y()))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X()), float32(p.Y()))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	rgba := c.RGBA()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(rgba.R) / 0xff
		vs[i].ColorG = float32(rgba.G) / 0xff
		vs[i].ColorB = float32(rgba.B) / 0xff
		vs[i].ColorA = float32(rgba.A) / 0xff
	}

	op := &ebiten.DrawTrianglesOptions{FillRule: ebiten.FillRuleNonZero, AntiAlias: true}
	s.dst.DrawTriangles(vs, is, whiteSubImage, op)
}

// Text implements core.Surface.
func (s *Surface) Text(x, y float64, str string, c core.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c.RGBA())
	text.Draw(s.dst, str, &text.GoTextFace{Source: arcadeFaceSource, Size: fontSize}, op)
}

// CenteredText draws str centred horizontally around x.
func (s *Surface) CenteredText(x, y float64, str string, size float64, c core.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c.RGBA())
	op.PrimaryAlign = text.AlignCenter
	text.Draw(s.dst, str, &text.GoTextFace{Source: arcadeFaceSource, Size: size}, op)
}

// DrawSprite implements core.SpriteSurface.
func (s *Surface) DrawSprite(name string, frame int, dst core.Rect, angle float64) bool {
	if s.assets == nil {
		return false
	}
	img, ok := s.assets.Frame(name, frame)
	if !ok {
		return false
	}

	b := img.Bounds()
	fw, fh := float64(b.Dx()), float64(b.Dy())
	cx, cy := dst.Center()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-fw/2, -fh/2)
	op.GeoM.Scale(dst.W/fw, dst.H/fh)
	op.GeoM.Rotate(angle)
	op.GeoM.Translate(cx, cy)
	op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(img, op)
	return true
}
