package tui

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/star-dodge/internal/core"
)

// Virtual pixels per terminal cell. A cell holds two square subpixels
// stacked vertically, drawn with the upper half block.
const (
	CellW     = 8
	CellH     = 16
	subpixel  = 8
	halfBlock = '▀'
)

type label struct {
	col, row int
	text     string
	color    core.Color
}

// Canvas is a core.Surface backed by a character Screen. Drawing happens on
// a subpixel grid twice as tall as the screen; Flush folds each pair of
// subpixels into one half-block cell.
type Canvas struct {
	cols, rows int
	pix        [][]core.Color // [subpixel row][col]
	labels     []label
}

// NewCanvas creates a canvas for a cols x rows cell area.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize changes the cell area and clears the canvas.
func (c *Canvas) Resize(cols, rows int) {
	c.cols = max(0, cols)
	c.rows = max(0, rows)
	c.pix = make([][]core.Color, c.rows*2)
	for y := range c.pix {
		c.pix[y] = make([]core.Color, c.cols)
	}
	c.labels = c.labels[:0]
}

// Cells returns the cell dimensions.
func (c *Canvas) Cells() (cols, rows int) { return c.cols, c.rows }

// Size implements core.Surface in virtual pixels.
func (c *Canvas) Size() (w, h float64) {
	return float64(c.cols * CellW), float64(c.rows * CellH)
}

// Clear implements core.Surface.
func (c *Canvas) Clear(col core.Color) {
	for y := range c.pix {
		for x := range c.pix[y] {
			c.pix[y][x] = col
		}
	}
	c.labels = c.labels[:0]
}

// FillRect fills every subpixel the rectangle touches, so shapes smaller
// than a subpixel still show up.
func (c *Canvas) FillRect(r core.Rect, col core.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	x0 := max(0, int(math.Floor(r.X/subpixel)))
	y0 := max(0, int(math.Floor(r.Y/subpixel)))
	x1 := min(c.cols, int(math.Ceil(r.Right()/subpixel)))
	y1 := min(len(c.pix), int(math.Ceil(r.Bottom()/subpixel)))

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.pix[y][x] = col
		}
	}
}

// FillPolygon fills the subpixels whose centres fall inside the polygon.
// A polygon too small to cover any centre fills the subpixel under its
// first vertex.
func (c *Canvas) FillPolygon(pts []mgl64.Vec2, col core.Color) {
	if len(pts) < 3 {
		return
	}

	minX, minY := pts[0].X(), pts[0].Y()
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p.X()), max(maxX, p.X())
		minY, maxY = min(minY, p.Y()), max(maxY, p.Y())
	}

	x0 := max(0, int(math.Floor(minX/subpixel)))
	y0 := max(0, int(math.Floor(minY/subpixel)))
	x1 := min(c.cols, int(math.Ceil(maxX/subpixel)))
	y1 := min(len(c.pix), int(math.Ceil(maxY/subpixel)))

	filled := false
	for y := y0; y < y1; y++ {
		cy := (float64(y) + 0.5) * subpixel
		for x := x0; x < x1; x++ {
			cx := (float64(x) + 0.5) * subpixel
			if insidePolygon(pts, cx, cy) {
				c.pix[y][x] = col
				filled = true
			}
		}
	}

	if !filled {
		c.set(int(pts[0].X()/subpixel), int(pts[0].Y()/subpixel), col)
	}
}

func (c *Canvas) set(x, y int, col core.Color) {
	if y >= 0 && y < len(c.pix) && x >= 0 && x < c.cols {
		c.pix[y][x] = col
	}
}

// insidePolygon is an even-odd ray cast.
func insidePolygon(pts []mgl64.Vec2, x, y float64) bool {
	inside := false
	j := len(pts) - 1
	for i := range pts {
		xi, yi := pts[i].X(), pts[i].Y()
		xj, yj := pts[j].X(), pts[j].Y()
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Text implements core.Surface. Labels snap to the cell grid and are drawn
// over the pixels on Flush.
func (c *Canvas) Text(x, y float64, s string, col core.Color) {
	c.labels = append(c.labels, label{
		col:   int(x / CellW),
		row:   int(y / CellH),
		text:  s,
		color: col,
	})
}

// Flush writes the canvas into scr, which must be at least as large.
func (c *Canvas) Flush(scr *core.Screen) {
	for row := 0; row < c.rows; row++ {
		top, bottom := c.pix[row*2], c.pix[row*2+1]
		for x := 0; x < c.cols; x++ {
			if top[x] == bottom[x] {
				scr.SetCell(x, row, core.Cell{Rune: ' ', BG: top[x]})
			} else {
				scr.SetCell(x, row, core.Cell{Rune: halfBlock, FG: top[x], BG: bottom[x]})
			}
		}
	}

	for _, l := range c.labels {
		x := l.col
		for _, r := range l.text {
			if x >= c.cols || l.row < 0 || l.row >= c.rows {
				break
			}
			if x >= 0 {
				bg := c.pix[l.row*2][x]
				scr.SetCell(x, l.row, core.Cell{Rune: r, FG: l.color, BG: bg})
			}
			x++
		}
	}
}

// Pixel returns the subpixel color at (x, y) in subpixel coordinates.
func (c *Canvas) Pixel(x, y int) core.Color {
	if y < 0 || y >= len(c.pix) || x < 0 || x >= c.cols {
		return core.ColorDefault
	}
	return c.pix[y][x]
}
