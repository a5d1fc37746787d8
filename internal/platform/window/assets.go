package window

import (
	"fmt"
	"image"
	_ "image/png" // Sprite sheets are PNG
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/star-dodge/internal/core"
)

type sheet struct {
	sprite  core.Sprite
	decoded image.Image   // Set by the loader goroutine
	img     *ebiten.Image // Created on the game goroutine at first use
	frames  []*ebiten.Image
}

// Assets loads sprite sheets in the background. Until a sheet is decoded,
// Frame reports it as missing and skins draw their placeholders.
type Assets struct {
	dir    string
	logger *log.Logger

	mu     sync.Mutex
	sheets map[string]*sheet
	failed map[string]error
}

// NewAssets creates an asset set rooted at dir. A nil logger discards output.
func NewAssets(dir string, logger *log.Logger) *Assets {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Assets{
		dir:    dir,
		logger: logger,
		sheets: make(map[string]*sheet),
		failed: make(map[string]error),
	}
}

// LoadAsync decodes the sprites in a goroutine. The returned channel is
// closed once every sprite was tried.
func (a *Assets) LoadAsync(sprites []core.Sprite) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, sp := range sprites {
			img, err := decodeFile(filepath.Join(a.dir, sp.File))
			a.mu.Lock()
			if err != nil {
				a.failed[sp.Name] = err
			} else {
				a.sheets[sp.Name] = &sheet{sprite: sp, decoded: img}
			}
			a.mu.Unlock()

			if err != nil {
				a.logger.Warn("Sprite unavailable, using placeholder", "sprite", sp.Name, "error", err)
			} else {
				a.logger.Debug("Sprite loaded", "sprite", sp.Name)
			}
		}
	}()
	return done
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Loaded reports whether a sprite is decoded.
func (a *Assets) Loaded(name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.sheets[name]
	return ok
}

// Err returns the load error of a sprite, if any.
func (a *Assets) Err(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.failed[name]
}

// Frame returns one frame of a loaded sheet. It must be called from the
// game goroutine.
func (a *Assets) Frame(name string, frame int) (*ebiten.Image, bool) {
	a.mu.Lock()
	sh, ok := a.sheets[name]
	a.mu.Unlock()
	if !ok {
		return nil, false
	}

	if sh.img == nil {
		sh.img = ebiten.NewImageFromImage(sh.decoded)
		n := sh.sprite.Frames()
		sh.frames = make([]*ebiten.Image, n)
		for i := range sh.frames {
			r := frameRect(sh.img.Bounds(), sh.sprite, i)
			sh.frames[i] = sh.img.SubImage(r).(*ebiten.Image)
		}
	}

	if frame < 0 {
		frame = 0
	}
	return sh.frames[frame%len(sh.frames)], true
}

// frameRect returns the bounds of frame i in a sheet laid out row by row.
func frameRect(bounds image.Rectangle, sp core.Sprite, i int) image.Rectangle {
	cols, rows := max(1, sp.Columns), max(1, sp.Rows)
	fw, fh := bounds.Dx()/cols, bounds.Dy()/rows
	i %= cols * rows
	x := bounds.Min.X + (i%cols)*fw
	y := bounds.Min.Y + (i/cols)*fh
	return image.Rect(x, y, x+fw, y+fh)
}
