// Package registry provides a global registry for skin factories.
// Skins register themselves in init() functions, allowing the frontends
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/star-dodge/internal/audio"
	"github.com/vovakirdan/star-dodge/internal/config"
	"github.com/vovakirdan/star-dodge/internal/core"
	"github.com/vovakirdan/star-dodge/internal/sim"
)

// Skin is the presentation strategy for the single simulation core.
// Skins only draw; they never mutate the session.
type Skin interface {
	// ID returns a unique identifier for this skin (e.g., "starship").
	// Used for CLI flags and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Variant returns the balance preset the skin was designed for.
	Variant() config.Variant

	// Theme returns the soundtrack played while a session runs.
	Theme() audio.Theme

	// Sprites lists the image assets the skin can use. Surfaces that cannot
	// draw images ignore them.
	Sprites() []core.Sprite

	// DrawPlayer draws the ship. frame is the session frame counter, used
	// for animation.
	DrawPlayer(dst core.Surface, p sim.Player, frame int)

	// DrawObstacle draws one asteroid.
	DrawObstacle(dst core.Surface, o sim.Obstacle)
}

// SkinInfo contains metadata about a registered skin.
type SkinInfo struct {
	ID      string
	Title   string
	Variant config.Variant
}

// Factory is a function that creates a new instance of a skin.
type Factory func() Skin

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]SkinInfo)
	mu        sync.RWMutex
)

// Register adds a skin factory to the registry.
// Typically called from a skin's init() function.
// Panics if a skin with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: skin %q already registered", id))
	}

	factories[id] = f

	// Get metadata by creating a temporary instance
	s := f()
	infos[id] = SkinInfo{ID: id, Title: s.Title(), Variant: s.Variant()}
}

// List returns information about all registered skins, sorted by ID.
func List() []SkinInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SkinInfo, 0, len(factories))
	for id := range factories {
		result = append(result, infos[id])
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new skin by its ID.
// Returns an error if the skin ID is not registered.
func Create(id string) (Skin, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown skin %q", id)
	}

	return f(), nil
}

// Exists checks if a skin with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
