package core

// RuntimeConfig contains configuration passed to the game at start.
// Frontends use this to size the surface and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in frontend units (cells or pixels)
	ScreenH  int   // Screen height in frontend units
	TickRate int   // Display refreshes (simulation ticks) per second, default 60
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}
