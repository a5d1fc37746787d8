package sim

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/star-dodge/internal/config"
)

// Spawner creates asteroids on a cadence that tightens over time.
type Spawner struct {
	rng       *rand.Rand
	obstacles config.ObstacleConfig
	spawn     config.SpawnConfig
}

// NewSpawner creates a spawner with its own seeded RNG so a run is
// reproducible for a given seed.
func NewSpawner(seed int64, cfg config.GameConfig) *Spawner {
	return &Spawner{
		rng:       rand.New(rand.NewSource(seed)),
		obstacles: cfg.Obstacles,
		spawn:     cfg.Spawn,
	}
}

// Reseed restarts the RNG sequence.
func (sp *Spawner) Reseed(seed int64) {
	sp.rng = rand.New(rand.NewSource(seed))
}

// MaybeSpawn returns a new obstacle when the session's frame counter is a
// multiple of its spawn interval. The caller owns adding it to the session.
func (sp *Spawner) MaybeSpawn(s *Session, surfaceW float64) (Obstacle, bool) {
	if s.SpawnInterval <= 0 || s.Frame%s.SpawnInterval != 0 {
		return Obstacle{}, false
	}
	return sp.newObstacle(surfaceW), true
}

// Ramp decrements the spawn interval every RampEvery elapsed ticks until it
// reaches the floor. It reports whether the interval changed.
func (sp *Spawner) Ramp(s *Session) bool {
	if sp.spawn.Fixed || sp.spawn.RampEvery <= 0 {
		return false
	}
	if s.Elapsed == 0 || s.Elapsed%sp.spawn.RampEvery != 0 {
		return false
	}
	if s.SpawnInterval <= sp.spawn.MinInterval {
		return false
	}
	s.SpawnInterval--
	return true
}

func (sp *Spawner) newObstacle(surfaceW float64) Obstacle {
	cfg := sp.obstacles

	minSize := surfaceW * cfg.MinSizeRatio
	maxSize := surfaceW * cfg.MaxSizeRatio
	size := minSize + sp.rng.Float64()*(maxSize-minSize)

	speedFactor := sp.rng.Float64()*cfg.SpeedRange + cfg.SpeedMin

	return Obstacle{
		X:             sp.rng.Float64() * math.Max(0, surfaceW-size),
		Y:             -size,
		Size:          size,
		Speed:         speedFactor * surfaceW * cfg.SpeedScale,
		Rotation:      sp.rng.Float64() * 2 * math.Pi,
		RotationDelta: (sp.rng.Float64()*2 - 1) * cfg.MaxSpin,
	}
}
