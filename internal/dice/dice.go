package dice

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/rolltogether/internal/dice Roller

import (
	"math/rand"
	"sync"
	"time"
)

// Roller is the random die primitive
type Roller interface {
	// Roll returns a uniform random value in [1, sides]
	Roll(sides int) int
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// randomRoller implements Roller with math/rand
type randomRoller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new dice roller
func New(cfg *Config) Roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &randomRoller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Roll generates a random dice roll with the specified number of sides
func (r *randomRoller) Roll(sides int) int {
	if sides < 1 {
		return 1
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(sides) + 1
}
