package dice

import (
	"math/rand"
	"sync"
	"time"

	"github.com/BlakeDanielson/SoloRelms-sub001/internal/errors"
)

// randomRoller implements Roller on a seedable math/rand source
type randomRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomRoller creates a roller seeded from the current time
func NewRandomRoller() Roller {
	return NewSeededRoller(time.Now().UnixNano())
}

// NewSeededRoller creates a roller with a fixed seed. Two rollers with the
// same seed produce the same face sequence, which the simulator relies on
// for reproducible encounters.
func NewSeededRoller(seed int64) Roller {
	return &randomRoller{rng: rand.New(rand.NewSource(seed))}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(sides int) (int, error) {
	if sides < 1 {
		return 0, errors.OutOfRangef("die must have at least one side, got %d", sides)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(sides) + 1, nil
}

// RollN implements Roller.RollN
func (r *randomRoller) RollN(count, sides int) ([]int, error) {
	if count < 1 {
		return nil, errors.OutOfRangef("dice count must be at least one, got %d", count)
	}

	faces := make([]int, count)
	for i := range faces {
		face, err := r.Roll(sides)
		if err != nil {
			return nil, err
		}
		faces[i] = face
	}
	return faces, nil
}
