package narrative

import (
	"math/rand/v2"
	"sync"
)

// RandomSelector picks phrases uniformly at random. It is safe for
// concurrent use.
type RandomSelector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSelector creates a selector. A zero seed draws a fresh one; any
// other seed yields a reproducible sequence.
func NewRandomSelector(seed uint64) *RandomSelector {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &RandomSelector{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Pick returns one phrase, or "" for an empty list.
func (s *RandomSelector) Pick(phrases []string) string {
	if len(phrases) == 0 {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return phrases[s.rng.IntN(len(phrases))]
}

// FirstSelector always picks the first phrase.
type FirstSelector struct{}

// Pick returns the first phrase, or "" for an empty list.
func (FirstSelector) Pick(phrases []string) string {
	if len(phrases) == 0 {
		return ""
	}
	return phrases[0]
}
