// Package sampling selects which waitlist entries are admitted each year.
package sampling

import (
	"math/rand"
	"slices"

	"github.com/clubdemo/club-demographics/internal/domain"
)

// Strategy removes up to size people from a waitlist.
//
// Implementations must not modify waitlist. The returned sample and residual
// together contain exactly the input entries, and len(sample) == min(size, len(waitlist)).
// Strategies that need randomness draw it from rng only.
type Strategy interface {
	Sample(waitlist []domain.Person, size int, rng *rand.Rand) (sample, residual []domain.Person)
}

// StrategyFunc adapts an ordinary function to a Strategy.
type StrategyFunc func(waitlist []domain.Person, size int, rng *rand.Rand) (sample, residual []domain.Person)

func (f StrategyFunc) Sample(waitlist []domain.Person, size int, rng *rand.Rand) ([]domain.Person, []domain.Person) {
	return f(waitlist, size, rng)
}

// Random draws uniformly without replacement from the remaining entries.
type Random struct{}

func (Random) Sample(waitlist []domain.Person, size int, rng *rand.Rand) ([]domain.Person, []domain.Person) {
	remaining := slices.Clone(waitlist)
	sample := make([]domain.Person, 0, min(max(size, 0), len(waitlist)))
	for i := 0; i < size && len(remaining) > 0; i++ {
		idx := rng.Intn(len(remaining))
		sample = append(sample, remaining[idx])
		remaining = slices.Delete(remaining, idx, idx+1)
	}
	return sample, remaining
}

// InOrder admits from the front of the waitlist, which is ordered by descending priority.
type InOrder struct{}

func (InOrder) Sample(waitlist []domain.Person, size int, _ *rand.Rand) ([]domain.Person, []domain.Person) {
	n := min(max(size, 0), len(waitlist))
	return slices.Clone(waitlist[:n]), slices.Clone(waitlist[n:])
}
