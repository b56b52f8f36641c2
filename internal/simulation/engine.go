// Package simulation projects club membership forward year by year.
package simulation

import (
	"errors"
	"math/rand"
	"slices"

	"github.com/clubdemo/club-demographics/internal/domain"
	"github.com/clubdemo/club-demographics/internal/rng"
)

// ErrNoRandomSource is returned when Run is called without a PartitionedRNG.
var ErrNoRandomSource = errors.New("simulation requires a random source")

// Engine runs waitlist simulations.
type Engine struct {
	Logger Logger
}

// NewEngine creates a simulation engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger sets the engine's logger. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

func (e *Engine) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

// Run simulates settings.Length years starting from members and waitlist.
//
// Each year the strategy admits up to SampleRate people from the waitlist, every
// existing member independently leaves with probability ExitRate, and the new
// membership is the retained members followed by the admitted ones. The inputs are
// never modified. A zero Length returns an empty result. rngs must be non-nil even
// when the strategy and exit rate draw nothing.
func (e *Engine) Run(members, waitlist []domain.Person, settings Settings, rngs *rng.PartitionedRNG) ([]domain.SimulatedYear, error) {
	if err := settings.checkRun(); err != nil {
		return nil, err
	}
	if rngs == nil {
		return nil, ErrNoRandomSource
	}
	log := e.logger()
	samplingRNG := rngs.ForSubsystem(rng.SubsystemSampling)
	attritionRNG := rngs.ForSubsystem(rng.SubsystemAttrition)

	results := make([]domain.SimulatedYear, 0, settings.Length)
	current := slices.Clone(members)
	queue := slices.Clone(waitlist)

	for year := 1; year <= settings.Length; year++ {
		admitted, residual := settings.Strategy.Sample(queue, settings.SampleRate, samplingRNG)
		retained := applyAttrition(current, settings.ExitRate, attritionRNG)

		next := make([]domain.Person, 0, len(retained)+len(admitted))
		next = append(next, retained...)
		next = append(next, admitted...)

		log.Debugf("year %d: admitted=%d departed=%d members=%d waitlist=%d",
			year, len(admitted), len(current)-len(retained), len(next), len(residual))

		results = append(results, domain.SimulatedYear{
			Year:     year,
			Members:  next,
			Waitlist: slices.Clone(residual),
		})
		current = next
		queue = residual
	}
	return results, nil
}

// RunSeeded is Run with a PartitionedRNG derived from seed.
func (e *Engine) RunSeeded(members, waitlist []domain.Person, settings Settings, seed int64) ([]domain.SimulatedYear, error) {
	return e.Run(members, waitlist, settings, rng.NewPartitionedRNG(rng.NewSimulationKey(seed)))
}

// applyAttrition keeps each member with probability 1-exitRate, preserving order.
func applyAttrition(members []domain.Person, exitRate float64, r *rand.Rand) []domain.Person {
	retained := make([]domain.Person, 0, len(members))
	for _, m := range members {
		if r.Float64() >= exitRate {
			retained = append(retained, m)
		}
	}
	return retained
}
