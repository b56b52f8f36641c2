package simulation

import (
	"errors"
	"fmt"

	"github.com/clubdemo/club-demographics/internal/domain"
	"github.com/clubdemo/club-demographics/internal/sampling"
	stats "github.com/clubdemo/club-demographics/pkg/decimal"
)

const (
	// MaxSimulationLength bounds how many years a caller may request.
	MaxSimulationLength = 50
	// MaxRuns bounds how many runs a batch may repeat.
	MaxRuns = 1000
)

// ErrSettingsOutOfRange is returned for settings outside the documented contract.
var ErrSettingsOutOfRange = errors.New("simulation settings out of range")

// Settings controls a simulation run.
type Settings struct {
	Length     int               // years to simulate
	Strategy   sampling.Strategy // how admissions are picked from the waitlist
	SampleRate int               // maximum admissions per year
	ExitRate   float64           // per member, per year probability of leaving
}

// Validate enforces the caller-side contract: 1 <= Length <= MaxSimulationLength,
// SampleRate >= 0, 0 <= ExitRate <= 1 and a non-nil Strategy.
func (s Settings) Validate() error {
	if s.Length < 1 || s.Length > MaxSimulationLength {
		return fmt.Errorf("%w: simulation length must be between 1 and %d, got %d", ErrSettingsOutOfRange, MaxSimulationLength, s.Length)
	}
	return s.checkRun()
}

// checkRun covers the preconditions Run itself depends on. A zero length is allowed here.
func (s Settings) checkRun() error {
	if s.Length < 0 {
		return fmt.Errorf("%w: simulation length cannot be negative", ErrSettingsOutOfRange)
	}
	if s.Strategy == nil {
		return fmt.Errorf("%w: sampling strategy is required", ErrSettingsOutOfRange)
	}
	if s.SampleRate < 0 {
		return fmt.Errorf("%w: sample rate cannot be negative, got %d", ErrSettingsOutOfRange, s.SampleRate)
	}
	if !(s.ExitRate >= 0 && s.ExitRate <= 1) {
		return fmt.Errorf("%w: exit rate must be between 0 and 1, got %v", ErrSettingsOutOfRange, s.ExitRate)
	}
	return nil
}

// ValidateConfig checks a user-facing configuration block without resolving it.
func ValidateConfig(cfg domain.SimulationConfig) error {
	if cfg.Length < 1 || cfg.Length > MaxSimulationLength {
		return fmt.Errorf("%w: simulation length must be between 1 and %d, got %d", ErrSettingsOutOfRange, MaxSimulationLength, cfg.Length)
	}
	if cfg.SampleRate < 0 {
		return fmt.Errorf("%w: sample rate cannot be negative, got %d", ErrSettingsOutOfRange, cfg.SampleRate)
	}
	if !stats.NewRate(cfg.ExitRate).Valid() {
		return fmt.Errorf("%w: exit rate must be between 0 and 1, got %s", ErrSettingsOutOfRange, cfg.ExitRate)
	}
	if cfg.Runs < 0 || cfg.Runs > MaxRuns {
		return fmt.Errorf("%w: runs must be between 0 and %d, got %d", ErrSettingsOutOfRange, MaxRuns, cfg.Runs)
	}
	if _, err := sampling.Lookup(cfg.Strategy); err != nil {
		return err
	}
	return nil
}

// SettingsFromConfig validates a configuration block and resolves its strategy.
func SettingsFromConfig(cfg domain.SimulationConfig) (Settings, error) {
	if err := ValidateConfig(cfg); err != nil {
		return Settings{}, err
	}
	strategy, err := sampling.Get(cfg.Strategy)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Length:     cfg.Length,
		Strategy:   strategy,
		SampleRate: cfg.SampleRate,
		ExitRate:   cfg.ExitRate.InexactFloat64(),
	}, nil
}
