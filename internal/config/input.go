package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/clubdemo/club-demographics/internal/demographics"
	"github.com/clubdemo/club-demographics/internal/domain"
	"github.com/clubdemo/club-demographics/internal/sampling"
	"github.com/clubdemo/club-demographics/internal/simulation"
	"github.com/clubdemo/club-demographics/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file. Roster paths are resolved
// relative to the configuration file's directory. Only the inputs shared by every
// command are validated here; the simulation block is left to ValidateSimulation.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config := ip.DefaultConfiguration()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	dir := filepath.Dir(filename)
	config.MembersFile = resolvePath(dir, config.MembersFile)
	config.WaitlistFile = resolvePath(dir, config.WaitlistFile)

	if err := ip.ValidateInputs(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// DefaultConfiguration returns the values used when a field is omitted.
func (ip *InputParser) DefaultConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Title:   "Population Pyramid",
		Buckets: domain.DefaultBucketGeometry(),
		Simulation: domain.SimulationConfig{
			Length:     10,
			Strategy:   sampling.InOrderID,
			SampleRate: 25,
			ExitRate:   decimal.RequireFromString("0.015"),
			Runs:       1,
		},
		Output: domain.OutputConfig{Format: "console"},
	}
}

// ValidateConfiguration validates the inputs and, when a waitlist is configured, the simulation block.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.ValidateInputs(config); err != nil {
		return err
	}
	if config.WaitlistFile != "" {
		return ip.ValidateSimulation(config)
	}
	return nil
}

// ValidateInputs checks the rosters, reference date and bucket geometry.
func (ip *InputParser) ValidateInputs(config *domain.Configuration) error {
	if strings.TrimSpace(config.MembersFile) == "" {
		return fmt.Errorf("members file is required")
	}

	if config.ReferenceDate != "" {
		if _, err := dateutil.ParseDate(config.ReferenceDate); err != nil {
			return fmt.Errorf("reference date: %w", err)
		}
	}

	if err := demographics.ValidateGeometry(config.Buckets); err != nil {
		return fmt.Errorf("buckets: %w", err)
	}

	return nil
}

// ValidateSimulation checks the simulation block.
func (ip *InputParser) ValidateSimulation(config *domain.Configuration) error {
	if err := simulation.ValidateConfig(config.Simulation); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	return nil
}

// ReferenceTime returns the configured reference date, or today when none is set.
func ReferenceTime(config *domain.Configuration) (time.Time, error) {
	if config.ReferenceDate == "" {
		return dateutil.Today(), nil
	}
	return dateutil.ParseDate(config.ReferenceDate)
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	config := ip.DefaultConfiguration()
	config.Title = "Club Demographics"
	config.MembersFile = "members.csv"
	config.WaitlistFile = "waitlist.csv"
	config.ReferenceDate = "2024-06-15"
	config.Simulation.Seed = 42
	config.Simulation.Runs = 100
	return config
}

func resolvePath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
