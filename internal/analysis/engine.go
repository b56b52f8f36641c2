// Package analysis turns rosters and settings into renderable reports.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/clubdemo/club-demographics/internal/demographics"
	"github.com/clubdemo/club-demographics/internal/domain"
	"github.com/clubdemo/club-demographics/internal/rng"
	"github.com/clubdemo/club-demographics/internal/simulation"
	"github.com/clubdemo/club-demographics/pkg/dateutil"
)

// Engine builds pyramid and projection reports.
type Engine struct {
	Simulator *simulation.Engine
	Logger    simulation.Logger
}

// NewEngine creates an analysis engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{
		Simulator: simulation.NewEngine(),
		Logger:    simulation.NopLogger{},
	}
}

// SetLogger sets the logger for the engine and its simulator. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l simulation.Logger) {
	if l == nil {
		l = simulation.NopLogger{}
	}
	e.Logger = l
	e.Simulator.SetLogger(l)
}

// PyramidRequest describes a single population pyramid.
type PyramidRequest struct {
	Title         string
	Members       []domain.Person
	Waitlist      []domain.Person
	ReferenceDate time.Time
	Geometry      domain.BucketGeometry
}

// ProjectionRequest describes a multi-year waitlist projection.
type ProjectionRequest struct {
	PyramidRequest
	Config domain.SimulationConfig
}

// Pyramid buckets the current membership.
func (e *Engine) Pyramid(req PyramidRequest) (*domain.Report, error) {
	snap, err := e.snapshot("Current", 0, req.Members, len(req.Waitlist), req.ReferenceDate, req.Geometry)
	if err != nil {
		return nil, err
	}
	e.Logger.Infof("bucketed %d members at %s", len(req.Members), dateutil.FormatDate(req.ReferenceDate))
	return &domain.Report{
		Title:     req.Title,
		Geometry:  req.Geometry,
		Labels:    req.Geometry.Labels(),
		Snapshots: []domain.PyramidSnapshot{snap},
	}, nil
}

// Project simulates the configured number of years and buckets every year.
// Year N is bucketed N years after the reference date, so members age with the projection.
// The geometry is checked before any year is simulated.
// A zero seed is replaced by a clock-derived one and recorded in the report settings.
// When Config.Runs > 1 the report also carries per-year percentiles across runs.
func (e *Engine) Project(ctx context.Context, req ProjectionRequest) (*domain.Report, error) {
	if err := demographics.ValidateGeometry(req.Geometry); err != nil {
		return nil, err
	}
	settings, err := simulation.SettingsFromConfig(req.Config)
	if err != nil {
		return nil, err
	}

	cfg := req.Config
	if cfg.Seed == 0 {
		cfg.Seed = rng.NewSeed()
		e.Logger.Debugf("derived simulation seed %d", cfg.Seed)
	}
	runs := cfg.Runs
	if runs < 1 {
		runs = 1
	}
	batch, err := e.Simulator.RunBatch(ctx, req.Members, req.Waitlist, settings, runs, cfg.Seed)
	if err != nil {
		return nil, err
	}

	report, err := e.Pyramid(req.PyramidRequest)
	if err != nil {
		return nil, err
	}
	report.Settings = &cfg

	for _, year := range batch.First {
		ref := dateutil.AddYears(req.ReferenceDate, year.Year)
		snap, err := e.snapshot(fmt.Sprintf("Year %d", year.Year), year.Year, year.Members, len(year.Waitlist), ref, req.Geometry)
		if err != nil {
			return nil, err
		}
		report.Snapshots = append(report.Snapshots, snap)
	}
	if runs > 1 {
		report.Runs = runs
		report.Batch = batch.Summary
	}
	return report, nil
}

func (e *Engine) snapshot(label string, year int, members []domain.Person, waitlist int, ref time.Time, g domain.BucketGeometry) (domain.PyramidSnapshot, error) {
	buckets, err := demographics.BuildPeople(members, ref, g)
	if err != nil {
		return domain.PyramidSnapshot{}, fmt.Errorf("%s: %w", label, err)
	}
	return domain.PyramidSnapshot{
		Label:         label,
		Year:          year,
		ReferenceDate: ref,
		Members:       len(members),
		Waitlist:      waitlist,
		Buckets:       buckets,
	}, nil
}
