package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SimulatedYear is the state of the club after one simulated year.
type SimulatedYear struct {
	Year     int      `json:"year"`
	Members  []Person `json:"members"`
	Waitlist []Person `json:"waitlist"`
}

// SimulationConfig is the user-facing form of the simulation settings.
type SimulationConfig struct {
	Length     int             `yaml:"length" json:"simulation_length"`
	Strategy   string          `yaml:"strategy" json:"sampling_strategy"`
	SampleRate int             `yaml:"sample_rate" json:"sample_rate"`
	ExitRate   decimal.Decimal `yaml:"exit_rate" json:"exit_rate"`
	Seed       int64           `yaml:"seed,omitempty" json:"seed,omitempty"`
	Runs       int             `yaml:"runs,omitempty" json:"runs,omitempty"`
}

// PyramidSnapshot is one bucketed population, ready to render.
type PyramidSnapshot struct {
	Label         string        `json:"label"`
	Year          int           `json:"year"`
	ReferenceDate time.Time     `json:"reference_date"`
	Members       int           `json:"members"`
	Waitlist      int           `json:"waitlist"`
	Buckets       GenderBuckets `json:"buckets"`
}

// BatchYearSummary aggregates member counts for one year across repeated runs.
type BatchYearSummary struct {
	Year         int             `json:"year"`
	MembersP10   int             `json:"members_p10"`
	MembersP50   int             `json:"members_p50"`
	MembersP90   int             `json:"members_p90"`
	MeanMembers  decimal.Decimal `json:"mean_members"`
	MeanWaitlist decimal.Decimal `json:"mean_waitlist"`
}

// Report is everything a formatter needs to render an analysis.
type Report struct {
	Title     string             `json:"title"`
	Geometry  BucketGeometry     `json:"geometry"`
	Labels    []string           `json:"labels"`
	Settings  *SimulationConfig  `json:"settings,omitempty"`
	Snapshots []PyramidSnapshot  `json:"snapshots"`
	Runs      int                `json:"runs,omitempty"`
	Batch     []BatchYearSummary `json:"batch,omitempty"`
}
