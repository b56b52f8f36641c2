package simulation

import (
	"context"
	"fmt"
	"sort"

	"github.com/clubdemo/club-demographics/internal/domain"
	"github.com/clubdemo/club-demographics/internal/rng"
	stats "github.com/clubdemo/club-demographics/pkg/decimal"
)

// BatchResult holds repeated runs of the same simulation.
type BatchResult struct {
	Runs    int
	Seed    int64
	First   []domain.SimulatedYear // run 0, kept for rendering
	Summary []domain.BatchYearSummary
}

// RunBatch executes runs independent simulations, run i seeded with seed+i, and
// summarizes member and waitlist counts per year.
func (e *Engine) RunBatch(ctx context.Context, members, waitlist []domain.Person, settings Settings, runs int, seed int64) (*BatchResult, error) {
	if runs < 1 || runs > MaxRuns {
		return nil, fmt.Errorf("%w: runs must be between 1 and %d, got %d", ErrSettingsOutOfRange, MaxRuns, runs)
	}
	if err := settings.checkRun(); err != nil {
		return nil, err
	}

	memberCounts := make([][]int, settings.Length)
	waitlistTotals := make([]int64, settings.Length)
	result := &BatchResult{Runs: runs, Seed: seed}

	for i := 0; i < runs; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		years, err := e.Run(members, waitlist, settings, rng.NewPartitionedRNG(rng.NewSimulationKey(seed+int64(i))))
		if err != nil {
			return nil, fmt.Errorf("run %d failed: %w", i, err)
		}
		if i == 0 {
			result.First = years
		}
		for y, year := range years {
			memberCounts[y] = append(memberCounts[y], len(year.Members))
			waitlistTotals[y] += int64(len(year.Waitlist))
		}
	}

	result.Summary = make([]domain.BatchYearSummary, settings.Length)
	for y := range memberCounts {
		result.Summary[y] = summarizeYear(y+1, memberCounts[y], waitlistTotals[y])
	}
	e.logger().Infof("completed %d simulation runs of %d years", runs, settings.Length)
	return result, nil
}

func summarizeYear(year int, counts []int, waitlistTotal int64) domain.BatchYearSummary {
	sorted := append([]int(nil), counts...)
	sort.Ints(sorted)
	n := len(sorted)

	var sum int64
	for _, c := range sorted {
		sum += int64(c)
	}

	return domain.BatchYearSummary{
		Year:         year,
		MembersP10:   sorted[n/10],
		MembersP50:   sorted[n/2],
		MembersP90:   sorted[9*n/10],
		MeanMembers:  stats.Mean(sum, n),
		MeanWaitlist: stats.Mean(waitlistTotal, n),
	}
}
