package output

import (
	"bytes"
	"fmt"

	"github.com/clubdemo/club-demographics/internal/domain"
	"github.com/clubdemo/club-demographics/internal/sampling"
	"github.com/clubdemo/club-demographics/pkg/dateutil"
)

const consoleBarWidth = 25

// ConsoleFormatter draws a text population pyramid per snapshot.
// Male bars grow to the left of the age column and Female bars to the right; NonBinary is a count column.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, report.Title)
	fmt.Fprintln(&buf, "================================")
	if s := report.Settings; s != nil {
		label := s.Strategy
		if d, err := sampling.Lookup(s.Strategy); err == nil {
			label = d.Label
		}
		fmt.Fprintf(&buf, "Simulation: %d years, %s sampling, %d admitted/year, exit rate %s\n",
			s.Length, label, s.SampleRate, RatePercentage(s.ExitRate))
	}

	for _, snap := range report.Snapshots {
		fmt.Fprintln(&buf)
		writeConsoleSnapshot(&buf, report.Geometry, snap)
	}

	if len(report.Batch) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "MEMBERSHIP ACROSS %d RUNS\n", report.Runs)
		fmt.Fprintf(&buf, "%-6s %8s %8s %8s %12s %14s\n", "Year", "P10", "P50", "P90", "Mean", "Mean Waitlist")
		for _, y := range report.Batch {
			fmt.Fprintf(&buf, "%-6d %8d %8d %8d %12s %14s\n",
				y.Year, y.MembersP10, y.MembersP50, y.MembersP90, y.MeanMembers.StringFixed(2), y.MeanWaitlist.StringFixed(2))
		}
	}
	return buf.Bytes(), nil
}

func writeConsoleSnapshot(buf *bytes.Buffer, g domain.BucketGeometry, snap domain.PyramidSnapshot) {
	fmt.Fprintf(buf, "%s (%s): %d members, %d waitlisted\n",
		snap.Label, dateutil.FormatDate(snap.ReferenceDate), snap.Members, snap.Waitlist)

	largest := snap.Buckets.Largest()
	total := snap.Buckets.Total()
	combined := snap.Buckets.Combined()
	fmt.Fprintf(buf, "%*s %4s %-10s %4s %-*s %4s %8s\n",
		consoleBarWidth, "Male", "", "Age", "", consoleBarWidth, "Female", "NB", "Share")
	for _, i := range rowsOldestFirst(g) {
		m := count(snap.Buckets, domain.Male, i)
		f := count(snap.Buckets, domain.Female, i)
		nb := count(snap.Buckets, domain.NonBinary, i)
		all := 0
		if i < len(combined) {
			all = combined[i]
		}
		fmt.Fprintf(buf, "%*s %4d %-10s %-4d %-*s %4d %8s\n",
			consoleBarWidth, bar(m, largest, consoleBarWidth, "#"), m,
			g.Label(i),
			f, consoleBarWidth, bar(f, largest, consoleBarWidth, "#"),
			nb, FormatPercentage(Share(all, total)))
	}
}
