package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/clubdemo/club-demographics/internal/domain"
	"github.com/clubdemo/club-demographics/pkg/dateutil"
)

// CSVFormatter writes one row per snapshot and age bucket, youngest bucket first.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string      { return "csv" }
func (c CSVFormatter) Extension() string { return "csv" }

func (c CSVFormatter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Snapshot", "Year", "ReferenceDate", "Bucket"}
	header = append(header, domain.GenderNames()...)
	header = append(header, "Total", "SharePercent")
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, snap := range report.Snapshots {
		combined := snap.Buckets.Combined()
		total := snap.Buckets.Total()
		for i := 0; i < report.Geometry.Len(); i++ {
			all := 0
			if i < len(combined) {
				all = combined[i]
			}
			row := []string{
				snap.Label,
				strconv.Itoa(snap.Year),
				dateutil.FormatDate(snap.ReferenceDate),
				report.Geometry.Label(i),
			}
			for _, g := range domain.Genders {
				row = append(row, strconv.Itoa(count(snap.Buckets, g, i)))
			}
			row = append(row, strconv.Itoa(all), Share(all, total).StringFixed(2))
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// BatchCSVFormatter writes the per-year summary of a batch simulation.
type BatchCSVFormatter struct{}

func (b BatchCSVFormatter) Name() string      { return "batch-csv" }
func (b BatchCSVFormatter) Extension() string { return "csv" }

func (b BatchCSVFormatter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Year", "Runs", "MembersP10", "MembersP50", "MembersP90", "MeanMembers", "MeanWaitlist"}); err != nil {
		return nil, err
	}
	for _, y := range report.Batch {
		row := []string{
			strconv.Itoa(y.Year),
			strconv.Itoa(report.Runs),
			strconv.Itoa(y.MembersP10),
			strconv.Itoa(y.MembersP50),
			strconv.Itoa(y.MembersP90),
			y.MeanMembers.StringFixed(2),
			y.MeanWaitlist.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
