package output_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	stddec "github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/clubdemo/club-demographics/internal/domain"
	"github.com/clubdemo/club-demographics/internal/output"
)

func TestFormatHelpers(t *testing.T) {
	if got := output.FormatPercentage(stddec.NewFromFloat(12.34)); got != "12.34%" {
		t.Fatalf("FormatPercentage = %q", got)
	}
	if got := output.RatePercentage(stddec.RequireFromString("0.015")); got != "1.50%" {
		t.Fatalf("RatePercentage = %q", got)
	}
	if got := output.Share(1, 3).StringFixed(2); got != "33.33" {
		t.Fatalf("Share(1,3) = %s", got)
	}
	if !output.Share(0, 0).IsZero() {
		t.Fatalf("Share with zero total should be zero")
	}
}

func TestSaveConfiguration(t *testing.T) {
	cfg := &domain.Configuration{
		Title:       "Round Trip",
		MembersFile: "members.csv",
		Buckets:     domain.DefaultBucketGeometry(),
		Simulation:  domain.SimulationConfig{Length: 5, Strategy: "random", ExitRate: stddec.RequireFromString("0.1")},
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := output.SaveConfiguration(cfg, path); err != nil {
		t.Fatalf("SaveConfiguration error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var back domain.Configuration
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("saved configuration is not valid YAML: %v", err)
	}
	if back.Title != "Round Trip" || back.Buckets.Count != domain.DefaultBucketCount || back.Simulation.Length != 5 {
		t.Fatalf("unexpected round trip: %+v", back)
	}
}

func TestGenerateReport(t *testing.T) {
	report := &domain.Report{Title: "Empty", Geometry: domain.DefaultBucketGeometry()}
	for _, format := range output.AvailableFormatterNames() {
		var buf bytes.Buffer
		if err := output.GenerateReport(&buf, report, format); err != nil {
			t.Fatalf("GenerateReport %s error: %v", format, err)
		}
		if buf.Len() == 0 {
			t.Fatalf("GenerateReport %s wrote nothing", format)
		}
	}
}

func TestGenerateReportFile(t *testing.T) {
	report := &domain.Report{Title: "File", Geometry: domain.DefaultBucketGeometry()}
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := output.GenerateReportFile(report, "console", path); err != nil {
		t.Fatalf("GenerateReportFile error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || !strings.HasPrefix(string(data), "File\n") {
		t.Fatalf("unexpected file content %q (%v)", data, err)
	}
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	var buf bytes.Buffer
	err := output.GenerateReport(&buf, &domain.Report{}, "definitely-not-a-format")
	if err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if !errors.Is(err, output.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "unsupported report format") || !strings.Contains(msg, "Try one of:") {
		t.Fatalf("error message missing suggestions: %s", msg)
	}
}
