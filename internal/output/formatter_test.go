package output

import (
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/clubdemo/club-demographics/internal/domain"
	"github.com/clubdemo/club-demographics/internal/sampling"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

func buildTestReport() *domain.Report {
	ref := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	geom := domain.BucketGeometry{Count: 2, Width: 10}
	return &domain.Report{
		Title:    "Test Club",
		Geometry: geom,
		Labels:   geom.Labels(),
		Snapshots: []domain.PyramidSnapshot{
			{
				Label:         "Current",
				ReferenceDate: ref,
				Members:       6,
				Waitlist:      2,
				Buckets: domain.GenderBuckets{
					domain.Male:      {1, 2, 0},
					domain.Female:    {0, 1, 1},
					domain.NonBinary: {0, 0, 1},
				},
			},
			{
				Label:         "Year 1",
				Year:          1,
				ReferenceDate: ref.AddDate(1, 0, 0),
				Members:       7,
				Waitlist:      1,
				Buckets: domain.GenderBuckets{
					domain.Male:      {1, 1, 1},
					domain.Female:    {0, 2, 1},
					domain.NonBinary: {0, 0, 1},
				},
			},
		},
	}
}

func buildSimulatedReport() *domain.Report {
	r := buildTestReport()
	r.Settings = &domain.SimulationConfig{
		Length:     1,
		Strategy:   sampling.InOrderID,
		SampleRate: 1,
		ExitRate:   decimal.RequireFromString("0.015"),
	}
	r.Runs = 10
	r.Batch = []domain.BatchYearSummary{
		{Year: 1, MembersP10: 6, MembersP50: 7, MembersP90: 7, MeanMembers: decimal.RequireFromString("6.8"), MeanWaitlist: decimal.NewFromInt(1)},
	}
	return r
}

func TestConsoleFormatterDrawsOldestBucketFirst(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, "Current (2024-06-15): 6 members, 2 waitlisted") {
		t.Fatalf("missing snapshot heading: %s", content)
	}
	overflow := strings.Index(content, "20+")
	youngest := strings.Index(content, "0 to 9")
	if overflow < 0 || youngest < 0 || overflow > youngest {
		t.Fatalf("expected overflow bucket above youngest bucket:\n%s", content)
	}
	if !strings.Contains(content, "50.00%") {
		t.Fatalf("expected 10 to 19 share of 50.00%%:\n%s", content)
	}
	if strings.Contains(content, "Simulation:") {
		t.Fatalf("pyramid report should not describe a simulation")
	}
}

func TestConsoleFormatterSimulation(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildSimulatedReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{"Descending Priority sampling", "exit rate 1.50%", "MEMBERSHIP ACROSS 10 RUNS", "6.80"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in console output:\n%s", want, content)
		}
	}
}

func TestCSVFormatterRows(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines (header + 2 snapshots x 3 buckets), got %d", len(lines))
	}
	if lines[2] != "Current,0,2024-06-15,10 to 19,2,1,0,3,50.00" {
		t.Fatalf("unexpected row: %q", lines[2])
	}
	if !strings.HasPrefix(lines[6], "Year 1,1,2025-06-15,20+,") {
		t.Fatalf("unexpected last row: %q", lines[6])
	}
}

func TestBatchCSVFormatter(t *testing.T) {
	out, err := BatchCSVFormatter{}.Format(buildSimulatedReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 2 || lines[1] != "1,10,6,7,7,6.80,1.00" {
		t.Fatalf("unexpected batch csv: %v", lines)
	}
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildSimulatedReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded struct {
		Title     string `json:"title"`
		Snapshots []struct {
			Label   string           `json:"label"`
			Buckets map[string][]int `json:"buckets"`
		} `json:"snapshots"`
		Settings map[string]any `json:"settings"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Title != "Test Club" || len(decoded.Snapshots) != 2 {
		t.Fatalf("unexpected decode: %+v", decoded)
	}
	if got := decoded.Snapshots[0].Buckets["Male"]; len(got) != 3 || got[1] != 2 {
		t.Fatalf("unexpected male buckets: %v", got)
	}
	if decoded.Settings["sampling_strategy"] != sampling.InOrderID {
		t.Fatalf("settings not serialized: %v", decoded.Settings)
	}
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildSimulatedReport())
	if err != nil {
		t.Fatalf("html format error: %v", err)
	}
	content := string(out)
	for _, want := range []string{"<svg", "Male 10 to 19: 2", "Year 1", "Descending Priority sampling", "exit rate 1.50%", "Membership across 10 runs"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in HTML output", want)
		}
	}
}

func TestTemplateJSON(t *testing.T) {
	js, err := templateJSON([]string{"0 to 9", "10+"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(js) != `["0 to 9","10+"]` {
		t.Fatalf("templateJSON = %s", js)
	}
	if _, err := templateJSON(make(chan int)); err == nil {
		t.Fatalf("expected an error for a value JSON cannot encode")
	}
}

func TestHTMLTemplateReportsJSONFailure(t *testing.T) {
	tmpl := template.Must(template.New("t").Funcs(template.FuncMap{"json": templateJSON}).
		Parse(`<script type="application/json">{{json .}}</script>`))
	var buf strings.Builder
	if err := tmpl.Execute(&buf, make(chan int)); err == nil {
		t.Fatalf("expected Execute to fail when the embedded value cannot be encoded")
	}
}

func TestLayoutPyramidScalesToLargestBucket(t *testing.T) {
	r := buildTestReport()
	p := layoutPyramid(r.Geometry, r.Snapshots[0])
	if len(p.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(p.Rows))
	}
	if p.Rows[0].Label != "20+" {
		t.Fatalf("first row should be the overflow bucket, got %q", p.Rows[0].Label)
	}
	// 10 to 19 holds the largest bucket (2 males)
	if p.Rows[1].MaleW != svgHalfWidth {
		t.Fatalf("largest bucket should span the half width, got %d", p.Rows[1].MaleW)
	}
	if p.Rows[1].FemaleW != svgHalfWidth/2 {
		t.Fatalf("female bar should be half width, got %d", p.Rows[1].FemaleW)
	}
}

// Golden snapshot tests (prefix-based) ensure key headers remain stable.
func TestGoldenSnapshots(t *testing.T) {
	cases := []struct {
		name      string
		golden    string
		formatter Formatter
	}{
		{"console", "console.golden", ConsoleFormatter{}},
		{"csv", "csv.golden", CSVFormatter{}},
		{"batch_csv", "batch_csv.golden", BatchCSVFormatter{}},
		{"json", "json.golden", JSONFormatter{}},
		{"html", "html_prefix.golden", HTMLFormatter{}},
	}

	report := buildSimulatedReport()
	update := os.Getenv("UPDATE_GOLDEN") == "1"
	for _, tc := range cases {
		out, err := tc.formatter.Format(report)
		if err != nil {
			t.Fatalf("%s: format error: %v", tc.name, err)
		}
		goldenPath := filepath.Join("testdata", tc.golden)
		if update {
			// only first line to keep golden small & stable
			line := firstLine(string(out)) + "\n"
			if err := os.WriteFile(goldenPath, []byte(line), 0644); err != nil {
				t.Fatalf("%s: update golden failed: %v", tc.name, err)
			}
		}
		data, err := os.ReadFile(goldenPath)
		if err != nil {
			t.Fatalf("%s: read golden: %v", tc.name, err)
		}
		if !strings.HasPrefix(string(out), strings.TrimSpace(string(data))) {
			t.Fatalf("%s: output does not match golden prefix %q", tc.name, strings.TrimSpace(string(data)))
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func TestFormatterAliasResolution(t *testing.T) {
	cases := map[string]string{
		"pyramid":     "console",
		" CSV ":       "csv",
		"csv-batch":   "batch-csv",
		"svg":         "html",
		"json-pretty": "json",
	}
	for alias, want := range cases {
		f := GetFormatterByName(alias)
		if f == nil {
			t.Fatalf("alias %q did not resolve to a formatter", alias)
		}
		if f.Name() != want {
			t.Fatalf("alias %q resolved to %q, want %q", alias, f.Name(), want)
		}
	}
	if GetFormatterByName("pdf") != nil {
		t.Fatalf("pdf should not resolve")
	}
}

func TestAvailableFormatterNamesSorted(t *testing.T) {
	got := strings.Join(AvailableFormatterNames(), ",")
	if got != "batch-csv,console,csv,html,json" {
		t.Fatalf("AvailableFormatterNames = %s", got)
	}
}

func TestWriteFormatted(t *testing.T) {
	dir := t.TempDir()
	name, err := WriteFormatted(JSONFormatter{}, buildTestReport(), dir)
	if err != nil {
		t.Fatalf("WriteFormatted error: %v", err)
	}
	if filepath.Dir(name) != dir || filepath.Ext(name) != ".json" {
		t.Fatalf("unexpected file name %q", name)
	}
	if _, err := os.Stat(name); err != nil {
		t.Fatalf("report not written: %v", err)
	}
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc{ID: "count", Ext: "txt", F: func(r *domain.Report) ([]byte, error) {
		return []byte(r.Title), nil
	}}
	out, err := f.Format(buildTestReport())
	if err != nil || string(out) != "Test Club" || f.Name() != "count" || f.Extension() != "txt" {
		t.Fatalf("FormatterFunc adapter broken: %q %v", out, err)
	}
}
