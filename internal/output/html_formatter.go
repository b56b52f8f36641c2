package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/clubdemo/club-demographics/internal/domain"
	"github.com/clubdemo/club-demographics/internal/sampling"
	"github.com/clubdemo/club-demographics/pkg/dateutil"
	"github.com/goccy/go-json"
)

// HTMLFormatter produces a standalone HTML page with one SVG pyramid per snapshot.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"pct":  FormatPercentage,
	"rate": RatePercentage,
	"date": dateutil.FormatDate,
	"json": templateJSON,
}).Parse(htmlTemplateSource))

// templateJSON embeds v as a script literal; a marshal failure aborts Execute.
func templateJSON(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

const (
	svgHalfWidth  = 260
	svgLabelWidth = 80
	svgRowHeight  = 18
)

type svgRow struct {
	Label                 string
	Y                     int
	TextY                 int
	Male, Female, NB      int
	MaleX, MaleW          int
	FemaleX, FemaleW      int
	NBX, NBW              int
	LabelX, MaleTX, FemTX int
}

type svgPyramid struct {
	domain.PyramidSnapshot
	Width, Height int
	CenterX       int
	Rows          []svgRow
}

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	pyramids := make([]svgPyramid, 0, len(report.Snapshots))
	for _, snap := range report.Snapshots {
		pyramids = append(pyramids, layoutPyramid(report.Geometry, snap))
	}

	strategy := ""
	if report.Settings != nil {
		strategy = report.Settings.Strategy
		if d, err := sampling.Lookup(strategy); err == nil {
			strategy = d.Label
		}
	}

	data := struct {
		*domain.Report
		Pyramids      []svgPyramid
		StrategyLabel string
	}{report, pyramids, strategy}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func layoutPyramid(g domain.BucketGeometry, snap domain.PyramidSnapshot) svgPyramid {
	largest := snap.Buckets.Largest()
	scale := func(n int) int {
		if largest == 0 {
			return 0
		}
		return n * svgHalfWidth / largest
	}
	center := svgHalfWidth + svgLabelWidth/2
	p := svgPyramid{
		PyramidSnapshot: snap,
		Width:           2*svgHalfWidth + svgLabelWidth,
		Height:          g.Len()*svgRowHeight + svgRowHeight,
		CenterX:         center,
	}
	for row, i := range rowsOldestFirst(g) {
		m := count(snap.Buckets, domain.Male, i)
		f := count(snap.Buckets, domain.Female, i)
		nb := count(snap.Buckets, domain.NonBinary, i)
		left := center - svgLabelWidth/2
		right := center + svgLabelWidth/2
		y := row * svgRowHeight
		p.Rows = append(p.Rows, svgRow{
			Label:   g.Label(i),
			Y:       y + 2,
			TextY:   y + svgRowHeight - 5,
			Male:    m,
			Female:  f,
			NB:      nb,
			MaleX:   left - scale(m),
			MaleW:   scale(m),
			FemaleX: right,
			FemaleW: scale(f),
			NBX:     center - scale(nb)/2,
			NBW:     scale(nb),
			LabelX:  center,
			MaleTX:  left - scale(m) - 4,
			FemTX:   right + scale(f) + 4,
		})
	}
	return p
}
