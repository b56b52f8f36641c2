package server

import (
	"fmt"
	"strings"

	"github.com/clubdemo/club-demographics/internal/analysis"
	"github.com/clubdemo/club-demographics/internal/domain"
	"github.com/clubdemo/club-demographics/pkg/dateutil"
	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
)

// personJSON accepts dates in any layout dateutil.ParseDate understands.
type personJSON struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"dob"`
	Gender      string `json:"gender"`
}

// simulateRequest is the JSON body of POST /simulate.
type simulateRequest struct {
	Title         string                  `json:"title"`
	ReferenceDate string                  `json:"reference_date"`
	Members       []personJSON            `json:"members"`
	Waitlist      []personJSON            `json:"waitlist"`
	Settings      domain.SimulationConfig `json:"settings"`
	Seed          int64                   `json:"seed"`
	Buckets       *domain.BucketGeometry  `json:"buckets"`
}

// simulatedYearJSON is one simulated year in the /simulate response.
type simulatedYearJSON struct {
	Year          int                  `json:"year"`
	ReferenceDate string               `json:"reference_date"`
	Members       int                  `json:"members"`
	Waitlist      int                  `json:"waitlist"`
	Buckets       domain.GenderBuckets `json:"buckets"`
}

type simulateResponse struct {
	Title    string                    `json:"title"`
	Labels   []string                  `json:"labels"`
	Settings *domain.SimulationConfig  `json:"settings"`
	Current  simulatedYearJSON         `json:"current"`
	Years    []simulatedYearJSON       `json:"years"`
	Runs     int                       `json:"runs,omitempty"`
	Batch    []domain.BatchYearSummary `json:"batch,omitempty"`
}

func (s *Server) handleSimulate(ctx *fasthttp.RequestCtx) {
	var req simulateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	members, err := decodePeople("members", req.Members)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	waitlist, err := decodePeople("waitlist", req.Waitlist)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	ref, err := s.referenceDate(req.ReferenceDate)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	geom := s.Geometry
	if req.Buckets != nil {
		geom = *req.Buckets
	}
	title := req.Title
	if title == "" {
		title = DefaultTitle
	}
	cfg := req.Settings
	if req.Seed != 0 {
		cfg.Seed = req.Seed
	}

	report, err := s.Engine.Project(ctx, analysis.ProjectionRequest{
		PyramidRequest: analysis.PyramidRequest{
			Title:         title,
			Members:       members,
			Waitlist:      waitlist,
			ReferenceDate: ref,
			Geometry:      geom,
		},
		Config: cfg,
	})
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}

	resp := simulateResponse{
		Title:    report.Title,
		Labels:   report.Labels,
		Settings: report.Settings,
		Current:  yearJSON(report.Snapshots[0]),
		Years:    make([]simulatedYearJSON, 0, len(report.Snapshots)-1),
		Runs:     report.Runs,
		Batch:    report.Batch,
	}
	for _, snap := range report.Snapshots[1:] {
		resp.Years = append(resp.Years, yearJSON(snap))
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func yearJSON(snap domain.PyramidSnapshot) simulatedYearJSON {
	return simulatedYearJSON{
		Year:          snap.Year,
		ReferenceDate: dateutil.FormatDate(snap.ReferenceDate),
		Members:       snap.Members,
		Waitlist:      snap.Waitlist,
		Buckets:       snap.Buckets,
	}
}

func decodePeople(field string, in []personJSON) ([]domain.Person, error) {
	out := make([]domain.Person, 0, len(in))
	for i, p := range in {
		dob, err := dateutil.ParseDate(p.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		gender, err := domain.ParseGender(p.Gender)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		out = append(out, domain.Person{Name: strings.TrimSpace(p.Name), DateOfBirth: dob, Gender: gender})
	}
	return out, nil
}
