package server

import (
	"bytes"
	"fmt"
	"mime"
	"time"

	"github.com/clubdemo/club-demographics/internal/demographics"
	"github.com/clubdemo/club-demographics/internal/domain"
	"github.com/clubdemo/club-demographics/internal/output"
	"github.com/clubdemo/club-demographics/internal/wire"
	"github.com/clubdemo/club-demographics/pkg/dateutil"
	"github.com/valyala/fasthttp"
)

// pyramidResponse is the JSON body of GET /population_pyramid.
type pyramidResponse struct {
	Title         string               `json:"title"`
	ReferenceDate string               `json:"reference_date"`
	NBuckets      int                  `json:"n_buckets"`
	BucketWidth   int                  `json:"bucket_width"`
	Labels        []string             `json:"labels"`
	Total         int                  `json:"total"`
	Buckets       domain.GenderBuckets `json:"buckets"`
}

// handlePyramid buckets the anonymized rows in the query string and returns the row count.
//
// Query parameters: row[] (repeated, YYYY-MM-DD-G), title, date (reference date,
// defaults to today), n_buckets and bucket_width (default geometry), and format
// (json by default, or any report formatter name such as html).
func (s *Server) handlePyramid(ctx *fasthttp.RequestCtx) int {
	args := ctx.QueryArgs()

	raw := args.PeekMulti(wire.RowParam)
	rows := make([]string, len(raw))
	for i, r := range raw {
		rows[i] = string(r)
	}
	people, err := wire.DecodeRows(rows)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return len(rows)
	}

	title := string(args.Peek("title"))
	if title == "" {
		title = DefaultTitle
	}
	ref, err := s.referenceDate(string(args.Peek("date")))
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return len(rows)
	}
	geom, err := s.geometry(args)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return len(rows)
	}

	buckets, err := demographics.Build(people, ref, geom)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return len(rows)
	}

	format := output.NormalizeFormatName(string(args.Peek("format")))
	if format == "" || format == "json" {
		writeJSON(ctx, fasthttp.StatusOK, pyramidResponse{
			Title:         title,
			ReferenceDate: dateutil.FormatDate(ref),
			NBuckets:      geom.Count,
			BucketWidth:   geom.Width,
			Labels:        geom.Labels(),
			Total:         buckets.Total(),
			Buckets:       buckets,
		})
		return len(rows)
	}

	report := &domain.Report{
		Title:    title,
		Geometry: geom,
		Labels:   geom.Labels(),
		Snapshots: []domain.PyramidSnapshot{{
			Label:         "Current",
			ReferenceDate: ref,
			Members:       len(people),
			Buckets:       buckets,
		}},
	}
	s.writeReport(ctx, report, format)
	return len(rows)
}

// writeReport renders report with a registered formatter.
func (s *Server) writeReport(ctx *fasthttp.RequestCtx, report *domain.Report, format string) {
	f := output.GetFormatterByName(format)
	if f == nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("%v: %q", output.ErrUnsupportedFormat, format))
		return
	}
	var buf bytes.Buffer
	if err := output.GenerateReport(&buf, report, f.Name()); err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	contentType := mime.TypeByExtension("." + f.Extension())
	if contentType == "" {
		contentType = "text/plain; charset=utf-8"
	}
	ctx.SetContentType(contentType)
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(buf.Bytes())
}

func (s *Server) referenceDate(value string) (time.Time, error) {
	if value == "" {
		return s.Today(), nil
	}
	ref, err := dateutil.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %w", err)
	}
	return ref, nil
}

func (s *Server) geometry(args *fasthttp.Args) (domain.BucketGeometry, error) {
	geom := s.Geometry
	if args.Has("n_buckets") {
		n, err := args.GetUint("n_buckets")
		if err != nil {
			return geom, fmt.Errorf("invalid n_buckets: %w", err)
		}
		geom.Count = n
	}
	if args.Has("bucket_width") {
		w, err := args.GetUint("bucket_width")
		if err != nil {
			return geom, fmt.Errorf("invalid bucket_width: %w", err)
		}
		geom.Width = w
	}
	return geom, demographics.ValidateGeometry(geom)
}
