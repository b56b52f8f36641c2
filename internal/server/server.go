// Package server exposes pyramids and simulations over HTTP.
package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/clubdemo/club-demographics/internal/analysis"
	"github.com/clubdemo/club-demographics/internal/demographics"
	"github.com/clubdemo/club-demographics/internal/domain"
	"github.com/clubdemo/club-demographics/internal/sampling"
	"github.com/clubdemo/club-demographics/internal/simulation"
	"github.com/clubdemo/club-demographics/internal/wire"
	"github.com/clubdemo/club-demographics/pkg/dateutil"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

const (
	PyramidPath  = "/population_pyramid"
	SimulatePath = "/simulate"
	DefaultTitle = "Population Pyramid"
)

// Server routes requests to the analysis engine.
type Server struct {
	Engine   *analysis.Engine
	Log      logrus.FieldLogger
	Geometry domain.BucketGeometry
	Today    func() time.Time
}

// New creates a server with the default bucket geometry.
func New(log logrus.FieldLogger) *Server {
	engine := analysis.NewEngine()
	engine.SetLogger(log)
	return &Server{
		Engine:   engine,
		Log:      log,
		Geometry: domain.DefaultBucketGeometry(),
		Today:    dateutil.Today,
	}
}

// ListenAndServe serves on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.Log.Infof("club demographics server listening on %s", addr)
	return fasthttp.ListenAndServe(addr, s.Handler)
}

// Handler is the fasthttp request handler.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	fields := logrus.Fields{"path": string(ctx.Path()), "method": string(ctx.Method())}

	switch string(ctx.Path()) {
	case PyramidPath:
		if !ctx.IsGet() && !ctx.IsHead() {
			methodNotAllowed(ctx, fasthttp.MethodGet)
			break
		}
		fields["rows"] = s.handlePyramid(ctx)
	case SimulatePath:
		if !ctx.IsPost() {
			methodNotAllowed(ctx, fasthttp.MethodPost)
			break
		}
		s.handleSimulate(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("no route for %s", ctx.Path()))
	}

	fields["status"] = ctx.Response.StatusCode()
	fields["duration"] = time.Since(start)
	entry := s.Log.WithFields(fields)
	if ctx.Response.StatusCode() >= fasthttp.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Info("request")
	}
}

// errorResponse is the JSON body of every non-2xx reply.
type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to encode response: "+err.Error())
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(errorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func methodNotAllowed(ctx *fasthttp.RequestCtx, allow string) {
	ctx.Response.Header.Set(fasthttp.HeaderAllow, allow)
	writeError(ctx, fasthttp.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", ctx.Method()))
}

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, wire.ErrMalformedRow),
		errors.Is(err, demographics.ErrInvalidGender),
		errors.Is(err, demographics.ErrInvalidGeometry),
		errors.Is(err, simulation.ErrSettingsOutOfRange),
		errors.Is(err, sampling.ErrUnknownStrategy):
		return fasthttp.StatusBadRequest
	}
	return fasthttp.StatusInternalServerError
}
