package cli

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/linechart/pkg/buildinfo"
	"github.com/matzehuels/linechart/pkg/dataset"
	"github.com/matzehuels/linechart/pkg/errors"
	chartio "github.com/matzehuels/linechart/pkg/io"
	"github.com/matzehuels/linechart/pkg/linechart"
	"github.com/matzehuels/linechart/pkg/observability"
	"github.com/matzehuels/linechart/pkg/pipeline"
)

// maxBodyBytes bounds request bodies on the API routes.
const maxBodyBytes = 8 << 20

// =============================================================================
// Server - HTTP host for charts
// =============================================================================

// server serves one configured dataset as a page and an SVG, plus a stateless
// render and aggregate API.
type server struct {
	runner   *pipeline.Runner
	dataset  string
	layout   linechart.Layout
	title    string
	gatherer prometheus.Gatherer
	logger   *log.Logger
	router   chi.Router
}

// serverOptions configures newServer. Dataset may be empty, in which case
// only the API routes are useful.
type serverOptions struct {
	Runner    *pipeline.Runner
	Dataset   string
	Layout    linechart.Layout
	PageTitle string
	Gatherer  prometheus.Gatherer
	Logger    *log.Logger
}

func newServer(opts serverOptions) *server {
	s := &server{
		runner:   opts.Runner,
		dataset:  opts.Dataset,
		layout:   opts.Layout,
		title:    opts.PageTitle,
		gatherer: opts.Gatherer,
		logger:   opts.Logger,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/", s.handlePage)
	r.Get("/chart.svg", s.handleChartSVG)
	r.Get("/healthz", s.handleHealth)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/aggregate", s.handleAggregate)
		r.Get("/nearest", s.handleNearest)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// observe attaches a request-scoped logger and reports every response to
// the HTTP hooks under its route pattern.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		logger := s.logger.With("request_id", middleware.GetReqID(r.Context()))
		r = r.WithContext(withLogger(r.Context(), logger))

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, route, status, d)
		logger.Debug("request", "method", r.Method, "route", route, "status", status, "duration", d)
	})
}

// =============================================================================
// Dataset Routes
// =============================================================================

func (s *server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.serveDataset(w, r, pipeline.FormatHTML)
}

func (s *server) handleChartSVG(w http.ResponseWriter, r *http.Request) {
	s.serveDataset(w, r, pipeline.FormatSVG)
}

// serveDataset renders the configured dataset. The optional "hover" query
// parameter bakes a hover state into the output.
func (s *server) serveDataset(w http.ResponseWriter, r *http.Request, format string) {
	if s.dataset == "" {
		writeError(w, r, errors.New(errors.ErrCodeFileNotFound, "no dataset configured; use POST /api/render"))
		return
	}

	opts := pipeline.Options{
		Input:     s.dataset,
		Formats:   []string{format},
		Layout:    s.layout,
		PageTitle: s.title,
		Logger:    loggerFromContext(r.Context()),
	}
	if raw := r.URL.Query().Get("hover"); raw != "" {
		x, err := parseFloatParam("hover", raw)
		if err != nil {
			writeError(w, r, err)
			return
		}
		opts.Hover = &x
	}

	s.execute(w, r, opts)
}

// handleNearest resolves ?x= against the configured dataset.
func (s *server) handleNearest(w http.ResponseWriter, r *http.Request) {
	if s.dataset == "" {
		writeError(w, r, errors.New(errors.ErrCodeFileNotFound, "no dataset configured"))
		return
	}
	x, err := parseFloatParam("x", r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	summaries, err := s.summaries(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	i, ok := linechart.NearestPoint(summaries, x)
	observability.Interaction().OnLookup(ok)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "no pair of data points brackets x",
		})
		return
	}

	d := summaries[i]
	writeJSON(w, http.StatusOK, nearestResponse{
		Index:      i,
		Category:   d.Category,
		Percentage: d.Percentage,
		Users:      d.Users,
		Tooltip:    linechart.TooltipHTML(d.Users),
	})
}

type nearestResponse struct {
	Index      int      `json:"index"`
	Category   float64  `json:"category"`
	Percentage float64  `json:"percentage"`
	Users      []string `json:"users"`
	Tooltip    string   `json:"tooltip"`
}

func (s *server) summaries(r *http.Request) ([]dataset.CategorySummary, error) {
	obs, err := s.runner.Load(pipeline.Options{Input: s.dataset})
	if err != nil {
		return nil, err
	}
	return s.runner.Aggregate(r.Context(), obs)
}

// =============================================================================
// API Routes
// =============================================================================

// handleRender renders the observations in a JSON pipeline.Options body to
// a single format.
func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request: %v", err))
		return
	}
	if len(opts.Formats) > 1 {
		writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "render one format per request"))
		return
	}
	if opts.Observations == nil {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "observations are required"))
		return
	}
	opts.Logger = loggerFromContext(r.Context())

	s.execute(w, r, opts)
}

// handleAggregate returns the summaries of a JSON observation list.
func (s *server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	obs, err := chartio.ReadJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, err)
		return
	}
	summaries, err := s.runner.Aggregate(r.Context(), obs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[pipeline.FormatJSON])
	if err := chartio.WriteJSON(summaries, w); err != nil {
		loggerFromContext(r.Context()).Warn("write response", "err", err)
	}
}

// execute runs the pipeline for a single-format request and writes the artifact.
func (s *server) execute(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.FormatSVG}
	}
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Artifacts[format]); err != nil {
		loggerFromContext(r.Context()).Warn("write response", "err", err)
	}
}

// =============================================================================
// Misc Routes
// =============================================================================

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Get().Version,
	})
}

// =============================================================================
// Helpers
// =============================================================================

func parseFloatParam(name, raw string) (float64, error) {
	if raw == "" {
		return 0, errors.New(errors.ErrCodeInvalidInput, "query parameter %q is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter %q must be a number", name)
	}
	if err := errors.ValidateFinite(name, v); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter %q must be finite", name)
	}
	return v, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

// writeError answers with the status mapped from err's code.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	logger := loggerFromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		logger.Debug("request rejected", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
