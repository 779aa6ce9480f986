package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/teasort/pkg/bench"
	"github.com/matzehuels/teasort/pkg/buildinfo"
	"github.com/matzehuels/teasort/pkg/cache"
	"github.com/matzehuels/teasort/pkg/errors"
	"github.com/matzehuels/teasort/pkg/observability"
	"github.com/matzehuels/teasort/pkg/store"
	"github.com/matzehuels/teasort/pkg/teasort"
)

// maxSortBody bounds the request body of POST /v1/sort.
const maxSortBody = 64 << 20

const requestIDHeader = "X-Request-ID"

// server serves the HTTP API. store may be nil, in which case the report
// endpoints answer 501.
type server struct {
	runner       *bench.Runner
	store        store.Store
	gatherer     prometheus.Gatherer
	logger       *log.Logger
	maxBenchSize int
}

// routes builds the chi router.
//
//	POST /v1/sort          sort values, return them with their cost
//	GET  /v1/bench         run (or replay from cache) a benchmark
//	GET  /v1/reports       list saved reports
//	GET  /v1/reports/{id}  fetch a saved report
//	GET  /healthz          liveness and build info
//	GET  /metrics          Prometheus exposition
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(s.instrument)
		r.Post("/v1/sort", s.handleSort)
		r.Get("/v1/bench", s.handleBench)
		r.Get("/v1/reports", s.handleListReports)
		r.Get("/v1/reports/{id}", s.handleGetReport)
		r.Get("/healthz", s.handleHealth)
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	return r
}

// =============================================================================
// Middleware
// =============================================================================

// requestID tags every request with an ID, taken from the X-Request-ID
// header or generated, and attaches a logger carrying it to the context.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := withLogger(r.Context(), s.logger.With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// instrument reports requests to the HTTP hooks, labelled with the matched
// route pattern. It must run inside the router so the pattern is known.
func (s *server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := chi.RouteContext(r.Context()).RoutePattern()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, route)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, dur)
		loggerFromContext(r.Context()).Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", dur)
	})
}

// =============================================================================
// Handlers
// =============================================================================

// sortRequest is the body of POST /v1/sort.
type sortRequest struct {
	Values []int  `json:"values"`
	Seed   uint64 `json:"seed,omitempty"`
}

func (s *server) handleSort(w http.ResponseWriter, r *http.Request) {
	var req sortRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSortBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if err := errors.ValidateLength(len(req.Values)); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Values == nil {
		req.Values = []int{}
	}

	stats, err := teasort.SortWithStats(newSource(req.Seed), req.Values)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sortResult{Values: req.Values, Stats: stats})
}

func (s *server) handleBench(w http.ResponseWriter, r *http.Request) {
	opts, err := benchQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.MaxSize > s.maxBenchSize {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidSize, "max size %d exceeds the server limit %d", opts.MaxSize, s.maxBenchSize))
		return
	}

	ctx := r.Context()
	save := s.store != nil && r.URL.Query().Get("save") == "true"
	var key string
	if opts.Seed != 0 {
		key = s.runner.Keyer.BenchKey(cache.BenchKeyOpts{
			MinSize:    opts.MinSize,
			MaxSize:    opts.MaxSize,
			Iterations: opts.Iterations,
			Seed:       opts.Seed,
		})
		if data, hit, err := s.runner.Cache.Get(ctx, key); err == nil && hit {
			if save {
				if err := s.saveCached(ctx, data); err != nil {
					s.writeError(w, r, err)
					return
				}
			}
			w.Header().Set("X-Cache", "HIT")
			writeRawJSON(w, http.StatusOK, data)
			return
		}
	}

	report, err := s.runner.Run(ctx, opts, nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode report"))
		return
	}

	if key != "" {
		if err := s.runner.Cache.Set(ctx, key, data, cache.TTLBench); err != nil {
			loggerFromContext(ctx).Warn("cache benchmark", "err", err)
		}
	}
	if save {
		if err := s.store.Save(ctx, report); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	w.Header().Set("X-Cache", "MISS")
	writeRawJSON(w, http.StatusOK, data)
}

// saveCached stores a report served from the cache. Saving the same report
// twice overwrites it, so repeated requests keep one copy.
func (s *server) saveCached(ctx context.Context, data []byte) error {
	var report bench.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "decode cached report")
	}
	return s.store.Save(ctx, &report)
}

// benchQuery reads benchmark options from the query string. Missing
// parameters stay zero and get defaults later.
func benchQuery(r *http.Request) (bench.Options, error) {
	q := r.URL.Query()
	var opts bench.Options
	ints := []struct {
		name string
		dst  *int
	}{
		{"min", &opts.MinSize},
		{"max", &opts.MaxSize},
		{"rounds", &opts.Rounds},
		{"iter", &opts.Iterations},
	}
	for _, p := range ints {
		if v := q.Get(p.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter %s", p.name)
			}
			*p.dst = n
		}
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter seed")
		}
		opts.Seed = seed
	}
	return opts, nil
}

func (s *server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}
	limit := store.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter limit"))
			return
		}
		limit = n
	}

	summaries, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if summaries == nil {
		summaries = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}
	report, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *server) requireStore(w http.ResponseWriter, r *http.Request) bool {
	if s.store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "report history is disabled"))
		return false
	}
	return true
}

// =============================================================================
// Responses
// =============================================================================

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSize, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeReportNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	switch {
	case code != "":
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		code = errors.ErrCodeTimeout
	default:
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)

	msg := errors.UserMessage(err)
	if cause := stderrors.Unwrap(err); cause != nil && status < http.StatusInternalServerError {
		msg += ": " + errors.UserMessage(cause)
	}
	if status == http.StatusInternalServerError {
		loggerFromContext(r.Context()).Error("request failed", "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{
		Code:      code,
		Message:   msg,
		RequestID: w.Header().Get(requestIDHeader),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "encode response", http.StatusInternalServerError)
		return
	}
	writeRawJSON(w, status, append(data, '\n'))
}

func writeRawJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
