// Package server exposes the rendering pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz  liveness probe, answers "ok"
//	POST /render   renders the tree in the request body
//
// /render reads the same options as the render command from query
// parameters: input_format, orientation, format, root, label, break_cycles,
// reduce and trim. Unset parameters fall back to the server's defaults.
// Failures are answered with a JSON body {"code": ..., "error": ...}.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	errs "github.com/matzehuels/boxtree/pkg/errors"
	"github.com/matzehuels/boxtree/pkg/pipeline"
)

const (
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = ":8080"

	// DefaultMaxBodyBytes caps request bodies at 1 MiB.
	DefaultMaxBodyBytes = 1 << 20

	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Config holds the server settings read from the [serve] config table.
type Config struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Server renders trees for HTTP clients.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	cfg      Config
	defaults pipeline.Options
}

// New creates a server. defaults supplies the options used for query
// parameters a request leaves unset.
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config, defaults pipeline.Options) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger, cfg: cfg, defaults: defaults}
}

// Handler returns the router with all middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Post("/render", s.handleRender)
	return r
}

// ListenAndServe listens on the configured address and serves until ctx is
// canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("serving", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Logger = s.logger.With("request_id", RequestIDFromContext(r.Context()))

	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	res, err := s.runner.Execute(r.Context(), body, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType(opts.OutputFormat))
	if res.Stats.CacheHit {
		w.Header().Set("X-Cache", "hit")
	}
	_, _ = w.Write(res.Output)
}

// options overlays the request's query parameters on the server defaults.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	q := r.URL.Query()

	for name, dst := range map[string]*string{
		"input_format": &opts.InputFormat,
		"orientation":  &opts.Orientation,
		"format":       &opts.OutputFormat,
		"root":         &opts.Root,
		"label":        &opts.Label,
	} {
		if q.Has(name) {
			*dst = q.Get(name)
		}
	}
	for name, dst := range map[string]*bool{
		"break_cycles": &opts.BreakCycles,
		"reduce":       &opts.Reduce,
		"trim":         &opts.Trim,
	} {
		if !q.Has(name) {
			continue
		}
		v, err := strconv.ParseBool(q.Get(name))
		if err != nil {
			return opts, errs.New(errs.ErrCodeInvalidInput, "query parameter %s: %q is not a boolean", name, q.Get(name))
		}
		*dst = v
	}

	opts.Source = "request"
	return opts, opts.ValidateAndSetDefaults()
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errs.GetCode(err)
	status := http.StatusInternalServerError

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
	case code == "" || code == errs.ErrCodeInternal:
		code = errs.ErrCodeInternal
	case code == errs.ErrCodeTreeTooLarge:
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusBadRequest
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Code: string(code), Error: errs.UserMessage(err)})
}
