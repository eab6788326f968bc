package cli

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hassetower/pkg/buildinfo"
	errs "github.com/matzehuels/hassetower/pkg/errors"
	"github.com/matzehuels/hassetower/pkg/hasse"
	"github.com/matzehuels/hassetower/pkg/observability"
	"github.com/matzehuels/hassetower/pkg/pipeline"
	"github.com/matzehuels/hassetower/pkg/poset"
	"github.com/matzehuels/hassetower/pkg/render"
	"github.com/matzehuels/hassetower/pkg/table"
)

const (
	// maxBodyBytes caps request bodies.
	maxBodyBytes = 8 << 20

	requestIDHeader = "X-Request-ID"
	shutdownTimeout = 10 * time.Second
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen string
		flags  cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve Hasse diagrams over HTTP",
		Long: `Serve Hasse diagrams over HTTP.

POST /v1/diagram takes a CSV ranking table (text/csv) or a JSON or YAML map of
entity vectors (application/json, application/yaml) and answers with the
diagram in the format given by ?format= (dot, svg, png, json; default svg).
?detailed=true adds tier indices to labels, ?verify=true checks the diagram,
?no_header=true and ?no_index=true change how CSV bodies are read.

POST /v1/tiers takes the same bodies and answers with the tiers as JSON.
GET /healthz reports liveness.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen == "" {
				listen = c.Config.Listen
			}
			runner, err := c.newRunner(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer runner.Close()
			return c.runServe(cmd.Context(), listen, runner)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on (default "+defaultListen+")")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, runner *pipeline.Runner) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "listen on %s", addr)
	}

	srv := &http.Server{
		Handler:           newServer(runner, c.Logger, c.Config.CacheTTL).routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	printSuccess("Listening on %s", StyleLink.Render("http://"+ln.Addr().String()))
	if tcp, ok := ln.Addr().(*net.TCPAddr); ok && !tcp.IP.IsLoopback() {
		printWarning("Server is reachable beyond localhost and has no authentication")
	}

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	printInfo("Server stopped")
	return nil
}

// =============================================================================
// Server
// =============================================================================

// server exposes the pipeline over HTTP.
type server struct {
	runner *pipeline.Runner
	logger *log.Logger
	ttl    time.Duration
}

func newServer(runner *pipeline.Runner, logger *log.Logger, ttl time.Duration) *server {
	return &server{runner: runner, logger: logger, ttl: ttl}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/diagram", s.handleDiagram)
		r.Post("/tiers", s.handleTiers)
	})
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := pipeline.DefaultFormat
	if v := q.Get("format"); v != "" {
		f, err := render.ParseFormat(v)
		if err != nil {
			s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidFormat, err, "format"))
			return
		}
		format = f
	}

	entities, err := readEntities(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), entities, pipeline.Options{
		Formats:     []render.Format{format},
		Detailed:    queryBool(q.Get("detailed")),
		Verify:      queryBool(q.Get("verify")),
		ArtifactTTL: s.ttl,
		Logger:      s.logger.With("request_id", requestIDFrom(r.Context())),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", format.ContentType())
	h.Set("X-Hasse-Elements", strconv.Itoa(res.Stats.Elements))
	h.Set("X-Hasse-Tiers", strconv.Itoa(res.Stats.Tiers))
	h.Set("X-Hasse-Edges", strconv.Itoa(res.Stats.Edges))
	if format.NeedsGraphviz() {
		cacheState := "miss"
		if res.CacheInfo.RenderHit() {
			cacheState = "hit"
		}
		h.Set("X-Cache", cacheState)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// tierElement is one element in a /v1/tiers response.
type tierElement struct {
	Names  []string `json:"names"`
	Vector []int    `json:"vector"`
}

type tiersResponse struct {
	Tiers [][]tierElement `json:"tiers"`
	Edges [][2]string     `json:"edges"`
}

func (s *server) handleTiers(w http.ResponseWriter, r *http.Request) {
	entities, err := readEntities(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	d, err := s.runner.Build(r.Context(), entities, pipeline.Options{
		Verify: queryBool(r.URL.Query().Get("verify")),
		Logger: s.logger,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTiersResponse(d))
}

func newTiersResponse(d *hasse.Diagram) tiersResponse {
	resp := tiersResponse{
		Tiers: make([][]tierElement, len(d.Tiers)),
		Edges: make([][2]string, 0, d.EdgeCount()),
	}
	for i, tier := range d.Tiers {
		resp.Tiers[i] = make([]tierElement, 0, len(tier))
		for _, id := range tier {
			e, _ := d.Element(id)
			resp.Tiers[i] = append(resp.Tiers[i], tierElement{Names: e.Names, Vector: e.Vector})
		}
	}
	for _, e := range d.Graph.Edges() {
		resp.Edges = append(resp.Edges, [2]string{e.From, e.To})
	}
	return resp
}

// readEntities decodes the request body according to its content type.
func readEntities(w http.ResponseWriter, r *http.Request) ([]poset.Entity, error) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	mediaType := "text/csv"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "content type")
		}
		mediaType = mt
	}

	var (
		entities []poset.Entity
		err      error
	)
	switch mediaType {
	case "text/csv", "text/plain":
		q := r.URL.Query()
		entities, err = table.ReadEntities(body, table.Options{
			NoHeader: queryBool(q.Get("no_header")),
			NoIndex:  queryBool(q.Get("no_index")),
		})
	case "application/json":
		entities, err = table.DecodeVectors(body, table.FormatJSON)
	case "application/yaml", "application/x-yaml", "text/yaml":
		entities, err = table.DecodeVectors(body, table.FormatYAML)
	case "application/toml":
		entities, err = table.DecodeVectors(body, table.FormatTOML)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported content type %q", mediaType)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read body")
	}
	return entities, nil
}

func queryBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errs.HTTPStatus(err)
	code := errs.GetCode(err)
	if errors.Is(err, context.Canceled) {
		// The client went away; nobody reads the body.
		status = 499
	}
	if code == "" {
		code = errs.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error:     string(code),
		Message:   errs.UserMessage(err),
		RequestID: requestIDFrom(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// =============================================================================
// Middleware
// =============================================================================

type requestIDKey struct{}

// requestID tags each request with an ID, reusing the client's when given.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// accessLog logs one line per request and feeds the HTTP hooks.
func (s *server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		duration := time.Since(start)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, duration)
		s.logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", duration.Round(time.Microsecond),
			"request_id", requestIDFrom(r.Context()))
	})
}
