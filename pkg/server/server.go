package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	clientdist "github.com/vango-dev/weave/client/dist"
	"github.com/vango-dev/weave/pkg/bind"
	"github.com/vango-dev/weave/pkg/dom"
	"github.com/vango-dev/weave/pkg/frame"
	"github.com/vango-dev/weave/pkg/protocol"
	"github.com/vango-dev/weave/pkg/render"
)

// Page describes the document served at "/".
type Page struct {
	// Root owns the live tree. Its scheduler must be the server's loop.
	Root *bind.Root

	// Body is the live node rendered inside <body>.
	Body *dom.Node

	Title       string
	Lang        string
	Meta        []render.MetaTag
	StyleSheets []string
	Styles      []string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRegistry registers the server metrics with reg under namespace and
// serves reg at the metrics endpoint.
func WithRegistry(reg *prometheus.Registry, namespace string) Option {
	return func(s *Server) {
		s.metrics = NewMetrics(reg, namespace)
		s.gatherer = reg
	}
}

// Server streams the changes of one live document to every connected
// browser and feeds their input back into it.
//
// Everything that touches the document, the connection set or the sequence
// counter runs on the frame loop.
type Server struct {
	config   *Config
	loop     *frame.Loop
	page     Page
	renderer *render.Renderer
	history  *History
	metrics  *Metrics
	gatherer prometheus.Gatherer
	upgrader websocket.Upgrader
	logger   *slog.Logger

	httpServer *http.Server

	// loop-confined
	seq     uint64
	pending []protocol.Patch
	conns   map[*conn]struct{}
}

// New creates a server for page. It hooks into the page's document and root,
// so it must be called before loop runs or from the loop goroutine.
func New(cfg *Config, loop *frame.Loop, page Page, opts ...Option) *Server {
	cfg = cfg.withDefaults()
	s := &Server{
		config:   cfg,
		loop:     loop,
		page:     page,
		renderer: render.NewRenderer(render.RendererConfig{AnnotateIDs: true}),
		history:  NewHistory(cfg.History),
		gatherer: prometheus.DefaultGatherer,
		logger:   slog.Default(),
		conns:    make(map[*conn]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "server")
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     cfg.CheckOrigin,
	}

	page.Root.Document().OnWrite(func(p dom.Patch) {
		s.pending = append(s.pending, protocol.FromDOM(p, s.renderHTML))
	})
	page.Root.On(bind.AfterUpdate, "server.broadcast", s.broadcast)
	return s
}

// Seq returns the sequence number of the last broadcast pass. It must be
// called on the loop.
func (s *Server) Seq() uint64 { return s.seq }

func (s *Server) renderHTML(n *dom.Node) string {
	html, err := s.renderer.RenderToString(n)
	if err != nil {
		s.logger.Error("render inserted node failed", "node", n.ID(), "error", err)
	}
	return html
}

// Handler returns the HTTP handler serving the page, the client script and
// the live endpoint.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handlePage)
	r.Get(s.config.ClientPath, s.handleClient)
	r.Get(s.config.LivePath, s.handleLive)
	r.Get("/healthz", s.handleHealth)
	r.Get("/debug/errors", s.handleErrors)
	if s.config.EnableMetrics {
		r.Handle(s.config.MetricsPath, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var (
		buf       bytes.Buffer
		renderErr error
	)
	err := s.loop.Do(r.Context(), func() {
		// Writes not yet broadcast would otherwise reach this client twice.
		if err := s.broadcast(); err != nil {
			s.logger.Error("broadcast failed", "error", err)
		}
		renderErr = s.renderer.RenderPage(&buf, render.PageData{
			Body:         s.page.Body,
			Title:        s.page.Title,
			Lang:         s.page.Lang,
			Meta:         s.page.Meta,
			StyleSheets:  s.page.StyleSheets,
			Styles:       s.page.Styles,
			ClientScript: s.config.ClientPath,
			LivePath:     s.config.LivePath,
			LiveSeq:      s.seq,
		})
	})
	if err == nil {
		err = renderErr
	}
	if err != nil {
		s.logger.Error("render page failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleClient(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	_, _ = w.Write(clientdist.WeaveJS)
}

type healthResponse struct {
	Status      string `json:"status"`
	Seq         uint64 `json:"seq"`
	LiveNodes   int    `json:"live_nodes"`
	Connections int    `json:"connections"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	var resp healthResponse
	err := s.loop.Do(r.Context(), func() {
		resp = healthResponse{
			Status:      "ok",
			Seq:         s.seq,
			LiveNodes:   s.page.Root.Live(),
			Connections: len(s.conns),
		}
	})
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type errorEntry struct {
	Description string         `json:"description"`
	First       time.Time      `json:"first"`
	Count       int            `json:"count"`
	Bindings    []errorBinding `json:"bindings"`
}

type errorBinding struct {
	Kind string `json:"kind"`
	Key  string `json:"key"`
	Node uint64 `json:"node"`
}

func (s *Server) handleErrors(w http.ResponseWriter, r *http.Request) {
	var entries []errorEntry
	err := s.loop.Do(r.Context(), func() {
		for _, e := range s.page.Root.Errors() {
			entry := errorEntry{Description: e.Description, First: e.First, Count: e.Count}
			for _, b := range e.Bindings {
				entry.Bindings = append(entry.Bindings, errorBinding{Kind: b.Kind.String(), Key: b.Key, Node: b.Target.ID()})
			}
			entries = append(entries, entry)
		}
	})
	if err != nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	if entries == nil {
		entries = []errorEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	resume, hasSeq := uint64(0), false
	if v := r.URL.Query().Get("seq"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			http.Error(w, "invalid seq", http.StatusBadRequest)
			return
		}
		resume, hasSeq = n, true
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	c := newConn(s, ws)
	go c.writeLoop()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.WriteTimeout)
	err = s.loop.Do(ctx, func() { s.attach(c, resume, hasSeq) })
	cancel()
	if err != nil {
		c.close()
		return
	}
	c.readLoop()
}

// Run starts the frame loop and the HTTP server and blocks until ctx is
// cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()
	go func() {
		if err := s.loop.Run(loopCtx); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("frame loop stopped", "error", err)
		}
	}()

	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown closes every live connection and stops the HTTP server. The frame
// loop must still be running.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")
	err := s.loop.Do(ctx, func() {
		for c := range s.conns {
			c.closeWith(protocol.CloseServerShutdown, "")
			s.detach(c)
		}
	})
	if err != nil && !errors.Is(err, frame.ErrLoopStopped) {
		s.logger.Warn("closing connections failed", "error", err)
	}
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
