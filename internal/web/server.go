// Package web provides an HTTP status server and remote button endpoint for
// the kitchen-timer daemon.
package web

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sweeney/kitchen-timer/internal/logic"
	"github.com/sweeney/kitchen-timer/internal/mqtt"
	"github.com/sweeney/kitchen-timer/internal/status"
)

// CommandObserver is notified of every accepted remote command.
type CommandObserver interface {
	ObserveCommand(source string, cmd logic.Command)
}

// Options configures a Server. Metrics, Commands, Observer and Logger are
// optional.
type Options struct {
	Addr     string
	Tracker  *status.Tracker
	Metrics  http.Handler
	Commands chan<- logic.Command
	Observer CommandObserver
	Logger   *slog.Logger
}

// Server serves the status page over HTTP.
type Server struct {
	httpServer *http.Server
	tracker    *status.Tracker
	commands   chan<- logic.Command
	observer   CommandObserver
	logger     *slog.Logger
}

// New creates a Server that reads state from the tracker and forwards button
// commands to the run loop.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		tracker:  opts.Tracker,
		commands: opts.Commands,
		observer: opts.Observer,
		logger:   logger,
	}

	s.httpServer = &http.Server{
		Addr:    opts.Addr,
		Handler: s.routes(opts.Metrics),
	}
	return s
}

func (s *Server) routes(metrics http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/index.html", s.handleIndex)
	r.Get("/index.json", s.handleJSON)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	r.Post("/buttons/{button}/{action}", s.handleButton)
	return r
}

// Handler returns the router. Useful for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe starts listening. It blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on the given listener. Useful for tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderHTML(w, snap); err != nil {
		s.logger.Error("render status page", "error", err)
	}
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.Write(status.FormatJSON(snap))
}

func (s *Server) handleButton(w http.ResponseWriter, r *http.Request) {
	cmd, err := mqtt.NewCommand(chi.URLParam(r, "button"), chi.URLParam(r, "action"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if s.commands == nil {
		http.Error(w, "remote buttons disabled", http.StatusServiceUnavailable)
		return
	}

	select {
	case s.commands <- cmd:
	case <-r.Context().Done():
		http.Error(w, "timer busy", http.StatusServiceUnavailable)
		return
	}

	if s.observer != nil {
		s.observer.ObserveCommand("http", cmd)
	}
	s.logger.Info("remote button", "source", "http", "button", cmd.Button, "pressed", cmd.Pressed)
	w.WriteHeader(http.StatusAccepted)
}
