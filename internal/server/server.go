// Package server exposes the portfolio over HTTP with gin: the browser
// shell, the content tables as JSON, a form-post contact endpoint and the
// WebSocket that hosts each visitor's session.
package server

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

//go:embed static
var staticFiles embed.FS

const shutdownTimeout = 10 * time.Second

// Options configure a Server.
type Options struct {
	Addr           string
	ContactOptions []contact.Option
	// Dark is the theme new sessions start in.
	Dark bool
}

// Server wires the content store and relay into gin routes.
type Server struct {
	opts     Options
	store    *content.Store
	relay    contact.Relay
	sessions *session.Registry
	upgrader websocket.Upgrader
	engine   *gin.Engine
	index    []byte
}

// New builds the routes. Call Run to serve them.
func New(store *content.Store, relay contact.Relay, opts Options) (*Server, error) {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, err
	}
	index, err := fs.ReadFile(static, "index.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		opts:     opts,
		store:    store,
		relay:    relay,
		sessions: session.NewRegistry(),
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
		index:    index,
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), visitorLogger())
	r.StaticFS("/static", http.FS(static))

	r.GET("/", s.handleIndex)
	r.GET("/healthz", s.handleHealth)
	r.GET("/ws", s.handleSession)

	api := r.Group("/api")
	api.GET("/content", s.handleContent)
	api.GET("/sections", s.handleSections)
	api.POST("/contact", s.handleContact)

	s.engine = r
	return s, nil
}

// Handler exposes the gin engine, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Sessions is the live session registry.
func (s *Server) Sessions() *session.Registry {
	return s.sessions
}

// Run serves until ctx is cancelled, then closes open sessions and shuts
// the listener down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("Portfolio listening", zap.String("addr", s.opts.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logging.Info("Shutting down", zap.Int("sessions", s.sessions.Len()))
	s.sessions.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
