package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/relware/mapship/pkg/domain/types"
)

// config holds internal HTTP server configuration
type config struct {
	addr    string
	dataDir string
	token   types.Secret
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithDataDir sets the directory uploads are stored under
func WithDataDir(dir string) Option {
	return func(c *config) {
		c.dataDir = dir
	}
}

// WithToken sets the integration token uploads must present
func WithToken(token types.Secret) Option {
	return func(c *config) {
		c.token = token
	}
}

// Server is the local collector: a development stand-in for the remote
// service that accepts the same multipart uploads and stores them on disk.
type Server struct {
	*http.Server
}

// NewServer creates a new local collector server
func NewServer(ctx context.Context, opts ...Option) (*Server, error) {
	cfg := &config{
		addr:    "localhost:8080",
		dataDir: "mapship-data",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth)

	// Upload endpoint, same contract as the remote collector
	uploadHandler, err := NewUploadHandler(cfg.dataDir, cfg.token)
	if err != nil {
		return nil, err
	}
	router.Post("/api/v1/upload", uploadHandler.Handle)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
