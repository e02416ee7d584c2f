package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"talentpool/backend/internal/config"
	authusecase "talentpool/backend/internal/usecase/auth"
	candidateusecase "talentpool/backend/internal/usecase/candidate"
)

// Server wraps the HTTP server lifecycle.
type Server struct {
	httpServer        *http.Server
	router            *http.ServeMux
	authService       *authusecase.Service
	candidateService  *candidateusecase.Service
	logger            *slog.Logger
	publicUserListing bool
	addr              string
}

// NewServer constructs a new Server with configured dependencies.
func NewServer(cfg config.Config, authService *authusecase.Service, candidateService *candidateusecase.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()
	addr := cfg.HTTPPort
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	handler := withLogging(withRecovery(withCORS(mux, cfg.AllowedOrigins), logger), logger)

	srv := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
			IdleTimeout:  time.Duration(cfg.IdleTimeoutSec) * time.Second,
		},
		router:            mux,
		authService:       authService,
		candidateService:  candidateService,
		logger:            logger,
		publicUserListing: cfg.PublicUserListing,
		addr:              addr,
	}
	srv.registerRoutes()
	return srv
}

// Start bootstraps the HTTP server on the configured address.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the fully wrapped handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured network address for the HTTP server.
func (s *Server) Addr() string {
	return s.addr
}
