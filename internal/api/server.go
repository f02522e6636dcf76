package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/screening-recommender/internal/domain"
	"github.com/screening-recommender/internal/middleware"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// ModelInfo describes the loaded recommendation model.
type ModelInfo interface {
	SchemaVersion() string
	LabelCount() int
}

// BreakerReporter reports upstream circuit breaker states.
type BreakerReporter interface {
	BreakerStates() map[string]string
}

// Dependencies are the collaborators the HTTP surface serves.
type Dependencies struct {
	Analyzer    domain.Analyzer
	Recommender domain.ToolRecommender
	Model       ModelInfo
	Breakers    BreakerReporter
}

// Server represents the HTTP server
type Server struct {
	configManager domain.ConfigManager
	logger        *logrus.Logger
	deps          Dependencies
	router        *gin.Engine
	server        *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(configManager domain.ConfigManager, logger *logrus.Logger, deps Dependencies) *Server {
	cfg := configManager.GetConfig()

	// Set Gin mode based on log level, leaving test mode alone. Production
	// never runs gin in debug mode.
	if gin.Mode() != gin.TestMode {
		if cfg.Logging.Level == "debug" && !configManager.IsProduction() {
			gin.SetMode(gin.DebugMode)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}
	}

	router := gin.New()

	router.Use(gin.CustomRecovery(recoverPanic(logger)))
	router.Use(middleware.CorrelationID())
	router.Use(middleware.AuditLogger(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestTimeout(cfg.Server.RequestTimeout))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.NewClientLimiter(cfg.RateLimit)))
	}

	server := &Server{
		configManager: configManager,
		logger:        logger,
		deps:          deps,
		router:        router,
	}

	server.setupRoutes()

	return server
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.configManager.GetServerConfig()
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	// Unversioned path kept for existing dashboard clients
	s.router.GET("/analyze", s.handleAnalyze)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/analyze", s.handleAnalyze)
		v1.POST("/recommend", s.handleRecommend)
	}
}
