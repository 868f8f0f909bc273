package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	handlers "github.com/GriffinCanCode/AgentOS/filesystem/internal/api/http"
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/api/middleware"
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/domain/sandbox"
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/providers/filesystem"
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/shared/utils"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	sandbox    *sandbox.Sandbox
	tracer     *tracing.Tracer
	logger     *logging.Logger
	config     *config.Config
	metrics    *monitoring.Metrics
}

// NewServer creates a new server instance. A nil logger selects one from
// cfg.Logging.
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		var err error
		logger, err = logging.NewForMode(cfg.Logging.Level, cfg.Logging.Development)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	logger.Info("Initializing filesystem server",
		zap.String("port", cfg.Server.Port),
		zap.Strings("allowed_paths", cfg.Filesystem.AllowedPaths),
	)

	// Roots are canonicalized once; a bad root is fatal
	sb, err := sandbox.New(cfg.Filesystem.AllowedPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sandbox: %w", err)
	}
	logger.Info("Sandbox initialized", zap.Strings("roots", sb.Roots()))

	metrics := monitoring.NewMetrics()
	tracer := tracing.New(handlers.ServiceName, logger.Logger)

	ops := filesystem.NewFilesystemOps(sb, nil, logger, metrics, filesystem.Limits{
		MaxDepth:  cfg.Filesystem.MaxDepth,
		FindLimit: cfg.Filesystem.FindLimit,
	})
	provider := filesystem.NewProvider(ops)

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(middleware.Recovery(logger.Logger))
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(middleware.MaxBodySize(utils.MaxRequestBodySize))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))

		if cfg.RateLimit.GlobalRequestsPerSecond > 0 {
			burst := cfg.RateLimit.GlobalBurst
			if burst <= 0 {
				burst = cfg.RateLimit.GlobalRequestsPerSecond
			}
			logger.Info("Global rate limiting enabled",
				zap.Int("rps", cfg.RateLimit.GlobalRequestsPerSecond),
				zap.Int("burst", burst),
			)
			router.Use(middleware.GlobalRateLimit(middleware.RateLimitConfig{
				RequestsPerSecond: cfg.RateLimit.GlobalRequestsPerSecond,
				Burst:             burst,
			}))
		}
	}

	h := handlers.NewHandlers(provider, metrics, logger, cfg.Filesystem.MaxReadSize)
	h.RegisterRoutes(router)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	logger.Info("Server initialized successfully")

	s := &Server{
		router:  router,
		sandbox: sb,
		tracer:  tracer,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}
	// Built up front so Shutdown never races with Run
	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the root HTTP handler with response compression applied
func (s *Server) Handler() http.Handler {
	return gzhttp.GzipHandler(s.router)
}

// Sandbox returns the path sandbox the server resolves requests against
func (s *Server) Sandbox() *sandbox.Sandbox {
	return s.sandbox
}

// Run starts the HTTP server and blocks until it stops. A clean Shutdown,
// including one that happens before Run, returns nil.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// expires, then flushes pending spans and logs.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	var err error
	if err = s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
		err = fmt.Errorf("failed to shut down http server: %w", err)
	}

	s.tracer.Close()
	_ = s.logger.Sync()

	return err
}
