package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mun-chits/config"
	"mun-chits/internal/handler"
	"mun-chits/internal/middleware"
	"mun-chits/internal/transport/httpdto"
	"mun-chits/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Auth       *handler.AuthHandler
	Messages   *handler.MessageHandler
	Moderation *handler.ModerationHandler
	WebSocket  gin.HandlerFunc
}

// Guards are the middlewares protecting the API. Limiters may be nil when
// redis is not configured.
type Guards struct {
	Auth           middleware.Authenticator
	MessageLimiter middleware.MessageLimiter
	AuthLimiter    middleware.AuthLimiter
	// HealthCheck reports whether dependencies are reachable.
	HealthCheck func(ctx context.Context) error
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	switch cfg.AppMode {
	case ReleaseMode, logger.ProductionMode:
		gin.SetMode(gin.ReleaseMode)
	case TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery(l))

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.AppPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

// Engine exposes the router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) SetupRoutes(h *Handlers, g Guards) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORS(s.config.CORSOrigins))
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "pong"}))
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if g.HealthCheck != nil {
			if err := g.HealthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "UNHEALTHY"))
				return
			}
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "healthy"}))
	})

	authenticated := middleware.AuthMiddleware(g.Auth)

	auth := s.engine.Group("/v1/auth")
	{
		login := []gin.HandlerFunc{}
		if g.AuthLimiter != nil {
			login = append(login, middleware.AuthRateLimitMiddleware(g.AuthLimiter, s.logger))
		}
		auth.POST("/login", append(login, h.Auth.Login)...)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", authenticated, h.Auth.Me)
	}

	messages := s.engine.Group("/v1/messages", authenticated)
	{
		writes := []gin.HandlerFunc{}
		if g.MessageLimiter != nil {
			writes = append(writes, middleware.MessageRateLimitMiddleware(g.MessageLimiter, s.logger))
		}
		messages.GET("/users", h.Messages.Sidebar)
		messages.GET("/received", h.Messages.Received)
		messages.GET("/sent", h.Messages.Sent)
		messages.GET("/chit/:id", h.Messages.Chit)
		messages.GET("/:id", h.Messages.Thread)
		messages.POST("/send/:id", append(writes, h.Messages.Send)...)
		messages.POST("/reply/:id", append(writes, h.Messages.Reply)...)
	}

	moderation := s.engine.Group("/v1/moderation", authenticated, middleware.RequireEB())
	{
		moderation.GET("/pending", h.Moderation.Pending)
		moderation.POST("/messages/:id/approve", h.Moderation.Approve)
		moderation.POST("/archive", h.Moderation.Archive)
	}

	if h.WebSocket != nil {
		s.engine.GET("/v1/ws", h.WebSocket)
	}
}

// Start serves until SIGINT or SIGTERM, or until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("error in starting the server: %w", err)
	case <-quit:
	case <-ctx.Done():
	}

	if s.logger != nil {
		s.logger.Infof("Shutdown requested, draining connections")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}
	return nil
}
