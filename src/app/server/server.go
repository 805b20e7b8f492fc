// Package server provides HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"jokehub/src/app/http/handler"
	"jokehub/src/app/middleware"
	"jokehub/src/core/ports"
	"jokehub/src/core/usecase"
	"jokehub/src/infra/config"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg    *config.Config
	log    *slog.Logger
	router *gin.Engine
	http   *http.Server
	tokens ports.TokenManager

	// Handlers
	healthHandler   *handler.HealthHandler
	authHandler     *handler.AuthHandler
	jokeHandler     *handler.JokeHandler
	favoriteHandler *handler.FavoriteHandler
}

// New creates a new Server with all dependencies wired up.
func New(cfg *config.Config, log *slog.Logger, store ports.Store, hasher ports.PasswordHasher, tokens ports.TokenManager) *Server {
	// Set Gin mode based on log level
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router without default middleware
	router := gin.New()

	// Create services
	healthService := usecase.NewHealthService(store, log)
	authService := usecase.NewAuthService(store, hasher, tokens, log)
	jokeService := usecase.NewJokeService(store, log)
	favoriteService := usecase.NewFavoriteService(store, log)

	s := &Server{
		cfg:             cfg,
		log:             log,
		router:          router,
		tokens:          tokens,
		healthHandler:   handler.NewHealthHandler(healthService),
		authHandler:     handler.NewAuthHandler(authService),
		jokeHandler:     handler.NewJokeHandler(jokeService),
		favoriteHandler: handler.NewFavoriteHandler(favoriteService),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupHTTPServer()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	// Order matters: Recovery should be first to catch all panics
	s.router.Use(middleware.Recovery(s.log))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.Logging(s.log))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	authed := middleware.Auth(s.tokens)

	// Health check endpoints (no auth required)
	s.router.GET("/health", s.healthHandler.Health)
	s.router.GET("/health/detailed", s.healthHandler.DetailedHealth)

	api := s.router.Group("/api")
	{
		// Auth
		auth := api.Group("/auth")
		{
			auth.POST("/register", s.authHandler.Register)
			auth.POST("/login", s.authHandler.Login)
			auth.POST("/check-availability", s.authHandler.CheckAvailability)
			auth.GET("/me", authed, s.authHandler.Me)
		}

		// Jokes
		jokes := api.Group("/jokes")
		{
			jokes.GET("", s.jokeHandler.List)
			jokes.GET("/random", s.jokeHandler.Random)
			jokes.GET("/:id", s.jokeHandler.Get)
			jokes.GET("/:id/comments", s.jokeHandler.ListComments)

			jokes.POST("", authed, s.jokeHandler.Create)
			jokes.PATCH("/:id", authed, s.jokeHandler.Update)
			jokes.DELETE("/:id", authed, s.jokeHandler.Delete)
			jokes.POST("/:id/comments", authed, s.jokeHandler.AddComment)

			jokes.POST("/:id/favorite", authed, s.favoriteHandler.Add)
			jokes.DELETE("/:id/favorite", authed, s.favoriteHandler.Remove)
		}

		// Favorites by user
		api.GET("/users/:id/favorites", s.favoriteHandler.ListForUser)
	}

	// Handle 404
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{
				"code":       "NOT_FOUND",
				"message":    "The requested resource was not found",
				"request_id": middleware.GetRequestID(c),
			},
		})
	})
}

// setupHTTPServer configures the underlying HTTP server.
func (s *Server) setupHTTPServer() {
	s.http = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

// Run starts the HTTP server and blocks until shutdown.
// It handles graceful shutdown on SIGINT/SIGTERM.
func (s *Server) Run() error {
	// Channel to receive shutdown signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Channel to receive server errors
	errCh := make(chan error, 1)

	// Start server in goroutine
	go func() {
		s.log.Info("starting HTTP server",
			"addr", s.cfg.Server.Addr(),
		)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-quit:
		s.log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		return err
	}

	// Graceful shutdown
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	s.log.Info("shutting down server", "timeout", s.cfg.Server.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("server stopped gracefully")
	return nil
}

// Router returns the Gin router for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// WaitForReady waits until the server is ready to accept connections.
// Useful for integration tests.
func (s *Server) WaitForReady(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(fmt.Sprintf("http://%s/health", s.cfg.Server.Addr()))
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	return fmt.Errorf("server not ready after %v", timeout)
}
