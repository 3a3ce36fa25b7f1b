// Package server exposes the validator and translator over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ZaguanLabs/menuval"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MaxBatchItems caps the items accepted by one /process request.
const MaxBatchItems = 20000

// Server wires a Processor into a gin router.
type Server struct {
	proc   *menuval.Processor
	logger *zap.Logger
	router *gin.Engine
}

// New builds the router. A nil logger is replaced with a no-op logger.
func New(proc *menuval.Processor, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{proc: proc, logger: logger}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	s.routes(router)
	s.router = router
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes(router *gin.Engine) {
	router.GET("/healthz", s.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/config", s.ConfigStatus)
		api.POST("/config/refresh", s.RefreshConfig)
		api.POST("/validate", s.Validate)
		api.POST("/translate", s.Translate)
		api.POST("/process", s.Process)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "route not found",
		})
	})
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
