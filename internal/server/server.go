// Package server exposes a gridstar Pathfinder over HTTP.
//
// A single Engine goroutine owns the Pathfinder and calls Calculate on a
// ticker; handlers submit, inspect and cancel path jobs by sending it
// commands, so the pathfinder is never touched concurrently.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"
)

// RegisterRoutes mounts the job API on group.
func RegisterRoutes(group *gin.RouterGroup, handlers *Handlers) {
	group.POST("/paths", handlers.HandleSubmit)
	group.GET("/paths/:id", handlers.HandleGet)
	group.DELETE("/paths/:id", handlers.HandleCancel)
	group.PUT("/grid", handlers.HandlePutGrid)
}

// NewRouter builds the full HTTP handler. Extra middleware applies to the
// /v1 group only.
func NewRouter(handlers *Handlers, logger *slog.Logger, middleware ...gin.HandlerFunc) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}
	r := gin.New()
	r.Use(gin.Recovery(), otelgin.Middleware("gridstar"), requestLogger(logger))
	r.GET("/healthz", handlers.HandleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	RegisterRoutes(r.Group("/v1", middleware...), handlers)
	return r
}

// RateLimit rejects requests beyond rps per second (with the given burst)
// with 429.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(started),
		)
	}
}

// Serve runs srv until ctx is done, then shuts it down within timeout.
func Serve(ctx context.Context, srv *http.Server, timeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
