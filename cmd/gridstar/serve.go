package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pdrpinto/gridstar"
	"github.com/pdrpinto/gridstar/internal/config"
	"github.com/pdrpinto/gridstar/internal/server"
	"github.com/pdrpinto/gridstar/internal/telemetry"
)

var (
	serveAddr  string // overrides server.addr from the config
	serveWatch bool   // reload the config file on change
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve path requests over HTTP",
	Long: `Runs the HTTP job API. The scheduler advances every tick_interval by at
most iterations_per_tick node expansions, shared by the queued jobs in
submission order.

Endpoints:
  POST   /v1/paths       submit {"start":{"x":0,"y":0},"end":{"x":3,"y":4}}
  GET    /v1/paths/:id   job status, result and search progress
  DELETE /v1/paths/:id   cancel a pending job
  PUT    /v1/grid        replace the grid {"rows":[[0,0],[0,1]]}
  GET    /healthz
  GET    /metrics

With --watch the config file is reloaded when it changes; the new grid and
costs are installed between two ticks.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "reload the config file when it changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "gridstar",
		ServiceVersion: version,
		MetricExporter: cfg.Telemetry.MetricExporter,
		TraceExporter:  cfg.Telemetry.TraceExporter,
	})
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("telemetry shutdown", "error", err)
		}
	}()

	pf := gridstar.New[int](append(cfg.Options(), gridstar.WithLogger(logger))...)
	if err := cfg.Apply(pf); err != nil {
		return err
	}

	engine := server.NewEngine(pf, cfg.TickInterval, logger)
	handlers := server.NewHandlers(engine, server.NewJobStore(), logger)
	var middleware []gin.HandlerFunc
	if cfg.Server.RateLimit > 0 {
		middleware = append(middleware, server.RateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst))
	}
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.NewRouter(handlers, logger, middleware...),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return engine.Run(ctx) })
	g.Go(func() error { return server.Serve(ctx, srv, cfg.Server.ShutdownTimeout, logger) })
	if serveWatch {
		g.Go(func() error {
			return config.Watch(ctx, configPath, config.DefaultDebounce, logger, func(next *config.Config) {
				var applyErr error
				err := engine.Do(ctx, func(pf *gridstar.Pathfinder[int]) { applyErr = next.Apply(pf) })
				if err == nil {
					err = applyErr
				}
				if err != nil {
					logger.Warn("config not applied", "error", err)
				}
			})
		})
	}
	return g.Wait()
}
