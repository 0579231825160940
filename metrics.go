package gridstar

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("gridstar")
	meter  = otel.Meter("gridstar")
)

var (
	expansionsTotal     metric.Int64Counter
	requestsTotal       metric.Int64Counter
	calculateExpansions metric.Int64Histogram
	calculateLatency    metric.Float64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics creates the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		expansionsTotal, err = meter.Int64Counter(
			"gridstar_expansions_total",
			metric.WithDescription("Node expansions performed by Calculate"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		requestsTotal, err = meter.Int64Counter(
			"gridstar_requests_total",
			metric.WithDescription("Path requests concluded, by outcome"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		calculateExpansions, err = meter.Int64Histogram(
			"gridstar_calculate_expansions",
			metric.WithDescription("Node expansions per Calculate call"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		calculateLatency, err = meter.Float64Histogram(
			"gridstar_calculate_duration_seconds",
			metric.WithDescription("Duration of Calculate calls"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func recordCalculateMetrics(ctx context.Context, duration time.Duration, iterations int) {
	if err := initMetrics(); err != nil {
		return
	}
	expansionsTotal.Add(ctx, int64(iterations))
	calculateExpansions.Record(ctx, int64(iterations))
	calculateLatency.Record(ctx, duration.Seconds())
}

func recordCompleted(ctx context.Context, found bool) {
	if err := initMetrics(); err != nil {
		return
	}
	outcome := "not_found"
	if found {
		outcome = "found"
	}
	requestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func recordCancelled() {
	if err := initMetrics(); err != nil {
		return
	}
	requestsTotal.Add(context.Background(), 1, metric.WithAttributes(attribute.String("outcome", "cancelled")))
}

func startCalculateSpan(ctx context.Context, queueLength int, syncMode bool) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Pathfinder.Calculate",
		trace.WithAttributes(
			attribute.Int("gridstar.queue_length", queueLength),
			attribute.Bool("gridstar.sync", syncMode),
		),
	)
}

func setCalculateSpanResult(span trace.Span, iterations, remaining int) {
	span.SetAttributes(
		attribute.Int("gridstar.iterations", iterations),
		attribute.Int("gridstar.remaining", remaining),
	)
}
