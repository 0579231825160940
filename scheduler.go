package gridstar

import (
	"context"
	"time"
)

// Calculate advances the queued searches. Outside sync mode it performs at
// most IterationsPerCalculation node expansions, always on the request at the
// head of the queue; in sync mode it runs until the queue is empty.
//
// Results queued by an earlier call are delivered first.
func (p *Pathfinder[TileType]) Calculate(ctx context.Context) {
	p.Flush()
	if len(p.queue) == 0 || p.grid == nil || p.acceptable == nil {
		return
	}

	started := time.Now()
	ctx, span := startCalculateSpan(ctx, len(p.queue), p.options.Sync)
	defer span.End()

	iterations := 0
	for len(p.queue) > 0 && (p.options.Sync || iterations < p.options.IterationsPerCalculation) {
		id := p.queue[0]
		instance, ok := p.instances[id]
		if !ok {
			// cancelled
			p.queue = p.queue[1:]
			continue
		}

		iterations++
		result, done := p.step(instance)
		if done {
			p.finish(ctx, instance, result)
		}
	}

	setCalculateSpanResult(span, iterations, len(p.queue))
	recordCalculateMetrics(ctx, time.Since(started), iterations)
}

func (p *Pathfinder[TileType]) finish(ctx context.Context, instance *searchInstance, result Result) {
	delete(p.instances, instance.id)
	p.queue = p.queue[1:]
	recordCompleted(ctx, result.Found)
	p.logger.Debug("path request finished",
		"id", instance.id,
		"found", result.Found,
		"cost", result.Cost,
		"expanded", result.Expanded,
		"length", len(result.Path),
	)
	p.deliver(instance.callback, result)
}
