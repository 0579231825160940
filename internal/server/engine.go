package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pdrpinto/gridstar"
)

// ErrEngineStopped is returned by Do once Run has returned.
var ErrEngineStopped = errors.New("engine stopped")

// Engine owns a Pathfinder and is the only goroutine that touches it. Other
// goroutines reach it through Do; Run interleaves those calls with ticks, so
// configuration changes always land between two Calculate calls.
type Engine struct {
	pathfinder *gridstar.Pathfinder[int]
	tick       time.Duration
	commands   chan command
	stopped    chan struct{}
	logger     *slog.Logger
}

type command struct {
	fn   func(*gridstar.Pathfinder[int])
	done chan struct{}
}

// NewEngine wraps pf. tick is the interval between Calculate calls.
func NewEngine(pf *gridstar.Pathfinder[int], tick time.Duration, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		pathfinder: pf,
		tick:       tick,
		commands:   make(chan command),
		stopped:    make(chan struct{}),
		logger:     logger.With("component", "engine"),
	}
}

// Run drives the pathfinder until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.stopped)
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	e.logger.Info("engine started", "tick", e.tick)
	for {
		select {
		case <-ctx.Done():
			e.logger.Info("engine stopped", "pending", e.pathfinder.Pending())
			return nil
		case cmd := <-e.commands:
			cmd.fn(e.pathfinder)
			close(cmd.done)
		case <-ticker.C:
			started := time.Now()
			e.pathfinder.Calculate(ctx)
			tickDuration.Observe(time.Since(started).Seconds())
			pendingRequests.Set(float64(e.pathfinder.Pending()))
		}
	}
}

// Do runs fn on the engine goroutine and waits for it to finish.
func (e *Engine) Do(ctx context.Context, fn func(*gridstar.Pathfinder[int])) error {
	cmd := command{fn: fn, done: make(chan struct{})}
	select {
	case e.commands <- cmd:
	case <-e.stopped:
		return ErrEngineStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-cmd.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
