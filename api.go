package gridstar

import (
	"fmt"
	"log/slog"
	"math"
)

// Point is a cell coordinate: X is the column, Y the row.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Result is the outcome of a path request.
//
// Found is false and Path is nil when no path exists. When start and goal are
// the same cell, Found is true and Path is empty.
type Result struct {
	Path     []Point
	Cost     float64
	Expanded int
	Found    bool
}

// Callback receives the result of a path request.
type Callback func(Result)

// RequestID identifies a queued request. Zero means the request was resolved
// without being queued.
type RequestID uint64

// Options defines how a Pathfinder searches and reports.
type Options struct {
	Diagonals                bool
	CornerCutting            bool
	Sync                     bool
	IterationsPerCalculation int
	DiagonalCost             float64
	Logger                   *slog.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithDiagonals enables or disables diagonal movement.
func WithDiagonals(enabled bool) Option {
	return func(options *Options) { options.Diagonals = enabled }
}

// WithCornerCutting allows or forbids diagonal moves between two blocked
// orthogonal cells.
func WithCornerCutting(enabled bool) Option {
	return func(options *Options) { options.CornerCutting = enabled }
}

// WithSync makes Calculate run the queue to completion and deliver results
// immediately.
func WithSync(enabled bool) Option {
	return func(options *Options) { options.Sync = enabled }
}

// WithIterationsPerCalculation caps the number of node expansions per Calculate.
func WithIterationsPerCalculation(iterations int) Option {
	return func(options *Options) { options.IterationsPerCalculation = iterations }
}

// WithDiagonalCost sets the multiplier for diagonal steps.
func WithDiagonalCost(cost float64) Option {
	return func(options *Options) { options.DiagonalCost = cost }
}

// WithLogger sets the logger used for request lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// Pathfinder runs budgeted A* searches over a shared tile grid.
//
// A Pathfinder is not safe for concurrent use. Configuration changes must
// happen between calls to Calculate.
type Pathfinder[TileType comparable] struct {
	options Options
	logger  *slog.Logger

	grid         [][]TileType
	acceptable   map[TileType]struct{}
	tileCosts    map[TileType]float64
	defaultCosts map[TileType]float64
	pointCosts   map[Point]float64
	avoid        map[Point]struct{}
	directional  map[Point]DirectionSet

	instances map[RequestID]*searchInstance
	queue     []RequestID
	nextID    RequestID
	outbox    deferredDelivery
}

// New creates a Pathfinder with corner cutting enabled, diagonals and sync
// disabled and an unbounded iteration budget.
func New[TileType comparable](options ...Option) *Pathfinder[TileType] {
	opts := Options{
		CornerCutting:            true,
		IterationsPerCalculation: math.MaxInt,
		DiagonalCost:             defaultDiagonalCost,
	}
	for _, o := range options {
		o(&opts)
	}
	if opts.IterationsPerCalculation < 1 {
		opts.IterationsPerCalculation = math.MaxInt
	}
	if !(opts.DiagonalCost > 0) || math.IsInf(opts.DiagonalCost, 0) {
		opts.DiagonalCost = defaultDiagonalCost
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pathfinder[TileType]{
		options:      opts,
		logger:       logger.With("component", "gridstar"),
		tileCosts:    make(map[TileType]float64),
		defaultCosts: make(map[TileType]float64),
		pointCosts:   make(map[Point]float64),
		avoid:        make(map[Point]struct{}),
		directional:  make(map[Point]DirectionSet),
		instances:    make(map[RequestID]*searchInstance),
	}
}

// FindPath queues a request for a path from (startX, startY) to (endX, endY).
//
// When start equals end, or the end tile is not acceptable, callback receives
// the outcome without queueing and the returned id is zero. An error is
// returned, and nothing is queued, when the grid or acceptable tiles are
// missing or a point lies outside the grid.
func (p *Pathfinder[TileType]) FindPath(startX, startY, endX, endY int, callback Callback) (RequestID, error) {
	if callback == nil {
		callback = func(Result) {}
	}
	if p.acceptable == nil {
		return 0, ErrNoAcceptableTiles
	}
	if p.grid == nil {
		return 0, ErrNoGrid
	}
	start, goal := Point{X: startX, Y: startY}, Point{X: endX, Y: endY}
	if !p.inBounds(start) || !p.inBounds(goal) {
		return 0, fmt.Errorf("%w: start %v end %v on %dx%d grid", ErrOutOfBounds, start, goal, p.width(), p.height())
	}

	if start == goal {
		p.deliver(callback, Result{Path: []Point{}, Found: true})
		return 0, nil
	}
	if !p.isAcceptable(goal) {
		p.logger.Debug("goal tile not acceptable", "goal", goal)
		p.deliver(callback, Result{})
		return 0, nil
	}

	p.nextID++
	id := p.nextID
	instance := newSearchInstance(id, start, goal, callback, p.heuristicTo(goal))
	p.instances[id] = instance
	p.queue = append(p.queue, id)
	p.logger.Debug("path request queued", "id", id, "start", start, "goal", goal, "queue", len(p.queue))
	return id, nil
}

// CancelPath drops a queued request. Its callback is never invoked. It
// reports whether the request was still pending.
func (p *Pathfinder[TileType]) CancelPath(id RequestID) bool {
	if _, ok := p.instances[id]; !ok {
		return false
	}
	delete(p.instances, id)
	recordCancelled()
	p.logger.Debug("path request cancelled", "id", id)
	return true
}

// Pending returns the number of requests still being searched.
func (p *Pathfinder[TileType]) Pending() int {
	return len(p.instances)
}

func (p *Pathfinder[TileType]) heuristicTo(goal Point) func(Point) float64 {
	diagonals, diagonalCost := p.options.Diagonals, p.options.DiagonalCost
	return func(point Point) float64 {
		return distance(point, goal, diagonals, diagonalCost)
	}
}
