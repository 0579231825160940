package gridstar

import "errors"

// Sentinel errors returned by the configuration and request surface.
var (
	// ErrNoAcceptableTiles is returned by FindPath before SetAcceptableTiles was called.
	ErrNoAcceptableTiles = errors.New("gridstar: acceptable tiles not set")

	// ErrNoGrid is returned by FindPath before SetGrid was called.
	ErrNoGrid = errors.New("gridstar: grid not set")

	// ErrOutOfBounds is returned when a start or end point lies outside the grid.
	ErrOutOfBounds = errors.New("gridstar: point outside grid")

	// ErrInvalidGrid is returned by SetGrid for empty or ragged grids.
	ErrInvalidGrid = errors.New("gridstar: grid must be a non-empty rectangle")

	// ErrInvalidCost is returned for costs that are not finite and positive.
	ErrInvalidCost = errors.New("gridstar: cost must be finite and positive")

	// ErrInvalidIterations is returned for an iteration budget below one.
	ErrInvalidIterations = errors.New("gridstar: iterations per calculation must be at least 1")

	// ErrUnknownDirection is returned by ParseDirection.
	ErrUnknownDirection = errors.New("gridstar: unknown direction")
)
