package board

import "errors"

// Errors returned by board operations. They signal a caller contract
// violation; the operation that returned one left all state unchanged.
var (
	// ErrOutOfBounds is returned for coordinates outside the grid.
	ErrOutOfBounds = errors.New("board: cell out of bounds")

	// ErrInvalidCell is returned when an operation targets a disabled cell
	// or a swap names the same cell twice.
	ErrInvalidCell = errors.New("board: invalid cell")

	// ErrInvalidConfig is returned by New for unusable board settings.
	ErrInvalidConfig = errors.New("board: invalid config")
)
