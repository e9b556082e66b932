package scaffold

import "errors"

// Materialization errors returned by System implementations.
var (
	// ErrInvalidID indicates the nil UUID was passed where an agent id is required.
	ErrInvalidID = errors.New("scaffold: invalid agent id")
)
