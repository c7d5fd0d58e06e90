package pos

import (
	"errors"
	"fmt"
)

// Error taxonomy for the order service. Callers branch with errors.Is on
// the four root classes; the named conflicts exist so failures stay
// distinguishable in logs and API responses.
var (
	ErrValidation  = errors.New("invalid input")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrPersistence = errors.New("persistence failure")

	ErrTableExists       = fmt.Errorf("%w: table already exists", ErrConflict)
	ErrTableOccupied     = fmt.Errorf("%w: table already has an open tab", ErrConflict)
	ErrTabClosed         = fmt.Errorf("%w: tab is closed", ErrConflict)
	ErrInsufficientStock = fmt.Errorf("%w: insufficient stock", ErrConflict)
)
