package stack

import "errors"

var (
	// ErrTooFewClauses is returned when a Stacker is asked for fewer than two clauses.
	ErrTooFewClauses = errors.New("stack: clause count must exceed 1")

	// ErrClauseCount is returned when more statements are supplied than a Stacker holds.
	ErrClauseCount = errors.New("stack: too many clauses")

	// ErrIndexMismatch is returned when a binding index does not fit the Stacker.
	ErrIndexMismatch = errors.New("stack: binding index does not match stack height")

	// ErrHeightMismatch is returned when public parameters do not fit the Stacker.
	ErrHeightMismatch = errors.New("stack: public parameters do not match stack height")
)
