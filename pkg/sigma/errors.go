package sigma

import "errors"

var (
	// ErrStatementType indicates a statement of the wrong concrete type.
	ErrStatementType = errors.New("sigma: unexpected statement type")

	// ErrWitnessType indicates a witness of the wrong concrete type.
	ErrWitnessType = errors.New("sigma: unexpected witness type")

	// ErrStateType indicates prover state of the wrong concrete type.
	ErrStateType = errors.New("sigma: unexpected prover state type")

	// ErrMessageType indicates a protocol message of the wrong concrete type.
	ErrMessageType = errors.New("sigma: unexpected message type")

	// ErrInvalidWitness indicates a witness that does not satisfy its statement.
	ErrInvalidWitness = errors.New("sigma: witness does not satisfy statement")
)
