package session

import "context"

// Role identifies a party of an interactive session.
type Role uint8

const (
	RoleProver Role = iota
	RoleVerifier
)

func (r Role) String() string {
	switch r {
	case RoleProver:
		return "prover"
	case RoleVerifier:
		return "verifier"
	default:
		return "unknown"
	}
}

// Transport carries the frames of one session.
//
// Concurrency: implementations must be safe for concurrent use by multiple
// goroutines.
//
// Semantics: frames between a pair of roles are delivered reliably and in
// order. Receive blocks until a frame arrives or ctx is done.
type Transport interface {
	Send(ctx context.Context, to Role, msg []byte) error
	Receive(ctx context.Context, from Role) ([]byte, error)
}
