// Package sigma defines the contract shared by every proof protocol in this
// module: three-move public-coin Sigma protocols together with their honest-verifier
// and extended honest-verifier zero-knowledge simulators.
//
// # Protocol shape
//
// A Protocol runs in three moves:
//
//	st, a, err := p.First(ctx, stmt, wit, rng)   // prover commits
//	c, err := p.Second(rng)                      // verifier draws a challenge
//	z, err := p.Third(ctx, stmt, st, wit, c, rng) // prover responds
//	ok := p.Verify(stmt, a, c, z)
//
// Run performs the three moves in one call. Statements, witnesses and prover
// state are opaque to this package; each protocol type-asserts its own concrete
// types and returns ErrStatementType, ErrWitnessType or ErrStateType on mismatch.
//
// # Stackable protocols
//
// A Stackable protocol additionally exposes the extended simulator SimulateA,
// which reconstructs the first message from a statement, a challenge and a third
// message. Composition compilers such as package stack rely on this: they run
// the real clause honestly and let every other clause be re-derived from the
// shared challenge and response.
//
// # Messages
//
// Every wire value implements Message: it reports its encoded size and appends
// its canonical encoding to a cryptobyte.Builder. Encodings carry no length
// prefixes; sizes are fixed by protocol parameters.
package sigma
