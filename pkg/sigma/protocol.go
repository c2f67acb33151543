package sigma

import (
	"context"
	"io"

	"golang.org/x/crypto/cryptobyte"

	"github.com/coinbase/cb-sigma-go/pkg/sigma/group"
)

// Statement is the public input of a protocol run. It is shared with the verifier.
type Statement = any

// Witness is the prover's secret input. It is never serialized.
type Witness = any

// State is the prover's ephemeral state between First and Third.
type State = any

// Protocol is a three-move public-coin proof of knowledge.
type Protocol interface {
	// First produces the prover's commitment and the state needed to answer a challenge.
	First(ctx context.Context, stmt Statement, wit Witness, rng io.Reader) (State, Message, error)

	// Second draws a uniformly random challenge. It does not depend on the statement.
	Second(rng io.Reader) (*group.Scalar, error)

	// Third answers challenge c.
	Third(ctx context.Context, stmt Statement, st State, wit Witness, c *group.Scalar, rng io.Reader) (Message, error)

	// Verify reports whether (a, c, z) is an accepting transcript for stmt.
	// It never fails with an error; malformed input is rejected.
	Verify(stmt Statement, a Message, c *group.Scalar, z Message) bool
}

// Simulator produces accepting transcripts without a witness.
type Simulator interface {
	// Simulate returns an accepting transcript for stmt (HVZK).
	Simulate(stmt Statement, rng io.Reader) (*Transcript, error)

	// SimulateA reconstructs the unique first message consistent with stmt, c and z (EHVZK).
	SimulateA(stmt Statement, c *group.Scalar, z Message) (Message, error)
}

// Codec decodes protocol messages. Message sizes are determined by stmt.
type Codec interface {
	ReadA(s *cryptobyte.String, stmt Statement) (Message, bool)
	ReadZ(s *cryptobyte.String, stmt Statement) (Message, bool)
}

// Stackable is a protocol that a composition compiler can wrap.
type Stackable interface {
	Protocol
	Simulator
	Codec

	// DefaultA is the neutral first message placed in slots whose content is not
	// yet determined.
	DefaultA() Message

	// Filler returns a deterministic padding statement for slot i. Nobody knows a
	// witness for it.
	Filler(i int) Statement
}

// Transcript is one (a, c, z) run of a protocol.
type Transcript struct {
	A Message
	C *group.Scalar
	Z Message
}

// Run executes First, Second and Third in order and returns the transcript.
func Run(ctx context.Context, p Protocol, stmt Statement, wit Witness, rng io.Reader) (*Transcript, error) {
	st, a, err := p.First(ctx, stmt, wit, rng)
	if err != nil {
		return nil, err
	}
	c, err := p.Second(rng)
	if err != nil {
		return nil, err
	}
	z, err := p.Third(ctx, stmt, st, wit, c, rng)
	if err != nil {
		return nil, err
	}
	return &Transcript{A: a, C: c, Z: z}, nil
}

// VerifyTranscript is shorthand for p.Verify on a transcript.
func VerifyTranscript(p Protocol, stmt Statement, t *Transcript) bool {
	if t == nil || t.A == nil || t.C == nil || t.Z == nil {
		return false
	}
	return p.Verify(stmt, t.A, t.C, t.Z)
}
