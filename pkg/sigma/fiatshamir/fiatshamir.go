package fiatshamir

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/cryptobyte"

	"github.com/coinbase/cb-sigma-go/pkg/sigma"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/group"
)

// ErrMalformedSignature is returned by Parse for input that does not decode.
var ErrMalformedSignature = errors.New("fiatshamir: malformed signature")

// Scheme is the subset of a Stackable protocol used for signing.
type Scheme interface {
	sigma.Protocol
	sigma.Codec
}

// Signature is a non-interactive transcript without its challenge.
type Signature struct {
	A sigma.Message
	Z sigma.Message
}

// Bytes returns encode(A) || encode(Z).
func (s *Signature) Bytes() []byte {
	return sigma.Encode(s.A, s.Z)
}

// Challenge derives the challenge for first message a over msg.
func Challenge(a sigma.Message, msg []byte) *group.Scalar {
	return group.HashToScalar(sigma.Encode(a), msg)
}

// Sign proves knowledge of wit for stmt, bound to msg.
func Sign(ctx context.Context, p Scheme, stmt sigma.Statement, wit sigma.Witness, msg []byte, rng io.Reader) (*Signature, error) {
	st, a, err := p.First(ctx, stmt, wit, rng)
	if err != nil {
		return nil, fmt.Errorf("fiatshamir sign: %w", err)
	}
	defer sigma.Zeroize(st)
	z, err := p.Third(ctx, stmt, st, wit, Challenge(a, msg), rng)
	if err != nil {
		return nil, fmt.Errorf("fiatshamir sign: %w", err)
	}
	return &Signature{A: a, Z: z}, nil
}

// Verify reports whether sig is a valid signature on msg for stmt.
func Verify(p Scheme, stmt sigma.Statement, msg []byte, sig *Signature) bool {
	if sig == nil || sig.A == nil || sig.Z == nil {
		return false
	}
	return p.Verify(stmt, sig.A, Challenge(sig.A, msg), sig.Z)
}

// Parse decodes a signature for stmt. Trailing bytes are rejected.
func Parse(p Scheme, stmt sigma.Statement, b []byte) (*Signature, error) {
	s := cryptobyte.String(b)
	a, ok := p.ReadA(&s, stmt)
	if !ok {
		return nil, fmt.Errorf("%w: first message", ErrMalformedSignature)
	}
	z, ok := p.ReadZ(&s, stmt)
	if !ok {
		return nil, fmt.Errorf("%w: third message", ErrMalformedSignature)
	}
	if !s.Empty() {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformedSignature, len(s))
	}
	return &Signature{A: a, Z: z}, nil
}
