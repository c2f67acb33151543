package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/cryptobyte"

	"github.com/coinbase/cb-sigma-go/pkg/sigma"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/group"
)

const (
	verdictReject byte = 0
	verdictAccept byte = 1
)

var (
	// ErrMalformedFrame is returned when a received frame does not decode.
	ErrMalformedFrame = errors.New("session: malformed frame")

	// ErrRejected is returned to the prover when the verifier rejects the proof.
	ErrRejected = errors.New("session: proof rejected by verifier")
)

// Protocol is the subset of a Stackable protocol needed for a session.
type Protocol interface {
	sigma.Protocol
	sigma.Codec
}

// Prove runs the prover side of p against the verifier on t.
func Prove(ctx context.Context, t Transport, p Protocol, stmt sigma.Statement, wit sigma.Witness, rng io.Reader) error {
	st, a, err := p.First(ctx, stmt, wit, rng)
	if err != nil {
		return fmt.Errorf("session prove: %w", err)
	}
	defer sigma.Zeroize(st)
	if err := t.Send(ctx, RoleVerifier, sigma.Encode(a)); err != nil {
		return fmt.Errorf("session prove: send first message: %w", err)
	}

	frame, err := t.Receive(ctx, RoleVerifier)
	if err != nil {
		return fmt.Errorf("session prove: receive challenge: %w", err)
	}
	c, err := group.NewScalarFromBytes(frame)
	if err != nil {
		return fmt.Errorf("session prove: %w: challenge: %w", ErrMalformedFrame, err)
	}

	z, err := p.Third(ctx, stmt, st, wit, c, rng)
	if err != nil {
		return fmt.Errorf("session prove: %w", err)
	}
	if err := t.Send(ctx, RoleVerifier, sigma.Encode(z)); err != nil {
		return fmt.Errorf("session prove: send third message: %w", err)
	}

	frame, err = t.Receive(ctx, RoleVerifier)
	if err != nil {
		return fmt.Errorf("session prove: receive verdict: %w", err)
	}
	if len(frame) != 1 {
		return fmt.Errorf("session prove: %w: verdict", ErrMalformedFrame)
	}
	if frame[0] != verdictAccept {
		return ErrRejected
	}
	return nil
}

// Verify runs the verifier side of p against the prover on t. A proof that
// fails to decode or verify yields false with a nil error; the prover is told
// the verdict either way. Errors report transport failures.
func Verify(ctx context.Context, t Transport, p Protocol, stmt sigma.Statement, rng io.Reader) (bool, error) {
	frame, err := t.Receive(ctx, RoleProver)
	if err != nil {
		return false, fmt.Errorf("session verify: receive first message: %w", err)
	}
	a, okA := readExact(frame, func(s *cryptobyte.String) (sigma.Message, bool) { return p.ReadA(s, stmt) })

	c, err := p.Second(rng)
	if err != nil {
		return false, fmt.Errorf("session verify: %w", err)
	}
	if err := t.Send(ctx, RoleProver, c.Bytes()); err != nil {
		return false, fmt.Errorf("session verify: send challenge: %w", err)
	}

	frame, err = t.Receive(ctx, RoleProver)
	if err != nil {
		return false, fmt.Errorf("session verify: receive third message: %w", err)
	}
	z, okZ := readExact(frame, func(s *cryptobyte.String) (sigma.Message, bool) { return p.ReadZ(s, stmt) })

	ok := okA && okZ && p.Verify(stmt, a, c, z)
	verdict := verdictReject
	if ok {
		verdict = verdictAccept
	}
	if err := t.Send(ctx, RoleProver, []byte{verdict}); err != nil {
		return false, fmt.Errorf("session verify: send verdict: %w", err)
	}
	return ok, nil
}

func readExact(frame []byte, read func(*cryptobyte.String) (sigma.Message, bool)) (sigma.Message, bool) {
	s := cryptobyte.String(frame)
	m, ok := read(&s)
	if !ok || !s.Empty() {
		return nil, false
	}
	return m, true
}
