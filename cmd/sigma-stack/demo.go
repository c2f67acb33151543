package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/coinbase/cb-sigma-go/pkg/sigma"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/fiatshamir"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/group"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/logging"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/schnorr"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/session"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/session/mocknet"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/stack"
)

const demoLabel = "sigma-stack/demo"

func (a *app) demoCmd() *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Prove, sign and verify once over a fresh ring",
		Long: `Generate a ring of --clauses Schnorr keys, keep the secret at --index,
run the interactive stacked proof and a Fiat-Shamir signature over --message,
and verify both.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDemo(cmd.Context(), cmd.OutOrStdout(), []byte(message))
		},
	}
	cmd.Flags().StringVar(&message, "message", "hello, ring", "Message to sign")
	return cmd
}

func (a *app) runDemo(ctx context.Context, out io.Writer, msg []byte) error {
	rng := a.rng("demo")
	inner := schnorr.New()
	s, err := stack.New(inner, a.cfg.Clauses, stack.WithLogger(logging.New(a.logger)))
	if err != nil {
		return err
	}
	pp := s.SetupFromLabel([]byte(demoLabel))

	ring := make([]sigma.Statement, a.cfg.Clauses)
	var secret *group.Scalar
	for i := range ring {
		y, x, err := inner.KeyGen(rng)
		if err != nil {
			return fmt.Errorf("keygen: %w", err)
		}
		ring[i] = y
		if i == a.cfg.Index {
			secret = x
		} else {
			x.Zeroize()
		}
	}
	stmt, err := s.NewStatement(pp, ring)
	if err != nil {
		return err
	}
	wit, err := s.NewWitness(secret, a.cfg.Index)
	if err != nil {
		return err
	}
	defer wit.Zeroize()

	start := time.Now()
	tr, err := sigma.Run(ctx, s, stmt, wit, rng)
	if err != nil {
		return fmt.Errorf("prove: %w", err)
	}
	proveTime := time.Since(start)
	start = time.Now()
	proofOK := sigma.VerifyTranscript(s, stmt, tr)
	verifyTime := time.Since(start)

	sessionOK, err := runSession(ctx, s, stmt, wit, rng)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}

	sig, err := fiatshamir.Sign(ctx, s, stmt, wit, msg, rng)
	if err != nil {
		return fmt.Errorf("sign: %w", err)
	}
	encoded := sig.Bytes()
	parsed, err := fiatshamir.Parse(s, stmt, encoded)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	sigOK := fiatshamir.Verify(s, stmt, msg, parsed)

	a.logger.InfoContext(ctx, "demo complete",
		"session", sessionOK,
		"clauses", a.cfg.Clauses,
		"height", s.Height(),
		"prove", proveTime,
		"verify", verifyTime,
		logging.Redacted("index"),
	)
	fmt.Fprintf(out, "ring: %d keys, padded to %d (height %d)\n", a.cfg.Clauses, s.Clauses(), s.Height())
	fmt.Fprintf(out, "proof: %d bytes, prove %s, verify %s, valid=%t\n", sigma.Size(tr.A, tr.Z), proveTime, verifyTime, proofOK)
	fmt.Fprintf(out, "session: valid=%t\n", sessionOK)
	fmt.Fprintf(out, "signature: %d bytes, valid=%t\n", len(encoded), sigOK)

	if !proofOK || !sessionOK || !sigOK {
		return errors.New("verification failed")
	}
	return nil
}

// runSession proves stmt to a verifier over an in-memory transport. The
// verifier draws its challenge from crypto/rand so the prover cannot predict it.
func runSession(ctx context.Context, s *stack.Stacker, stmt *stack.Statement, wit *stack.Witness, rng io.Reader) (bool, error) {
	net := mocknet.New()
	prover := net.Endpoint(session.RoleProver, session.RoleVerifier)
	verifier := net.Endpoint(session.RoleVerifier, session.RoleProver)

	var accepted bool
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return session.Prove(ctx, prover, s, stmt, wit, rng)
	})
	g.Go(func() error {
		ok, err := session.Verify(ctx, verifier, s, stmt, rand.Reader)
		accepted = ok
		return err
	})
	if err := g.Wait(); err != nil && !errors.Is(err, session.ErrRejected) {
		return false, err
	}
	return accepted, nil
}
