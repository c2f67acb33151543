package stack_test

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/cryptobyte"

	"github.com/coinbase/cb-sigma-go/pkg/sigma"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/binding"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/group"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/logging"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/schnorr"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/stack"
)

type fixture struct {
	stacker   *stack.Stacker
	stmt      *stack.Statement
	witnesses []*group.Scalar
}

func newFixture(t *testing.T, clauses int, opts ...stack.Option) *fixture {
	t.Helper()
	inner := schnorr.New()
	s, err := stack.New(inner, clauses, opts...)
	require.NoError(t, err)
	pp, err := s.Setup(rand.Reader)
	require.NoError(t, err)

	stmts := make([]sigma.Statement, clauses)
	wits := make([]*group.Scalar, clauses)
	for i := range stmts {
		y, x, err := inner.KeyGen(rand.Reader)
		require.NoError(t, err)
		stmts[i], wits[i] = y, x
	}
	stmt, err := s.NewStatement(pp, stmts)
	require.NoError(t, err)
	return &fixture{stacker: s, stmt: stmt, witnesses: wits}
}

func (f *fixture) prove(t *testing.T, index int, x *group.Scalar) *sigma.Transcript {
	t.Helper()
	wit, err := f.stacker.NewWitness(x, index)
	require.NoError(t, err)
	tr, err := sigma.Run(context.Background(), f.stacker, f.stmt, wit, rand.Reader)
	require.NoError(t, err)
	return tr
}

func TestNewRoundsClauseCount(t *testing.T) {
	tests := []struct {
		clauses int
		height  int
	}{
		{2, 2},
		{3, 2},
		{4, 2},
		{5, 3},
		{8, 3},
		{9, 4},
	}
	for _, tt := range tests {
		s, err := stack.New(schnorr.New(), tt.clauses)
		require.NoError(t, err)
		require.Equal(t, tt.height, s.Height(), "clauses=%d", tt.clauses)
		require.Equal(t, 1<<tt.height, s.Clauses())
	}
}

func TestNewRejectsTooFewClauses(t *testing.T) {
	for _, n := range []int{-1, 0, 1} {
		_, err := stack.New(schnorr.New(), n)
		require.ErrorIs(t, err, stack.ErrTooFewClauses)
	}
	require.Panics(t, func() { stack.MustNew(schnorr.New(), 1) })
}

func TestCompleteness(t *testing.T) {
	for _, clauses := range []int{4, 8} {
		f := newFixture(t, clauses)
		for i := 0; i < clauses; i++ {
			t.Run(fmt.Sprintf("clauses=%d/index=%d", clauses, i), func(t *testing.T) {
				tr := f.prove(t, i, f.witnesses[i])
				require.True(t, sigma.VerifyTranscript(f.stacker, f.stmt, tr))
			})
		}
	}
}

func TestWrongWitnessRejected(t *testing.T) {
	f := newFixture(t, 4)
	tr := f.prove(t, 1, f.witnesses[2])
	require.False(t, sigma.VerifyTranscript(f.stacker, f.stmt, tr))
}

func TestChallengeBinding(t *testing.T) {
	f := newFixture(t, 4)
	tr := f.prove(t, 3, f.witnesses[3])
	other, err := f.stacker.Second(rand.Reader)
	require.NoError(t, err)
	require.False(t, f.stacker.Verify(f.stmt, tr.A, other, tr.Z))
}

func TestSimulateVerifies(t *testing.T) {
	f := newFixture(t, 8)
	for i := 0; i < 4; i++ {
		tr, err := f.stacker.Simulate(f.stmt, rand.Reader)
		require.NoError(t, err)
		require.True(t, sigma.VerifyTranscript(f.stacker, f.stmt, tr))
	}
}

func TestSimulateAReproducesFirstMessage(t *testing.T) {
	f := newFixture(t, 4)
	tr := f.prove(t, 0, f.witnesses[0])
	a, err := f.stacker.SimulateA(f.stmt, tr.C, tr.Z)
	require.NoError(t, err)
	require.True(t, a.(*stack.MessageA).Equal(tr.A.(*stack.MessageA)))
	require.Equal(t, sigma.Encode(tr.A), sigma.Encode(a))
}

func TestPaddedStatement(t *testing.T) {
	inner := schnorr.New()
	s, err := stack.New(inner, 3)
	require.NoError(t, err)
	pp, err := s.Setup(rand.Reader)
	require.NoError(t, err)

	y, x, err := inner.KeyGen(rand.Reader)
	require.NoError(t, err)
	y0, _, err := inner.KeyGen(rand.Reader)
	require.NoError(t, err)
	stmt, err := s.NewStatement(pp, []sigma.Statement{y0, y})
	require.NoError(t, err)
	require.Len(t, stmt.Clauses, 4)
	require.True(t, stmt.Clauses[3].(*group.Point).Equal(inner.Filler(3).(*group.Point)))

	wit, err := s.NewWitness(x, 1)
	require.NoError(t, err)
	tr, err := sigma.Run(context.Background(), s, stmt, wit, rand.Reader)
	require.NoError(t, err)
	require.True(t, sigma.VerifyTranscript(s, stmt, tr))

	_, err = s.NewStatement(pp, make([]sigma.Statement, 5))
	require.ErrorIs(t, err, stack.ErrClauseCount)
}

func TestParameterAndIndexMismatch(t *testing.T) {
	s, err := stack.New(schnorr.New(), 4)
	require.NoError(t, err)
	pp3, err := binding.Setup(3, rand.Reader)
	require.NoError(t, err)

	_, err = s.NewStatement(pp3, nil)
	require.ErrorIs(t, err, stack.ErrHeightMismatch)
	_, err = s.NewWitness(group.NewScalarFromUint32(1), 4)
	require.ErrorIs(t, err, stack.ErrIndexMismatch)
	require.ErrorIs(t, err, binding.ErrInvalidIndex)

	f := newFixture(t, 8)
	wit := &stack.Witness{Inner: f.witnesses[0], Index: binding.MustBindingIndex(2, 0)}
	_, _, err = f.stacker.First(context.Background(), f.stmt, wit, rand.Reader)
	require.ErrorIs(t, err, stack.ErrIndexMismatch)
}

func TestTypeErrors(t *testing.T) {
	f := newFixture(t, 4)
	ctx := context.Background()
	wit, err := f.stacker.NewWitness(f.witnesses[0], 0)
	require.NoError(t, err)

	_, _, err = f.stacker.First(ctx, group.Generator(), wit, rand.Reader)
	require.ErrorIs(t, err, sigma.ErrStatementType)
	_, _, err = f.stacker.First(ctx, f.stmt, f.witnesses[0], rand.Reader)
	require.ErrorIs(t, err, sigma.ErrWitnessType)
	_, err = f.stacker.Third(ctx, f.stmt, "state", wit, group.NewScalarFromUint32(1), rand.Reader)
	require.ErrorIs(t, err, sigma.ErrStateType)
	_, err = f.stacker.SimulateA(f.stmt, group.NewScalarFromUint32(1), group.NewScalarFromUint32(1))
	require.ErrorIs(t, err, sigma.ErrMessageType)

	tr := f.prove(t, 0, f.witnesses[0])
	require.False(t, f.stacker.Verify(group.Generator(), tr.A, tr.C, tr.Z))
	require.False(t, f.stacker.Verify(f.stmt, tr.Z, tr.C, tr.A))
	require.False(t, f.stacker.Verify(f.stmt, tr.A, nil, tr.Z))
	require.False(t, f.stacker.Verify(f.stmt, (*stack.MessageA)(nil), tr.C, tr.Z))
}

func TestCodecRoundTrip(t *testing.T) {
	f := newFixture(t, 8)
	tr := f.prove(t, 5, f.witnesses[5])

	a := sigma.Encode(tr.A)
	z := sigma.Encode(tr.Z)
	require.Len(t, a, tr.A.Size())
	require.Len(t, z, tr.Z.Size())
	require.Len(t, a, 3*group.PointSize+binding.CommitmentSize)
	require.Len(t, z, 3*group.PointSize+group.ScalarSize+3*2*group.ScalarSize)

	sa := cryptobyte.String(a)
	gotA, ok := f.stacker.ReadA(&sa, f.stmt)
	require.True(t, ok)
	require.True(t, sa.Empty())
	sz := cryptobyte.String(z)
	gotZ, ok := f.stacker.ReadZ(&sz, f.stmt)
	require.True(t, ok)
	require.True(t, sz.Empty())
	require.True(t, f.stacker.Verify(f.stmt, gotA, tr.C, gotZ))

	short := cryptobyte.String(z[:len(z)-1])
	_, ok = f.stacker.ReadZ(&short, f.stmt)
	require.False(t, ok)
}

// Four clauses, the real one at index 2: the proof verifies, and flipping a
// single bit of the shared answer in the encoded third message breaks it.
func TestIndexTwoOfFourWithTamperedAnswer(t *testing.T) {
	f := newFixture(t, 4)
	require.Equal(t, 2, f.stacker.Height())
	tr := f.prove(t, 2, f.witnesses[2])
	require.True(t, sigma.VerifyTranscript(f.stacker, f.stmt, tr))

	z := sigma.Encode(tr.Z)
	answerEnd := 2*group.PointSize + group.ScalarSize
	for _, pos := range []int{answerEnd - 1, len(z) - 1} {
		tampered := bytes.Clone(z)
		tampered[pos] ^= 0x01
		s := cryptobyte.String(tampered)
		bad, ok := f.stacker.ReadZ(&s, f.stmt)
		require.True(t, ok)
		require.False(t, f.stacker.Verify(f.stmt, tr.A, tr.C, bad), "flipped byte %d", pos)
	}
}

func TestMismatchedCommitKeyRejected(t *testing.T) {
	f := newFixture(t, 4)
	tr := f.prove(t, 1, f.witnesses[1])
	other := f.prove(t, 1, f.witnesses[1])

	a := tr.A.(*stack.MessageA)
	forged := &stack.MessageA{Key: other.A.(*stack.MessageA).Key, Commitment: a.Commitment}
	require.False(t, f.stacker.Verify(f.stmt, forged, tr.C, tr.Z))
}

func TestDeterministicWithReplayedRandomness(t *testing.T) {
	seed := []byte("stack determinism")
	run := func() ([]byte, []byte) {
		rng := group.NewXOFReader(seed)
		inner := schnorr.New()
		s := stack.MustNew(inner, 4)
		pp, err := s.Setup(rng)
		require.NoError(t, err)
		stmts := make([]sigma.Statement, 4)
		var x *group.Scalar
		for i := range stmts {
			y, xi, err := inner.KeyGen(rng)
			require.NoError(t, err)
			stmts[i] = y
			if i == 1 {
				x = xi
			}
		}
		stmt, err := s.NewStatement(pp, stmts)
		require.NoError(t, err)
		wit, err := s.NewWitness(x, 1)
		require.NoError(t, err)
		tr, err := sigma.Run(context.Background(), s, stmt, wit, rng)
		require.NoError(t, err)
		require.True(t, sigma.VerifyTranscript(s, stmt, tr))
		return sigma.Encode(tr.A), sigma.Encode(tr.Z)
	}
	a1, z1 := run()
	a2, z2 := run()
	require.Equal(t, a1, a2)
	require.Equal(t, z1, z2)
}

func TestStateZeroize(t *testing.T) {
	f := newFixture(t, 4)
	wit, err := f.stacker.NewWitness(f.witnesses[0], 0)
	require.NoError(t, err)
	st, _, err := f.stacker.First(context.Background(), f.stmt, wit, rand.Reader)
	require.NoError(t, err)
	sigma.Zeroize(st)
	var nilState *stack.State
	nilState.Zeroize()
}

func TestLoggingRedactsBindingIndex(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	f := newFixture(t, 4, stack.WithLogger(logger))
	tr := f.prove(t, 3, f.witnesses[3])
	require.True(t, sigma.VerifyTranscript(f.stacker, f.stmt, tr))

	out := buf.String()
	require.Contains(t, out, `"msg":"stack first"`)
	require.Contains(t, out, `"binding_index":"`+logging.Placeholder()+`"`)
	require.NotContains(t, out, `"binding_index":3`)
}

func TestDefaultAAndFiller(t *testing.T) {
	s := stack.MustNew(schnorr.New(), 4)
	d := s.DefaultA()
	require.Len(t, sigma.Encode(d), d.Size())
	require.Equal(t, make([]byte, d.Size()), sigma.Encode(d))

	f1 := s.Filler(1).(*stack.Statement)
	f1again := s.Filler(1).(*stack.Statement)
	f2 := s.Filler(2).(*stack.Statement)
	require.Equal(t, 2, f1.Height())
	require.Len(t, f1.Clauses, 4)
	require.True(t, f1.Clauses[0].(*group.Point).Equal(f1again.Clauses[0].(*group.Point)))
	require.False(t, f1.Clauses[0].(*group.Point).Equal(f2.Clauses[0].(*group.Point)))
}
