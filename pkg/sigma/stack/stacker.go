package stack

import (
	"context"
	"fmt"
	"io"
	"math/bits"
	"strconv"

	"golang.org/x/crypto/cryptobyte"

	"github.com/coinbase/cb-sigma-go/pkg/sigma"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/binding"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/group"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/logging"
)

const fillerDomain = "cb-sigma/stack/filler"

// Stacker proves knowledge of a witness for one of 2^q statements of an inner
// protocol.
type Stacker struct {
	inner  sigma.Stackable
	q      int
	logger logging.Logger
}

var _ sigma.Stackable = (*Stacker)(nil)

// Option configures a Stacker.
type Option func(*Stacker)

// WithLogger sets the logger used for debug tracing. The binding index is
// never logged.
func WithLogger(l logging.Logger) Option {
	return func(s *Stacker) {
		if l != nil {
			s.logger = l
		}
	}
}

// New wraps inner for clauses statements. The clause count is rounded up to a
// power of two, with a minimum of four.
func New(inner sigma.Stackable, clauses int, opts ...Option) (*Stacker, error) {
	if clauses <= 1 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewClauses, clauses)
	}
	q := heightFor(clauses)
	if q > binding.MaxHeight {
		return nil, fmt.Errorf("%w: %d clauses exceed height %d", ErrClauseCount, clauses, binding.MaxHeight)
	}
	s := &Stacker{inner: inner, q: q, logger: logging.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// MustNew is like New but panics on error.
func MustNew(inner sigma.Stackable, clauses int, opts ...Option) *Stacker {
	s, err := New(inner, clauses, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// heightFor returns max(2, ceil(log2(n))).
func heightFor(n int) int {
	q := bits.Len(uint(n - 1))
	if q < binding.MinHeight {
		q = binding.MinHeight
	}
	return q
}

// Height returns q.
func (s *Stacker) Height() int { return s.q }

// Clauses returns the padded clause count, 2^q.
func (s *Stacker) Clauses() int { return 1 << s.q }

// Inner returns the wrapped protocol.
func (s *Stacker) Inner() sigma.Stackable { return s.inner }

// Setup samples public parameters for this stack.
func (s *Stacker) Setup(rng io.Reader) (*binding.PublicParams, error) {
	return binding.Setup(s.q, rng)
}

// SetupFromLabel derives public parameters for this stack from label.
func (s *Stacker) SetupFromLabel(label []byte) *binding.PublicParams {
	return binding.SetupFromLabel(s.q, label)
}

// NewStatement builds a stacked statement. Missing clauses are padded with
// filler statements of the inner protocol.
func (s *Stacker) NewStatement(pp *binding.PublicParams, clauses []sigma.Statement) (*Statement, error) {
	if pp == nil || pp.Height() != s.q {
		return nil, ErrHeightMismatch
	}
	if len(clauses) > s.Clauses() {
		return nil, fmt.Errorf("%w: got %d, stack holds %d", ErrClauseCount, len(clauses), s.Clauses())
	}
	padded := make([]sigma.Statement, s.Clauses())
	copy(padded, clauses)
	for i := len(clauses); i < len(padded); i++ {
		padded[i] = s.inner.Filler(i)
	}
	return &Statement{Params: pp, Clauses: padded}, nil
}

// NewWitness builds a stacked witness for the clause at index.
func (s *Stacker) NewWitness(inner sigma.Witness, index int) (*Witness, error) {
	idx, err := binding.NewBindingIndex(s.q, index)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexMismatch, err)
	}
	return &Witness{Inner: inner, Index: idx}, nil
}

func (s *Stacker) statement(stmt sigma.Statement) (*Statement, error) {
	st, ok := stmt.(*Statement)
	if !ok || st == nil {
		return nil, fmt.Errorf("%w: %T", sigma.ErrStatementType, stmt)
	}
	if st.Params == nil || st.Height() != s.q || len(st.Clauses) != s.Clauses() {
		return nil, ErrHeightMismatch
	}
	return st, nil
}

func (s *Stacker) witness(wit sigma.Witness) (*Witness, error) {
	w, ok := wit.(*Witness)
	if !ok || w == nil {
		return nil, fmt.Errorf("%w: %T", sigma.ErrWitnessType, wit)
	}
	if !w.Index.Valid() || w.Index.Height() != s.q {
		return nil, ErrIndexMismatch
	}
	return w, nil
}

// First runs the inner protocol on the real clause and commits to its first
// message with every other slot holding the default message.
func (s *Stacker) First(ctx context.Context, stmt sigma.Statement, wit sigma.Witness, rng io.Reader) (sigma.State, sigma.Message, error) {
	st, err := s.statement(stmt)
	if err != nil {
		return nil, nil, fmt.Errorf("stack first: %w", err)
	}
	w, err := s.witness(wit)
	if err != nil {
		return nil, nil, fmt.Errorf("stack first: %w", err)
	}
	i := w.Index.Index()

	innerState, realA, err := s.inner.First(ctx, st.Clauses[i], w.Inner, rng)
	if err != nil {
		return nil, nil, fmt.Errorf("stack first: %w", err)
	}
	msgs := make([]sigma.Message, s.Clauses())
	for j := range msgs {
		msgs[j] = s.inner.DefaultA()
	}
	msgs[i] = realA

	ck, ek, err := binding.Gen(st.Params, w.Index, rng)
	if err != nil {
		sigma.Zeroize(innerState)
		return nil, nil, fmt.Errorf("stack first: %w", err)
	}
	com, r, err := binding.EquivCom(ek, msgs, nil, rng)
	if err != nil {
		sigma.Zeroize(innerState)
		ek.Zeroize()
		return nil, nil, fmt.Errorf("stack first: %w", err)
	}
	s.logger.Debug(ctx, "stack first", "height", s.q, "clauses", s.Clauses(), logging.Redacted("binding_index"))

	state := &State{inner: innerState, realA: realA, messages: msgs, key: ck, equiv: ek, rand: r}
	return state, &MessageA{Key: ck, Commitment: com}, nil
}

// Second draws the challenge shared by every clause.
func (s *Stacker) Second(rng io.Reader) (*group.Scalar, error) {
	return s.inner.Second(rng)
}

// Third answers the real clause, simulates every other clause against the
// shared answer and equivocates the commitment opening to the completed vector.
func (s *Stacker) Third(ctx context.Context, stmt sigma.Statement, state sigma.State, wit sigma.Witness, c *group.Scalar, rng io.Reader) (sigma.Message, error) {
	st, err := s.statement(stmt)
	if err != nil {
		return nil, fmt.Errorf("stack third: %w", err)
	}
	ps, ok := state.(*State)
	if !ok || ps == nil {
		return nil, fmt.Errorf("stack third: %w: %T", sigma.ErrStateType, state)
	}
	w, err := s.witness(wit)
	if err != nil {
		return nil, fmt.Errorf("stack third: %w", err)
	}
	if w.Index != ps.equiv.Index() {
		return nil, fmt.Errorf("stack third: %w", ErrIndexMismatch)
	}
	i := w.Index.Index()

	z, err := s.inner.Third(ctx, st.Clauses[i], ps.inner, w.Inner, c, rng)
	if err != nil {
		return nil, fmt.Errorf("stack third: %w", err)
	}
	next := make([]sigma.Message, s.Clauses())
	for j := range next {
		if j == i {
			next[j] = ps.realA
			continue
		}
		a, err := s.inner.SimulateA(st.Clauses[j], c, z)
		if err != nil {
			return nil, fmt.Errorf("stack third: clause %d: %w", j, err)
		}
		next[j] = a
	}
	r := binding.Equiv(ps.equiv, ps.messages, next, ps.rand)
	s.logger.Debug(ctx, "stack third", "height", s.q, logging.Redacted("binding_index"))
	return &MessageZ{Key: ps.key, Inner: z, Randomness: r}, nil
}

// Verify recomputes every clause's first message from the shared answer,
// rebinds the vector and checks each clause. All checks run regardless of
// earlier failures.
func (s *Stacker) Verify(stmt sigma.Statement, a sigma.Message, c *group.Scalar, z sigma.Message) bool {
	st, err := s.statement(stmt)
	if err != nil {
		return false
	}
	ma, ok1 := a.(*MessageA)
	mz, ok2 := z.(*MessageZ)
	if !ok1 || !ok2 || ma == nil || mz == nil || c == nil || !s.wellFormed(ma.Key, mz) {
		return false
	}

	accept := 1
	msgs := make([]sigma.Message, s.Clauses())
	for j, clause := range st.Clauses {
		aj, err := s.inner.SimulateA(clause, c, mz.Inner)
		if err != nil {
			accept = 0
			msgs[j] = s.inner.DefaultA()
			continue
		}
		msgs[j] = aj
		accept &= boolToInt(s.inner.Verify(clause, aj, c, mz.Inner))
	}
	com := binding.Bind(st.Params, mz.Key, msgs, mz.Randomness)
	accept &= boolToInt(ma.Key.Equal(mz.Key))
	accept &= boolToInt(com.Equal(ma.Commitment))
	return accept == 1
}

func (s *Stacker) wellFormed(key *binding.CommitKey, mz *MessageZ) bool {
	return key != nil && mz.Key != nil && mz.Inner != nil && mz.Randomness != nil &&
		key.Height() == s.q && mz.Key.Height() == s.q && mz.Randomness.Height() == s.q
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Simulate produces an accepting transcript without a witness. It simulates
// clause 0 of the inner protocol to obtain a challenge and a shared answer and
// binds the vector every verifier would recompute.
func (s *Stacker) Simulate(stmt sigma.Statement, rng io.Reader) (*sigma.Transcript, error) {
	st, err := s.statement(stmt)
	if err != nil {
		return nil, fmt.Errorf("stack simulate: %w", err)
	}
	t, err := s.inner.Simulate(st.Clauses[0], rng)
	if err != nil {
		return nil, fmt.Errorf("stack simulate: %w", err)
	}
	idx := binding.MustBindingIndex(s.q, 0)
	ck, ek, err := binding.Gen(st.Params, idx, rng)
	if err != nil {
		return nil, fmt.Errorf("stack simulate: %w", err)
	}
	ek.Zeroize()
	r, err := binding.NewRandomness(s.q, rng)
	if err != nil {
		return nil, fmt.Errorf("stack simulate: %w", err)
	}
	mz := &MessageZ{Key: ck, Inner: t.Z, Randomness: r}
	a, err := s.SimulateA(st, t.C, mz)
	if err != nil {
		return nil, err
	}
	return &sigma.Transcript{A: a, C: t.C, Z: mz}, nil
}

// SimulateA rebuilds the unique first message consistent with c and z.
func (s *Stacker) SimulateA(stmt sigma.Statement, c *group.Scalar, z sigma.Message) (sigma.Message, error) {
	st, err := s.statement(stmt)
	if err != nil {
		return nil, fmt.Errorf("stack simulate: %w", err)
	}
	mz, ok := z.(*MessageZ)
	if !ok || mz == nil || !s.wellFormed(mz.Key, mz) {
		return nil, fmt.Errorf("stack simulate: %w: %T", sigma.ErrMessageType, z)
	}
	msgs := make([]sigma.Message, s.Clauses())
	for j, clause := range st.Clauses {
		a, err := s.inner.SimulateA(clause, c, mz.Inner)
		if err != nil {
			return nil, fmt.Errorf("stack simulate: clause %d: %w", j, err)
		}
		msgs[j] = a
	}
	return &MessageA{Key: mz.Key, Commitment: binding.Bind(st.Params, mz.Key, msgs, mz.Randomness)}, nil
}

// DefaultA returns a first message made of identity points.
func (s *Stacker) DefaultA() sigma.Message {
	return &MessageA{Key: binding.NeutralCommitKey(s.q), Commitment: binding.NeutralCommitment()}
}

// Filler returns a stacked statement made only of inner filler statements,
// under parameters derived from i.
func (s *Stacker) Filler(i int) sigma.Statement {
	n := s.Clauses()
	clauses := make([]sigma.Statement, n)
	for j := range clauses {
		clauses[j] = s.inner.Filler(i*n + j)
	}
	return &Statement{
		Params:  binding.SetupFromLabel(s.q, []byte(fillerDomain+"/"+strconv.Itoa(i))),
		Clauses: clauses,
	}
}

func (s *Stacker) ReadA(b *cryptobyte.String, _ sigma.Statement) (sigma.Message, bool) {
	ck, ok := binding.ReadCommitKey(b, s.q)
	if !ok {
		return nil, false
	}
	com, ok := binding.ReadCommitment(b)
	if !ok {
		return nil, false
	}
	return &MessageA{Key: ck, Commitment: com}, true
}

// ReadZ decodes a third message. The inner answer is read against clause 0;
// every clause of a stack shares its shape.
func (s *Stacker) ReadZ(b *cryptobyte.String, stmt sigma.Statement) (sigma.Message, bool) {
	st, err := s.statement(stmt)
	if err != nil {
		return nil, false
	}
	ck, ok := binding.ReadCommitKey(b, s.q)
	if !ok {
		return nil, false
	}
	z, ok := s.inner.ReadZ(b, st.Clauses[0])
	if !ok {
		return nil, false
	}
	r, ok := binding.ReadRandomness(b, s.q)
	if !ok {
		return nil, false
	}
	return &MessageZ{Key: ck, Inner: z, Randomness: r}, true
}
