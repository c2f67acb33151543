package schnorr

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/crypto/cryptobyte"

	"github.com/coinbase/cb-sigma-go/pkg/sigma"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/group"
)

const fillerDomain = "cb-sigma/schnorr/filler"

// Protocol proves knowledge of x such that Y = x·base.
type Protocol struct {
	base *group.Point
}

var _ sigma.Stackable = (*Protocol)(nil)

// New returns the protocol over the standard generator.
func New() *Protocol {
	return &Protocol{base: group.Generator()}
}

// NewWithBase returns the protocol over an arbitrary base point.
func NewWithBase(base *group.Point) *Protocol {
	return &Protocol{base: base}
}

// KeyGen samples a witness and its statement.
func (p *Protocol) KeyGen(rng io.Reader) (*group.Point, *group.Scalar, error) {
	x, err := group.RandomScalar(rng)
	if err != nil {
		return nil, nil, err
	}
	return p.base.Mul(x), x, nil
}

// Statement returns the statement x·base for witness x.
func (p *Protocol) Statement(x *group.Scalar) *group.Point {
	return p.base.Mul(x)
}

// state is the prover's nonce.
type state struct {
	r *group.Scalar
}

func (s *state) Zeroize() {
	if s != nil {
		s.r.Zeroize()
	}
}

func (p *Protocol) First(_ context.Context, stmt sigma.Statement, wit sigma.Witness, rng io.Reader) (sigma.State, sigma.Message, error) {
	if _, ok := stmt.(*group.Point); !ok {
		return nil, nil, fmt.Errorf("schnorr first: %w: %T", sigma.ErrStatementType, stmt)
	}
	if _, ok := wit.(*group.Scalar); !ok {
		return nil, nil, fmt.Errorf("schnorr first: %w: %T", sigma.ErrWitnessType, wit)
	}
	r, err := group.RandomScalar(rng)
	if err != nil {
		return nil, nil, fmt.Errorf("schnorr first: %w", err)
	}
	return &state{r: r}, p.base.Mul(r), nil
}

func (p *Protocol) Second(rng io.Reader) (*group.Scalar, error) {
	return group.RandomScalar(rng)
}

func (p *Protocol) Third(_ context.Context, _ sigma.Statement, st sigma.State, wit sigma.Witness, c *group.Scalar, _ io.Reader) (sigma.Message, error) {
	s, ok := st.(*state)
	if !ok {
		return nil, fmt.Errorf("schnorr third: %w: %T", sigma.ErrStateType, st)
	}
	x, ok := wit.(*group.Scalar)
	if !ok {
		return nil, fmt.Errorf("schnorr third: %w: %T", sigma.ErrWitnessType, wit)
	}
	return s.r.Add(c.Mul(x)), nil
}

func (p *Protocol) Verify(stmt sigma.Statement, a sigma.Message, c *group.Scalar, z sigma.Message) bool {
	y, ok1 := stmt.(*group.Point)
	pa, ok2 := a.(*group.Point)
	sz, ok3 := z.(*group.Scalar)
	if !ok1 || !ok2 || !ok3 || y == nil || pa == nil || sz == nil || c == nil {
		return false
	}
	return p.base.Mul(sz).Equal(pa.Add(y.Mul(c)))
}

func (p *Protocol) Simulate(stmt sigma.Statement, rng io.Reader) (*sigma.Transcript, error) {
	c, err := group.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	z, err := group.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	a, err := p.SimulateA(stmt, c, z)
	if err != nil {
		return nil, err
	}
	return &sigma.Transcript{A: a, C: c, Z: z}, nil
}

func (p *Protocol) SimulateA(stmt sigma.Statement, c *group.Scalar, z sigma.Message) (sigma.Message, error) {
	y, ok := stmt.(*group.Point)
	if !ok || y == nil {
		return nil, fmt.Errorf("schnorr simulate: %w: %T", sigma.ErrStatementType, stmt)
	}
	sz, ok := z.(*group.Scalar)
	if !ok || sz == nil || c == nil {
		return nil, fmt.Errorf("schnorr simulate: %w: %T", sigma.ErrMessageType, z)
	}
	return p.base.Mul(sz).Sub(y.Mul(c)), nil
}

// DefaultA returns the identity point.
func (p *Protocol) DefaultA() sigma.Message {
	return group.Identity()
}

// Filler returns a hash-derived point for slot i.
func (p *Protocol) Filler(i int) sigma.Statement {
	return group.HashToPoint([]byte(fillerDomain), []byte(strconv.Itoa(i)))
}

func (p *Protocol) ReadA(s *cryptobyte.String, _ sigma.Statement) (sigma.Message, bool) {
	a, ok := group.ReadPoint(s)
	if !ok {
		return nil, false
	}
	return a, true
}

func (p *Protocol) ReadZ(s *cryptobyte.String, _ sigma.Statement) (sigma.Message, bool) {
	z, ok := group.ReadScalar(s)
	if !ok {
		return nil, false
	}
	return z, true
}
