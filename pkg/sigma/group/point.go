package group

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/cryptobyte"
)

// PointSize is the length of a compressed point encoding.
const PointSize = 33

var (
	// ErrPointLength indicates a point encoding of the wrong length.
	ErrPointLength = errors.New("group: invalid point length")

	// ErrInvalidPoint indicates bytes that do not decode to a curve point.
	ErrInvalidPoint = errors.New("group: invalid point encoding")
)

var identityEncoding [PointSize]byte

// Point is an element of the secp256k1 group. Points are kept in affine form;
// the zero value is the identity.
type Point struct {
	p btcec.JacobianPoint
}

// Identity returns the group identity.
func Identity() *Point {
	return new(Point)
}

// Generator returns the standard base point G.
func Generator() *Point {
	return MulBase(NewScalarFromUint32(1))
}

// MulBase returns k·G.
func MulBase(k *Scalar) *Point {
	r := new(Point)
	btcec.ScalarBaseMultNonConst(&k.v, &r.p)
	r.normalize()
	return r
}

// RandomPoint samples a uniformly random group element from rng. Its discrete
// logarithm is discarded.
func RandomPoint(rng io.Reader) (*Point, error) {
	k, err := RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	defer k.Zeroize()
	return MulBase(k), nil
}

// NewPointFromBytes decodes a 33-byte compressed point. 33 zero bytes decode to
// the identity.
func NewPointFromBytes(b []byte) (*Point, error) {
	if len(b) != PointSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrPointLength, len(b))
	}
	if subtle.ConstantTimeCompare(b, identityEncoding[:]) == 1 {
		return Identity(), nil
	}
	pk, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	r := new(Point)
	pk.AsJacobian(&r.p)
	return r, nil
}

// ReadPoint consumes one point encoding from s.
func ReadPoint(s *cryptobyte.String) (*Point, bool) {
	var b []byte
	if !s.ReadBytes(&b, PointSize) {
		return nil, false
	}
	p, err := NewPointFromBytes(b)
	if err != nil {
		return nil, false
	}
	return p, true
}

func (p *Point) normalize() {
	if p.IsIdentity() {
		p.p = btcec.JacobianPoint{}
		return
	}
	p.p.ToAffine()
}

// IsIdentity reports whether p is the identity.
func (p *Point) IsIdentity() bool {
	return (p.p.X.IsZero() && p.p.Y.IsZero()) || p.p.Z.IsZero()
}

// Add returns p + q.
func (p *Point) Add(q *Point) *Point {
	r := new(Point)
	btcec.AddNonConst(&p.p, &q.p, &r.p)
	r.normalize()
	return r
}

// Neg returns -p.
func (p *Point) Neg() *Point {
	r := new(Point)
	if p.IsIdentity() {
		return r
	}
	r.p.Set(&p.p)
	r.p.Y.Negate(1)
	r.p.Y.Normalize()
	return r
}

// Sub returns p - q.
func (p *Point) Sub(q *Point) *Point {
	return p.Add(q.Neg())
}

// Mul returns k·p.
func (p *Point) Mul(k *Scalar) *Point {
	r := new(Point)
	if p.IsIdentity() {
		return r
	}
	btcec.ScalarMultNonConst(&k.v, &p.p, &r.p)
	r.normalize()
	return r
}

// Equal reports whether p and q encode to the same bytes.
func (p *Point) Equal(q *Point) bool {
	if p == nil || q == nil {
		return p == q
	}
	return subtle.ConstantTimeCompare(p.Bytes(), q.Bytes()) == 1
}

// Bytes returns the 33-byte compressed encoding.
func (p *Point) Bytes() []byte {
	if p.IsIdentity() {
		return make([]byte, PointSize)
	}
	x, y := p.p.X, p.p.Y
	return btcec.NewPublicKey(&x, &y).SerializeCompressed()
}

// Size returns PointSize.
func (p *Point) Size() int {
	return PointSize
}

// Encode appends the compressed encoding to b.
func (p *Point) Encode(b *cryptobyte.Builder) {
	b.AddBytes(p.Bytes())
}
