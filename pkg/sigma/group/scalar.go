package group

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/cryptobyte"
)

// ScalarSize is the length of a canonical scalar encoding.
const ScalarSize = 32

var (
	// ErrScalarLength indicates a scalar encoding of the wrong length.
	ErrScalarLength = errors.New("group: invalid scalar length")

	// ErrScalarOverflow indicates an encoding that is not reduced modulo the order.
	ErrScalarOverflow = errors.New("group: scalar not reduced modulo group order")
)

var order = btcec.S256().N

// Scalar is an element of the scalar field of secp256k1.
// The zero value is the scalar 0.
type Scalar struct {
	v btcec.ModNScalar
}

// NewScalarFromUint32 returns the scalar v.
func NewScalarFromUint32(v uint32) *Scalar {
	s := new(Scalar)
	s.v.SetInt(v)
	return s
}

// NewScalarFromBytes parses a canonical big-endian scalar encoding.
func NewScalarFromBytes(b []byte) (*Scalar, error) {
	if len(b) != ScalarSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrScalarLength, len(b))
	}
	var buf [ScalarSize]byte
	copy(buf[:], b)
	s := new(Scalar)
	if overflow := s.v.SetBytes(&buf); overflow != 0 {
		return nil, ErrScalarOverflow
	}
	return s, nil
}

// RandomScalar samples a uniform scalar from rng.
func RandomScalar(rng io.Reader) (*Scalar, error) {
	var wide [64]byte
	if _, err := io.ReadFull(rng, wide[:]); err != nil {
		return nil, fmt.Errorf("group: read randomness: %w", err)
	}
	return reduceWide(wide[:]), nil
}

// reduceWide interprets b as a big-endian integer and reduces it modulo the
// group order. With 64 input bytes the bias is negligible.
func reduceWide(b []byte) *Scalar {
	n := new(big.Int).SetBytes(b)
	n.Mod(n, order)
	var buf [ScalarSize]byte
	n.FillBytes(buf[:])
	s := new(Scalar)
	s.v.SetBytes(&buf)
	return s
}

// ReadScalar consumes one scalar encoding from s.
func ReadScalar(s *cryptobyte.String) (*Scalar, bool) {
	var b []byte
	if !s.ReadBytes(&b, ScalarSize) {
		return nil, false
	}
	out, err := NewScalarFromBytes(b)
	if err != nil {
		return nil, false
	}
	return out, true
}

// Add returns s + o.
func (s *Scalar) Add(o *Scalar) *Scalar {
	r := new(Scalar)
	r.v.Add2(&s.v, &o.v)
	return r
}

// Sub returns s - o.
func (s *Scalar) Sub(o *Scalar) *Scalar {
	var neg btcec.ModNScalar
	neg.NegateVal(&o.v)
	r := new(Scalar)
	r.v.Add2(&s.v, &neg)
	return r
}

// Mul returns s * o.
func (s *Scalar) Mul(o *Scalar) *Scalar {
	r := new(Scalar)
	r.v.Mul2(&s.v, &o.v)
	return r
}

// Neg returns -s.
func (s *Scalar) Neg() *Scalar {
	r := new(Scalar)
	r.v.NegateVal(&s.v)
	return r
}

// Inverse returns s^-1. The inverse of zero is zero.
func (s *Scalar) Inverse() *Scalar {
	r := new(Scalar)
	r.v.InverseValNonConst(&s.v)
	return r
}

// IsZero reports whether s is the scalar 0.
func (s *Scalar) IsZero() bool {
	return s.v.IsZero()
}

// Equal reports whether s and o are the same scalar in constant time.
func (s *Scalar) Equal(o *Scalar) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.v.Equals(&o.v)
}

// Clone returns a copy of s.
func (s *Scalar) Clone() *Scalar {
	r := new(Scalar)
	r.v.Set(&s.v)
	return r
}

// Bytes returns the canonical 32-byte big-endian encoding.
func (s *Scalar) Bytes() []byte {
	b := s.v.Bytes()
	return b[:]
}

// Size returns ScalarSize.
func (s *Scalar) Size() int {
	return ScalarSize
}

// Encode appends the canonical encoding to b.
func (s *Scalar) Encode(b *cryptobyte.Builder) {
	buf := s.v.Bytes()
	b.AddBytes(buf[:])
}

// Zeroize overwrites the scalar with zero. Call it on secrets once they are no
// longer needed.
func (s *Scalar) Zeroize() {
	if s == nil {
		return
	}
	s.v.Zero()
}

// String prints a redacted placeholder so scalars never end up in logs.
func (s *Scalar) String() string {
	return "Scalar([redacted])"
}
