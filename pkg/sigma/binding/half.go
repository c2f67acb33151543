package binding

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/cryptobyte"

	"github.com/coinbase/cb-sigma-go/pkg/sigma"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/group"
)

const (
	messageDomain = "cb-sigma/binding/message"
	paramsDomain  = "cb-sigma/binding/params"
)

// HalfParams are the public parameters of the 1-of-2 scheme: two independent
// generators g0 and h.
type HalfParams struct {
	G0 *group.Point
	H  *group.Point
}

// HalfSetup samples fresh parameters.
func HalfSetup(rng io.Reader) (*HalfParams, error) {
	g0, err := group.RandomPoint(rng)
	if err != nil {
		return nil, fmt.Errorf("binding setup: %w", err)
	}
	h, err := group.RandomPoint(rng)
	if err != nil {
		return nil, fmt.Errorf("binding setup: %w", err)
	}
	return &HalfParams{G0: g0, H: h}, nil
}

// halfSetupFromLabel derives parameters for one tree level from a label, so
// that nobody knows a relation between the generators.
func halfSetupFromLabel(label []byte, level int) *HalfParams {
	var lvl [4]byte
	binary.BigEndian.PutUint32(lvl[:], uint32(level))
	return &HalfParams{
		G0: group.HashToPoint([]byte(paramsDomain), label, lvl[:], []byte("g0")),
		H:  group.HashToPoint([]byte(paramsDomain), label, lvl[:], []byte("h")),
	}
}

// HalfCommitKey is the public key of the 1-of-2 scheme. Only g1 is carried;
// g2 is always g1 + g0.
type HalfCommitKey struct {
	G1 *group.Point
}

// G2 returns the generator of the second slot.
func (ck *HalfCommitKey) G2(pp *HalfParams) *group.Point {
	return ck.G1.Add(pp.G0)
}

// HalfEquivKey is the trapdoor of the 1-of-2 scheme. Side is the binding slot;
// the other slot's generator is h·E.
type HalfEquivKey struct {
	Side Side
	E    *group.Scalar
	Key  *HalfCommitKey
}

// Zeroize wipes the trapdoor.
func (ek *HalfEquivKey) Zeroize() {
	if ek != nil {
		ek.E.Zeroize()
	}
}

// HalfRandomness holds the blinding scalar of each slot.
type HalfRandomness struct {
	R1 *group.Scalar
	R2 *group.Scalar
}

// NewHalfRandomness samples both blinding scalars.
func NewHalfRandomness(rng io.Reader) (HalfRandomness, error) {
	r1, err := group.RandomScalar(rng)
	if err != nil {
		return HalfRandomness{}, err
	}
	r2, err := group.RandomScalar(rng)
	if err != nil {
		return HalfRandomness{}, err
	}
	return HalfRandomness{R1: r1, R2: r2}, nil
}

// Clone returns a deep copy of r.
func (r HalfRandomness) Clone() HalfRandomness {
	return HalfRandomness{R1: r.R1.Clone(), R2: r.R2.Clone()}
}

func (r HalfRandomness) zeroize() {
	r.R1.Zeroize()
	r.R2.Zeroize()
}

// Encode appends both scalars to b.
func (r HalfRandomness) Encode(b *cryptobyte.Builder) {
	r.R1.Encode(b)
	r.R2.Encode(b)
}

func readHalfRandomness(s *cryptobyte.String) (HalfRandomness, bool) {
	r1, ok := group.ReadScalar(s)
	if !ok {
		return HalfRandomness{}, false
	}
	r2, ok := group.ReadScalar(s)
	if !ok {
		return HalfRandomness{}, false
	}
	return HalfRandomness{R1: r1, R2: r2}, true
}

// Gen samples a key pair whose binding slot is side.
func (pp *HalfParams) Gen(side Side, rng io.Reader) (*HalfCommitKey, *HalfEquivKey, error) {
	e, err := group.RandomScalar(rng)
	if err != nil {
		return nil, nil, fmt.Errorf("binding gen: %w", err)
	}
	he := pp.H.Mul(e)

	var g1 *group.Point
	switch side {
	case Left:
		// g2 = h·e, so the second slot is the trapdoor slot.
		g1 = he.Sub(pp.G0)
	case Right:
		g1 = he
	default:
		panic(fmt.Sprintf("binding: invalid side %d", int(side)))
	}
	ck := &HalfCommitKey{G1: g1}
	return ck, &HalfEquivKey{Side: side, E: e, Key: ck}, nil
}

// Bind commits to (m1, m2) under ck with randomness r. A nil message commits
// to the scalar 0.
func (pp *HalfParams) Bind(ck *HalfCommitKey, m1, m2 sigma.Message, r HalfRandomness) Commitment {
	return Commitment{
		C1: pp.commitSlot(ck.G1, m1, r.R1),
		C2: pp.commitSlot(ck.G2(pp), m2, r.R2),
	}
}

// EquivCom is Bind under the key inside ek. When r is nil fresh randomness is
// sampled from rng.
func (pp *HalfParams) EquivCom(ek *HalfEquivKey, m1, m2 sigma.Message, r *HalfRandomness, rng io.Reader) (Commitment, HalfRandomness, error) {
	var rand HalfRandomness
	if r != nil {
		rand = *r
	} else {
		var err error
		if rand, err = NewHalfRandomness(rng); err != nil {
			return Commitment{}, HalfRandomness{}, err
		}
	}
	return pp.Bind(ek.Key, m1, m2, rand), rand, nil
}

// Equiv rewrites the opening of the equivocable slot from the messages in from
// to those in to. The binding slot's randomness is copied unchanged and its
// messages are not read. Binding to with the result reproduces the commitment
// of from under r.
func (ek *HalfEquivKey) Equiv(from, to [2]sigma.Message, r HalfRandomness) HalfRandomness {
	slot := ek.Side.hidingSlot()
	// h·r + h·e·m = h·r' + h·e·m'  =>  r' = r - e·(m' - m)
	shift := ek.E.Mul(hashMessage(to[slot]).Sub(hashMessage(from[slot])))

	out := r.Clone()
	if slot == 0 {
		out.R1 = r.R1.Sub(shift)
	} else {
		out.R2 = r.R2.Sub(shift)
	}
	return out
}

func (pp *HalfParams) commitSlot(g *group.Point, m sigma.Message, r *group.Scalar) *group.Point {
	return pp.H.Mul(r).Add(g.Mul(hashMessage(m)))
}

func hashMessage(m sigma.Message) *group.Scalar {
	if m == nil {
		return new(group.Scalar)
	}
	return group.HashToScalar([]byte(messageDomain), sigma.Encode(m))
}
