package binding

import (
	"crypto/subtle"
	"fmt"
	"io"

	"golang.org/x/crypto/cryptobyte"

	"github.com/coinbase/cb-sigma-go/pkg/sigma"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/group"
)

// PublicParams holds one HalfParams per tree level, base level first.
type PublicParams struct {
	levels []*HalfParams
}

// Height returns q.
func (pp *PublicParams) Height() int { return len(pp.levels) }

// Len returns the number of leaves, 2^q.
func (pp *PublicParams) Len() int { return 1 << len(pp.levels) }

// Level returns the parameters of level i (1 is the base).
func (pp *PublicParams) Level(i int) *HalfParams { return pp.levels[i-1] }

// CommitKey is the public key of the 1-of-2^q scheme. It is carried in proofs.
type CommitKey struct {
	levels []*HalfCommitKey
}

// Height returns q.
func (ck *CommitKey) Height() int { return len(ck.levels) }

// Size returns the encoded size of ck.
func (ck *CommitKey) Size() int { return len(ck.levels) * group.PointSize }

// Encode appends g1 of every level, base level first.
func (ck *CommitKey) Encode(b *cryptobyte.Builder) {
	for _, l := range ck.levels {
		l.G1.Encode(b)
	}
}

// Equal compares two commit keys in constant time.
func (ck *CommitKey) Equal(o *CommitKey) bool {
	if ck == nil || o == nil || ck.Height() != o.Height() {
		return false
	}
	return subtle.ConstantTimeCompare(sigma.Encode(ck), sigma.Encode(o)) == 1
}

// ReadCommitKey consumes a commit key of height q from s.
func ReadCommitKey(s *cryptobyte.String, q int) (*CommitKey, bool) {
	ck := &CommitKey{levels: make([]*HalfCommitKey, 0, q)}
	for i := 0; i < q; i++ {
		g1, ok := group.ReadPoint(s)
		if !ok {
			return nil, false
		}
		ck.levels = append(ck.levels, &HalfCommitKey{G1: g1})
	}
	return ck, true
}

// NeutralCommitKey returns a commit key of height q whose points are all the
// identity. It is not usable for committing; it only fills placeholder slots.
func NeutralCommitKey(q int) *CommitKey {
	ck := &CommitKey{levels: make([]*HalfCommitKey, q)}
	for i := range ck.levels {
		ck.levels[i] = &HalfCommitKey{G1: group.Identity()}
	}
	return ck
}

// NeutralCommitment returns the commitment whose points are both the identity.
func NeutralCommitment() Commitment {
	return Commitment{C1: group.Identity(), C2: group.Identity()}
}

// EquivKey is the prover's trapdoor for a CommitKey. It is never serialized.
type EquivKey struct {
	params *PublicParams
	key    *CommitKey
	index  BindingIndex
	levels []*HalfEquivKey
}

// Index returns the binding leaf.
func (ek *EquivKey) Index() BindingIndex { return ek.index }

// CommitKey returns the public half of the key pair.
func (ek *EquivKey) CommitKey() *CommitKey { return ek.key }

// Zeroize wipes every trapdoor.
func (ek *EquivKey) Zeroize() {
	if ek == nil {
		return
	}
	for _, l := range ek.levels {
		l.Zeroize()
	}
}

// Randomness holds one HalfRandomness per tree level, base level first.
type Randomness struct {
	levels []HalfRandomness
}

// NewRandomness samples randomness for a tree of height q.
func NewRandomness(q int, rng io.Reader) (*Randomness, error) {
	r := &Randomness{levels: make([]HalfRandomness, 0, q)}
	for i := 0; i < q; i++ {
		l, err := NewHalfRandomness(rng)
		if err != nil {
			return nil, fmt.Errorf("binding randomness: %w", err)
		}
		r.levels = append(r.levels, l)
	}
	return r, nil
}

// Height returns q.
func (r *Randomness) Height() int { return len(r.levels) }

// Size returns the encoded size of r.
func (r *Randomness) Size() int { return len(r.levels) * 2 * group.ScalarSize }

// Encode appends both scalars of every level, base level first.
func (r *Randomness) Encode(b *cryptobyte.Builder) {
	for _, l := range r.levels {
		l.Encode(b)
	}
}

// Clone returns a deep copy of r.
func (r *Randomness) Clone() *Randomness {
	out := &Randomness{levels: make([]HalfRandomness, len(r.levels))}
	for i, l := range r.levels {
		out.levels[i] = l.Clone()
	}
	return out
}

// Zeroize wipes every blinding scalar.
func (r *Randomness) Zeroize() {
	if r == nil {
		return
	}
	for _, l := range r.levels {
		l.zeroize()
	}
}

// ReadRandomness consumes randomness for a tree of height q from s.
func ReadRandomness(s *cryptobyte.String, q int) (*Randomness, bool) {
	r := &Randomness{levels: make([]HalfRandomness, 0, q)}
	for i := 0; i < q; i++ {
		l, ok := readHalfRandomness(s)
		if !ok {
			return nil, false
		}
		r.levels = append(r.levels, l)
	}
	return r, true
}

// uncap splits the outermost level off a per-level slice.
func uncap[T any](levels []T) ([]T, T) {
	n := len(levels) - 1
	return levels[:n], levels[n]
}

func checkHeight(q int) {
	if q < MinHeight || q > MaxHeight {
		panic(fmt.Sprintf("binding: height %d outside [%d, %d]", q, MinHeight, MaxHeight))
	}
}

func checkVector(n, q int) {
	if n != 1<<q {
		panic(fmt.Sprintf("binding: message vector has %d entries, want %d", n, 1<<q))
	}
}

// Setup samples parameters for a tree of height q.
func Setup(q int, rng io.Reader) (*PublicParams, error) {
	checkHeight(q)
	pp := &PublicParams{levels: make([]*HalfParams, 0, q)}
	for i := 0; i < q; i++ {
		l, err := HalfSetup(rng)
		if err != nil {
			return nil, err
		}
		pp.levels = append(pp.levels, l)
	}
	return pp, nil
}

// SetupFromLabel derives parameters for a tree of height q from label. Parties
// that agree on the label agree on the parameters without a trusted setup.
func SetupFromLabel(q int, label []byte) *PublicParams {
	checkHeight(q)
	pp := &PublicParams{levels: make([]*HalfParams, 0, q)}
	for i := 0; i < q; i++ {
		pp.levels = append(pp.levels, halfSetupFromLabel(label, i+1))
	}
	return pp
}

// Gen samples a key pair that binds leaf idx.
func Gen(pp *PublicParams, idx BindingIndex, rng io.Reader) (*CommitKey, *EquivKey, error) {
	idx.mustValid()
	if idx.Height() != pp.Height() {
		panic(fmt.Sprintf("binding: index height %d does not match params height %d", idx.Height(), pp.Height()))
	}
	cks, eks, err := genLevels(pp.levels, idx.Path(), rng)
	if err != nil {
		return nil, nil, err
	}
	ck := &CommitKey{levels: cks}
	return ck, &EquivKey{params: pp, key: ck, index: idx, levels: eks}, nil
}

func genLevels(pp []*HalfParams, path []Side, rng io.Reader) ([]*HalfCommitKey, []*HalfEquivKey, error) {
	if len(pp) == 0 {
		return nil, nil, nil
	}
	innerPP, top := uncap(pp)
	innerPath, side := uncap(path)
	cks, eks, err := genLevels(innerPP, innerPath, rng)
	if err != nil {
		return nil, nil, err
	}
	ck, ek, err := top.Gen(side, rng)
	if err != nil {
		return nil, nil, err
	}
	return append(cks, ck), append(eks, ek), nil
}

// Bind commits to msgs, which must have exactly 2^q entries. Nil entries commit
// to zero.
func Bind(pp *PublicParams, ck *CommitKey, msgs []sigma.Message, r *Randomness) Commitment {
	q := pp.Height()
	checkHeight(q)
	checkVector(len(msgs), q)
	if ck.Height() != q || r.Height() != q {
		panic(fmt.Sprintf("binding: key height %d and randomness height %d do not match params height %d", ck.Height(), r.Height(), q))
	}
	return bindLevels(pp.levels, ck.levels, msgs, r.levels)
}

func bindLevels(pp []*HalfParams, ck []*HalfCommitKey, msgs []sigma.Message, r []HalfRandomness) Commitment {
	innerPP, top := uncap(pp)
	innerCK, topCK := uncap(ck)
	innerR, topR := uncap(r)
	if len(innerPP) == 0 {
		return top.Bind(topCK, msgs[0], msgs[1], topR)
	}
	half := len(msgs) / 2
	left := bindLevels(innerPP, innerCK, msgs[:half], innerR)
	right := bindLevels(innerPP, innerCK, msgs[half:], innerR)
	return top.Bind(topCK, left, right, topR)
}

// EquivCom commits to msgs under the key inside ek. When r is nil fresh
// randomness is sampled from rng. The commitment equals Bind with the returned
// randomness.
func EquivCom(ek *EquivKey, msgs []sigma.Message, r *Randomness, rng io.Reader) (Commitment, *Randomness, error) {
	if r == nil {
		var err error
		if r, err = NewRandomness(ek.params.Height(), rng); err != nil {
			return Commitment{}, nil, err
		}
	}
	return Bind(ek.params, ek.key, msgs, r), r, nil
}

// Equiv returns randomness that opens the commitment of from under r to the
// vector to. Both vectors must hold the same message at the binding leaf; the
// commitment value does not change. r is not modified.
func Equiv(ek *EquivKey, from, to []sigma.Message, r *Randomness) *Randomness {
	q := ek.params.Height()
	checkVector(len(from), q)
	checkVector(len(to), q)
	if r.Height() != q {
		panic(fmt.Sprintf("binding: randomness height %d does not match params height %d", r.Height(), q))
	}
	return &Randomness{levels: equivLevels(ek.params.levels, ek.key.levels, ek.levels, from, to, r.levels)}
}

func equivLevels(pp []*HalfParams, ck []*HalfCommitKey, ek []*HalfEquivKey, from, to []sigma.Message, r []HalfRandomness) []HalfRandomness {
	innerPP, _ := uncap(pp)
	innerCK, _ := uncap(ck)
	innerEK, topEK := uncap(ek)
	innerR, topR := uncap(r)
	if len(innerPP) == 0 {
		return []HalfRandomness{topEK.Equiv([2]sigma.Message{from[0], from[1]}, [2]sigma.Message{to[0], to[1]}, topR)}
	}

	half := len(from) / 2
	bindFrom, bindTo := from[:half], to[:half]
	hideFrom, hideTo := from[half:], to[half:]
	if topEK.Side == Right {
		bindFrom, bindTo, hideFrom, hideTo = hideFrom, hideTo, bindFrom, bindTo
	}

	// The binding half keeps its sub-commitment through the recursive equiv.
	// The hiding half is recommitted under the new shared randomness and the
	// change is absorbed by this level's trapdoor slot.
	innerNext := equivLevels(innerPP, innerCK, innerEK, bindFrom, bindTo, innerR)
	slot := topEK.Side.hidingSlot()
	var fromPair, toPair [2]sigma.Message
	fromPair[slot] = bindLevels(innerPP, innerCK, hideFrom, innerR)
	toPair[slot] = bindLevels(innerPP, innerCK, hideTo, innerNext)
	return append(innerNext, topEK.Equiv(fromPair, toPair, topR))
}
