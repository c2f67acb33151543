package binding

import (
	"crypto/subtle"

	"golang.org/x/crypto/cryptobyte"

	"github.com/coinbase/cb-sigma-go/pkg/sigma/group"
)

// CommitmentSize is the encoded size of a Commitment.
const CommitmentSize = 2 * group.PointSize

// Commitment is the pair of group elements produced by one HalfBinding call.
// At the root of a QBinding tree it commits to the whole message vector.
type Commitment struct {
	C1 *group.Point
	C2 *group.Point
}

// Size returns CommitmentSize.
func (c Commitment) Size() int { return CommitmentSize }

// Encode appends both compressed points to b.
func (c Commitment) Encode(b *cryptobyte.Builder) {
	c.C1.Encode(b)
	c.C2.Encode(b)
}

// Bytes returns the encoding of c.
func (c Commitment) Bytes() []byte {
	b := cryptobyte.NewFixedBuilder(make([]byte, 0, CommitmentSize))
	c.Encode(b)
	return b.BytesOrPanic()
}

// Equal compares two commitments in constant time.
func (c Commitment) Equal(o Commitment) bool {
	if c.C1 == nil || c.C2 == nil || o.C1 == nil || o.C2 == nil {
		return false
	}
	return subtle.ConstantTimeCompare(c.Bytes(), o.Bytes()) == 1
}

// ReadCommitment consumes one commitment from s.
func ReadCommitment(s *cryptobyte.String) (Commitment, bool) {
	c1, ok := group.ReadPoint(s)
	if !ok {
		return Commitment{}, false
	}
	c2, ok := group.ReadPoint(s)
	if !ok {
		return Commitment{}, false
	}
	return Commitment{C1: c1, C2: c2}, true
}
