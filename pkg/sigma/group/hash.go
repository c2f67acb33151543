package group

import (
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

const (
	hashToPointDomain = "cb-sigma/hash-to-point/v1"
	xofDomain         = "cb-sigma/xof/v1"
)

// HashToScalar hashes the concatenation of parts with BLAKE2b-512 and reduces
// the 64-byte digest modulo the group order.
func HashToScalar(parts ...[]byte) *Scalar {
	h, err := blake2b.New512(nil)
	if err != nil {
		panic(err)
	}
	for _, p := range parts {
		h.Write(p)
	}
	return reduceWide(h.Sum(nil))
}

// HashToPoint deterministically maps parts to a group element whose discrete
// logarithm nobody knows. Candidate x-coordinates are drawn from BLAKE2b-256
// with an increasing counter until one lies on the curve; each try succeeds with
// probability about one half.
func HashToPoint(parts ...[]byte) *Point {
	var ctr [4]byte
	candidate := make([]byte, PointSize)
	candidate[0] = 0x02
	for i := uint32(0); ; i++ {
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(err)
		}
		h.Write([]byte(hashToPointDomain))
		for _, p := range parts {
			h.Write(p)
		}
		binary.BigEndian.PutUint32(ctr[:], i)
		h.Write(ctr[:])
		copy(candidate[1:], h.Sum(nil))

		pk, err := btcec.ParsePubKey(candidate)
		if err != nil {
			continue
		}
		r := new(Point)
		pk.AsJacobian(&r.p)
		return r
	}
}

// NewXOFReader returns an endless deterministic byte stream keyed by seed.
// Two readers built from the same seed yield identical streams, which is how
// callers replay a random stream exactly.
func NewXOFReader(seed []byte) io.Reader {
	h := sha3.NewShake256()
	h.Write([]byte(xofDomain))
	h.Write(seed)
	return h
}
