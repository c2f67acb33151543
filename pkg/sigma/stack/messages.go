package stack

import (
	"golang.org/x/crypto/cryptobyte"

	"github.com/coinbase/cb-sigma-go/pkg/sigma"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/binding"
)

// Statement is a stacked statement: public parameters and one statement of
// the wrapped protocol per clause.
type Statement struct {
	Params  *binding.PublicParams
	Clauses []sigma.Statement
}

// Height returns q.
func (s *Statement) Height() int { return s.Params.Height() }

// Witness names the real clause and carries its witness.
type Witness struct {
	Inner sigma.Witness
	Index binding.BindingIndex
}

// Zeroize wipes the inner witness.
func (w *Witness) Zeroize() {
	if w != nil {
		sigma.Zeroize(w.Inner)
	}
}

// State is the prover state between First and Third.
type State struct {
	inner    sigma.State
	realA    sigma.Message
	messages []sigma.Message
	key      *binding.CommitKey
	equiv    *binding.EquivKey
	rand     *binding.Randomness
}

// Zeroize wipes the inner state, the trapdoors and the commitment randomness.
func (st *State) Zeroize() {
	if st == nil {
		return
	}
	sigma.Zeroize(st.inner)
	st.equiv.Zeroize()
	st.rand.Zeroize()
}

// MessageA is the first message: the commit key and the commitment to every
// clause's first message.
type MessageA struct {
	Key        *binding.CommitKey
	Commitment binding.Commitment
}

func (m *MessageA) Size() int {
	return m.Key.Size() + m.Commitment.Size()
}

func (m *MessageA) Encode(b *cryptobyte.Builder) {
	m.Key.Encode(b)
	m.Commitment.Encode(b)
}

// Equal reports whether two first messages encode identically.
func (m *MessageA) Equal(o *MessageA) bool {
	if m == nil || o == nil {
		return false
	}
	return m.Key.Equal(o.Key) && m.Commitment.Equal(o.Commitment)
}

// MessageZ is the third message: the commit key, the third message shared by
// every clause, and the opening of the commitment.
type MessageZ struct {
	Key        *binding.CommitKey
	Inner      sigma.Message
	Randomness *binding.Randomness
}

func (m *MessageZ) Size() int {
	return m.Key.Size() + m.Inner.Size() + m.Randomness.Size()
}

func (m *MessageZ) Encode(b *cryptobyte.Builder) {
	m.Key.Encode(b)
	m.Inner.Encode(b)
	m.Randomness.Encode(b)
}
