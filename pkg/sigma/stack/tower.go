package stack

import (
	"errors"
	"fmt"
	"io"

	"github.com/coinbase/cb-sigma-go/pkg/sigma"
)

// Tower nests Stackers over a base protocol. Level 0 wraps the base protocol and
// every further level wraps the one below it.
type Tower struct {
	base     sigma.Stackable
	arities  []int
	stackers []*Stacker
}

// NewTower builds one Stacker per arity, innermost first. Arity is the number
// of children grouped under each node of that level; a Stacker pads the rest.
func NewTower(base sigma.Stackable, arities []int, opts ...Option) (*Tower, error) {
	if len(arities) == 0 {
		return nil, errors.New("stack: tower needs at least one level")
	}
	t := &Tower{base: base, arities: append([]int(nil), arities...)}
	var inner sigma.Stackable = base
	for level, n := range arities {
		s, err := New(inner, n, opts...)
		if err != nil {
			return nil, fmt.Errorf("tower level %d: %w", level, err)
		}
		t.stackers = append(t.stackers, s)
		inner = s
	}
	return t, nil
}

// Protocol returns the outermost Stacker.
func (t *Tower) Protocol() *Stacker {
	return t.stackers[len(t.stackers)-1]
}

// Depth returns the number of stacking levels.
func (t *Tower) Depth() int { return len(t.stackers) }

// Capacity returns the number of leaves the tower addresses.
func (t *Tower) Capacity() int {
	n := 1
	for _, a := range t.arities {
		n *= a
	}
	return n
}

// Statement groups leaves bottom-up: every arity-sized run of statements at one
// level becomes a single statement of the next. Each node gets fresh public
// parameters.
func (t *Tower) Statement(rng io.Reader, leaves []sigma.Statement) (*Statement, error) {
	if len(leaves) == 0 || len(leaves) > t.Capacity() {
		return nil, fmt.Errorf("%w: tower holds %d leaves, got %d", ErrClauseCount, t.Capacity(), len(leaves))
	}
	cur := leaves
	for level, s := range t.stackers {
		n := t.arities[level]
		next := make([]sigma.Statement, 0, (len(cur)+n-1)/n)
		for i := 0; i < len(cur); i += n {
			pp, err := s.Setup(rng)
			if err != nil {
				return nil, fmt.Errorf("tower level %d: %w", level, err)
			}
			st, err := s.NewStatement(pp, cur[i:min(i+n, len(cur))])
			if err != nil {
				return nil, fmt.Errorf("tower level %d: %w", level, err)
			}
			next = append(next, st)
		}
		cur = next
	}
	return cur[0].(*Statement), nil
}

// Witness wraps a base witness for the flattened leaf index into one stacked
// witness per level.
func (t *Tower) Witness(leaf int, w sigma.Witness) (*Witness, error) {
	if leaf < 0 || leaf >= t.Capacity() {
		return nil, fmt.Errorf("%w: leaf %d outside [0, %d)", ErrIndexMismatch, leaf, t.Capacity())
	}
	var out *Witness
	cur := w
	for level, s := range t.stackers {
		n := t.arities[level]
		sw, err := s.NewWitness(cur, leaf%n)
		if err != nil {
			return nil, fmt.Errorf("tower level %d: %w", level, err)
		}
		leaf /= n
		out, cur = sw, sw
	}
	return out, nil
}
