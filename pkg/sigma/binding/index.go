package binding

import (
	"errors"
	"fmt"
)

const (
	// MinHeight is the smallest tree height a BindingIndex may have.
	MinHeight = 2

	// MaxHeight bounds the tree height so that 2^q fits comfortably in an int.
	MaxHeight = 30
)

// ErrInvalidIndex indicates a binding index outside its tree.
var ErrInvalidIndex = errors.New("binding: invalid binding index")

// Side selects one of the two slots of a HalfBinding commitment.
type Side int

const (
	// Left binds the first slot; the second slot is equivocable.
	Left Side = iota
	// Right binds the second slot; the first slot is equivocable.
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// hidingSlot returns the slot number (0 or 1) that is equivocable for s.
func (s Side) hidingSlot() int {
	if s == Left {
		return 1
	}
	return 0
}

// BindingIndex is a leaf position in a binary tree of height q with 2^q leaves.
// It is immutable.
type BindingIndex struct {
	q      int
	length int
	index  int
}

// NewBindingIndex returns the index of leaf index in a tree of height q.
func NewBindingIndex(q, index int) (BindingIndex, error) {
	if q < MinHeight || q > MaxHeight {
		return BindingIndex{}, fmt.Errorf("%w: height %d outside [%d, %d]", ErrInvalidIndex, q, MinHeight, MaxHeight)
	}
	length := 1 << q
	if index < 0 || index >= length {
		return BindingIndex{}, fmt.Errorf("%w: index %d outside [0, %d)", ErrInvalidIndex, index, length)
	}
	return BindingIndex{q: q, length: length, index: index}, nil
}

// MustBindingIndex is like NewBindingIndex but panics on invalid input.
func MustBindingIndex(q, index int) BindingIndex {
	b, err := NewBindingIndex(q, index)
	if err != nil {
		panic(err)
	}
	return b
}

// Height returns q.
func (b BindingIndex) Height() int { return b.q }

// Len returns 2^q.
func (b BindingIndex) Len() int { return b.length }

// Index returns the leaf number.
func (b BindingIndex) Index() int { return b.index }

// Valid reports whether b was built by NewBindingIndex.
func (b BindingIndex) Valid() bool {
	return b.q >= MinHeight && b.length == 1<<b.q && b.index >= 0 && b.index < b.length
}

func (b BindingIndex) mustValid() {
	if !b.Valid() {
		panic("binding: use of zero or malformed BindingIndex")
	}
}

// Outer returns the half of the tree that contains the leaf.
func (b BindingIndex) Outer() Side {
	b.mustValid()
	if b.index < b.length/2 {
		return Left
	}
	return Right
}

// InnerRaw returns the leaf's position within its half.
func (b BindingIndex) InnerRaw() int {
	b.mustValid()
	return b.index % (b.length / 2)
}

// Inner returns the leaf's index one level down. It panics at MinHeight, where
// the inner position is a base side; use BaseSide there.
func (b BindingIndex) Inner() BindingIndex {
	b.mustValid()
	if b.q == MinHeight {
		panic("binding: Inner called at base height")
	}
	return BindingIndex{q: b.q - 1, length: b.length / 2, index: b.InnerRaw()}
}

// BaseSide returns the HalfBinding side selected by the inner position of an
// index at MinHeight.
func (b BindingIndex) BaseSide() Side {
	b.mustValid()
	if b.q != MinHeight {
		panic("binding: BaseSide called above base height")
	}
	if b.InnerRaw() == 0 {
		return Left
	}
	return Right
}

// Path returns the side taken at every level, base level first. Entry q-1 is
// Outer().
func (b BindingIndex) Path() []Side {
	b.mustValid()
	path := make([]Side, b.q)
	cur := b
	for cur.q > MinHeight {
		path[cur.q-1] = cur.Outer()
		cur = cur.Inner()
	}
	path[1] = cur.Outer()
	path[0] = cur.BaseSide()
	return path
}

// SideAt returns the side taken at level (1 for the base, q for the root).
func (b BindingIndex) SideAt(level int) Side {
	if level < 1 || level > b.q {
		panic(fmt.Sprintf("binding: level %d outside [1, %d]", level, b.q))
	}
	return b.Path()[level-1]
}

// String hides the leaf number; which clause is real must not reach logs.
func (b BindingIndex) String() string {
	return fmt.Sprintf("BindingIndex(q=%d, [redacted])", b.q)
}
