package binding_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-sigma-go/pkg/sigma/binding"
)

func TestNewBindingIndexRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name     string
		q, index int
	}{
		{"height too small", 1, 0},
		{"height zero", 0, 0},
		{"height too large", binding.MaxHeight + 1, 0},
		{"negative index", 2, -1},
		{"index equals length", 2, 4},
		{"index past length", 3, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := binding.NewBindingIndex(tt.q, tt.index)
			require.ErrorIs(t, err, binding.ErrInvalidIndex)
			require.Panics(t, func() { binding.MustBindingIndex(tt.q, tt.index) })
		})
	}
}

func TestBindingIndexDecomposition(t *testing.T) {
	idx := binding.MustBindingIndex(3, 6)
	require.Equal(t, 3, idx.Height())
	require.Equal(t, 8, idx.Len())
	require.Equal(t, 6, idx.Index())
	require.Equal(t, binding.Right, idx.Outer())
	require.Equal(t, 2, idx.InnerRaw())

	inner := idx.Inner()
	require.Equal(t, 2, inner.Height())
	require.Equal(t, 2, inner.Index())
	require.Equal(t, binding.Right, inner.Outer())
	require.Equal(t, binding.Left, inner.BaseSide())

	require.Panics(t, func() { inner.Inner() })
	require.Panics(t, func() { idx.BaseSide() })
	require.Panics(t, func() { idx.SideAt(0) })
	require.Panics(t, func() { idx.SideAt(4) })
	require.Panics(t, func() { binding.BindingIndex{}.Path() })
	require.False(t, binding.BindingIndex{}.Valid())
}

// Every (q, index) pair must decode to its own root-to-leaf path, and that path
// must be the binary expansion of the index.
func TestBindingIndexPathsAreUnique(t *testing.T) {
	for q := binding.MinHeight; q <= 8; q++ {
		seen := make(map[string]int)
		for i := 0; i < 1<<q; i++ {
			idx := binding.MustBindingIndex(q, i)
			path := idx.Path()
			require.Len(t, path, q)

			key := make([]byte, q)
			leaf := 0
			for level, side := range path {
				key[level] = byte('0' + int(side))
				require.Equal(t, side, idx.SideAt(level+1))
				if side == binding.Right {
					leaf |= 1 << level
				}
			}
			require.Equal(t, i, leaf, "q=%d index=%d", q, i)

			prev, dup := seen[string(key)]
			require.False(t, dup, "q=%d: indices %d and %d share a path", q, prev, i)
			seen[string(key)] = i
		}
		require.Len(t, seen, 1<<q)
	}
}

func TestBindingIndexStringRedactsLeaf(t *testing.T) {
	idx := binding.MustBindingIndex(4, 13)
	require.NotContains(t, idx.String(), "13")
	require.Equal(t, "left", binding.Left.String())
	require.Equal(t, "right", binding.Right.String())
}
