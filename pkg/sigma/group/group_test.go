package group_test

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/cryptobyte"

	"github.com/coinbase/cb-sigma-go/pkg/sigma/group"
)

func TestScalarArithmetic(t *testing.T) {
	a, err := group.RandomScalar(rand.Reader)
	require.NoError(t, err)
	b, err := group.RandomScalar(rand.Reader)
	require.NoError(t, err)

	require.True(t, a.Add(b).Sub(b).Equal(a))
	require.True(t, a.Add(a.Neg()).IsZero())
	require.True(t, a.Mul(a.Inverse()).Equal(group.NewScalarFromUint32(1)))
	require.True(t, a.Mul(b).Equal(b.Mul(a)))
}

func TestScalarEncodingRoundTrip(t *testing.T) {
	a, err := group.RandomScalar(rand.Reader)
	require.NoError(t, err)

	enc := a.Bytes()
	require.Len(t, enc, group.ScalarSize)

	back, err := group.NewScalarFromBytes(enc)
	require.NoError(t, err)
	require.True(t, back.Equal(a))

	var b cryptobyte.Builder
	a.Encode(&b)
	require.Equal(t, enc, b.BytesOrPanic())
}

func TestScalarRejectsMalformed(t *testing.T) {
	_, err := group.NewScalarFromBytes(make([]byte, 31))
	require.ErrorIs(t, err, group.ErrScalarLength)

	overflow := bytes.Repeat([]byte{0xff}, group.ScalarSize)
	_, err = group.NewScalarFromBytes(overflow)
	require.ErrorIs(t, err, group.ErrScalarOverflow)
}

func TestScalarStringIsRedacted(t *testing.T) {
	a := group.NewScalarFromUint32(42)
	require.NotContains(t, a.String(), "42")
}

func TestPointArithmetic(t *testing.T) {
	a, err := group.RandomScalar(rand.Reader)
	require.NoError(t, err)
	b, err := group.RandomScalar(rand.Reader)
	require.NoError(t, err)

	g := group.Generator()
	require.True(t, g.Mul(a).Add(g.Mul(b)).Equal(group.MulBase(a.Add(b))))
	require.True(t, g.Mul(a).Sub(g.Mul(a)).IsIdentity())
	require.True(t, group.MulBase(a).Add(group.Identity()).Equal(group.MulBase(a)))
	require.True(t, group.Identity().Mul(a).IsIdentity())
	require.True(t, group.MulBase(new(group.Scalar)).IsIdentity())
}

func TestPointEncodingRoundTrip(t *testing.T) {
	p, err := group.RandomPoint(rand.Reader)
	require.NoError(t, err)

	tests := []struct {
		name  string
		point *group.Point
	}{
		{"random", p},
		{"generator", group.Generator()},
		{"negated", p.Neg()},
		{"identity", group.Identity()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := tt.point.Bytes()
			require.Len(t, enc, group.PointSize)
			back, err := group.NewPointFromBytes(enc)
			require.NoError(t, err)
			require.True(t, back.Equal(tt.point))

			s := cryptobyte.String(enc)
			read, ok := group.ReadPoint(&s)
			require.True(t, ok)
			require.True(t, read.Equal(tt.point))
			require.True(t, s.Empty())
		})
	}
}

func TestPointRejectsMalformed(t *testing.T) {
	_, err := group.NewPointFromBytes(make([]byte, 32))
	require.ErrorIs(t, err, group.ErrPointLength)

	bad := make([]byte, group.PointSize)
	bad[0] = 0x05
	_, err = group.NewPointFromBytes(bad)
	require.ErrorIs(t, err, group.ErrInvalidPoint)
}

func TestHashToScalarDeterministic(t *testing.T) {
	a := group.HashToScalar([]byte("abc"), []byte("def"))
	b := group.HashToScalar([]byte("abcdef"))
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(group.HashToScalar([]byte("abcdeg"))))
}

func TestHashToPoint(t *testing.T) {
	p := group.HashToPoint([]byte("label"), []byte{1})
	q := group.HashToPoint([]byte("label"), []byte{1})
	r := group.HashToPoint([]byte("label"), []byte{2})
	require.False(t, p.IsIdentity())
	require.True(t, p.Equal(q))
	require.False(t, p.Equal(r))
}

func TestXOFReaderReplays(t *testing.T) {
	a := make([]byte, 96)
	b := make([]byte, 96)
	_, err := io.ReadFull(group.NewXOFReader([]byte("seed")), a)
	require.NoError(t, err)
	_, err = io.ReadFull(group.NewXOFReader([]byte("seed")), b)
	require.NoError(t, err)
	require.Equal(t, a, b)

	s1, err := group.RandomScalar(group.NewXOFReader([]byte("seed")))
	require.NoError(t, err)
	s2, err := group.RandomScalar(group.NewXOFReader([]byte("other")))
	require.NoError(t, err)
	require.False(t, s1.Equal(s2))
}
