package sigma_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-sigma-go/pkg/sigma"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/group"
)

func TestEncodeConcatenates(t *testing.T) {
	s := group.NewScalarFromUint32(7)
	p := group.Generator()

	got := sigma.Encode(s, nil, p)
	require.Len(t, got, group.ScalarSize+group.PointSize)
	require.Equal(t, s.Bytes(), got[:group.ScalarSize])
	require.Equal(t, p.Bytes(), got[group.ScalarSize:])
	require.Equal(t, len(got), sigma.Size(s, nil, p))
}

func TestEncodeEmpty(t *testing.T) {
	require.Empty(t, sigma.Encode())
	require.Zero(t, sigma.Size())
}

type secret struct{ wiped bool }

func (s *secret) Zeroize() { s.wiped = true }

func TestZeroize(t *testing.T) {
	s := &secret{}
	sigma.Zeroize(s)
	require.True(t, s.wiped)

	// Values without secrets are ignored.
	sigma.Zeroize(42)
	sigma.Zeroize(nil)

	buf := []byte{1, 2, 3}
	sigma.ZeroizeBytes(buf)
	require.Equal(t, []byte{0, 0, 0}, buf)
}

func TestVerifyTranscriptRejectsIncomplete(t *testing.T) {
	require.False(t, sigma.VerifyTranscript(nil, nil, nil))
	require.False(t, sigma.VerifyTranscript(nil, nil, &sigma.Transcript{}))
}
