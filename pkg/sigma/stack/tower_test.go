package stack_test

import (
	"context"
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-sigma-go/pkg/sigma"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/group"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/schnorr"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/stack"
)

func keys(t *testing.T, p *schnorr.Protocol, n int) ([]sigma.Statement, []*group.Scalar) {
	t.Helper()
	stmts := make([]sigma.Statement, n)
	wits := make([]*group.Scalar, n)
	for i := range stmts {
		y, x, err := p.KeyGen(rand.Reader)
		require.NoError(t, err)
		stmts[i], wits[i] = y, x
	}
	return stmts, wits
}

// Four Schnorr leaves grouped into two super-clauses of two.
func TestTowerOfTwoLevels(t *testing.T) {
	base := schnorr.New()
	tower, err := stack.NewTower(base, []int{2, 2})
	require.NoError(t, err)
	require.Equal(t, 2, tower.Depth())
	require.Equal(t, 4, tower.Capacity())

	leaves, wits := keys(t, base, 4)
	stmt, err := tower.Statement(rand.Reader, leaves)
	require.NoError(t, err)
	require.Len(t, stmt.Clauses, 4)
	require.IsType(t, &stack.Statement{}, stmt.Clauses[0])
	require.IsType(t, &stack.Statement{}, stmt.Clauses[1])

	p := tower.Protocol()
	for leaf := range leaves {
		t.Run(fmt.Sprintf("leaf=%d", leaf), func(t *testing.T) {
			wit, err := tower.Witness(leaf, wits[leaf])
			require.NoError(t, err)
			require.Equal(t, leaf/2, wit.Index.Index())
			require.Equal(t, leaf%2, wit.Inner.(*stack.Witness).Index.Index())

			tr, err := sigma.Run(context.Background(), p, stmt, wit, rand.Reader)
			require.NoError(t, err)
			require.True(t, sigma.VerifyTranscript(p, stmt, tr))

			sim, err := p.Simulate(stmt, rand.Reader)
			require.NoError(t, err)
			require.True(t, sigma.VerifyTranscript(p, stmt, sim))
		})
	}
}

func TestTowerWrongLeafRejected(t *testing.T) {
	base := schnorr.New()
	tower, err := stack.NewTower(base, []int{2, 2})
	require.NoError(t, err)
	leaves, wits := keys(t, base, 4)
	stmt, err := tower.Statement(rand.Reader, leaves)
	require.NoError(t, err)

	wit, err := tower.Witness(1, wits[2])
	require.NoError(t, err)
	p := tower.Protocol()
	tr, err := sigma.Run(context.Background(), p, stmt, wit, rand.Reader)
	require.NoError(t, err)
	require.False(t, sigma.VerifyTranscript(p, stmt, tr))
}

func TestTowerThreeLevelsPartiallyFilled(t *testing.T) {
	base := schnorr.New()
	tower, err := stack.NewTower(base, []int{4, 2, 2})
	require.NoError(t, err)
	require.Equal(t, 16, tower.Capacity())

	leaves, wits := keys(t, base, 6)
	stmt, err := tower.Statement(rand.Reader, leaves)
	require.NoError(t, err)

	p := tower.Protocol()
	wit, err := tower.Witness(5, wits[5])
	require.NoError(t, err)
	tr, err := sigma.Run(context.Background(), p, stmt, wit, rand.Reader)
	require.NoError(t, err)
	require.True(t, sigma.VerifyTranscript(p, stmt, tr))
}

func TestTowerErrors(t *testing.T) {
	base := schnorr.New()
	_, err := stack.NewTower(base, nil)
	require.Error(t, err)
	_, err = stack.NewTower(base, []int{2, 1})
	require.ErrorIs(t, err, stack.ErrTooFewClauses)

	tower, err := stack.NewTower(base, []int{2, 2})
	require.NoError(t, err)
	leaves, _ := keys(t, base, 5)
	_, err = tower.Statement(rand.Reader, leaves)
	require.ErrorIs(t, err, stack.ErrClauseCount)
	_, err = tower.Witness(4, group.NewScalarFromUint32(1))
	require.ErrorIs(t, err, stack.ErrIndexMismatch)
}
