package merkle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func items(n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = []byte{byte(i), byte(i + 1), byte(i + 2)}
	}
	return out
}

func TestBuildEmptyFails(t *testing.T) {
	_, err := Build(nil)
	require.Error(t, err)
}

func TestInclusionRoundTripEvenCount(t *testing.T) {
	tree, err := Build(items(4))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		path, err := tree.Path(i)
		require.NoError(t, err)
		require.True(t, path.Verify(tree.Leaf(i), tree.Root()))
	}
}

func TestInclusionRoundTripOddCount(t *testing.T) {
	tree, err := Build(items(5))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		path, err := tree.Path(i)
		require.NoError(t, err)
		require.True(t, path.Verify(tree.Leaf(i), tree.Root()))
	}
}

func TestInclusionRoundTripSingleLeaf(t *testing.T) {
	tree, err := Build(items(1))
	require.NoError(t, err)
	path, err := tree.Path(0)
	require.NoError(t, err)
	require.True(t, path.Verify(tree.Leaf(0), tree.Root()))
}

func TestTamperedSiblingFailsVerification(t *testing.T) {
	tree, err := Build(items(4))
	require.NoError(t, err)

	path, err := tree.Path(2)
	require.NoError(t, err)
	path[0].Sibling[0] ^= 0xFF
	require.False(t, path.Verify(tree.Leaf(2), tree.Root()))
}

func TestTamperedRootFailsVerification(t *testing.T) {
	tree, err := Build(items(4))
	require.NoError(t, err)

	path, err := tree.Path(1)
	require.NoError(t, err)
	root := tree.Root()
	root[0] ^= 0xFF
	require.False(t, path.Verify(tree.Leaf(1), root))
}

func TestPathIndexOutOfRange(t *testing.T) {
	tree, err := Build(items(3))
	require.NoError(t, err)
	_, err = tree.Path(-1)
	require.Error(t, err)
	_, err = tree.Path(3)
	require.Error(t, err)
}
