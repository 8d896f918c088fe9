package entropy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkmtd/zkmtd/internal/zkmtd/entropy/testentropy"
)

func TestOSSourceFillsBuffer(t *testing.T) {
	buf := make([]byte, 32)
	require.NoError(t, Require(OSSource{}, buf, 128))
}

func TestRequireRejectsLowEntropySource(t *testing.T) {
	buf := make([]byte, 32)
	low := testentropy.New([]byte("fixed-seed"))
	err := Require(low, buf, 256)
	require.Error(t, err)
}

func TestDeterministicSourceIsReproducible(t *testing.T) {
	src1 := testentropy.New([]byte("fixed-seed"))
	src2 := testentropy.New([]byte("fixed-seed"))

	buf1 := make([]byte, 32)
	buf2 := make([]byte, 32)
	require.NoError(t, Require(src1, buf1, 128))
	require.NoError(t, Require(src2, buf2, 128))
	require.Equal(t, buf1, buf2)
}

func TestSolanaEntropyDeterministicPerSlot(t *testing.T) {
	slotHash := [32]byte{1, 2, 3}
	programID := [32]byte{4, 5, 6}

	buf1 := make([]byte, 32)
	buf2 := make([]byte, 32)
	require.NoError(t, Require(NewSolanaEntropy(slotHash, programID), buf1, 128))
	require.NoError(t, Require(NewSolanaEntropy(slotHash, programID), buf2, 128))
	require.Equal(t, buf1, buf2)
}

func TestSolanaEntropyDiffersAcrossSlots(t *testing.T) {
	programID := [32]byte{4, 5, 6}

	buf1 := make([]byte, 32)
	buf2 := make([]byte, 32)
	require.NoError(t, Require(NewSolanaEntropy([32]byte{1}, programID), buf1, 128))
	require.NoError(t, Require(NewSolanaEntropy([32]byte{2}, programID), buf2, 128))
	require.NotEqual(t, buf1, buf2)
}

func TestSolanaEntropyFillsBeyondOneDigest(t *testing.T) {
	buf := make([]byte, 96)
	require.NoError(t, Require(NewSolanaEntropy([32]byte{9}, [32]byte{8}), buf, 128))
	require.NotEqual(t, buf[0:32], buf[32:64])
}
