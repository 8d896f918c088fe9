package epoch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromTimestamp(t *testing.T) {
	require.Equal(t, Epoch(0), FromTimestamp(0))
	require.Equal(t, Epoch(0), FromTimestamp(DurationSecs-1))
	require.Equal(t, Epoch(1), FromTimestamp(DurationSecs))
}

func TestContainsTimestamp(t *testing.T) {
	e := FromTimestamp(10_000)
	require.True(t, e.ContainsTimestamp(10_000))
	require.True(t, e.ContainsTimestamp(e.ToStartTimestamp()))
	require.False(t, e.ContainsTimestamp(e.ToStartTimestamp()+DurationSecs))
}

func TestNextPrev(t *testing.T) {
	e := Epoch(5)
	n, err := e.Next()
	require.NoError(t, err)
	require.Equal(t, Epoch(6), n)

	p, err := n.Prev()
	require.NoError(t, err)
	require.Equal(t, e, p)
}

func TestNextOverflow(t *testing.T) {
	max := Epoch(^uint64(0))
	_, err := max.Next()
	require.ErrorIs(t, err, ErrOverflow)
}

func TestPrevUnderflow(t *testing.T) {
	_, err := Epoch(0).Prev()
	require.ErrorIs(t, err, ErrOverflow)
}

func TestDistance(t *testing.T) {
	require.Equal(t, uint64(3), Epoch(10).Distance(Epoch(7)))
	require.Equal(t, uint64(3), Epoch(7).Distance(Epoch(10)))
}
