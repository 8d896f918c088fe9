package mtd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkmtd/zkmtd/internal/zkmtd/config"
	"github.com/zkmtd/zkmtd/internal/zkmtd/epoch"
	"github.com/zkmtd/zkmtd/internal/zkmtd/zkerr"
)

var testSeed = []byte("test-seed-0")

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(testSeed, epoch.Epoch(100))
	require.NoError(t, err)
	b, err := Generate(testSeed, epoch.Epoch(100))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestGenerateEpochSeparation(t *testing.T) {
	a, err := Generate(testSeed, epoch.Epoch(100))
	require.NoError(t, err)
	b, err := Generate(testSeed, epoch.Epoch(101))
	require.NoError(t, err)
	require.NotEqual(t, a.DomainSeparator, b.DomainSeparator)
	require.NotEqual(t, a.Salt, b.Salt)
	require.NotEqual(t, a.FRISeed, b.FRISeed)
}

func TestGenerateEmptySeedFails(t *testing.T) {
	_, err := Generate(nil, epoch.Epoch(1))
	require.ErrorIs(t, err, zkerr.New(zkerr.MTDError, ""))
}

func TestManagerAdvance(t *testing.T) {
	m, err := WithEpoch(testSeed, epoch.Epoch(5), nil)
	require.NoError(t, err)

	before := m.CurrentParams()
	require.NoError(t, m.Advance())
	require.Equal(t, epoch.Epoch(6), m.CurrentEpoch())
	require.NotEqual(t, before, m.CurrentParams())
}

func TestManagerGetParamsCachesAndMatchesGenerate(t *testing.T) {
	m, err := WithEpoch(testSeed, epoch.Epoch(5), nil)
	require.NoError(t, err)

	want, err := Generate(testSeed, epoch.Epoch(42))
	require.NoError(t, err)

	got, err := m.GetParams(epoch.Epoch(42))
	require.NoError(t, err)
	require.Equal(t, want, got)

	// second call should hit the cache and return the same value
	got2, err := m.GetParams(epoch.Epoch(42))
	require.NoError(t, err)
	require.Equal(t, got, got2)
}

func TestManagerSyncForward(t *testing.T) {
	m, err := WithEpoch(testSeed, epoch.Epoch(0), nil)
	require.NoError(t, err)

	target := epoch.Epoch(3).ToStartTimestamp()
	require.NoError(t, m.Sync(target))
	require.Equal(t, epoch.Epoch(3), m.CurrentEpoch())
}

func TestManagerSyncRejectsRegression(t *testing.T) {
	m, err := WithEpoch(testSeed, epoch.Epoch(10), nil)
	require.NoError(t, err)

	err = m.Sync(epoch.Epoch(1).ToStartTimestamp())
	require.Error(t, err)
	require.ErrorIs(t, err, zkerr.New(zkerr.InvalidEpoch, ""))
}

func TestManagerSyncClearsCacheOnBigJump(t *testing.T) {
	// A cache large enough that nothing is evicted by LRU pressure, so
	// the only way the pre-populated entry can disappear is the purge.
	cfg := config.Default().WithParamCacheSize(2000)
	m, err := WithEpoch(testSeed, epoch.Epoch(0), cfg)
	require.NoError(t, err)

	_, err = m.GetParams(epoch.Epoch(5000))
	require.NoError(t, err)
	require.True(t, m.cache.Contains(cacheKey(testSeed, epoch.Epoch(5000))))

	farFuture := epoch.Epoch(1000).ToStartTimestamp()
	require.NoError(t, m.Sync(farFuture))
	require.Equal(t, epoch.Epoch(1000), m.CurrentEpoch())
	require.False(t, m.cache.Contains(cacheKey(testSeed, epoch.Epoch(5000))))
}

func TestValidateTimestamp(t *testing.T) {
	m, err := WithEpoch(testSeed, epoch.Epoch(100), nil)
	require.NoError(t, err)

	start := epoch.Epoch(100).ToStartTimestamp()
	require.True(t, m.ValidateTimestamp(start))
	require.True(t, m.ValidateTimestamp(start+m.cfg.EpochDurationSecs+m.cfg.TimestampToleranceSecs))
	require.False(t, m.ValidateTimestamp(start+m.cfg.EpochDurationSecs+m.cfg.TimestampToleranceSecs+1))
}

func TestDestroyZeroizesSeedAndBlocksFurtherUse(t *testing.T) {
	m, err := WithEpoch(testSeed, epoch.Epoch(1), nil)
	require.NoError(t, err)

	m.Destroy()
	for _, b := range m.seed {
		require.Zero(t, b)
	}
	_, err = m.GetParams(epoch.Epoch(1))
	require.Error(t, err)
}
