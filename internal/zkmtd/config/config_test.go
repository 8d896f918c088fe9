package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkmtd/zkmtd/internal/zkmtd/zkerr"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestOrDefault(t *testing.T) {
	require.Equal(t, Default(), OrDefault(nil))
	custom := Default().WithMaxSyncJump(1)
	require.Same(t, custom, OrDefault(custom))
}

func TestValidateRejectsZero(t *testing.T) {
	c := Default()
	c.EpochDurationSecs = 0
	err := c.Validate()
	require.Error(t, err)
	require.ErrorIs(t, err, zkerr.New(zkerr.ConfigError, ""))
}

func TestCloneIsIndependent(t *testing.T) {
	c := Default()
	clone := c.Clone()
	clone.MaxSyncJump = 999
	require.NotEqual(t, c.MaxSyncJump, clone.MaxSyncJump)
}
