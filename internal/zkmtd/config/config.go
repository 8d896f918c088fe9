// Package config holds ZKMTD's process-wide tunables: a validated
// struct with a default constructor and With*/Clone builder methods.
package config

import "github.com/zkmtd/zkmtd/internal/zkmtd/zkerr"

// Config bundles every tunable ZKMTD recognizes. A nil *Config
// anywhere in this module's public API means "use Default()".
type Config struct {
	// EpochDurationSecs is the wall-clock width of one epoch.
	EpochDurationSecs uint64

	// TimestampToleranceSecs is the slack MTDManager.ValidateTimestamp
	// allows beyond one full epoch width.
	TimestampToleranceSecs uint64

	// MinWitnessSize records the minimum element count of a Witness.
	// Validate checks it is positive; the provers enforce the fixed
	// starkio.MinWitnessSize and do not read this field.
	MinWitnessSize int

	// MaxBatchSize bounds how many proofs a single Merkle batch may
	// aggregate.
	MaxBatchSize int

	// ParamCacheSize is the capacity of MTDManager's LRU params
	// cache.
	ParamCacheSize int

	// MinEntropyBits records the minimum entropy an Entropy
	// collaborator must report. Validate checks it is positive;
	// entropy.Require takes its floor as an explicit argument and does
	// not read this field.
	MinEntropyBits int

	// MaxSyncJump bounds how many epochs MTDManager.Sync will
	// advance through in one call before clearing its cache instead
	// of carrying it forward.
	MaxSyncJump uint64
}

// Default returns the documented process-wide defaults.
func Default() *Config {
	return &Config{
		EpochDurationSecs:      3600,
		TimestampToleranceSecs: 300,
		MinWitnessSize:         4,
		MaxBatchSize:           1000,
		ParamCacheSize:         16,
		MinEntropyBits:         128,
		MaxSyncJump:            64,
	}
}

// Validate checks that every field is in a usable range.
func (c *Config) Validate() error {
	if c.EpochDurationSecs == 0 {
		return zkerr.New(zkerr.ConfigError, "epoch duration must be positive")
	}
	if c.MinWitnessSize <= 0 {
		return zkerr.New(zkerr.ConfigError, "min witness size must be positive")
	}
	if c.MaxBatchSize <= 0 {
		return zkerr.New(zkerr.ConfigError, "max batch size must be positive")
	}
	if c.ParamCacheSize <= 0 {
		return zkerr.New(zkerr.ConfigError, "param cache size must be positive")
	}
	if c.MinEntropyBits <= 0 {
		return zkerr.New(zkerr.ConfigError, "min entropy bits must be positive")
	}
	if c.MaxSyncJump == 0 {
		return zkerr.New(zkerr.ConfigError, "max sync jump must be positive")
	}
	return nil
}

// WithEpochDurationSecs sets EpochDurationSecs and returns c.
func (c *Config) WithEpochDurationSecs(secs uint64) *Config {
	c.EpochDurationSecs = secs
	return c
}

// WithTimestampToleranceSecs sets TimestampToleranceSecs and returns c.
func (c *Config) WithTimestampToleranceSecs(secs uint64) *Config {
	c.TimestampToleranceSecs = secs
	return c
}

// WithParamCacheSize sets ParamCacheSize and returns c.
func (c *Config) WithParamCacheSize(size int) *Config {
	c.ParamCacheSize = size
	return c
}

// WithMaxSyncJump sets MaxSyncJump and returns c.
func (c *Config) WithMaxSyncJump(jump uint64) *Config {
	c.MaxSyncJump = jump
	return c
}

// Clone returns a deep copy of c (Config has no pointer fields, so
// this is a plain value copy).
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// OrDefault returns c if non-nil, else Default().
func OrDefault(c *Config) *Config {
	if c == nil {
		return Default()
	}
	return c
}
