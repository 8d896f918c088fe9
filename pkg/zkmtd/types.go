package zkmtd

import (
	"github.com/zkmtd/zkmtd/internal/zkmtd/commit"
	"github.com/zkmtd/zkmtd/internal/zkmtd/compress"
	"github.com/zkmtd/zkmtd/internal/zkmtd/config"
	"github.com/zkmtd/zkmtd/internal/zkmtd/epoch"
	"github.com/zkmtd/zkmtd/internal/zkmtd/field"
	"github.com/zkmtd/zkmtd/internal/zkmtd/mtd"
	"github.com/zkmtd/zkmtd/internal/zkmtd/sponge"
	"github.com/zkmtd/zkmtd/internal/zkmtd/starkio"
)

// FieldElement is an element of the Goldilocks field GF(2^64-2^32+1).
type FieldElement = field.Element

// NewFieldElement builds a FieldElement from a uint64, reducing it
// modulo the field's modulus.
func NewFieldElement(v uint64) FieldElement {
	return field.New(v)
}

// Digest is a 32-byte Poseidon2 sponge output.
type Digest = sponge.Digest

// Epoch is a non-negative integer time bucket of fixed duration.
type Epoch = epoch.Epoch

// EpochFromTimestamp maps a Unix timestamp to its containing epoch
// under the default epoch duration.
func EpochFromTimestamp(ts uint64) Epoch {
	return epoch.FromTimestamp(ts)
}

// Config bundles ZKMTD's process-wide tunables. A nil *Config
// anywhere in this package's API means DefaultConfig().
type Config = config.Config

// DefaultConfig returns the documented default tunables.
func DefaultConfig() *Config {
	return config.Default()
}

// AIRType tags which AIR a proof was produced against.
type AIRType = starkio.AIRType

// AIR variant constants.
const (
	AIRFibonacci      = starkio.Fibonacci
	AIRSum            = starkio.Sum
	AIRMultiplication = starkio.Multiplication
	AIRRange          = starkio.Range
)

// Backend is the external STARK prover/verifier contract every
// IntegratedProver/IntegratedVerifier dispatches into.
type Backend = starkio.Backend

// WarpingParams is the per-epoch parameter set
// {domain_separator, salt, fri_seed}.
type WarpingParams = mtd.WarpingParams

// Salt is the 32-byte value a public-values vector is committed
// under.
type Salt = commit.Salt

// DerivePVSalt derives a fresh per-proof salt from (seed, epoch,
// nonce). Supply a fresh nonce for unlinkability across re-uses of
// the same public values.
func DerivePVSalt(seed []byte, e Epoch, nonce []byte) Salt {
	return commit.DerivePVSalt(seed, e, nonce)
}

// CommittedPublicInputs is a salted commitment to a public-values
// vector plus its element count.
type CommittedPublicInputs = commit.CommittedPublicInputs

// CompressionAlgorithm identifies which compressor produced a
// CompressedProof.
type CompressionAlgorithm = compress.Algorithm

// Compression algorithm constants.
const (
	CompressionNone = compress.None
	CompressionRLE  = compress.RLE
)

// CompressedProof wraps compressed serialized-proof bytes alongside
// the checksum of the original data.
type CompressedProof = compress.CompressedProof

// SelectCompressionAlgorithm picks RLE for payloads large enough that
// its per-run overhead pays for itself, None otherwise.
func SelectCompressionAlgorithm(dataSize int) CompressionAlgorithm {
	return compress.SelectAlgorithm(dataSize)
}
