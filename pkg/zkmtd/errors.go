package zkmtd

import "github.com/zkmtd/zkmtd/internal/zkmtd/zkerr"

// ErrorCode identifies an error kind surfaced by this module's
// operations.
type ErrorCode = zkerr.Code

// Error kind constants, re-exported from internal/zkmtd/zkerr.
const (
	ErrProofGenerationFailed = zkerr.ProofGenerationFailed
	ErrVerificationFailed    = zkerr.VerificationFailed
	ErrInvalidWitness        = zkerr.InvalidWitness
	ErrInvalidProof          = zkerr.InvalidProof
	ErrInvalidEpoch          = zkerr.InvalidEpoch
	ErrInvalidPublicInputs   = zkerr.InvalidPublicInputs
	ErrMerkle                = zkerr.MerkleError
	ErrMTD                   = zkerr.MTDError
	ErrCompression           = zkerr.CompressionError
	ErrEntropy               = zkerr.EntropyError
	ErrSerialization         = zkerr.SerializationError
)

// Error is the error type every fallible operation in this package
// returns.
type Error = zkerr.Error
