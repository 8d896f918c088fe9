// Package entropy defines the entropy collaborator contract: a
// two-method capability (FillBytes, Bits) that the core validates
// before trusting a source for key material.
package entropy

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/zkmtd/zkmtd/internal/zkmtd/sponge"
	"github.com/zkmtd/zkmtd/internal/zkmtd/zkerr"
)

// Source is the entropy collaborator contract.
type Source interface {
	// FillBytes fills buf with entropy, returning an error if it
	// cannot.
	FillBytes(buf []byte) error

	// Bits reports the total bits of entropy (security level) this
	// source claims to provide.
	Bits() int
}

// Require fills buf from src, rejecting src outright if it reports
// fewer than minBits of entropy or fails to fill the buffer. This is
// the single gate every seed/witness-generation path in ZKMTD must
// pass an entropy source through.
func Require(src Source, buf []byte, minBits int) error {
	if src.Bits() < minBits {
		return zkerr.New(zkerr.EntropyError, "entropy source below minimum entropy bits")
	}
	if err := src.FillBytes(buf); err != nil {
		return zkerr.Wrap(zkerr.EntropyError, "entropy source failed to fill buffer", err)
	}
	return nil
}

// OSSource draws entropy from the operating system's CSPRNG via
// crypto/rand. It is the only Source this module considers safe for
// production seed/witness generation.
type OSSource struct{}

// FillBytes fills buf using crypto/rand.Read.
func (OSSource) FillBytes(buf []byte) error {
	_, err := rand.Read(buf)
	return err
}

// Bits reports the security level crypto/rand is assumed to provide.
// ZKMTD only ever compares this against the much lower
// MinEntropyBits floor, so the exact value is not security-critical.
func (OSSource) Bits() int {
	return 256
}

// SolanaEntropy draws entropy from a validator-produced slot hash
// instead of an OS CSPRNG, for environments (on-chain programs) that
// have no access to crypto/rand. It derives output bytes by hashing
// (slot_hash, program_id, counter) under a domain tag reserved for
// this purpose, incrementing counter and rehashing whenever more than
// one digest's worth of output is needed.
type SolanaEntropy struct {
	slotHash  [32]byte
	programID [32]byte
	counter   uint64
}

// NewSolanaEntropy builds a SolanaEntropy source from a validator slot
// hash and the calling program's id.
func NewSolanaEntropy(slotHash, programID [32]byte) *SolanaEntropy {
	return &SolanaEntropy{slotHash: slotHash, programID: programID}
}

// FillBytes fills buf by hashing the slot hash, program id, and an
// internal counter, advancing the counter and rehashing as many times
// as needed to cover len(buf).
func (s *SolanaEntropy) FillBytes(buf []byte) error {
	offset := 0
	for offset < len(buf) {
		d := s.digest()
		n := copy(buf[offset:], d[:])
		offset += n
		s.counter++
	}
	return nil
}

// Bits reports the entropy of a validator slot hash (256 bits) mixed
// through Poseidon2.
func (s *SolanaEntropy) Bits() int {
	return 256
}

func (s *SolanaEntropy) digest() sponge.Digest {
	buf := make([]byte, 0, 32+32+8)
	buf = append(buf, s.slotHash[:]...)
	buf = append(buf, s.programID[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, s.counter)
	return sponge.H(buf, sponge.DomainSolanaEntropy)
}
