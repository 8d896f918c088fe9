// Package commit implements salted commitments over public-value
// vectors (C5) and the binding hash that couples an integrated proof
// to an exact (public_values, commitment, epoch, params) tuple (C6).
package commit

import (
	"encoding/binary"

	"github.com/zkmtd/zkmtd/internal/zkmtd/epoch"
	"github.com/zkmtd/zkmtd/internal/zkmtd/field"
	"github.com/zkmtd/zkmtd/internal/zkmtd/mtd"
	"github.com/zkmtd/zkmtd/internal/zkmtd/sponge"
)

// Salt is the 32-byte value a public-values vector is committed
// under.
type Salt [32]byte

// CommittedPublicInputs is a salted commitment to a public-values
// vector plus the vector's element count, which is itself part of
// the commitment domain so truncation/extension can't forge an
// opening.
type CommittedPublicInputs struct {
	Commitment sponge.Digest
	ValueCount uint32
}

// DerivePVSalt derives a fresh per-proof salt from (seed, epoch,
// nonce). Callers that want unlinkable proofs across re-uses of the
// same public values should supply a fresh nonce each time.
func DerivePVSalt(seed []byte, e epoch.Epoch, nonce []byte) Salt {
	var le64 [8]byte
	binary.LittleEndian.PutUint64(le64[:], uint64(e))

	buf := make([]byte, 0, len(seed)+8+len(nonce))
	buf = append(buf, seed...)
	buf = append(buf, le64[:]...)
	buf = append(buf, nonce...)

	d := sponge.H(buf, sponge.DomainPVSalt)
	return Salt(d)
}

// Commit computes commit(values, salt) =
// H(serialize_field_vec(values) ‖ salt, "ZKMTD::PV::Commit").
func Commit(values []field.Element, salt Salt) sponge.Digest {
	buf := field.EncodeVector(values)
	buf = append(buf, salt[:]...)
	return sponge.H(buf, sponge.DomainPVCommit)
}

// CommitInputs builds a CommittedPublicInputs for values under salt.
func CommitInputs(values []field.Element, salt Salt) CommittedPublicInputs {
	return CommittedPublicInputs{
		Commitment: Commit(values, salt),
		ValueCount: uint32(len(values)),
	}
}

// VerifyCommitment reports whether values opens committed under
// salt: both the salted hash and the declared value count must
// match. The comparison is constant-time.
func VerifyCommitment(values []field.Element, salt Salt, committed CommittedPublicInputs) bool {
	if uint32(len(values)) != committed.ValueCount {
		return false
	}
	got := Commit(values, salt)
	return sponge.CtEqDigest(got, committed.Commitment)
}

// BindingHash computes the central anti-substitution digest: it
// couples public_values, their commitment, the epoch, and the
// current epoch's WarpingParams into one value. Exactly one call-site
// in this module computes this formula; both the prover and verifier
// call it via this function.
func BindingHash(values []field.Element, committed CommittedPublicInputs, e epoch.Epoch, params mtd.WarpingParams) sponge.Digest {
	var le32 [4]byte
	binary.LittleEndian.PutUint32(le32[:], committed.ValueCount)
	var le64 [8]byte
	binary.LittleEndian.PutUint64(le64[:], uint64(e))

	buf := field.EncodeVector(values)
	buf = append(buf, committed.Commitment[:]...)
	buf = append(buf, le32[:]...)
	buf = append(buf, le64[:]...)
	buf = append(buf, params.DomainSeparator[:]...)
	buf = append(buf, params.FRISeed[:]...)
	buf = append(buf, params.Salt[:]...)

	return sponge.H(buf, sponge.DomainBinding)
}
