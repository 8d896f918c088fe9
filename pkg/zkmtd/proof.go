package zkmtd

import (
	"encoding/binary"
	"fmt"

	"github.com/zkmtd/zkmtd/internal/zkmtd/commit"
	"github.com/zkmtd/zkmtd/internal/zkmtd/compress"
	"github.com/zkmtd/zkmtd/internal/zkmtd/field"
	"github.com/zkmtd/zkmtd/internal/zkmtd/merkle"
	"github.com/zkmtd/zkmtd/internal/zkmtd/sponge"
	"github.com/zkmtd/zkmtd/internal/zkmtd/zeroize"
	"github.com/zkmtd/zkmtd/internal/zkmtd/zkerr"
)

// IntegratedProof carries a STARK proof alongside the MTD state it is
// bound to: the epoch and params snapshot at proving time, the
// commitment to the public values, and the binding hash coupling all
// of it together. The optional salt is owned by the proof, not shared
// with the manager that produced it, so erasure never touches other
// state.
type IntegratedProof struct {
	AIRType               AIRType
	StarkProofBytes       []byte
	PublicValues          []FieldElement
	Epoch                 Epoch
	Params                WarpingParams
	BindingHash           Digest
	CommittedPublicValues CommittedPublicInputs

	pvSalt *Salt
}

// HasSalt reports whether the proof still carries its privacy salt.
func (p *IntegratedProof) HasSalt() bool {
	return p.pvSalt != nil
}

// EraseSalt overwrites the 32 salt bytes and forgets them. It is
// idempotent: calling it again after the salt is already gone is a
// no-op. The binding hash, which does not depend on the salt, is
// unaffected, so an already-verified proof stays valid. The returned
// digest is a one-way wipe receipt over the erased salt, safe to log
// as evidence that erasure happened without retaining the salt
// itself; erasing an already-erased proof returns the zero digest.
func (p *IntegratedProof) EraseSalt() Digest {
	if p.pvSalt == nil {
		return Digest{}
	}
	receipt := sponge.H(append(append([]byte{}, p.pvSalt[:]...), byte(p.AIRType)), sponge.DomainSaltWipe)
	zeroize.Array32((*[32]byte)(p.pvSalt))
	p.pvSalt = nil
	return receipt
}

// CommittedValuesHash returns the commitment digest the proof's
// public values were committed under.
func (p *IntegratedProof) CommittedValuesHash() Digest {
	return p.CommittedPublicValues.Commitment
}

// String redacts the salt unconditionally, so logging or printing a
// proof can never leak it even by accident.
func (p *IntegratedProof) String() string {
	return fmt.Sprintf(
		"IntegratedProof{air=%s epoch=%d value_count=%d binding_hash=%x salt=<redacted>}",
		p.AIRType, p.Epoch, p.CommittedPublicValues.ValueCount, p.BindingHash[:8],
	)
}

// Serialize produces the deterministic byte image the Merkle
// aggregator hashes as this proof's leaf. Only fields that determine
// the proof's identity are included; the salt (privacy-sensitive and
// erasable independent of the proof's validity) never is.
func (p *IntegratedProof) Serialize() []byte {
	buf := make([]byte, 0, 1+8+4+len(p.StarkProofBytes)+8*len(p.PublicValues)+96+36)

	buf = append(buf, byte(p.AIRType))

	var le64 [8]byte
	binary.LittleEndian.PutUint64(le64[:], uint64(p.Epoch))
	buf = append(buf, le64[:]...)

	var le32 [4]byte
	binary.LittleEndian.PutUint32(le32[:], uint32(len(p.StarkProofBytes)))
	buf = append(buf, le32[:]...)
	buf = append(buf, p.StarkProofBytes...)

	buf = append(buf, field.EncodeVector(p.PublicValues)...)

	buf = append(buf, p.Params.DomainSeparator[:]...)
	buf = append(buf, p.Params.FRISeed[:]...)
	buf = append(buf, p.Params.Salt[:]...)

	buf = append(buf, p.CommittedPublicValues.Commitment[:]...)
	binary.LittleEndian.PutUint32(le32[:], p.CommittedPublicValues.ValueCount)
	buf = append(buf, le32[:]...)

	buf = append(buf, p.BindingHash[:]...)

	return buf
}

// CompressSerialized runs Serialize() through the compressor
// SelectCompressionAlgorithm picks for its size — useful when p is
// carried over a transport with a hard size limit (e.g. a Solana
// transaction) too small for the raw serialization.
func (p *IntegratedProof) CompressSerialized() (*CompressedProof, error) {
	data := p.Serialize()
	return compress.Compress(data, compress.SelectAlgorithm(len(data)))
}

// DecompressSerializedProof reverses CompressSerialized, returning the
// exact bytes Serialize() produced (not a reconstructed
// IntegratedProof — the caller already has that, and compression
// exists only to shrink the wire transfer).
func DecompressSerializedProof(c *CompressedProof) ([]byte, error) {
	return compress.Decompress(c)
}

// ToLightweight projects p down to the minimal on-chain-verifiable
// payload, dropping the STARK proof bytes, the plaintext public
// values, and the salt.
func (p *IntegratedProof) ToLightweight() LightweightProof {
	return LightweightProof{
		BindingHash: p.BindingHash,
		Commitment:  p.CommittedPublicValues.Commitment,
		ValueCount:  p.CommittedPublicValues.ValueCount,
		Epoch:       p.Epoch,
		AIRType:     p.AIRType,
	}
}

// lightweightWireSize is the fixed encoding width of a LightweightProof:
// binding_hash(32) + commitment(32) + value_count(4) + epoch(8) +
// air_type(1), in that order.
const lightweightWireSize = 32 + 32 + 4 + 8 + 1

// LightweightProof is the minimal on-chain payload: a strict
// projection of an IntegratedProof carrying only what's needed to
// recompute and check the binding hash.
type LightweightProof struct {
	BindingHash Digest
	Commitment  Digest
	ValueCount  uint32
	Epoch       Epoch
	AIRType     AIRType
}

// Encode serializes l into the fixed 77-byte wire format.
func (l LightweightProof) Encode() [lightweightWireSize]byte {
	var out [lightweightWireSize]byte
	off := 0
	copy(out[off:], l.BindingHash[:])
	off += 32
	copy(out[off:], l.Commitment[:])
	off += 32
	binary.LittleEndian.PutUint32(out[off:], l.ValueCount)
	off += 4
	binary.LittleEndian.PutUint64(out[off:], uint64(l.Epoch))
	off += 8
	out[off] = byte(l.AIRType)
	return out
}

// DecodeLightweightProof parses the fixed 77-byte wire format
// produced by Encode.
func DecodeLightweightProof(b []byte) (LightweightProof, error) {
	if len(b) != lightweightWireSize {
		return LightweightProof{}, zkerr.New(zkerr.SerializationError,
			fmt.Sprintf("lightweight proof must be exactly %d bytes, got %d", lightweightWireSize, len(b)))
	}

	var l LightweightProof
	off := 0
	copy(l.BindingHash[:], b[off:off+32])
	off += 32
	copy(l.Commitment[:], b[off:off+32])
	off += 32
	l.ValueCount = binary.LittleEndian.Uint32(b[off : off+4])
	off += 4
	l.Epoch = Epoch(binary.LittleEndian.Uint64(b[off : off+8]))
	off += 8
	l.AIRType = AIRType(b[off])

	return l, nil
}

// VerifyWithPublicValues recomputes the binding hash from the
// asserted public values, l's own commitment and value count, and the
// caller-supplied params, comparing it against l.BindingHash in
// constant time. This is the non-privacy on-chain path: the caller
// already knows the plaintext public values.
func (l LightweightProof) VerifyWithPublicValues(values []FieldElement, params WarpingParams) bool {
	if uint32(len(values)) != l.ValueCount {
		return false
	}
	committed := CommittedPublicInputs{Commitment: l.Commitment, ValueCount: l.ValueCount}
	recomputed := commit.BindingHash(values, committed, l.Epoch, params)
	return sponge.CtEqDigest(recomputed, l.BindingHash)
}

// Fingerprint returns a domain-tagged digest over l's encoded wire
// bytes. Callers that index lightweight proofs by something other
// than the raw binding hash (an on-chain account seed, a dedup table
// key) can use this instead of re-deriving their own hash over the
// encoding.
func (l LightweightProof) Fingerprint() Digest {
	enc := l.Encode()
	return sponge.H(enc[:], sponge.DomainLightweightTag)
}

// VerifyCommitmentOnly is the privacy-path check: without the
// plaintext public values there is no way to recompute the binding
// hash (it is itself a function of those values), so this only
// confirms that l's commitment matches an independently-known
// expected commitment. It is strictly weaker than
// VerifyWithPublicValues and callers that can supply the plaintext
// values should prefer that method.
func (l LightweightProof) VerifyCommitmentOnly(expectedCommitment Digest) bool {
	return sponge.CtEqDigest(l.Commitment, expectedCommitment)
}

// ProofBatch aggregates proofs sharing one epoch under a single
// Merkle root.
type ProofBatch struct {
	Proofs     []*IntegratedProof
	MerkleRoot Digest
	Epoch      Epoch

	tree *merkle.Tree
}

// BuildBatch constructs a ProofBatch over proofs, all of which must
// share one epoch. Fails with zkerr.MerkleError if proofs is empty,
// proofs contains >= cfg.MaxBatchSize entries, or epochs disagree.
func BuildBatch(proofs []*IntegratedProof, cfg *Config) (*ProofBatch, error) {
	cfg = DefaultConfigOrSelf(cfg)

	if len(proofs) == 0 {
		return nil, zkerr.New(zkerr.MerkleError, "cannot batch zero proofs")
	}
	if len(proofs) >= cfg.MaxBatchSize {
		return nil, zkerr.New(zkerr.MerkleError, fmt.Sprintf("batch of %d proofs exceeds MaxBatchSize %d", len(proofs), cfg.MaxBatchSize))
	}

	e := proofs[0].Epoch
	items := make([][]byte, len(proofs))
	for i, p := range proofs {
		if p.Epoch != e {
			return nil, zkerr.New(zkerr.MerkleError, "all proofs in a batch must share one epoch")
		}
		items[i] = p.Serialize()
	}

	tree, err := merkle.Build(items)
	if err != nil {
		return nil, err
	}

	return &ProofBatch{
		Proofs:     proofs,
		MerkleRoot: tree.Root(),
		Epoch:      e,
		tree:       tree,
	}, nil
}

// Path returns the inclusion path for the proof at index i.
func (b *ProofBatch) Path(i int) (merkle.Path, error) {
	return b.tree.Path(i)
}

// Leaf returns the Merkle leaf digest for the proof at index i, i.e.
// H(proof.Serialize(), "ZKMTD::Merkle").
func (b *ProofBatch) Leaf(i int) Digest {
	return b.tree.Leaf(i)
}

// RootFingerprint returns a domain-tagged digest over the batch's
// Merkle root and epoch, distinct from the raw root. Chains that want
// a storage key scoped to this exact (root, epoch) pair — rather than
// the root alone, which the next epoch's batch could coincidentally
// collide with across independent seeds — should use this instead of
// MerkleRoot directly.
func (b *ProofBatch) RootFingerprint() Digest {
	buf := make([]byte, 0, 32+8)
	buf = append(buf, b.MerkleRoot[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(b.Epoch))
	return sponge.H(buf, sponge.DomainBatchRoot)
}

// DefaultConfigOrSelf returns cfg if non-nil, else DefaultConfig().
func DefaultConfigOrSelf(cfg *Config) *Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return cfg
}
