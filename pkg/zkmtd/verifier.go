package zkmtd

import (
	"github.com/zkmtd/zkmtd/internal/zkmtd/commit"
	"github.com/zkmtd/zkmtd/internal/zkmtd/mtd"
	"github.com/zkmtd/zkmtd/internal/zkmtd/sponge"
	"github.com/zkmtd/zkmtd/internal/zkmtd/zeroize"
	"github.com/zkmtd/zkmtd/internal/zkmtd/zkerr"
)

// IntegratedVerifier checks an IntegratedProof against the MTD
// rotation core's current epoch state before dispatching to the
// external STARK backend.
type IntegratedVerifier struct {
	seed      []byte
	manager   *mtd.Manager
	backend   Backend
	cfg       *Config
	destroyed bool
}

// NewIntegratedVerifier constructs a verifier seeded at epoch e.
// cfg may be nil for defaults.
func NewIntegratedVerifier(seed []byte, e Epoch, backend Backend, cfg *Config) (*IntegratedVerifier, error) {
	cfg = DefaultConfigOrSelf(cfg)

	manager, err := mtd.WithEpoch(seed, e, cfg)
	if err != nil {
		return nil, err
	}

	owned := make([]byte, len(seed))
	copy(owned, seed)

	return &IntegratedVerifier{seed: owned, manager: manager, backend: backend, cfg: cfg}, nil
}

// AdvanceEpoch moves the verifier's manager to the next epoch.
func (v *IntegratedVerifier) AdvanceEpoch() error {
	if v.destroyed {
		return zkerr.New(zkerr.MTDError, "verifier has been destroyed")
	}
	return v.manager.Advance()
}

// Destroy zeroizes the verifier's retained seed copy.
func (v *IntegratedVerifier) Destroy() {
	if v.destroyed {
		return
	}
	v.manager.Destroy()
	zeroize.Bytes(v.seed)
	v.destroyed = true
}

// Verify checks proof in four steps: the epoch must match the
// verifier's current epoch, the proof's params snapshot must match
// the current params, the binding hash must recompute to the same
// value, and the external backend must accept the STARK proof itself.
// A normal negative at any of the first three steps returns
// (false, nil) rather than an error; only malformed input that the
// backend itself cannot give a boolean answer to produces an error.
func (v *IntegratedVerifier) Verify(proof *IntegratedProof) (bool, error) {
	if v.destroyed {
		return false, zkerr.New(zkerr.MTDError, "verifier has been destroyed")
	}

	if proof.Epoch != v.manager.CurrentEpoch() {
		return false, nil
	}

	current := v.manager.CurrentParams()
	if !sponge.CtEqDigest(proof.Params.DomainSeparator, current.DomainSeparator) ||
		!sponge.CtEqDigest(proof.Params.FRISeed, current.FRISeed) ||
		!sponge.CtEqDigest(proof.Params.Salt, current.Salt) {
		return false, nil
	}

	recomputed := commit.BindingHash(proof.PublicValues, proof.CommittedPublicValues, proof.Epoch, current)
	if !sponge.CtEqDigest(recomputed, proof.BindingHash) {
		return false, nil
	}

	ok, err := v.backend.Verify(proof.AIRType, proof.StarkProofBytes, proof.PublicValues)
	if err != nil {
		return false, zkerr.Wrap(zkerr.VerificationFailed, "backend verification errored", err)
	}
	return ok, nil
}

// VerifyWithSalt additionally checks that values opens
// proof.CommittedPublicValues under salt before running Verify. It is
// meant for off-chain audits where the salt has not yet been erased;
// after EraseSalt the stored salt is gone, so a caller retrying this
// with the original salt value still succeeds (the salt lives in the
// commitment input, not in the proof), but a caller with no salt at
// all should use Verify alone.
func (v *IntegratedVerifier) VerifyWithSalt(proof *IntegratedProof, values []FieldElement, salt Salt) (bool, error) {
	if v.destroyed {
		return false, zkerr.New(zkerr.MTDError, "verifier has been destroyed")
	}
	if !commit.VerifyCommitment(values, salt, proof.CommittedPublicValues) {
		return false, nil
	}
	return v.Verify(proof)
}
