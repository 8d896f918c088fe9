package zkmtd

import (
	"github.com/zkmtd/zkmtd/internal/zkmtd/commit"
	"github.com/zkmtd/zkmtd/internal/zkmtd/field"
	"github.com/zkmtd/zkmtd/internal/zkmtd/logging"
	"github.com/zkmtd/zkmtd/internal/zkmtd/mtd"
	"github.com/zkmtd/zkmtd/internal/zkmtd/starkio"
	"github.com/zkmtd/zkmtd/internal/zkmtd/zeroize"
	"github.com/zkmtd/zkmtd/internal/zkmtd/zkerr"
)

// IntegratedProver binds the external STARK backend to the MTD
// rotation core: every Prove* method calls the backend for its AIR,
// then commits the resulting public values and computes the binding
// hash against the manager's current epoch params.
type IntegratedProver struct {
	seed      []byte
	manager   *mtd.Manager
	backend   Backend
	cfg       *Config
	destroyed bool
}

// NewIntegratedProver constructs a prover seeded at epoch e. backend
// must be a real STARK backend in production; this module ships only
// starkio.SimulatedBackend, for tests. cfg may be nil for defaults.
func NewIntegratedProver(seed []byte, e Epoch, backend Backend, cfg *Config) (*IntegratedProver, error) {
	cfg = DefaultConfigOrSelf(cfg)

	manager, err := mtd.WithEpoch(seed, e, cfg)
	if err != nil {
		return nil, err
	}

	owned := make([]byte, len(seed))
	copy(owned, seed)

	return &IntegratedProver{seed: owned, manager: manager, backend: backend, cfg: cfg}, nil
}

// AdvanceEpoch moves the prover's manager to the next epoch.
func (p *IntegratedProver) AdvanceEpoch() error {
	if p.destroyed {
		return zkerr.New(zkerr.MTDError, "prover has been destroyed")
	}
	return p.manager.Advance()
}

// GetVerifier builds an IntegratedVerifier sharing this prover's seed
// and current epoch, for use by a caller that both proves and checks
// its own proofs (e.g. in tests or a single-process demo).
func (p *IntegratedProver) GetVerifier() (*IntegratedVerifier, error) {
	if p.destroyed {
		return nil, zkerr.New(zkerr.MTDError, "prover has been destroyed")
	}
	return NewIntegratedVerifier(p.seed, p.manager.CurrentEpoch(), p.backend, p.cfg)
}

// Destroy zeroizes the prover's retained seed copy. The manager holds
// its own independent copy and zeroizes it the same way.
func (p *IntegratedProver) Destroy() {
	if p.destroyed {
		return
	}
	p.manager.Destroy()
	zeroize.Bytes(p.seed)
	p.destroyed = true
}

// assemble runs the shared tail of every Prove* method: commit the
// public values under pvSalt and compute the binding hash against the
// manager's current params.
func (p *IntegratedProver) assemble(air AIRType, proofBytes []byte, pv []FieldElement, pvSalt Salt) (*IntegratedProof, error) {
	committed := commit.CommitInputs(pv, pvSalt)
	params := p.manager.CurrentParams()
	bindingHash := commit.BindingHash(pv, committed, p.manager.CurrentEpoch(), params)

	l := logging.Logger()
	l.Debug().
		Str("air", air.String()).
		Uint64("epoch", uint64(p.manager.CurrentEpoch())).
		Msg("prover: proof assembled")

	salt := pvSalt
	return &IntegratedProof{
		AIRType:               air,
		StarkProofBytes:       proofBytes,
		PublicValues:          pv,
		Epoch:                 p.manager.CurrentEpoch(),
		Params:                params,
		BindingHash:           bindingHash,
		CommittedPublicValues: committed,
		pvSalt:                &salt,
	}, nil
}

// logWitness emits a debug line carrying w's one-way digest, never its
// elements, so a prover's activity can be audited without exposing
// any witness the caller supplied.
func (p *IntegratedProver) logWitness(air AIRType, w starkio.Witness) {
	d := w.Digest()
	l := logging.Logger()
	l.Debug().
		Str("air", air.String()).
		Hex("witness_digest", d[:8]).
		Msg("prover: witness accepted")
}

// ProveFibonacci proves knowledge of a Fibonacci trace with numRows
// rows (a power of two, >= MinWitnessSize).
func (p *IntegratedProver) ProveFibonacci(numRows uint64, pvSalt Salt) (*IntegratedProof, error) {
	if p.destroyed {
		return nil, zkerr.New(zkerr.MTDError, "prover has been destroyed")
	}
	w, err := starkio.NewWitness([]field.Element{field.New(numRows)})
	if err != nil {
		return nil, err
	}
	p.logWitness(AIRFibonacci, w)
	proofBytes, pv, err := p.backend.Prove(AIRFibonacci, w)
	if err != nil {
		return nil, err
	}
	return p.assemble(AIRFibonacci, proofBytes, pv, pvSalt)
}

// ProveSum proves an element-wise sum of a and b. len(a) must equal
// len(b), and that length must be a power of two >= MinWitnessSize.
func (p *IntegratedProver) ProveSum(a, b []FieldElement, pvSalt Salt) (*IntegratedProof, error) {
	return p.proveElementwise(AIRSum, a, b, pvSalt)
}

// ProveMultiplication proves an element-wise product of a and b,
// under the same length constraints as ProveSum.
func (p *IntegratedProver) ProveMultiplication(a, b []FieldElement, pvSalt Salt) (*IntegratedProof, error) {
	return p.proveElementwise(AIRMultiplication, a, b, pvSalt)
}

func (p *IntegratedProver) proveElementwise(air AIRType, a, b []FieldElement, pvSalt Salt) (*IntegratedProof, error) {
	if p.destroyed {
		return nil, zkerr.New(zkerr.MTDError, "prover has been destroyed")
	}
	if len(a) != len(b) {
		return nil, zkerr.New(zkerr.InvalidWitness, "a and b must have equal length")
	}
	if n := len(a); n < starkio.MinWitnessSize || n&(n-1) != 0 {
		return nil, zkerr.New(zkerr.InvalidWitness, "vector length must be a power of two >= MinWitnessSize")
	}
	elems := make([]field.Element, 0, len(a)+len(b))
	elems = append(elems, a...)
	elems = append(elems, b...)

	w, err := starkio.NewWitness(elems)
	if err != nil {
		return nil, err
	}
	p.logWitness(air, w)
	proofBytes, pv, err := p.backend.Prove(air, w)
	if err != nil {
		return nil, err
	}
	return p.assemble(air, proofBytes, pv, pvSalt)
}

// ProveRange proves that value >= threshold without revealing value.
// Fails with zkerr.InvalidWitness if value < threshold; this prover
// never attempts to forge a proof for a false statement.
func (p *IntegratedProver) ProveRange(value, threshold uint64, pvSalt Salt) (*IntegratedProof, error) {
	if p.destroyed {
		return nil, zkerr.New(zkerr.MTDError, "prover has been destroyed")
	}
	w, err := starkio.NewWitness([]field.Element{field.New(value), field.New(threshold), field.Zero, field.Zero})
	if err != nil {
		return nil, err
	}
	p.logWitness(AIRRange, w)
	proofBytes, pv, err := p.backend.Prove(AIRRange, w)
	if err != nil {
		return nil, err
	}
	return p.assemble(AIRRange, proofBytes, pv, pvSalt)
}
