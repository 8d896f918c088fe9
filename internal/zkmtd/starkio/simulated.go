package starkio

import (
	"fmt"

	"github.com/zkmtd/zkmtd/internal/zkmtd/field"
	"github.com/zkmtd/zkmtd/internal/zkmtd/sponge"
	"github.com/zkmtd/zkmtd/internal/zkmtd/zkerr"
)

// SimulatedBackend stands in for the real FRI-based STARK
// prover/verifier. It is for tests and offline fixtures only — it
// binds a proof to its public values by hashing rather than by any
// actual polynomial commitment, so it provides none of a real
// backend's soundness. It must never be wired as a production
// Backend.
type SimulatedBackend struct{}

// NewSimulatedBackend returns a SimulatedBackend.
func NewSimulatedBackend() *SimulatedBackend {
	return &SimulatedBackend{}
}

// Prove dispatches to the per-AIR simulated prover.
func (SimulatedBackend) Prove(air AIRType, witness Witness) ([]byte, []field.Element, error) {
	switch air {
	case Fibonacci:
		return proveFibonacci(witness)
	case Sum:
		return proveElementwise(witness, field.Element.Add)
	case Multiplication:
		return proveElementwise(witness, field.Element.Mul)
	case Range:
		return proveRange(witness)
	default:
		return nil, nil, errUnknownAIR(air)
	}
}

// Verify dispatches to the per-AIR simulated verifier. Every arm
// checks the same thing: that proofBytes is the proof-integrity hash
// of publicValues this package's Prove would have produced. A real
// backend additionally re-checks the algebraic trace constraints;
// this stand-in never does.
func (SimulatedBackend) Verify(air AIRType, proofBytes []byte, publicValues []field.Element) (bool, error) {
	switch air {
	case Fibonacci:
		if len(publicValues) != 4 {
			return false, nil
		}
		if !publicValues[0].IsZero() || !publicValues[1].Equal(field.One) {
			return false, nil
		}
	case Sum, Multiplication:
		if len(publicValues) == 0 {
			return false, nil
		}
	case Range:
		if len(publicValues) != 1 {
			return false, nil
		}
	default:
		return false, errUnknownAIR(air)
	}

	want := integrityHash(publicValues)
	return sponge.CtEqDigest(proofHashFromBytes(proofBytes), want), nil
}

func errUnknownAIR(air AIRType) error {
	return zkerr.New(zkerr.InvalidProof, fmt.Sprintf("unsupported AIR type %d", byte(air)))
}

// integrityHash is the public-facing proof-binding hash every
// simulated proof carries.
func integrityHash(publicValues []field.Element) sponge.Digest {
	return sponge.H(field.EncodeVector(publicValues), sponge.DomainProofIntegrity)
}

func proofHashFromBytes(b []byte) sponge.Digest {
	var d sponge.Digest
	copy(d[:], b)
	return d
}

func proveFibonacci(witness Witness) ([]byte, []field.Element, error) {
	if len(witness.Elements) < 1 {
		return nil, nil, errWitnessTooSmall
	}
	n := witness.Elements[0].Uint64()
	if n < MinWitnessSize || n&(n-1) != 0 {
		return nil, nil, errBadTraceLength
	}

	fibs := make([]field.Element, n)
	fibs[0] = field.Zero
	fibs[1] = field.One
	for i := uint64(2); i < n; i++ {
		fibs[i] = fibs[i-1].Add(fibs[i-2])
	}

	pv := []field.Element{fibs[0], fibs[1], fibs[n-2], fibs[n-1]}
	d := integrityHash(pv)
	return d[:], pv, nil
}

func proveElementwise(witness Witness, op func(field.Element, field.Element) field.Element) ([]byte, []field.Element, error) {
	if len(witness.Elements) < MinWitnessSize {
		return nil, nil, errWitnessTooSmall
	}
	if len(witness.Elements)%2 != 0 {
		return nil, nil, errVectorLenMismatch
	}
	half := len(witness.Elements) / 2
	a, b := witness.Elements[:half], witness.Elements[half:]

	c := make([]field.Element, half)
	for i := range c {
		c[i] = op(a[i], b[i])
	}

	d := integrityHash(c)
	return d[:], c, nil
}

func proveRange(witness Witness) ([]byte, []field.Element, error) {
	if len(witness.Elements) < 2 {
		return nil, nil, errWitnessTooSmall
	}
	value := witness.Elements[0].Uint64()
	threshold := witness.Elements[1].Uint64()
	if value < threshold {
		return nil, nil, errValueBelowThresh
	}

	pv := []field.Element{field.New(threshold)}
	d := integrityHash(pv)
	return d[:], pv, nil
}

