// Package starkio is the boundary between ZKMTD's core and the
// external univariate STARK prover/verifier, treated as an opaque
// collaborator: `prove(air, witness) -> (proof_bytes, public_values)`
// and `verify(air, proof_bytes, public_values) -> bool`. This package
// defines that boundary's Go shape — the AIR tag enumeration, the
// Backend interface, and the fixed public-value layout each AIR
// variant commits to — without implementing the actual
// FRI/trace-polynomial machinery behind it.
package starkio

import (
	"github.com/zkmtd/zkmtd/internal/zkmtd/field"
	"github.com/zkmtd/zkmtd/internal/zkmtd/sponge"
)

// AIRType tags which constraint system a proof was produced against.
// Adding an AIR is a two-location edit: a new constant here plus a
// new dispatch arm wherever AIRType is switched on (the integrated
// prover/verifier, and the lightweight on-chain tag encoding).
type AIRType byte

const (
	// Fibonacci proves knowledge of a trace computing the Fibonacci
	// sequence out to a given row count.
	Fibonacci AIRType = 0

	// Sum proves an element-wise addition of two vectors.
	Sum AIRType = 1

	// Multiplication proves an element-wise product of two vectors.
	Multiplication AIRType = 2

	// Range proves a private value is at least a public threshold.
	Range AIRType = 3
)

func (a AIRType) String() string {
	switch a {
	case Fibonacci:
		return "Fibonacci"
	case Sum:
		return "Sum"
	case Multiplication:
		return "Multiplication"
	case Range:
		return "Range"
	default:
		return "Unknown"
	}
}

// Witness is the finite sequence of field elements the prover
// consumes and the core never serializes or logs. Backend
// implementations decide which elements (if any) become public.
type Witness struct {
	Elements []field.Element
}

// MinWitnessSize is the minimum element count a vector-shaped witness
// (the Sum/Multiplication AIRs) must carry. Fibonacci and Range
// witnesses carry parameters rather than a trace vector and enforce
// their own, smaller minimums at the point they're interpreted.
const MinWitnessSize = 4

// NewWitness wraps elems. It only rejects the empty witness; each
// AIR's prover enforces its own size requirement over the wrapped
// elements (see simulated.go).
func NewWitness(elems []field.Element) (Witness, error) {
	if len(elems) == 0 {
		return Witness{}, errWitnessTooSmall
	}
	return Witness{Elements: elems}, nil
}

// Digest returns a one-way fingerprint of w's elements, safe to log or
// fold into an audit trail: it lets two witnesses be compared for
// equality without ever reconstructing either one from the digest.
func (w Witness) Digest() sponge.Digest {
	return sponge.H(field.EncodeVector(w.Elements), sponge.DomainWitnessDigest)
}

// Backend is the external STARK prover/verifier contract. Production
// code must supply a real implementation backed by an actual FRI
// polynomial commitment scheme; this module ships only a
// SimulatedBackend for tests (see simulated.go).
type Backend interface {
	// Prove runs the chosen AIR's prover over witness, returning an
	// opaque proof byte-string and the AIR-determined public-values
	// projection.
	Prove(air AIRType, witness Witness) (proofBytes []byte, publicValues []field.Element, err error)

	// Verify runs the chosen AIR's verifier over proofBytes and
	// publicValues.
	Verify(air AIRType, proofBytes []byte, publicValues []field.Element) (bool, error)
}
