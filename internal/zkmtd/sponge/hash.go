package sponge

import (
	"github.com/zkmtd/zkmtd/internal/zkmtd/field"
)

// Digest is the 32-byte output of the domain-separated Poseidon2
// sponge. It is always compared in constant time (see CtEqDigest).
type Digest [32]byte

// Zero reports whether d is the all-zero digest. WarpingParams
// derivation treats an all-zero digest as a generation failure.
func (d Digest) Zero() bool {
	for _, b := range d {
		if b != 0 {
			return false
		}
	}
	return true
}

// H computes the domain-separated Poseidon2 sponge hash of data under
// the given domain tag. Every digest, commitment, binding hash, and
// Merkle node in ZKMTD is produced by this single function.
func H(data []byte, domain string) Digest {
	var state [Width]field.Element

	absorbDomain(&state, []byte(domain))
	absorbData(&state, data)

	return squeeze(&state)
}

// Combine hashes a‖b under domain, used to fold two digests into one
// (Merkle internal nodes, digest aggregation).
func Combine(a, b Digest, domain string) Digest {
	buf := make([]byte, 0, 64)
	buf = append(buf, a[:]...)
	buf = append(buf, b[:]...)
	return H(buf, domain)
}

// absorbDomain absorbs the domain tag into the first Rate state
// slots, permuting after every full block and once more at the end
// of the domain phase even when the final block was short. This
// final permute is what separates the domain tag from the data that
// follows; skipping it would let a domain tag and a data prefix
// collide in the transcript.
func absorbDomain(state *[Width]field.Element, domain []byte) {
	elems := bytesToElements(domain)

	slot := 0
	for _, e := range elems {
		state[slot] = state[slot].Add(e)
		slot++
		if slot == Rate {
			permute(state)
			slot = 0
		}
	}
	permute(state)
}

// absorbData absorbs data in 64-byte (8-element) blocks, adding each
// block into the first Rate state slots and permuting after every
// block, including a final zero-padded partial block.
func absorbData(state *[Width]field.Element, data []byte) {
	elems := bytesToElements(data)

	for i := 0; i < len(elems); i += Rate {
		end := i + Rate
		if end > len(elems) {
			end = len(elems)
		}
		for j := i; j < end; j++ {
			state[j-i] = state[j-i].Add(elems[j])
		}
		permute(state)
	}
}

// squeeze reads the first 4 state elements as canonical u64s,
// concatenated little-endian into a 32-byte digest.
func squeeze(state *[Width]field.Element) Digest {
	var d Digest
	for i := 0; i < 4; i++ {
		b := state[i].Bytes()
		copy(d[i*8:], b[:])
	}
	return d
}

// bytesToElements splits data into 8-byte little-endian chunks,
// zero-padding the final chunk, and reduces each chunk modulo the
// field's modulus. An empty input yields an empty slice.
func bytesToElements(data []byte) []field.Element {
	if len(data) == 0 {
		return nil
	}
	n := (len(data) + 7) / 8
	elems := make([]field.Element, n)
	for i := 0; i < n; i++ {
		var chunk [8]byte
		start := i * 8
		end := start + 8
		if end > len(data) {
			end = len(data)
		}
		copy(chunk[:], data[start:end])
		elems[i] = field.FromBytes(chunk)
	}
	return elems
}
