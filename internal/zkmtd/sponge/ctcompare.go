package sponge

// CtEqDigest compares two digests in constant time. Every comparison
// of a digest, commitment, binding hash, Merkle root, or salt-derived
// value in ZKMTD must go through this function (or CtEqBytes for
// variable-length inputs) rather than ==, reflect.DeepEqual, or
// bytes.Equal.
func CtEqDigest(a, b Digest) bool {
	return CtEqN(a[:], b[:])
}

// CtEqN is the fixed-size constant-time equality check: it XORs the
// two inputs byte-wise into an accumulator with no early exit. Both
// slices must be the same length; callers comparing fixed-width
// cryptographic values (digests, salts) know this statically.
func CtEqN(a, b []byte) bool {
	if len(a) != len(b) {
		// Still walk a fixed number of iterations so callers that
		// pass mismatched lengths by mistake don't get a timing
		// signal distinct from CtEqBytes below.
		return CtEqBytes(a, b)
	}
	var acc byte
	for i := range a {
		acc |= a[i] ^ b[i]
	}
	return acc == 0
}

// CtEqBytes is the variable-length constant-time equality check. It
// iterates max(len(a), len(b)) times, treating out-of-range bytes as
// zero, and folds the length difference into the accumulator so a
// length mismatch alone can't short-circuit the comparison.
func CtEqBytes(a, b []byte) bool {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	var acc byte
	for i := 0; i < n; i++ {
		var av, bv byte
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		acc |= av ^ bv
	}

	lenDiff := len(a) - len(b)
	acc |= byte(lenDiff) | byte(lenDiff>>8) | byte(lenDiff>>16) | byte(lenDiff>>24)

	return acc == 0
}
