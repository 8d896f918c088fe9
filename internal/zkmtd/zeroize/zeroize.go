// Package zeroize overwrites secret-material byte slices in a way
// the compiler cannot optimize away, backing the seed/witness/salt
// disposal ZKMTD's core types guarantee on drop or on explicit
// erasure.
package zeroize

import "runtime"

// Bytes overwrites every byte of b with zero. runtime.KeepAlive
// forces the compiler to treat the write as observable, so it cannot
// be eliminated as a dead store to a slice the caller is about to
// discard.
func Bytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// Array32 overwrites every byte of a 32-byte array in place.
func Array32(a *[32]byte) {
	for i := range a {
		a[i] = 0
	}
	runtime.KeepAlive(a)
}
