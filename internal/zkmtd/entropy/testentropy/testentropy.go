// Package testentropy provides a deterministic entropy.Source for
// tests and reproducible fixtures. It must never be wired into a
// production binary: the whole point of an MTD manager's seed is
// that it is unpredictable, and this source is the opposite of that
// by construction. Importing it from outside a _test.go file is a
// defect.
package testentropy

import (
	"golang.org/x/crypto/blake2b"
)

// Deterministic expands a fixed seed into an arbitrarily long,
// reproducible byte stream via the BLAKE2X extendable-output
// construction, rather than stdlib crypto/rand.
type Deterministic struct {
	seed []byte
}

// New returns a Deterministic source keyed by seed. Every instance
// built from the same seed produces the identical byte stream.
func New(seed []byte) *Deterministic {
	return &Deterministic{seed: append([]byte{}, seed...)}
}

// FillBytes fills buf deterministically from the configured seed.
func (d *Deterministic) FillBytes(buf []byte) error {
	xof, err := blake2b.NewXOF(uint32(len(buf)), d.seed)
	if err != nil {
		return err
	}
	_, err = xof.Read(buf)
	return err
}

// Bits reports a fixed 128-bit floor, clearing the core's minimum
// entropy gate without claiming OSSource's full security level.
func (d *Deterministic) Bits() int {
	return 128
}
