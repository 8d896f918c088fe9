// Package mtd implements the Moving Target Defense parameter
// rotation core: deterministic per-epoch WarpingParams derivation
// (C3) and the bounded-cache MTDManager that tracks the current
// epoch and derives params on demand (C4).
package mtd

import (
	"encoding/binary"

	"github.com/zkmtd/zkmtd/internal/zkmtd/epoch"
	"github.com/zkmtd/zkmtd/internal/zkmtd/sponge"
	"github.com/zkmtd/zkmtd/internal/zkmtd/zkerr"
)

// systemSalt is a compile-time constant folded into every params
// derivation. Changing it would rotate every proof ever issued, so
// it is fixed, not configurable.
var systemSalt = [32]byte{
	0x5a, 0x4b, 0x4d, 0x54, 0x44, 0x5f, 0x50, 0x32,
	0x5a, 0x4b, 0x4d, 0x54, 0x44, 0x5f, 0x50, 0x32,
	0x5a, 0x4b, 0x4d, 0x54, 0x44, 0x5f, 0x50, 0x32,
	0x5a, 0x4b, 0x4d, 0x54, 0x44, 0x5f, 0x50, 0x32,
}

// WarpingParams is the per-epoch parameter set: three independently
// derived digests, none of which a legitimate derivation ever
// produces as the zero digest.
type WarpingParams struct {
	Epoch           epoch.Epoch
	DomainSeparator sponge.Digest
	Salt            sponge.Digest
	FRISeed         sponge.Digest
}

// Generate derives WarpingParams for (seed, e). It is a pure function:
// two independent calls with the same inputs produce byte-identical
// output. Fails with zkerr.MTDError if seed is empty.
func Generate(seed []byte, e epoch.Epoch) (WarpingParams, error) {
	if len(seed) == 0 {
		return WarpingParams{}, zkerr.New(zkerr.MTDError, "generation failed: empty seed")
	}

	base := deriveBase(seed, e)
	params := WarpingParams{
		Epoch:           e,
		DomainSeparator: sponge.H(append(append([]byte{}, base[:]...), []byte("DOMAIN")...), sponge.DomainMTDDomainSep),
		Salt:            sponge.H(append(append([]byte{}, base[:]...), []byte("SALT")...), sponge.DomainMTDSalt),
		FRISeed:         sponge.H(append(append([]byte{}, base[:]...), []byte("FRI")...), sponge.DomainMTDFRISeed),
	}

	if params.DomainSeparator.Zero() || params.Salt.Zero() || params.FRISeed.Zero() {
		return WarpingParams{}, zkerr.New(zkerr.MTDError, "generation failed: degenerate digest")
	}

	return params, nil
}

// deriveBase computes H(seed ‖ LE64(e) ‖ SYSTEM_SALT, "ZKMTD::MTD::Parameters"),
// the shared input the three sub-derivations branch from under
// distinct domain tags and sub-tag bytes.
func deriveBase(seed []byte, e epoch.Epoch) sponge.Digest {
	var le64 [8]byte
	binary.LittleEndian.PutUint64(le64[:], uint64(e))

	buf := make([]byte, 0, len(seed)+8+32)
	buf = append(buf, seed...)
	buf = append(buf, le64[:]...)
	buf = append(buf, systemSalt[:]...)

	return sponge.H(buf, sponge.DomainMTDParameters)
}
