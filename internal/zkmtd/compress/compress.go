// Package compress implements lossless compression of serialized
// proof bytes with an integrity checksum, for transports (e.g. an
// on-chain transaction size limit) where the full wire encoding is
// too large to send as-is.
package compress

import (
	"fmt"

	"github.com/zkmtd/zkmtd/internal/zkmtd/sponge"
	"github.com/zkmtd/zkmtd/internal/zkmtd/zkerr"
)

// Algorithm identifies which compressor produced a CompressedProof.
type Algorithm byte

const (
	// None stores data uncompressed, for inputs too small for RLE to
	// help.
	None Algorithm = iota

	// RLE is byte-wise run-length encoding: each run of up to 255
	// identical bytes becomes a (value, count) pair.
	RLE
)

func (a Algorithm) String() string {
	switch a {
	case None:
		return "None"
	case RLE:
		return "RLE"
	default:
		return "Unknown"
	}
}

// CompressedProof wraps compressed proof bytes alongside the
// checksum of the original, uncompressed data, so decompression can
// be verified without trusting the compressed bytes themselves.
type CompressedProof struct {
	OriginalSize int
	Data         []byte
	Algorithm    Algorithm
	Checksum     sponge.Digest
}

// Compress checksums data, then compresses it with algo, verifying
// immediately that decompressing the result reproduces data exactly.
// A round-trip mismatch is a bug in the chosen algorithm, surfaced as
// zkerr.CompressionError rather than silently shipping bad bytes.
func Compress(data []byte, algo Algorithm) (*CompressedProof, error) {
	checksum := sponge.H(data, sponge.DomainCompressionSum)

	var compressed []byte
	switch algo {
	case None:
		compressed = append([]byte{}, data...)
	case RLE:
		compressed = compressRLE(data)
	default:
		return nil, zkerr.New(zkerr.CompressionError, fmt.Sprintf("unknown compression algorithm %d", algo))
	}

	roundTrip, err := decompress(compressed, algo)
	if err != nil {
		return nil, zkerr.Wrap(zkerr.CompressionError, "compression integrity check failed", err)
	}
	if !sponge.CtEqBytes(roundTrip, data) {
		return nil, zkerr.New(zkerr.CompressionError, "compressed data does not decompress to its original bytes")
	}

	return &CompressedProof{
		OriginalSize: len(data),
		Data:         compressed,
		Algorithm:    algo,
		Checksum:     checksum,
	}, nil
}

// Decompress reverses c, then re-checks both the declared original
// size and the checksum captured at compress time, rejecting any
// tampering with c.Data.
func Decompress(c *CompressedProof) ([]byte, error) {
	out, err := decompress(c.Data, c.Algorithm)
	if err != nil {
		return nil, err
	}
	if len(out) != c.OriginalSize {
		return nil, zkerr.New(zkerr.CompressionError,
			fmt.Sprintf("size mismatch: expected %d, got %d", c.OriginalSize, len(out)))
	}
	checksum := sponge.H(out, sponge.DomainCompressionSum)
	if !sponge.CtEqDigest(checksum, c.Checksum) {
		return nil, zkerr.New(zkerr.CompressionError, "checksum mismatch: compressed proof is corrupted")
	}
	return out, nil
}

// CompressionRatio is len(Data)/OriginalSize, or 0 for an empty input.
func (c *CompressedProof) CompressionRatio() float64 {
	if c.OriginalSize == 0 {
		return 0
	}
	return float64(len(c.Data)) / float64(c.OriginalSize)
}

// BytesSaved is how many fewer bytes Data carries than OriginalSize.
func (c *CompressedProof) BytesSaved() int {
	if len(c.Data) >= c.OriginalSize {
		return 0
	}
	return c.OriginalSize - len(c.Data)
}

// SelectAlgorithm picks RLE for inputs worth the two-byte-per-run
// overhead and None for small ones where that overhead would grow the
// payload instead of shrinking it.
func SelectAlgorithm(dataSize int) Algorithm {
	if dataSize < 100 {
		return None
	}
	return RLE
}

func decompress(data []byte, algo Algorithm) ([]byte, error) {
	switch algo {
	case None:
		return append([]byte{}, data...), nil
	case RLE:
		return decompressRLE(data)
	default:
		return nil, zkerr.New(zkerr.CompressionError, fmt.Sprintf("unknown compression algorithm %d", algo))
	}
}

func compressRLE(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}

	out := make([]byte, 0, len(data))
	current := data[0]
	count := byte(1)

	for _, b := range data[1:] {
		if b == current && count < 255 {
			count++
			continue
		}
		out = append(out, current, count)
		current = b
		count = 1
	}
	out = append(out, current, count)
	return out
}

func decompressRLE(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data)%2 != 0 {
		return nil, zkerr.New(zkerr.CompressionError, "invalid RLE data: length is odd")
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i += 2 {
		value, count := data[i], data[i+1]
		for j := byte(0); j < count; j++ {
			out = append(out, value)
		}
	}
	return out, nil
}
