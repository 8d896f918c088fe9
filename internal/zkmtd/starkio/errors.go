package starkio

import "github.com/zkmtd/zkmtd/internal/zkmtd/zkerr"

var (
	errWitnessTooSmall  = zkerr.New(zkerr.InvalidWitness, "witness has too few elements for this AIR")
	errBadTraceLength   = zkerr.New(zkerr.InvalidWitness, "trace length must be a power of two >= MinWitnessSize")
	errVectorLenMismatch = zkerr.New(zkerr.InvalidWitness, "input vectors must have equal length")
	errValueBelowThresh = zkerr.New(zkerr.InvalidWitness, "value is below threshold")
)
