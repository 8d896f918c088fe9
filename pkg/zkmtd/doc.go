// Package zkmtd is the public surface of ZKMTD: hash-based STARK
// proofs bound to time-rotated cryptographic parameters, so a proof
// valid in one epoch is cryptographically invalid in the next, and an
// on-chain verifier can check a cheap binding commitment instead of
// the full STARK.
//
// The external STARK prover/verifier and the AIR constraint
// descriptions themselves are out of scope for this module; callers
// supply a starkio.Backend (this module ships a SimulatedBackend for
// tests only — see internal/zkmtd/starkio) and this package wires
// epoch rotation, commitments, and the binding hash around it.
package zkmtd
