package integration_test

import (
	"testing"

	"github.com/zkmtd/zkmtd/internal/zkmtd/starkio"
	"github.com/zkmtd/zkmtd/pkg/zkmtd"
)

// Test02_RangeProofPrivacy proves "I know a private value at least as
// large as a public threshold" without the committed public values
// ever carrying the value itself, then exercises the GDPR-style salt
// erasure path: the proof stays valid after erasure even though the
// original opening is gone.
func Test02_RangeProofPrivacy(t *testing.T) {
	t.Log("=== Test 02: Range Proof Privacy + Salt Erasure ===")

	seed := []byte("integration-seed-02")
	epoch := zkmtd.EpochFromTimestamp(151200) // epoch 42

	backend := starkio.NewSimulatedBackend()

	prover, err := zkmtd.NewIntegratedProver(seed, epoch, backend, nil)
	if err != nil {
		t.Fatalf("failed to construct prover: %v", err)
	}
	defer prover.Destroy()

	t.Log("Step 1: Proving value=1000 >= threshold=500 without revealing 1000...")
	var salt zkmtd.Salt
	for i := range salt {
		salt[i] = 0xAB
	}

	proof, err := prover.ProveRange(1000, 500, salt)
	if err != nil {
		t.Fatalf("ProveRange failed: %v", err)
	}
	if len(proof.PublicValues) != 1 {
		t.Fatalf("expected exactly the threshold as a public value, got %v", proof.PublicValues)
	}
	t.Logf("  public values reveal only the threshold: %v", proof.PublicValues)

	t.Log("Step 2: Confirming a false range statement is rejected by the prover itself...")
	if _, err := prover.ProveRange(400, 500, salt); err == nil {
		t.Fatal("expected ProveRange(400, 500, ...) to fail")
	} else {
		var zerr *zkmtd.Error
		if ok := asZKMTDError(err, &zerr); !ok || zerr.Code != zkmtd.ErrInvalidWitness {
			t.Fatalf("expected InvalidWitness, got %v", err)
		}
		t.Log("  correctly rejected: the prover refuses to forge a false statement")
	}

	t.Log("Step 3: Verifying the legitimate proof...")
	verifier, err := prover.GetVerifier()
	if err != nil {
		t.Fatalf("GetVerifier failed: %v", err)
	}
	defer verifier.Destroy()

	ok, err := verifier.Verify(proof)
	if err != nil || !ok {
		t.Fatalf("expected the range proof to verify, got ok=%v err=%v", ok, err)
	}

	t.Log("Step 4: Erasing the salt (GDPR-style right-to-erasure) and re-verifying...")
	if !proof.HasSalt() {
		t.Fatal("expected the freshly produced proof to carry its salt")
	}
	proof.EraseSalt()
	if proof.HasSalt() {
		t.Fatal("expected EraseSalt to clear the salt")
	}

	ok, err = verifier.Verify(proof)
	if err != nil || !ok {
		t.Fatalf("expected verification to still succeed after salt erasure, got ok=%v err=%v", ok, err)
	}
	t.Log("  proof still verifies: the binding hash never depended on the salt")
}

func asZKMTDError(err error, target **zkmtd.Error) bool {
	e, ok := err.(*zkmtd.Error)
	if !ok {
		return false
	}
	*target = e
	return true
}
