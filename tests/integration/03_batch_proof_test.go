package integration_test

import (
	"testing"

	"github.com/zkmtd/zkmtd/internal/zkmtd/starkio"
	"github.com/zkmtd/zkmtd/pkg/zkmtd"
)

// Test03_BatchAcrossEpochRotation builds a batch of proofs sharing one
// epoch, checks Merkle inclusion, and then demonstrates that the
// binding hash's epoch-rotation guarantee holds per-proof: advancing
// the verifier invalidates every proof in the batch at once, exactly
// as if they had been checked individually.
func Test03_BatchAcrossEpochRotation(t *testing.T) {
	t.Log("=== Test 03: Batch Aggregation + Epoch Rotation ===")

	seed := []byte("integration-seed-03")
	epoch := zkmtd.EpochFromTimestamp(32400) // epoch 9

	backend := starkio.NewSimulatedBackend()

	prover, err := zkmtd.NewIntegratedProver(seed, epoch, backend, nil)
	if err != nil {
		t.Fatalf("failed to construct prover: %v", err)
	}
	defer prover.Destroy()

	t.Log("Step 1: Proving a sum AIR four times under distinct salts...")
	a := []zkmtd.FieldElement{
		zkmtd.NewFieldElement(1), zkmtd.NewFieldElement(2),
		zkmtd.NewFieldElement(3), zkmtd.NewFieldElement(4),
	}
	b := []zkmtd.FieldElement{
		zkmtd.NewFieldElement(10), zkmtd.NewFieldElement(20),
		zkmtd.NewFieldElement(30), zkmtd.NewFieldElement(40),
	}

	proofs := make([]*zkmtd.IntegratedProof, 4)
	for i := range proofs {
		salt := zkmtd.DerivePVSalt(seed, epoch, []byte{byte(i)})
		p, err := prover.ProveSum(a, b, salt)
		if err != nil {
			t.Fatalf("ProveSum[%d] failed: %v", i, err)
		}
		proofs[i] = p
	}

	t.Log("Step 2: Aggregating into a batch and checking inclusion...")
	batch, err := zkmtd.BuildBatch(proofs, nil)
	if err != nil {
		t.Fatalf("BuildBatch failed: %v", err)
	}
	t.Logf("  merkle root: %x", batch.MerkleRoot[:8])

	for i := range proofs {
		path, err := batch.Path(i)
		if err != nil {
			t.Fatalf("Path(%d) failed: %v", i, err)
		}
		if !path.Verify(batch.Leaf(i), batch.MerkleRoot) {
			t.Fatalf("inclusion path for proof %d failed to verify", i)
		}
	}
	t.Log("  every proof's inclusion path verifies against the batch root")

	t.Log("Step 3: Verifying every proof individually under the current epoch...")
	verifier, err := prover.GetVerifier()
	if err != nil {
		t.Fatalf("GetVerifier failed: %v", err)
	}
	defer verifier.Destroy()

	for i, p := range proofs {
		ok, err := verifier.Verify(p)
		if err != nil || !ok {
			t.Fatalf("proof %d failed to verify before rotation: ok=%v err=%v", i, ok, err)
		}
	}

	t.Log("Step 4: Advancing the verifier's epoch and confirming every proof is now invalid...")
	if err := verifier.AdvanceEpoch(); err != nil {
		t.Fatalf("AdvanceEpoch failed: %v", err)
	}
	for i, p := range proofs {
		ok, err := verifier.Verify(p)
		if err != nil {
			t.Fatalf("proof %d errored after rotation: %v", i, err)
		}
		if ok {
			t.Fatalf("proof %d unexpectedly still verified after epoch rotation", i)
		}
	}
	t.Log("  every proof in the batch was invalidated by a single epoch rotation")
}
