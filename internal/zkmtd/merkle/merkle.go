// Package merkle implements the binary Merkle aggregator (C8) used
// to batch proofs: leaves are the Poseidon2 digests of serialized
// proof bytes, internal nodes fold sibling digests under the same
// domain tag, and inclusion paths are verified in constant time.
package merkle

import (
	"github.com/zkmtd/zkmtd/internal/zkmtd/sponge"
	"github.com/zkmtd/zkmtd/internal/zkmtd/zkerr"
)

// Position identifies which side of its parent a path element sits
// on.
type Position int

const (
	Left Position = iota
	Right
)

// PathElement is one sibling digest plus its position, read from the
// leaf upward.
type PathElement struct {
	Sibling  sponge.Digest
	Position Position
}

// Path is an inclusion path from a leaf to a tree's root.
type Path []PathElement

// Tree is a binary Merkle tree over leaf byte-images.
type Tree struct {
	levels [][]sponge.Digest // levels[0] is the leaf level
}

// Build constructs a Tree over items, hashing each with
// sponge.DomainMerkle to form the leaf level. Fails with
// zkerr.MerkleError if items is empty.
func Build(items [][]byte) (*Tree, error) {
	if len(items) == 0 {
		return nil, zkerr.New(zkerr.MerkleError, "cannot build a tree over zero items")
	}

	leaves := make([]sponge.Digest, len(items))
	for i, item := range items {
		leaves[i] = sponge.H(item, sponge.DomainMerkle)
	}

	levels := [][]sponge.Digest{leaves}
	current := leaves
	for len(current) > 1 {
		next := make([]sponge.Digest, 0, (len(current)+1)/2)
		for i := 0; i < len(current); i += 2 {
			if i+1 < len(current) {
				next = append(next, sponge.Combine(current[i], current[i+1], sponge.DomainMerkle))
			} else {
				// Odd node at this level: duplicate it against
				// itself rather than leaving it unpaired.
				next = append(next, sponge.Combine(current[i], current[i], sponge.DomainMerkle))
			}
		}
		levels = append(levels, next)
		current = next
	}

	return &Tree{levels: levels}, nil
}

// Root returns the tree's root digest.
func (t *Tree) Root() sponge.Digest {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// Leaf returns the leaf digest at index i.
func (t *Tree) Leaf(i int) sponge.Digest {
	return t.levels[0][i]
}

// Path builds the inclusion path for leaf index i.
func (t *Tree) Path(i int) (Path, error) {
	if i < 0 || i >= len(t.levels[0]) {
		return nil, zkerr.New(zkerr.MerkleError, "leaf index out of range")
	}

	var path Path
	idx := i
	for level := 0; level < len(t.levels)-1; level++ {
		current := t.levels[level]

		var siblingIdx int
		var pos Position
		if idx%2 == 0 {
			siblingIdx = idx + 1
			pos = Right
		} else {
			siblingIdx = idx - 1
			pos = Left
		}
		if siblingIdx >= len(current) {
			// idx was the odd last node; the tree duplicated it
			// against itself, so the sibling is idx itself.
			siblingIdx = idx
		}

		path = append(path, PathElement{Sibling: current[siblingIdx], Position: pos})
		idx /= 2
	}
	return path, nil
}

// Verify re-derives the root from leaf using path and compares it to
// root in constant time.
func (p Path) Verify(leaf sponge.Digest, root sponge.Digest) bool {
	current := leaf
	for _, elem := range p {
		if elem.Position == Right {
			current = sponge.Combine(current, elem.Sibling, sponge.DomainMerkle)
		} else {
			current = sponge.Combine(elem.Sibling, current, sponge.DomainMerkle)
		}
	}
	return sponge.CtEqDigest(current, root)
}
