// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auxpow

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/auxnet/auxnetd/types/chainhash"
)

// testHash derives a deterministic hash for test trees.
func testHash(seed byte) chainhash.Hash {
	return chainhash.DoubleHashH([]byte{seed})
}

// TestExpectedIndex pins the consensus values of the slot-selection
// function, including the 32-bit overflow behavior.
func TestExpectedIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		nonce   uint32
		chainID int32
		height  uint32
		want    uint32
	}{
		{name: "height zero always slot zero", nonce: 0, chainID: 1, height: 0, want: 0},
		{name: "max nonce wraps at 32 bits", nonce: 0xFFFFFFFF, chainID: 1, height: 4, want: 2},
		{name: "deadbeef nonce", nonce: 0xDEADBEEF, chainID: 1, height: 3, want: 2},
		{name: "small nonce", nonce: 7, chainID: 1, height: 3, want: 2},
		{name: "cafebabe nonce", nonce: 0xCAFEBABE, chainID: 5, height: 5, want: 13},
		{name: "answer nonce", nonce: 42, chainID: 2, height: 4, want: 2},
	}

	for _, test := range tests {
		got := ExpectedIndex(test.nonce, test.chainID, test.height)
		if got != test.want {
			t.Errorf("ExpectedIndex (%s): got %d, want %d",
				test.name, got, test.want)
		}

		// The function is pure.
		if again := ExpectedIndex(test.nonce, test.chainID, test.height); again != got {
			t.Errorf("ExpectedIndex (%s): not deterministic: %d vs %d",
				test.name, got, again)
		}
	}

	// The result always lands inside the tree.
	for h := uint32(0); h <= MaxChainMerkleHeight; h++ {
		got := ExpectedIndex(0x12345678, 3, h)
		if got >= 1<<h {
			t.Fatalf("ExpectedIndex: slot %d outside tree of height %d", got, h)
		}
	}
}

// TestCheckMerkleBranchBasics covers the two special cases of the fold: an
// index of -1 signals no branch, and an empty branch returns the leaf.
func TestCheckMerkleBranchBasics(t *testing.T) {
	t.Parallel()

	leaf := testHash(1)

	got := CheckMerkleBranch(leaf, nil, -1)
	if !got.IsEqual(&chainhash.ZeroHash) {
		t.Errorf("CheckMerkleBranch: index -1 returned %s, want zero hash", got)
	}

	got = CheckMerkleBranch(leaf, nil, 0)
	if !got.IsEqual(&leaf) {
		t.Errorf("CheckMerkleBranch: empty branch returned %s, want %s", got, leaf)
	}
}

// TestCheckMerkleBranchTree verifies that every leaf of a full tree folds
// back to the same root through the branch built for its position.
func TestCheckMerkleBranchTree(t *testing.T) {
	t.Parallel()

	leaves := make([]chainhash.Hash, 8)
	for i := range leaves {
		leaves[i] = testHash(byte(i))
	}
	root := AuxMerkleRoot(leaves)

	for i := range leaves {
		branch, err := BuildChainMerkleBranch(leaves, uint32(i))
		require.NoError(t, err)
		require.Len(t, branch, 3)

		got := CheckMerkleBranch(leaves[i], branch, int32(i))
		if !got.IsEqual(&root) {
			t.Errorf("leaf %d folds to %s, want root %s", i, got, root)
		}

		// The same branch at the wrong position must not reproduce
		// the root.
		wrong := CheckMerkleBranch(leaves[i], branch, int32(i)^1)
		if wrong.IsEqual(&root) {
			t.Errorf("leaf %d folds to the root at the wrong index", i)
		}
	}
}

// TestBuildChainMerkleBranchRejects verifies the shape requirements of the
// miner-side branch builder.
func TestBuildChainMerkleBranchRejects(t *testing.T) {
	t.Parallel()

	leaves := []chainhash.Hash{testHash(0), testHash(1), testHash(2)}
	_, err := BuildChainMerkleBranch(leaves, 0)
	require.Error(t, err, "non power of two tree size must be rejected")

	_, err = BuildChainMerkleBranch(leaves[:2], 2)
	require.Error(t, err, "out of range leaf index must be rejected")

	_, err = BuildChainMerkleBranch(nil, 0)
	require.Error(t, err, "empty tree must be rejected")
}
