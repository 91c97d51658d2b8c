// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auxpow

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"gitlab.com/auxnet/auxnetd/txscript"
	"gitlab.com/auxnet/auxnetd/types/chainhash"
)

// AuxMerkleRoot computes the root of a chain merkle tree whose leaves are
// per-chain auxiliary block hashes.  A merged-mining tree is always full,
// so len(leaves) must be a power of two (1<<h for tree height h).
func AuxMerkleRoot(leaves []chainhash.Hash) chainhash.Hash {
	return chainhash.MerkleTreeRoot(leaves)
}

// BuildChainMerkleBranch returns the sibling path that positions the leaf
// at the given index inside a full chain merkle tree.  The branch, together
// with the index, feeds CheckMerkleBranch on the verifying side.
func BuildChainMerkleBranch(leaves []chainhash.Hash, index uint32) ([]chainhash.Hash, error) {
	if len(leaves) == 0 || len(leaves)&(len(leaves)-1) != 0 {
		return nil, errors.Errorf("chain merkle tree size %d is not a "+
			"power of two", len(leaves))
	}
	if index >= uint32(len(leaves)) {
		return nil, errors.Errorf("leaf index %d outside tree of size %d",
			index, len(leaves))
	}

	branch := make([]chainhash.Hash, 0, MaxChainMerkleHeight)
	level := make([]chainhash.Hash, len(leaves))
	copy(level, leaves)

	for len(level) > 1 {
		branch = append(branch, level[index^1])

		next := level[:len(level)/2]
		for i := range next {
			next[i] = *chainhash.HashMerkleBranches(&level[2*i], &level[2*i+1])
		}
		level = next
		index >>= 1
	}

	return branch, nil
}

// CoinbaseCommitmentScript builds the script push a parent coinbase uses to
// commit to a chain merkle tree: the merged-mining marker, the reversed
// root, and the little-endian size and nonce trailer.  h is the tree height
// and nonce the slot-selection nonce the miner picked.
func CoinbaseCommitmentScript(root chainhash.Hash, h uint32, nonce uint32) ([]byte, error) {
	if h > MaxChainMerkleHeight {
		return nil, errors.Errorf("chain merkle height %d exceeds max %d",
			h, MaxChainMerkleHeight)
	}

	data := make([]byte, 0, len(MergedMiningHeader)+chainhash.HashSize+commitmentTrailerLen)
	data = append(data, MergedMiningHeader...)
	data = append(data, root.Reversed()...)

	var trailer [commitmentTrailerLen]byte
	binary.LittleEndian.PutUint32(trailer[:4], 1<<h)
	binary.LittleEndian.PutUint32(trailer[4:], nonce)
	data = append(data, trailer[:]...)

	return txscript.NewScriptBuilder().AddData(data).Script()
}
