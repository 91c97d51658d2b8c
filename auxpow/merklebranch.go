// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auxpow

import (
	"gitlab.com/auxnet/auxnetd/types/chainhash"
)

// CheckMerkleBranch folds the given leaf hash through a merkle branch and
// returns the recomputed root.  At each level the low bit of index selects
// which side of the concatenation the running hash takes: a set bit puts the
// sibling on the left.  The index is shifted right by one per level so that
// the branch describes a path from the leaf to the root of a balanced tree.
//
// An index of -1 signals the absence of a branch and yields the zero hash.
func CheckMerkleBranch(hash chainhash.Hash, branch []chainhash.Hash, index int32) chainhash.Hash {
	if index == -1 {
		return chainhash.ZeroHash
	}

	for i := range branch {
		if index&1 == 1 {
			hash = *chainhash.HashMerkleBranches(&branch[i], &hash)
		} else {
			hash = *chainhash.HashMerkleBranches(&hash, &branch[i])
		}
		index >>= 1
	}

	return hash
}

// ExpectedIndex computes the slot an auxiliary chain must occupy inside a
// chain merkle tree of height h.  The slot is derived from the miner-chosen
// nonce and the chain id so that distinct chains land on distinct slots with
// high probability, and so that a chain cannot be committed twice at
// different positions.
//
// The arithmetic intentionally wraps at 32 bits.  The multiplier and
// increment are the classic rand() constants and both passes, the wrap
// behavior included, are consensus-critical.
func ExpectedIndex(nonce uint32, chainID int32, h uint32) uint32 {
	rand := nonce
	rand = rand*1103515245 + 12345
	rand += uint32(chainID)
	rand = rand*1103515245 + 12345

	return rand % (1 << h)
}
