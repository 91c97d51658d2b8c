// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auxpow

import (
	"io"

	"gitlab.com/auxnet/auxnetd/types/chainhash"
	"gitlab.com/auxnet/auxnetd/types/wire"
)

// AuxPow version flags.  The equihash and zhash flags select the parent
// header shape, the stake flag selects the coinbase transaction layout.
// Zhash is an equihash variant, so VersionZhash is only meaningful together
// with VersionEquihash.
const (
	// VersionEquihash marks a parent block of the equihash family.
	VersionEquihash int32 = 1 << 0

	// VersionZhash marks a parent block mined with the Zhash equihash
	// variant, which personalizes the hash with an 8-byte string.
	VersionZhash int32 = 1 << 1

	// VersionStake marks a parent coinbase with the proof-of-stake
	// transaction layout.
	VersionStake int32 = 1 << 2
)

const (
	// MaxChainMerkleHeight is the maximum height of the chain merkle tree,
	// and therefore the maximum length of a chain merkle branch.  A single
	// parent block can commit to at most 1<<30 auxiliary chains.
	MaxChainMerkleHeight = 30

	// legacyScriptPrefix is the number of leading coinbase script bytes
	// within which a commitment without the magic marker must start.
	legacyScriptPrefix = 20

	// commitmentTrailerLen is the length of the size and nonce fields that
	// follow the chain merkle root in the coinbase script.
	commitmentTrailerLen = 8
)

// MergedMiningHeader is the magic marker that precedes the chain merkle root
// inside a parent coinbase script.
var MergedMiningHeader = []byte{0xfa, 0xbe, 'm', 'm'}

// CoinbaseTx is the subset of transaction behavior an AuxPow needs from the
// parent coinbase.  Both wire.MsgTx and wire.MsgStakeTx satisfy it.
type CoinbaseTx interface {
	// TxHash returns the hash of the transaction.
	TxHash() chainhash.Hash

	// CoinbaseScript returns the signature script of the first input.
	CoinbaseScript() []byte

	// IsCoinBase reports whether the transaction is a coinbase.
	IsCoinBase() bool

	Serialize(w io.Writer) error
	Deserialize(r io.Reader) error
	SerializeSize() int
}

// CoinbaseMerkleTx ties a parent coinbase transaction to the parent block
// that confirmed it.  MerkleBranch proves inclusion of the transaction in
// the parent block's transaction merkle tree at position Index.  The
// coinbase is always the first transaction, so Index must be zero for the
// proof to be acceptable.
type CoinbaseMerkleTx struct {
	Tx           CoinbaseTx
	ParentHash   chainhash.Hash
	MerkleBranch []chainhash.Hash
	Index        int32
}

// InitMerkleBranch populates the inclusion proof from the full transaction
// hash list of the parent block.  The coinbase occupies leaf zero.
func (m *CoinbaseMerkleTx) InitMerkleBranch(txHashes []chainhash.Hash) {
	m.MerkleBranch = chainhash.BuildCoinbaseMerkleTreeProof(txHashes)
	m.Index = 0
}

// AuxPow is the merged-mining evidence attached to an auxiliary block
// header.  It proves that a parent block committed to the auxiliary block
// hash: the coinbase carries the chain merkle root in its script, the
// coinbase branch connects the coinbase to the parent merkle root, and the
// chain merkle branch positions this chain's slot among the committed
// auxiliary chains.
type AuxPow struct {
	// Version is the flag bitfield selecting the parent header and
	// coinbase variants.
	Version int32

	// Coinbase is the parent coinbase together with its inclusion proof.
	Coinbase CoinbaseMerkleTx

	// ChainMerkleBranch is the sibling path from this chain's leaf to the
	// chain merkle root.  Its length is the height of the tree.
	ChainMerkleBranch []chainhash.Hash

	// ChainIndex is the leaf position of this chain in the chain merkle
	// tree.
	ChainIndex int32

	// Parent is the parent block header, in the shape the version flags
	// declare.
	Parent wire.ParentHeader

	// ZhashConfig is the 8-byte Zhash personalization string.  It is
	// required exactly when VersionZhash is set.
	ZhashConfig []byte
}

// IsEquihash reports whether the parent block is of the equihash family.
func (a *AuxPow) IsEquihash() bool { return a.Version&VersionEquihash != 0 }

// IsZhash reports whether the parent block uses the Zhash personalization.
func (a *AuxPow) IsZhash() bool { return a.Version&VersionZhash != 0 }

// IsStake reports whether the parent coinbase uses the proof-of-stake
// transaction layout.
func (a *AuxPow) IsStake() bool { return a.Version&VersionStake != 0 }

// Copy creates a deep copy of the AuxPow so that the original does not get
// modified when the copy is manipulated.
func (a *AuxPow) Copy() *AuxPow {
	clone := &AuxPow{
		Version:    a.Version,
		ChainIndex: a.ChainIndex,
		Coinbase: CoinbaseMerkleTx{
			ParentHash: a.Coinbase.ParentHash,
			Index:      a.Coinbase.Index,
		},
	}

	switch tx := a.Coinbase.Tx.(type) {
	case *wire.MsgTx:
		clone.Coinbase.Tx = tx.Copy()
	case *wire.MsgStakeTx:
		clone.Coinbase.Tx = tx.Copy()
	}

	if a.Coinbase.MerkleBranch != nil {
		clone.Coinbase.MerkleBranch = make([]chainhash.Hash, len(a.Coinbase.MerkleBranch))
		copy(clone.Coinbase.MerkleBranch, a.Coinbase.MerkleBranch)
	}
	if a.ChainMerkleBranch != nil {
		clone.ChainMerkleBranch = make([]chainhash.Hash, len(a.ChainMerkleBranch))
		copy(clone.ChainMerkleBranch, a.ChainMerkleBranch)
	}
	if a.Parent != nil {
		clone.Parent = a.Parent.Copy()
	}
	if a.ZhashConfig != nil {
		clone.ZhashConfig = make([]byte, len(a.ZhashConfig))
		copy(clone.ZhashConfig, a.ZhashConfig)
	}

	return clone
}
