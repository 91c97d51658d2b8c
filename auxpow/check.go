// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auxpow

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"gitlab.com/auxnet/auxnetd/types/chaincfg"
	"gitlab.com/auxnet/auxnetd/types/chainhash"
	"gitlab.com/auxnet/auxnetd/types/wire"
)

// reject logs the rejection reason through the package logger and wraps it
// in a RuleError.
func reject(code ErrorCode, desc string) error {
	log.Debug().Stringer("code", code).Str("reason", desc).Msg("aux pow rejected")
	return NewRuleError(code, desc)
}

// checkVariants verifies that the concrete parent header and coinbase types
// agree with the version flags, and that the flag combination itself is
// coherent.  A mismatch can only come from a hand-assembled AuxPow or a
// corrupted decoder, so it is rejected before any consensus rule runs.
func (a *AuxPow) checkVariants() error {
	switch a.Parent.(type) {
	case *wire.EquihashParentHeader:
		if !a.IsEquihash() {
			return reject(ErrParentVariantMismatch,
				"equihash parent header without equihash flag")
		}
	case *wire.ParentBlockHeader:
		if a.IsEquihash() {
			return reject(ErrParentVariantMismatch,
				"default parent header with equihash flag set")
		}
	default:
		return reject(ErrParentVariantMismatch, "missing parent header")
	}

	switch a.Coinbase.Tx.(type) {
	case *wire.MsgStakeTx:
		if !a.IsStake() {
			return reject(ErrCoinbaseVariantMismatch,
				"stake coinbase without stake flag")
		}
	case *wire.MsgTx:
		if a.IsStake() {
			return reject(ErrCoinbaseVariantMismatch,
				"standard coinbase with stake flag set")
		}
	default:
		return reject(ErrCoinbaseVariantMismatch, "missing coinbase transaction")
	}

	if a.IsZhash() && !a.IsEquihash() {
		return reject(ErrZhashWithoutEquihash,
			"zhash flag set without equihash flag")
	}

	return nil
}

// Check verifies the merged-mining evidence against the hash of the
// auxiliary block it claims to back.  chainID is the auxiliary chain's own
// merge-mining id and params supplies the strict chain id rule.  The Zhash
// personalization length is checked against chaincfg.ZhashPersonalizeLen.
//
// The checks run in a fixed order and each failure is final: agreement of
// the version flags with the parent header and coinbase types, coinbase
// position, parent chain id, chain branch length, Zhash personalization,
// the two merkle branch folds, the coinbase script scan, and last the size
// and nonce trailer that binds the chain index to its slot.  A nil return
// means the evidence is valid.
func (a *AuxPow) Check(auxBlockHash chainhash.Hash, chainID int32, params *chaincfg.Params) error {
	if err := a.checkVariants(); err != nil {
		return err
	}

	// The coinbase is always the first transaction of the parent block, so
	// an inclusion proof for any other position cannot be a generate.
	if a.Coinbase.Index != 0 {
		return reject(ErrNotGenerate, "aux pow coinbase is not a generate")
	}

	// A chain must not merge-mine itself.  The parent declares its chain
	// id in the upper bits of its block version.
	if params.StrictChainID && a.Parent.ChainID() == chainID {
		str := fmt.Sprintf("aux pow parent has our chain ID %d", chainID)
		return reject(ErrOwnChainID, str)
	}

	if len(a.ChainMerkleBranch) > MaxChainMerkleHeight {
		str := fmt.Sprintf("aux pow chain merkle branch has %d nodes, max %d",
			len(a.ChainMerkleBranch), MaxChainMerkleHeight)
		return reject(ErrChainMerkleTooLong, str)
	}

	if a.IsZhash() && len(a.ZhashConfig) != chaincfg.ZhashPersonalizeLen {
		str := fmt.Sprintf("zhash personalization is %d bytes, want %d",
			len(a.ZhashConfig), chaincfg.ZhashPersonalizeLen)
		return reject(ErrBadZhashConfig, str)
	}

	// Fold the auxiliary block hash up to the chain merkle root.  The
	// commitment stores the root in reversed byte order.
	chainRoot := CheckMerkleBranch(auxBlockHash, a.ChainMerkleBranch, a.ChainIndex)
	rootCommitment := chainRoot.Reversed()

	// The coinbase must connect to the parent block's transaction merkle
	// root through its own branch.
	cbRoot := CheckMerkleBranch(a.Coinbase.Tx.TxHash(), a.Coinbase.MerkleBranch,
		a.Coinbase.Index)
	merkleRoot := a.Parent.MerkleRoot()
	if !cbRoot.IsEqual(&merkleRoot) {
		return reject(ErrBadCoinbaseMerkleBranch, "aux pow merkle root incorrect")
	}

	// The script is scanned as raw bytes.  Opcode structure is irrelevant
	// to the commitment rules.
	script := a.Coinbase.Tx.CoinbaseScript()
	pcHead := bytes.Index(script, MergedMiningHeader)
	pc := bytes.Index(script, rootCommitment)
	if pc == -1 {
		return reject(ErrMissingMerkleRoot,
			"aux pow missing chain merkle root in parent coinbase")
	}

	if pcHead != -1 {
		// Exactly one magic marker, with the root right behind it.
		// Anything else leaves room for moving the commitment around.
		if bytes.Index(script[pcHead+1:], MergedMiningHeader) != -1 {
			return reject(ErrMultipleHeaders,
				"multiple merged mining headers in coinbase")
		}
		if pcHead+len(MergedMiningHeader) != pc {
			return reject(ErrHeaderNotAdjacent,
				"merged mining header is not just before chain merkle root")
		}
	} else if pc > legacyScriptPrefix {
		str := fmt.Sprintf("aux pow chain merkle root starts at script "+
			"offset %d, legacy limit is %d", pc, legacyScriptPrefix)
		return reject(ErrRootTooLate, str)
	}

	// The size and nonce trailer follows the root commitment.
	pc += chainhash.HashSize
	if len(script)-pc < commitmentTrailerLen {
		return reject(ErrMissingTrailer,
			"aux pow missing chain merkle tree size and nonce in parent coinbase")
	}

	height := uint32(len(a.ChainMerkleBranch))
	size := binary.LittleEndian.Uint32(script[pc:])
	if size != 1<<height {
		str := fmt.Sprintf("aux pow merkle branch size %d does not match "+
			"parent coinbase size %d", 1<<height, size)
		return reject(ErrTreeSizeMismatch, str)
	}

	nonce := binary.LittleEndian.Uint32(script[pc+4:])
	if expected := ExpectedIndex(nonce, chainID, height); uint32(a.ChainIndex) != expected {
		str := fmt.Sprintf("aux pow wrong index %d, expected %d for nonce %d",
			a.ChainIndex, expected, nonce)
		return reject(ErrWrongChainIndex, str)
	}

	return nil
}
