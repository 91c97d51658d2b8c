// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auxpow

import (
	"time"

	"github.com/pkg/errors"
	"gitlab.com/auxnet/auxnetd/txscript"
	"gitlab.com/auxnet/auxnetd/types/chaincfg"
	"gitlab.com/auxnet/auxnetd/types/chainhash"
	"gitlab.com/auxnet/auxnetd/types/wire"
)

// fakeParentVersion is the block version of synthesized parent blocks.  Its
// upper bits are zero, so the fake parent never declares a real chain id and
// the strict chain id rule stays satisfiable.
const fakeParentVersion int32 = 1

// InitAuxPow attaches minimal merged-mining evidence to the given auxiliary
// block header: a synthesized parent block whose single coinbase commits to
// the header hash with a height-zero chain merkle tree.  The result
// validates under Check for any chain id other than the fake parent's, which
// is what tests and single-chain miners need.
//
// The version flags select the parent header shape and the coinbase layout.
// The auxpow marker is set on the header before its hash is taken, since
// the marker is part of the committed bytes.
func InitAuxPow(hdr *BlockHeader, version int32, params *chaincfg.Params) error {
	if version&VersionZhash != 0 && version&VersionEquihash == 0 {
		return errors.New("zhash flag requires the equihash flag")
	}

	hdr.Version |= VersionAuxPow
	blockHash := hdr.BlockHash()

	// The commitment input: reversed block hash, then a size=1 nonce=0
	// trailer.  With a height-zero tree the chain merkle root is the block
	// hash itself, so no magic marker is needed and the commitment sits at
	// the start of the script within the legacy window.
	inputData := blockHash.Reversed()
	inputData = append(inputData, 0x01)
	inputData = append(inputData, make([]byte, commitmentTrailerLen-1)...)

	script, err := txscript.NewScriptBuilder().AddData(inputData).Script()
	if err != nil {
		return errors.Wrap(err, "build coinbase script")
	}

	txIn := wire.NewTxIn(&wire.OutPoint{}, script)
	txIn.PreviousOutPoint.SetNull()

	var coinbase CoinbaseTx
	if version&VersionStake != 0 {
		tx := wire.NewMsgStakeTx(1, 0)
		tx.AddTxIn(txIn)
		coinbase = tx
	} else {
		tx := wire.NewMsgTx(1)
		tx.AddTxIn(txIn)
		coinbase = tx
	}

	// The fake parent block holds only the coinbase, so its transaction
	// merkle root is the coinbase hash.
	merkleRoot := chainhash.MerkleTreeRoot([]chainhash.Hash{coinbase.TxHash()})

	// Only the version and merkle root of the fake parent matter to the
	// verifier.  The remaining fields stay zero; the timestamp is pinned
	// to the epoch so serialization stays stable.
	var parent wire.ParentHeader
	if version&(VersionEquihash|VersionZhash) != 0 {
		var eh wire.EquihashParentHeader
		eh.SetVersion(fakeParentVersion)
		eh.SetMerkleRoot(merkleRoot)
		eh.SetTimestamp(time.Unix(0, 0))
		parent = &eh
	} else {
		var dh wire.ParentBlockHeader
		dh.SetVersion(fakeParentVersion)
		dh.SetMerkleRoot(merkleRoot)
		dh.SetTimestamp(time.Unix(0, 0))
		parent = &dh
	}

	aux := &AuxPow{
		Version: version,
		Coinbase: CoinbaseMerkleTx{
			Tx:         coinbase,
			ParentHash: parent.BlockHash(),
		},
		Parent: parent,
	}

	if version&VersionZhash != 0 {
		if len(params.ZhashPersonalize) != chaincfg.ZhashPersonalizeLen {
			return errors.Errorf("zhash personalization %q is %d bytes, want %d",
				params.ZhashPersonalize, len(params.ZhashPersonalize),
				chaincfg.ZhashPersonalizeLen)
		}
		aux.ZhashConfig = []byte(params.ZhashPersonalize)
	}

	hdr.AuxPow = aux
	return nil
}
