// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auxpow

import (
	"io"

	"gitlab.com/auxnet/auxnetd/types/chaincfg"
	"gitlab.com/auxnet/auxnetd/types/wire"
)

// maxZhashConfigLen caps the personalization string read by the decoder.
// The consensus length is 8 bytes; the cap only guards allocation before
// Check enforces the exact size.
const maxZhashConfigLen = 2 * chaincfg.ZhashPersonalizeLen

// Serialize encodes the AuxPow to w in the merged-mining interchange
// layout: version, coinbase transaction, parent block hash, coinbase
// branch and index, chain merkle branch and index, the Zhash
// personalization when the flag declares one, and finally the parent
// header.  The version is written first so the decoder can select the
// coinbase and parent variants.
func (a *AuxPow) Serialize(w io.Writer) error {
	if err := wire.WriteElement(w, a.Version); err != nil {
		return err
	}
	if err := a.Coinbase.Tx.Serialize(w); err != nil {
		return err
	}
	err := wire.WriteElements(w, &a.Coinbase.ParentHash)
	if err != nil {
		return err
	}
	if err := wire.WriteHashArray(w, a.Coinbase.MerkleBranch); err != nil {
		return err
	}
	if err := wire.WriteElement(w, a.Coinbase.Index); err != nil {
		return err
	}
	if err := wire.WriteHashArray(w, a.ChainMerkleBranch); err != nil {
		return err
	}
	if err := wire.WriteElement(w, a.ChainIndex); err != nil {
		return err
	}
	if a.IsZhash() {
		if err := wire.WriteVarBytes(w, a.ZhashConfig); err != nil {
			return err
		}
	}
	return a.Parent.Serialize(w)
}

// Deserialize decodes an AuxPow from r into the receiver.  The version
// flags read up front determine which coinbase and parent header variants
// are decoded.
func (a *AuxPow) Deserialize(r io.Reader) error {
	if err := wire.ReadElement(r, &a.Version); err != nil {
		return err
	}

	if a.IsStake() {
		tx := new(wire.MsgStakeTx)
		if err := tx.Deserialize(r); err != nil {
			return err
		}
		a.Coinbase.Tx = tx
	} else {
		tx := new(wire.MsgTx)
		if err := tx.Deserialize(r); err != nil {
			return err
		}
		a.Coinbase.Tx = tx
	}

	if err := wire.ReadElement(r, &a.Coinbase.ParentHash); err != nil {
		return err
	}

	var err error
	a.Coinbase.MerkleBranch, err = wire.ReadHashArray(r)
	if err != nil {
		return err
	}
	if err := wire.ReadElement(r, &a.Coinbase.Index); err != nil {
		return err
	}

	a.ChainMerkleBranch, err = wire.ReadHashArray(r)
	if err != nil {
		return err
	}
	if err := wire.ReadElement(r, &a.ChainIndex); err != nil {
		return err
	}

	if a.IsZhash() {
		a.ZhashConfig, err = wire.ReadVarBytes(r, maxZhashConfigLen,
			"zhash personalization")
		if err != nil {
			return err
		}
	} else {
		a.ZhashConfig = nil
	}

	if a.IsEquihash() {
		a.Parent = new(wire.EquihashParentHeader)
	} else {
		a.Parent = new(wire.ParentBlockHeader)
	}
	return a.Parent.Deserialize(r)
}
