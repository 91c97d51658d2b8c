// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auxpow

import (
	"bytes"
	"io"
	"time"

	"gitlab.com/auxnet/auxnetd/types/chainhash"
	"gitlab.com/auxnet/auxnetd/types/wire"
)

// VersionAuxPow is the block version bit that marks an auxiliary block
// header as carrying merged-mining evidence.
const VersionAuxPow int32 = 1 << 8

// chainIDShift is the number of version bits below the chain id.
const chainIDShift = 16

// baseHeaderPayload is the serialized size of a block header without the
// merged-mining evidence.
const baseHeaderPayload = 16 + chainhash.HashSize*2

// BlockVersion composes an auxiliary block version from the base version
// bits, the chain's merge-mining id, and the auxpow marker.
func BlockVersion(base, chainID int32, hasAuxPow bool) int32 {
	version := base | chainID<<chainIDShift
	if hasAuxPow {
		version |= VersionAuxPow
	}
	return version
}

// BlockHeader is an auxiliary chain block header.  When the version carries
// the VersionAuxPow bit the header owns the merged-mining evidence that
// replaces its own proof of work.
type BlockHeader struct {
	// Version of the block.  The upper bits declare the chain id and the
	// VersionAuxPow bit declares attached merged-mining evidence.
	Version int32

	// PrevBlock is the hash of the previous block header in the chain.
	PrevBlock chainhash.Hash

	// MerkleRoot is the merkle root of the block's transaction tree.
	MerkleRoot chainhash.Hash

	// Timestamp is the block time.  The protocol encodes it with one
	// second precision.
	Timestamp time.Time

	// Bits is the difficulty target for the block.
	Bits uint32

	// Nonce is used to generate the block.
	Nonce uint32

	// AuxPow is the merged-mining evidence.  It is non-nil exactly when
	// the VersionAuxPow bit is set.
	AuxPow *AuxPow
}

// ChainID returns the chain id declared in the upper version bits.
func (h *BlockHeader) ChainID() int32 { return h.Version >> chainIDShift }

// IsAuxPow reports whether the version declares attached merged-mining
// evidence.
func (h *BlockHeader) IsAuxPow() bool { return h.Version&VersionAuxPow != 0 }

// SetAuxPow attaches merged-mining evidence to the header and flips the
// version bit accordingly.  Passing nil detaches the evidence.
func (h *BlockHeader) SetAuxPow(aux *AuxPow) {
	h.AuxPow = aux
	if aux != nil {
		h.Version |= VersionAuxPow
	} else {
		h.Version &^= VersionAuxPow
	}
}

// BlockHash computes the block identifier hash for the given block header.
// The merged-mining evidence is deliberately excluded: the hash covers only
// the base header, which is what the parent coinbase commits to.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	buf := bytes.NewBuffer(make([]byte, 0, baseHeaderPayload))
	_ = h.serializeBase(buf)
	return chainhash.DoubleHashH(buf.Bytes())
}

func (h *BlockHeader) serializeBase(w io.Writer) error {
	sec := uint32(h.Timestamp.Unix())
	return wire.WriteElements(w, h.Version, &h.PrevBlock, &h.MerkleRoot,
		sec, h.Bits, h.Nonce)
}

func (h *BlockHeader) deserializeBase(r io.Reader) error {
	return wire.ReadElements(r, &h.Version, &h.PrevBlock, &h.MerkleRoot,
		(*wire.Uint32Time)(&h.Timestamp), &h.Bits, &h.Nonce)
}

// Serialize encodes a block header to w using a format that is suitable for
// long-term storage such as a database.  The merged-mining evidence follows
// the base header when the version declares it.
func (h *BlockHeader) Serialize(w io.Writer) error {
	if err := h.serializeBase(w); err != nil {
		return err
	}
	if h.IsAuxPow() {
		return h.AuxPow.Serialize(w)
	}
	return nil
}

// Deserialize decodes a block header from r into the receiver.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	if err := h.deserializeBase(r); err != nil {
		return err
	}
	if h.IsAuxPow() {
		h.AuxPow = new(AuxPow)
		return h.AuxPow.Deserialize(r)
	}
	h.AuxPow = nil
	return nil
}

// Copy creates a deep copy of the header so that the original does not get
// modified when the copy is manipulated.
func (h *BlockHeader) Copy() *BlockHeader {
	clone := *h
	if h.AuxPow != nil {
		clone.AuxPow = h.AuxPow.Copy()
	}
	return &clone
}
