// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
	"time"

	"gitlab.com/auxnet/auxnetd/types/chainhash"
)

// MaxParentHeaderPayload is the maximum number of bytes a default parent
// block header can be.  Version 4 bytes + Timestamp 4 bytes + Bits 4 bytes +
// Nonce 4 bytes + PrevBlock and MerkleRoot hashes.
const MaxParentHeaderPayload = 16 + (chainhash.HashSize * 2)

// chainIDShift is the number of version bits below the chain id.  A parent
// chain declares its id in the upper half of the 32-bit block version.
const chainIDShift = 16

// ParentHeader describes a parent-chain block header, independently of the
// proof-of-work family that shaped it.  Exactly two implementations exist:
// ParentBlockHeader for bitcoin-shaped parents and EquihashParentHeader for
// equihash-family parents.
type ParentHeader interface {
	// Version of the parent block.  This is not the same as the protocol
	// version.
	Version() int32

	// ChainID declared by the parent block inside its version field.
	ChainID() int32

	// MerkleRoot of the parent block transaction tree.
	MerkleRoot() chainhash.Hash
	SetMerkleRoot(chainhash.Hash)

	// BlockHash computes the block identifier hash for the header.
	BlockHash() chainhash.Hash

	Serialize(w io.Writer) error
	Deserialize(r io.Reader) error

	// Copy creates a deep copy of the header so that the original does not
	// get modified when the copy is manipulated.
	Copy() ParentHeader
}

// ParentBlockHeader is a bitcoin-shaped parent block header.
type ParentBlockHeader struct {
	version    int32
	prevBlock  chainhash.Hash
	merkleRoot chainhash.Hash
	timestamp  time.Time
	bits       uint32
	nonce      uint32
}

// NewParentBlockHeader returns a new ParentBlockHeader using the provided
// version, previous block hash, merkle root hash, difficulty bits, and nonce
// with defaults for the remaining fields.
func NewParentBlockHeader(version int32, prevHash, merkleRootHash chainhash.Hash,
	bits, nonce uint32,
) *ParentBlockHeader {
	// Limit the timestamp to one second precision since the protocol
	// doesn't support better.
	return &ParentBlockHeader{
		version:    version,
		prevBlock:  prevHash,
		merkleRoot: merkleRootHash,
		timestamp:  time.Unix(time.Now().Unix(), 0),
		bits:       bits,
		nonce:      nonce,
	}
}

// Version returns the parent block version.
func (h *ParentBlockHeader) Version() int32 { return h.version }

// SetVersion sets the parent block version.
func (h *ParentBlockHeader) SetVersion(v int32) { h.version = v }

// ChainID returns the chain id declared in the upper version bits.
func (h *ParentBlockHeader) ChainID() int32 { return h.version >> chainIDShift }

// PrevBlock returns the hash of the previous parent block.
func (h *ParentBlockHeader) PrevBlock() chainhash.Hash { return h.prevBlock }

// MerkleRoot returns the merkle root of the parent block transaction tree.
func (h *ParentBlockHeader) MerkleRoot() chainhash.Hash { return h.merkleRoot }

// SetMerkleRoot sets the merkle root of the parent block transaction tree.
func (h *ParentBlockHeader) SetMerkleRoot(root chainhash.Hash) { h.merkleRoot = root }

// Timestamp returns the parent block time.
func (h *ParentBlockHeader) Timestamp() time.Time { return h.timestamp }

// SetTimestamp sets the parent block time.
func (h *ParentBlockHeader) SetTimestamp(t time.Time) { h.timestamp = t }

// Bits returns the difficulty target of the parent block.
func (h *ParentBlockHeader) Bits() uint32 { return h.bits }

// Nonce returns the parent block nonce.
func (h *ParentBlockHeader) Nonce() uint32 { return h.nonce }

// SetNonce sets the parent block nonce.
func (h *ParentBlockHeader) SetNonce(n uint32) { h.nonce = n }

// BlockHash computes the block identifier hash for the given block header.
func (h *ParentBlockHeader) BlockHash() chainhash.Hash {
	// Encode the header and double sha256 everything.  Ignore the error
	// returns since there is no way the encode could fail except being out
	// of memory which would cause a run-time panic.
	buf := bytes.NewBuffer(make([]byte, 0, MaxParentHeaderPayload))
	_ = h.Serialize(buf)
	return chainhash.DoubleHashH(buf.Bytes())
}

// Serialize encodes a block header to w using a format that is suitable for
// long-term storage such as a database.
func (h *ParentBlockHeader) Serialize(w io.Writer) error {
	sec := uint32(h.timestamp.Unix())
	return WriteElements(w, h.version, &h.prevBlock, &h.merkleRoot,
		sec, h.bits, h.nonce)
}

// Deserialize decodes a block header from r into the receiver.
func (h *ParentBlockHeader) Deserialize(r io.Reader) error {
	return ReadElements(r, &h.version, &h.prevBlock, &h.merkleRoot,
		(*Uint32Time)(&h.timestamp), &h.bits, &h.nonce)
}

// Copy creates a deep copy of the header so that the original does not get
// modified when the copy is manipulated.
func (h *ParentBlockHeader) Copy() ParentHeader {
	clone := *h
	return &clone
}
