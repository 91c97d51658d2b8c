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

// MaxEquihashSolutionSize is the largest equihash solution blob accepted by
// the decoder.  Solutions of the common (200,9) parameterization are 1344
// bytes; the cap leaves room for other parameterizations.
const MaxEquihashSolutionSize = 1 << 14

// EquihashParentHeader is an equihash-family parent block header.  Along with
// the bitcoin-shaped fields it carries the reserved hash, a 256-bit nonce,
// and the equihash solution trailer.  The solution is treated as opaque; its
// validity is the parent chain's business.
type EquihashParentHeader struct {
	version    int32
	prevBlock  chainhash.Hash
	merkleRoot chainhash.Hash
	reserved   chainhash.Hash
	timestamp  time.Time
	bits       uint32
	nonce      chainhash.Hash
	solution   []byte
}

// NewEquihashParentHeader returns a new EquihashParentHeader using the
// provided version and merkle root with defaults for the remaining fields.
func NewEquihashParentHeader(version int32, merkleRootHash chainhash.Hash) *EquihashParentHeader {
	return &EquihashParentHeader{
		version:    version,
		merkleRoot: merkleRootHash,
		timestamp:  time.Unix(time.Now().Unix(), 0),
	}
}

// Version returns the parent block version.
func (h *EquihashParentHeader) Version() int32 { return h.version }

// SetVersion sets the parent block version.
func (h *EquihashParentHeader) SetVersion(v int32) { h.version = v }

// ChainID returns the chain id declared in the upper version bits.
func (h *EquihashParentHeader) ChainID() int32 { return h.version >> chainIDShift }

// PrevBlock returns the hash of the previous parent block.
func (h *EquihashParentHeader) PrevBlock() chainhash.Hash { return h.prevBlock }

// MerkleRoot returns the merkle root of the parent block transaction tree.
func (h *EquihashParentHeader) MerkleRoot() chainhash.Hash { return h.merkleRoot }

// SetMerkleRoot sets the merkle root of the parent block transaction tree.
func (h *EquihashParentHeader) SetMerkleRoot(root chainhash.Hash) { h.merkleRoot = root }

// Reserved returns the reserved hash field.
func (h *EquihashParentHeader) Reserved() chainhash.Hash { return h.reserved }

// Timestamp returns the parent block time.
func (h *EquihashParentHeader) Timestamp() time.Time { return h.timestamp }

// SetTimestamp sets the parent block time.
func (h *EquihashParentHeader) SetTimestamp(t time.Time) { h.timestamp = t }

// Bits returns the difficulty target of the parent block.
func (h *EquihashParentHeader) Bits() uint32 { return h.bits }

// Nonce returns the 256-bit parent block nonce.
func (h *EquihashParentHeader) Nonce() chainhash.Hash { return h.nonce }

// SetNonce sets the 256-bit parent block nonce.
func (h *EquihashParentHeader) SetNonce(n chainhash.Hash) { h.nonce = n }

// Solution returns the equihash solution trailer.
func (h *EquihashParentHeader) Solution() []byte { return h.solution }

// SetSolution sets the equihash solution trailer.
func (h *EquihashParentHeader) SetSolution(solution []byte) { h.solution = solution }

// BlockHash computes the block identifier hash for the given block header,
// solution trailer included.
func (h *EquihashParentHeader) BlockHash() chainhash.Hash {
	buf := bytes.NewBuffer(make([]byte, 0, MaxParentHeaderPayload+
		chainhash.HashSize*2+len(h.solution)+MaxVarIntPayload))
	_ = h.Serialize(buf)
	return chainhash.DoubleHashH(buf.Bytes())
}

// Serialize encodes a block header to w using a format that is suitable for
// long-term storage such as a database.
func (h *EquihashParentHeader) Serialize(w io.Writer) error {
	sec := uint32(h.timestamp.Unix())
	err := WriteElements(w, h.version, &h.prevBlock, &h.merkleRoot,
		&h.reserved, sec, h.bits, &h.nonce)
	if err != nil {
		return err
	}
	return WriteVarBytes(w, h.solution)
}

// Deserialize decodes a block header from r into the receiver.
func (h *EquihashParentHeader) Deserialize(r io.Reader) error {
	err := ReadElements(r, &h.version, &h.prevBlock, &h.merkleRoot,
		&h.reserved, (*Uint32Time)(&h.timestamp), &h.bits, &h.nonce)
	if err != nil {
		return err
	}

	h.solution, err = ReadVarBytes(r, MaxEquihashSolutionSize, "equihash solution")
	return err
}

// Copy creates a deep copy of the header so that the original does not get
// modified when the copy is manipulated.
func (h *EquihashParentHeader) Copy() ParentHeader {
	clone := *h
	clone.solution = make([]byte, len(h.solution))
	copy(clone.solution, h.solution)
	return &clone
}
