// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
	"math"

	"gitlab.com/auxnet/auxnetd/types/chainhash"
)

const (
	// TxVersion is the current latest supported transaction version.
	TxVersion = 1

	// MaxTxInSequenceNum is the maximum sequence number the sequence field
	// of a transaction input can be.
	MaxTxInSequenceNum uint32 = 0xffffffff

	// maxScriptAllowed is the maximum script size permitted by the decoder.
	maxScriptAllowed = 1 << 16

	// minTxPayload is the minimum payload size for a transaction.
	minTxPayload = 10
)

// OutPoint defines a data type that is used to track previous transaction
// outputs.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// NewOutPoint returns a new transaction outpoint point with the
// provided hash and index.
func NewOutPoint(hash *chainhash.Hash, index uint32) *OutPoint {
	return &OutPoint{
		Hash:  *hash,
		Index: index,
	}
}

// SetNull marks the outpoint as the null previous output used by coinbase
// transactions: a zero hash with the maximum index.
func (o *OutPoint) SetNull() {
	o.Hash = chainhash.ZeroHash
	o.Index = math.MaxUint32
}

// IsNull reports whether the outpoint is the coinbase null previous output.
func (o *OutPoint) IsNull() bool {
	return o.Index == math.MaxUint32 && o.Hash == chainhash.ZeroHash
}

// TxIn defines an auxiliary network transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Sequence         uint32
}

// NewTxIn returns a new transaction input with the provided
// previous outpoint point and signature script with a default sequence of
// MaxTxInSequenceNum.
func NewTxIn(prevOut *OutPoint, signatureScript []byte) *TxIn {
	return &TxIn{
		PreviousOutPoint: *prevOut,
		SignatureScript:  signatureScript,
		Sequence:         MaxTxInSequenceNum,
	}
}

// TxOut defines an auxiliary network transaction output.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// NewTxOut returns a new transaction output with the provided
// transaction value and public key script.
func NewTxOut(value int64, pkScript []byte) *TxOut {
	return &TxOut{
		Value:    value,
		PkScript: pkScript,
	}
}

// MsgTx represents a parent-chain transaction in the standard layout.
type MsgTx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// NewMsgTx returns a new tx message with the provided version and no
// transaction inputs or outputs.  Also, the lock time is set to zero to
// indicate the transaction is valid immediately as opposed to some time in
// the future.
func NewMsgTx(version int32) *MsgTx {
	return &MsgTx{
		Version: version,
		TxIn:    make([]*TxIn, 0, 1),
		TxOut:   make([]*TxOut, 0, 1),
	}
}

// AddTxIn adds a transaction input to the message.
func (msg *MsgTx) AddTxIn(ti *TxIn) {
	msg.TxIn = append(msg.TxIn, ti)
}

// AddTxOut adds a transaction output to the message.
func (msg *MsgTx) AddTxOut(to *TxOut) {
	msg.TxOut = append(msg.TxOut, to)
}

// TxHash generates the Hash for the transaction.
func (msg *MsgTx) TxHash() chainhash.Hash {
	// Encode the transaction and calculate double sha256 on the result.
	// Ignore the error returns since the only way the encode could fail
	// is being out of memory or due to nil pointers, both of which would
	// cause a run-time panic.
	buf := bytes.NewBuffer(make([]byte, 0, msg.SerializeSize()))
	_ = msg.Serialize(buf)
	return chainhash.DoubleHashH(buf.Bytes())
}

// CoinbaseScript returns the signature script of the first transaction
// input.  For a coinbase the script is the only place merge-mining
// commitments live.
func (msg *MsgTx) CoinbaseScript() []byte {
	if len(msg.TxIn) == 0 {
		return nil
	}
	return msg.TxIn[0].SignatureScript
}

// IsCoinBase reports whether the transaction has the coinbase shape: a single
// input spending the null previous output.
func (msg *MsgTx) IsCoinBase() bool {
	return len(msg.TxIn) == 1 && msg.TxIn[0].PreviousOutPoint.IsNull()
}

// Copy creates a deep copy of a transaction so that the original does not get
// modified when the copy is manipulated.
func (msg *MsgTx) Copy() *MsgTx {
	newTx := MsgTx{
		Version:  msg.Version,
		TxIn:     make([]*TxIn, 0, len(msg.TxIn)),
		TxOut:    make([]*TxOut, 0, len(msg.TxOut)),
		LockTime: msg.LockTime,
	}

	for _, oldTxIn := range msg.TxIn {
		newScript := make([]byte, len(oldTxIn.SignatureScript))
		copy(newScript, oldTxIn.SignatureScript)

		newTx.TxIn = append(newTx.TxIn, &TxIn{
			PreviousOutPoint: oldTxIn.PreviousOutPoint,
			SignatureScript:  newScript,
			Sequence:         oldTxIn.Sequence,
		})
	}

	for _, oldTxOut := range msg.TxOut {
		newScript := make([]byte, len(oldTxOut.PkScript))
		copy(newScript, oldTxOut.PkScript)

		newTx.TxOut = append(newTx.TxOut, &TxOut{
			Value:    oldTxOut.Value,
			PkScript: newScript,
		})
	}

	return &newTx
}

// Deserialize decodes a transaction from r into the receiver using a format
// that is suitable for long-term storage such as a database.
func (msg *MsgTx) Deserialize(r io.Reader) error {
	err := ReadElement(r, &msg.Version)
	if err != nil {
		return err
	}

	msg.TxIn, err = readTxInList(r)
	if err != nil {
		return err
	}

	msg.TxOut, err = readTxOutList(r)
	if err != nil {
		return err
	}

	return ReadElement(r, &msg.LockTime)
}

// Serialize encodes the transaction to w using a format that is suitable for
// long-term storage such as a database.
func (msg *MsgTx) Serialize(w io.Writer) error {
	err := WriteElement(w, msg.Version)
	if err != nil {
		return err
	}

	if err = writeTxInList(w, msg.TxIn); err != nil {
		return err
	}

	if err = writeTxOutList(w, msg.TxOut); err != nil {
		return err
	}

	return WriteElement(w, msg.LockTime)
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction.
func (msg *MsgTx) SerializeSize() int {
	// Version 4 bytes + LockTime 4 bytes + Serialized varint size for the
	// number of transaction inputs and outputs.
	n := 8 + VarIntSerializeSize(uint64(len(msg.TxIn))) +
		VarIntSerializeSize(uint64(len(msg.TxOut)))

	for _, txIn := range msg.TxIn {
		n += txIn.serializeSize()
	}

	for _, txOut := range msg.TxOut {
		n += txOut.serializeSize()
	}

	return n
}

func (t *TxIn) serializeSize() int {
	// Outpoint Hash 32 bytes + Outpoint Index 4 bytes + Sequence 4 bytes +
	// serialized varint size for the length of SignatureScript +
	// SignatureScript bytes.
	return 40 + VarIntSerializeSize(uint64(len(t.SignatureScript))) +
		len(t.SignatureScript)
}

func (t *TxOut) serializeSize() int {
	// Value 8 bytes + serialized varint size for the length of PkScript +
	// PkScript bytes.
	return 8 + VarIntSerializeSize(uint64(len(t.PkScript))) + len(t.PkScript)
}

func readOutPoint(r io.Reader, op *OutPoint) error {
	return ReadElements(r, &op.Hash, &op.Index)
}

func writeOutPoint(w io.Writer, op *OutPoint) error {
	return WriteElements(w, &op.Hash, op.Index)
}

func readTxIn(r io.Reader, ti *TxIn) error {
	err := readOutPoint(r, &ti.PreviousOutPoint)
	if err != nil {
		return err
	}

	ti.SignatureScript, err = ReadVarBytes(r, maxScriptAllowed,
		"transaction input signature script")
	if err != nil {
		return err
	}

	return ReadElement(r, &ti.Sequence)
}

func writeTxIn(w io.Writer, ti *TxIn) error {
	err := writeOutPoint(w, &ti.PreviousOutPoint)
	if err != nil {
		return err
	}

	if err = WriteVarBytes(w, ti.SignatureScript); err != nil {
		return err
	}

	return WriteElement(w, ti.Sequence)
}

func readTxOut(r io.Reader, to *TxOut) error {
	err := ReadElement(r, &to.Value)
	if err != nil {
		return err
	}

	to.PkScript, err = ReadVarBytes(r, maxScriptAllowed,
		"transaction output public key script")
	return err
}

func writeTxOut(w io.Writer, to *TxOut) error {
	err := WriteElement(w, to.Value)
	if err != nil {
		return err
	}

	return WriteVarBytes(w, to.PkScript)
}

func readTxInList(r io.Reader) ([]*TxIn, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count > maxAllowedAlloc/40 {
		return nil, errNonCanonicalCount("transaction inputs", count)
	}

	txIns := make([]*TxIn, count)
	for i := range txIns {
		ti := TxIn{}
		if err = readTxIn(r, &ti); err != nil {
			return nil, err
		}
		txIns[i] = &ti
	}
	return txIns, nil
}

func writeTxInList(w io.Writer, txIns []*TxIn) error {
	err := WriteVarInt(w, uint64(len(txIns)))
	if err != nil {
		return err
	}
	for _, ti := range txIns {
		if err = writeTxIn(w, ti); err != nil {
			return err
		}
	}
	return nil
}

func readTxOutList(r io.Reader) ([]*TxOut, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count > maxAllowedAlloc/9 {
		return nil, errNonCanonicalCount("transaction outputs", count)
	}

	txOuts := make([]*TxOut, count)
	for i := range txOuts {
		to := TxOut{}
		if err = readTxOut(r, &to); err != nil {
			return nil, err
		}
		txOuts[i] = &to
	}
	return txOuts, nil
}

func writeTxOutList(w io.Writer, txOuts []*TxOut) error {
	err := WriteVarInt(w, uint64(len(txOuts)))
	if err != nil {
		return err
	}
	for _, to := range txOuts {
		if err = writeTxOut(w, to); err != nil {
			return err
		}
	}
	return nil
}
