// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"

	"gitlab.com/auxnet/auxnetd/types/chainhash"
)

// MsgStakeTx represents a transaction of a proof-of-stake flavored parent
// chain.  The layout matches MsgTx except for the timestamp the stake
// protocol serializes right after the version, which changes both the wire
// form and the transaction hash.
type MsgStakeTx struct {
	Version  int32
	Time     uint32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// NewMsgStakeTx returns a new stake tx message with the provided version and
// timestamp and no inputs or outputs.
func NewMsgStakeTx(version int32, timestamp uint32) *MsgStakeTx {
	return &MsgStakeTx{
		Version: version,
		Time:    timestamp,
		TxIn:    make([]*TxIn, 0, 1),
		TxOut:   make([]*TxOut, 0, 1),
	}
}

// AddTxIn adds a transaction input to the message.
func (msg *MsgStakeTx) AddTxIn(ti *TxIn) {
	msg.TxIn = append(msg.TxIn, ti)
}

// AddTxOut adds a transaction output to the message.
func (msg *MsgStakeTx) AddTxOut(to *TxOut) {
	msg.TxOut = append(msg.TxOut, to)
}

// TxHash generates the Hash for the transaction.
func (msg *MsgStakeTx) TxHash() chainhash.Hash {
	buf := bytes.NewBuffer(make([]byte, 0, msg.SerializeSize()))
	_ = msg.Serialize(buf)
	return chainhash.DoubleHashH(buf.Bytes())
}

// CoinbaseScript returns the signature script of the first transaction
// input.
func (msg *MsgStakeTx) CoinbaseScript() []byte {
	if len(msg.TxIn) == 0 {
		return nil
	}
	return msg.TxIn[0].SignatureScript
}

// IsCoinBase reports whether the transaction has the coinbase shape: a single
// input spending the null previous output.
func (msg *MsgStakeTx) IsCoinBase() bool {
	return len(msg.TxIn) == 1 && msg.TxIn[0].PreviousOutPoint.IsNull()
}

// Copy creates a deep copy of a transaction so that the original does not get
// modified when the copy is manipulated.
func (msg *MsgStakeTx) Copy() *MsgStakeTx {
	base := MsgTx{TxIn: msg.TxIn, TxOut: msg.TxOut}
	baseCopy := base.Copy()

	return &MsgStakeTx{
		Version:  msg.Version,
		Time:     msg.Time,
		TxIn:     baseCopy.TxIn,
		TxOut:    baseCopy.TxOut,
		LockTime: msg.LockTime,
	}
}

// Deserialize decodes a transaction from r into the receiver using a format
// that is suitable for long-term storage such as a database.
func (msg *MsgStakeTx) Deserialize(r io.Reader) error {
	err := ReadElements(r, &msg.Version, &msg.Time)
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
func (msg *MsgStakeTx) Serialize(w io.Writer) error {
	err := WriteElements(w, msg.Version, msg.Time)
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
func (msg *MsgStakeTx) SerializeSize() int {
	// Version 4 bytes + Time 4 bytes + LockTime 4 bytes + serialized
	// varint sizes for the input and output counts.
	n := 12 + VarIntSerializeSize(uint64(len(msg.TxIn))) +
		VarIntSerializeSize(uint64(len(msg.TxOut)))

	for _, txIn := range msg.TxIn {
		n += txIn.serializeSize()
	}

	for _, txOut := range msg.TxOut {
		n += txOut.serializeSize()
	}

	return n
}
