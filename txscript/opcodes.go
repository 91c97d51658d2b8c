// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

// These constants are the values of the official opcodes used on the chain
// that are relevant to script construction in this module.  Data pushes up
// to 75 bytes use the OP_DATA_* range directly as the length prefix.
const (
	OP_0         = 0x00
	OP_DATA_1    = 0x01
	OP_DATA_75   = 0x4b
	OP_PUSHDATA1 = 0x4c
	OP_PUSHDATA2 = 0x4d
	OP_PUSHDATA4 = 0x4e
	OP_1NEGATE   = 0x4f
	OP_1         = 0x51
	OP_16        = 0x60
	OP_RETURN    = 0x6a
	OP_TRUE      = 0x51
)
