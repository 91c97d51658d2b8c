// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"testing"
)

// TestScriptBuilderAddOp tests that pushing opcodes to a script via the
// ScriptBuilder API works as expected.
func TestScriptBuilderAddOp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opcodes  []byte
		expected []byte
	}{
		{
			name:     "push OP_0",
			opcodes:  []byte{OP_0},
			expected: []byte{OP_0},
		},
		{
			name:     "push OP_1 OP_2",
			opcodes:  []byte{OP_1, OP_1 + 1},
			expected: []byte{OP_1, OP_1 + 1},
		},
		{
			name:     "push OP_RETURN",
			opcodes:  []byte{OP_RETURN},
			expected: []byte{OP_RETURN},
		},
	}

	builder := NewScriptBuilder()
	for _, test := range tests {
		builder.Reset()
		for _, opcode := range test.opcodes {
			builder.AddOp(opcode)
		}
		result, err := builder.Script()
		if err != nil {
			t.Errorf("ScriptBuilder.AddOp (%s): unexpected error: %v",
				test.name, err)
			continue
		}
		if !bytes.Equal(result, test.expected) {
			t.Errorf("ScriptBuilder.AddOp (%s): unexpected result: "+
				"got %x, want %x", test.name, result, test.expected)
		}
	}
}

// TestScriptBuilderAddData tests that pushing data to a script via the
// ScriptBuilder API works as expected and conforms to canonical encoding
// rules.
func TestScriptBuilderAddData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     []byte
		expected []byte
	}{
		// Empty data and single byte small ints become opcodes.
		{name: "push empty byte sequence", data: nil, expected: []byte{OP_0}},
		{name: "push 1 byte 0x00", data: []byte{0x00}, expected: []byte{OP_0}},
		{name: "push 1 byte 0x01", data: []byte{0x01}, expected: []byte{OP_1}},
		{name: "push 1 byte 0x10", data: []byte{0x10}, expected: []byte{OP_16}},
		{name: "push 1 byte 0x81", data: []byte{0x81}, expected: []byte{OP_1NEGATE}},

		// Direct OP_DATA_# pushes.
		{
			name:     "push 1 byte 0x11",
			data:     []byte{0x11},
			expected: []byte{OP_DATA_1, 0x11},
		},
		{
			name:     "push 40 bytes",
			data:     bytes.Repeat([]byte{0x49}, 40),
			expected: append([]byte{OP_DATA_1 + 39}, bytes.Repeat([]byte{0x49}, 40)...),
		},
		{
			name:     "push 75 bytes",
			data:     bytes.Repeat([]byte{0x49}, 75),
			expected: append([]byte{OP_DATA_75}, bytes.Repeat([]byte{0x49}, 75)...),
		},

		// OP_PUSHDATA1 boundary.
		{
			name:     "push 76 bytes",
			data:     bytes.Repeat([]byte{0x49}, 76),
			expected: append([]byte{OP_PUSHDATA1, 76}, bytes.Repeat([]byte{0x49}, 76)...),
		},
		{
			name:     "push 255 bytes",
			data:     bytes.Repeat([]byte{0x49}, 255),
			expected: append([]byte{OP_PUSHDATA1, 255}, bytes.Repeat([]byte{0x49}, 255)...),
		},

		// OP_PUSHDATA2 boundary.
		{
			name:     "push 256 bytes",
			data:     bytes.Repeat([]byte{0x49}, 256),
			expected: append([]byte{OP_PUSHDATA2, 0x00, 0x01}, bytes.Repeat([]byte{0x49}, 256)...),
		},
	}

	builder := NewScriptBuilder()
	for _, test := range tests {
		builder.Reset().AddData(test.data)
		result, err := builder.Script()
		if err != nil {
			t.Errorf("ScriptBuilder.AddData (%s): unexpected error: %v",
				test.name, err)
			continue
		}
		if !bytes.Equal(result, test.expected) {
			t.Errorf("ScriptBuilder.AddData (%s): unexpected result: "+
				"got len %d, want len %d", test.name, len(result),
				len(test.expected))
		}
	}

	// A push that would exceed the maximum script size must error and leave
	// the script unmodified.
	builder.Reset()
	builder.AddData(bytes.Repeat([]byte{0x49}, maxScriptSize+1))
	result, err := builder.Script()
	if err == nil {
		t.Fatalf("ScriptBuilder.AddData: expected error for oversized push")
	}
	if _, ok := err.(ErrScriptNotCanonical); !ok {
		t.Fatalf("ScriptBuilder.AddData: unexpected error type %T", err)
	}
	if len(result) != 0 {
		t.Fatalf("ScriptBuilder.AddData: script modified on oversized push")
	}
}

// TestScriptBuilderAddInt64 tests that pushing signed integers to a script
// via the ScriptBuilder API works as expected.
func TestScriptBuilderAddInt64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		val      int64
		expected []byte
	}{
		{name: "push 0", val: 0, expected: []byte{OP_0}},
		{name: "push 1", val: 1, expected: []byte{OP_1}},
		{name: "push 16", val: 16, expected: []byte{OP_16}},
		{name: "push -1", val: -1, expected: []byte{OP_1NEGATE}},
		{name: "push 17", val: 17, expected: []byte{OP_DATA_1, 0x11}},
		{name: "push 127", val: 127, expected: []byte{OP_DATA_1, 0x7f}},
		{name: "push 128", val: 128, expected: []byte{OP_DATA_1 + 1, 0x80, 0x00}},
		{name: "push 255", val: 255, expected: []byte{OP_DATA_1 + 1, 0xff, 0x00}},
		{name: "push 256", val: 256, expected: []byte{OP_DATA_1 + 1, 0x00, 0x01}},
		{name: "push -2", val: -2, expected: []byte{OP_DATA_1, 0x82}},
		{name: "push -128", val: -128, expected: []byte{OP_DATA_1 + 1, 0x80, 0x80}},
	}

	builder := NewScriptBuilder()
	for _, test := range tests {
		builder.Reset().AddInt64(test.val)
		result, err := builder.Script()
		if err != nil {
			t.Errorf("ScriptBuilder.AddInt64 (%s): unexpected error: %v",
				test.name, err)
			continue
		}
		if !bytes.Equal(result, test.expected) {
			t.Errorf("ScriptBuilder.AddInt64 (%s): unexpected result: "+
				"got %x, want %x", test.name, result, test.expected)
		}
	}
}
