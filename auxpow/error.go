// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auxpow

import "fmt"

// ErrorCode identifies a kind of merged-mining verification error.
type ErrorCode int

// These constants are used to identify a specific RuleError.
const (
	// ErrNotGenerate indicates the parent coinbase transaction is not the
	// first transaction of the parent block.
	ErrNotGenerate ErrorCode = iota

	// ErrOwnChainID indicates the parent block declares this chain's own
	// chain id while the strict chain id rule is active.
	ErrOwnChainID

	// ErrChainMerkleTooLong indicates the chain merkle branch exceeds the
	// maximum supported tree height.
	ErrChainMerkleTooLong

	// ErrBadZhashConfig indicates the Zhash personalization string does
	// not have the required length.
	ErrBadZhashConfig

	// ErrZhashWithoutEquihash indicates the Zhash flag is set while the
	// equihash flag is clear.  Zhash is an equihash variant, so the
	// combination is contradictory.
	ErrZhashWithoutEquihash

	// ErrParentVariantMismatch indicates the parent header type does not
	// agree with the equihash flag of the proof.
	ErrParentVariantMismatch

	// ErrCoinbaseVariantMismatch indicates the coinbase transaction type
	// does not agree with the stake flag of the proof.
	ErrCoinbaseVariantMismatch

	// ErrBadCoinbaseMerkleBranch indicates the coinbase transaction does
	// not connect to the parent block's transaction merkle root.
	ErrBadCoinbaseMerkleBranch

	// ErrMissingMerkleRoot indicates the chain merkle root commitment was
	// not found in the parent coinbase script.
	ErrMissingMerkleRoot

	// ErrMultipleHeaders indicates the merged-mining magic marker occurs
	// more than once in the parent coinbase script.
	ErrMultipleHeaders

	// ErrHeaderNotAdjacent indicates the magic marker is present but the
	// chain merkle root does not immediately follow it.
	ErrHeaderNotAdjacent

	// ErrRootTooLate indicates a legacy commitment (no magic marker) that
	// does not start within the allowed script prefix.
	ErrRootTooLate

	// ErrMissingTrailer indicates the script ends before the size and
	// nonce fields that must follow the chain merkle root.
	ErrMissingTrailer

	// ErrTreeSizeMismatch indicates the committed tree size does not
	// match the length of the chain merkle branch.
	ErrTreeSizeMismatch

	// ErrWrongChainIndex indicates the chain index does not match the
	// slot derived from the committed nonce.
	ErrWrongChainIndex
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrNotGenerate:             "ErrNotGenerate",
	ErrOwnChainID:              "ErrOwnChainID",
	ErrChainMerkleTooLong:      "ErrChainMerkleTooLong",
	ErrBadZhashConfig:          "ErrBadZhashConfig",
	ErrZhashWithoutEquihash:    "ErrZhashWithoutEquihash",
	ErrParentVariantMismatch:   "ErrParentVariantMismatch",
	ErrCoinbaseVariantMismatch: "ErrCoinbaseVariantMismatch",
	ErrBadCoinbaseMerkleBranch: "ErrBadCoinbaseMerkleBranch",
	ErrMissingMerkleRoot:       "ErrMissingMerkleRoot",
	ErrMultipleHeaders:         "ErrMultipleHeaders",
	ErrHeaderNotAdjacent:       "ErrHeaderNotAdjacent",
	ErrRootTooLate:             "ErrRootTooLate",
	ErrMissingTrailer:          "ErrMissingTrailer",
	ErrTreeSizeMismatch:        "ErrTreeSizeMismatch",
	ErrWrongChainIndex:         "ErrWrongChainIndex",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// RuleError identifies a rule violation.  It is used to indicate that
// processing of an AuxPow failed due to one of the merged-mining rules.  The
// caller can use type assertions to determine if a failure was specifically
// due to a rule violation and access the ErrorCode field to determine the
// specific reason for the rule violation.
type RuleError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	return e.Description
}

// NewRuleError creates a RuleError given a set of arguments.
func NewRuleError(c ErrorCode, desc string) RuleError {
	return RuleError{ErrorCode: c, Description: desc}
}
