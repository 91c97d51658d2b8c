// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auxpow

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gitlab.com/auxnet/auxnetd/types/chaincfg"
	"gitlab.com/auxnet/auxnetd/types/chainhash"
	"gitlab.com/auxnet/auxnetd/types/wire"
)

// testParams returns a copy of the testnet parameters with the strict chain
// id rule set as requested.
func testParams(strict bool) *chaincfg.Params {
	params := chaincfg.TestNetParams
	params.StrictChainID = strict
	return &params
}

// newTestHeader returns a fresh auxiliary header with deterministic
// contents.
func newTestHeader(chainID int32) *BlockHeader {
	return &BlockHeader{
		Version:    BlockVersion(1, chainID, false),
		PrevBlock:  testHash(0xa0),
		MerkleRoot: testHash(0xa1),
		Timestamp:  time.Unix(1640995200, 0),
		Bits:       0x1d00ffff,
		Nonce:      7,
	}
}

// evidence assembles an AuxPow around a hand-built coinbase script.  The
// parent is a default header whose merkle root is the coinbase hash, so the
// inclusion proof holds with an empty coinbase branch.
func evidence(script []byte, branch []chainhash.Hash, index int32) *AuxPow {
	txIn := wire.NewTxIn(&wire.OutPoint{}, script)
	txIn.PreviousOutPoint.SetNull()
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(txIn)

	var parent wire.ParentBlockHeader
	parent.SetVersion(1)
	parent.SetMerkleRoot(tx.TxHash())

	return &AuxPow{
		Coinbase: CoinbaseMerkleTx{
			Tx:         tx,
			ParentHash: parent.BlockHash(),
		},
		ChainMerkleBranch: branch,
		ChainIndex:        index,
		Parent:            &parent,
	}
}

// commitment builds the raw byte layout the verifier scans for: an optional
// magic marker, the reversed root, and the little-endian size and nonce.
func commitment(withMagic bool, root chainhash.Hash, size, nonce uint32) []byte {
	var script []byte
	if withMagic {
		script = append(script, MergedMiningHeader...)
	}
	script = append(script, root.Reversed()...)

	var trailer [8]byte
	binary.LittleEndian.PutUint32(trailer[:4], size)
	binary.LittleEndian.PutUint32(trailer[4:], nonce)
	return append(script, trailer[:]...)
}

func requireRuleError(t *testing.T, err error, code ErrorCode) {
	t.Helper()

	var ruleErr RuleError
	require.Truef(t, errors.As(err, &ruleErr), "expected rule error, got %v", err)
	require.Equal(t, code, ruleErr.ErrorCode)
}

// TestInitAuxPowRoundTrip verifies that the builder output validates for
// every coherent flag combination, and that the incoherent ones are refused
// up front.
func TestInitAuxPowRoundTrip(t *testing.T) {
	t.Parallel()

	params := testParams(true)

	valid := []struct {
		name    string
		version int32
	}{
		{name: "default", version: 0},
		{name: "equihash", version: VersionEquihash},
		{name: "zhash", version: VersionEquihash | VersionZhash},
		{name: "stake", version: VersionStake},
		{name: "equihash stake", version: VersionEquihash | VersionStake},
		{name: "zhash stake", version: VersionEquihash | VersionZhash | VersionStake},
	}
	for _, test := range valid {
		hdr := newTestHeader(params.ChainID)
		err := InitAuxPow(hdr, test.version, params)
		require.NoError(t, err, test.name)
		require.True(t, hdr.IsAuxPow(), test.name)
		require.NotNil(t, hdr.AuxPow, test.name)

		err = hdr.AuxPow.Check(hdr.BlockHash(), params.ChainID, params)
		require.NoError(t, err, test.name)
	}

	// Zhash is an equihash variant.  The flag alone is contradictory.
	for _, version := range []int32{VersionZhash, VersionZhash | VersionStake} {
		hdr := newTestHeader(params.ChainID)
		require.Error(t, InitAuxPow(hdr, version, params))
	}
}

// TestCheckStrictChainID verifies the self-mining guard.  The synthesized
// parent declares chain id zero, so checking against chain id zero trips
// the strict rule and only the strict rule.
func TestCheckStrictChainID(t *testing.T) {
	t.Parallel()

	hdr := newTestHeader(0)
	require.NoError(t, InitAuxPow(hdr, 0, testParams(true)))

	err := hdr.AuxPow.Check(hdr.BlockHash(), 0, testParams(true))
	requireRuleError(t, err, ErrOwnChainID)

	err = hdr.AuxPow.Check(hdr.BlockHash(), 0, testParams(false))
	require.NoError(t, err)
}

// TestCheckMagicCommitment exercises the modern commitment with a height
// three tree of eight chains, placed through the miner-side helpers.
func TestCheckMagicCommitment(t *testing.T) {
	t.Parallel()

	const (
		chainID = int32(1)
		nonce   = uint32(0xDEADBEEF)
		height  = uint32(3)
	)
	slot := ExpectedIndex(nonce, chainID, height)
	require.Equal(t, uint32(2), slot)

	auxHash := testHash(0x42)
	leaves := make([]chainhash.Hash, 1<<height)
	for i := range leaves {
		leaves[i] = testHash(byte(0x50 + i))
	}
	leaves[slot] = auxHash

	branch, err := BuildChainMerkleBranch(leaves, slot)
	require.NoError(t, err)

	script, err := CoinbaseCommitmentScript(AuxMerkleRoot(leaves), height, nonce)
	require.NoError(t, err)

	aux := evidence(script, branch, int32(slot))
	require.NoError(t, aux.Check(auxHash, chainID, testParams(false)))

	// Moving the chain to another slot breaks the fold, so the committed
	// root is no longer present in the script.
	tampered := aux.Copy()
	tampered.ChainIndex++
	err = tampered.Check(auxHash, chainID, testParams(false))
	requireRuleError(t, err, ErrMissingMerkleRoot)
}

// TestCheckBranchLength verifies the tree height cap: a branch of exactly
// 30 nodes passes, 31 is rejected.
func TestCheckBranchLength(t *testing.T) {
	t.Parallel()

	const (
		chainID = int32(1)
		nonce   = uint32(7)
		height  = uint32(MaxChainMerkleHeight)
	)
	slot := int32(ExpectedIndex(nonce, chainID, height))

	auxHash := testHash(0x42)
	branch := make([]chainhash.Hash, height)
	for i := range branch {
		branch[i] = testHash(byte(0x60 + i))
	}

	root := CheckMerkleBranch(auxHash, branch, slot)
	script, err := CoinbaseCommitmentScript(root, height, nonce)
	require.NoError(t, err)

	aux := evidence(script, branch, slot)
	require.NoError(t, aux.Check(auxHash, chainID, testParams(false)))

	tooLong := evidence(script, append(branch, testHash(0x7f)), slot)
	err = tooLong.Check(auxHash, chainID, testParams(false))
	requireRuleError(t, err, ErrChainMerkleTooLong)
}

// TestCheckLegacyOffsets verifies the legacy window for commitments without
// the magic marker: offsets up to 20 are accepted, 21 is not.
func TestCheckLegacyOffsets(t *testing.T) {
	t.Parallel()

	auxHash := testHash(0x42)

	tests := []struct {
		offset int
		code   ErrorCode
		ok     bool
	}{
		{offset: 0, ok: true},
		{offset: 19, ok: true},
		{offset: 20, ok: true},
		{offset: 21, code: ErrRootTooLate},
	}
	for _, test := range tests {
		script := make([]byte, test.offset)
		script = append(script, commitment(false, auxHash, 1, 0)...)

		aux := evidence(script, nil, 0)
		err := aux.Check(auxHash, 1, testParams(false))
		if test.ok {
			require.NoErrorf(t, err, "offset %d", test.offset)
		} else {
			requireRuleError(t, err, test.code)
		}
	}
}

// TestCheckRejections walks the failure taxonomy with targeted mutations of
// otherwise valid evidence.
func TestCheckRejections(t *testing.T) {
	t.Parallel()

	const chainID = int32(1)
	auxHash := testHash(0x42)
	params := testParams(false)

	valid := func() *AuxPow {
		return evidence(commitment(true, auxHash, 1, 0), nil, 0)
	}
	require.NoError(t, valid().Check(auxHash, chainID, params))

	tests := []struct {
		name   string
		mutate func() *AuxPow
		code   ErrorCode
	}{
		{
			name: "coinbase not first tx",
			mutate: func() *AuxPow {
				aux := valid()
				aux.Coinbase.Index = 1
				return aux
			},
			code: ErrNotGenerate,
		},
		{
			name: "broken coinbase inclusion proof",
			mutate: func() *AuxPow {
				aux := valid()
				aux.Parent.SetMerkleRoot(testHash(0x66))
				return aux
			},
			code: ErrBadCoinbaseMerkleBranch,
		},
		{
			name: "commitment absent",
			mutate: func() *AuxPow {
				return evidence(commitment(true, testHash(0x43), 1, 0), nil, 0)
			},
			code: ErrMissingMerkleRoot,
		},
		{
			name: "two magic markers",
			mutate: func() *AuxPow {
				script := append([]byte{}, MergedMiningHeader...)
				script = append(script, commitment(true, auxHash, 1, 0)...)
				return evidence(script, nil, 0)
			},
			code: ErrMultipleHeaders,
		},
		{
			name: "magic not adjacent to root",
			mutate: func() *AuxPow {
				script := append([]byte{}, MergedMiningHeader...)
				script = append(script, 0x00)
				script = append(script, commitment(false, auxHash, 1, 0)...)
				return evidence(script, nil, 0)
			},
			code: ErrHeaderNotAdjacent,
		},
		{
			name: "trailer cut off",
			mutate: func() *AuxPow {
				script := append(MergedMiningHeader, auxHash.Reversed()...)
				return evidence(script, nil, 0)
			},
			code: ErrMissingTrailer,
		},
		{
			name: "tree size mismatch",
			mutate: func() *AuxPow {
				return evidence(commitment(true, auxHash, 2, 0), nil, 0)
			},
			code: ErrTreeSizeMismatch,
		},
		{
			name: "chain index not the expected slot",
			mutate: func() *AuxPow {
				aux := evidence(commitment(true, auxHash, 1, 0), nil, 1)
				return aux
			},
			code: ErrWrongChainIndex,
		},
		{
			name: "zhash personalization too short",
			mutate: func() *AuxPow {
				aux := valid()
				aux.Version |= VersionEquihash | VersionZhash
				aux.Parent = equihashParentFor(aux)
				aux.ZhashConfig = []byte("Zcash")
				return aux
			},
			code: ErrBadZhashConfig,
		},
		{
			name: "zhash flag without equihash flag",
			mutate: func() *AuxPow {
				aux := valid()
				aux.Version |= VersionZhash
				aux.ZhashConfig = []byte("ZcashPoW")
				return aux
			},
			code: ErrZhashWithoutEquihash,
		},
		{
			name: "equihash flag with default parent",
			mutate: func() *AuxPow {
				aux := valid()
				aux.Version |= VersionEquihash
				return aux
			},
			code: ErrParentVariantMismatch,
		},
		{
			name: "stake flag with standard coinbase",
			mutate: func() *AuxPow {
				aux := valid()
				aux.Version |= VersionStake
				return aux
			},
			code: ErrCoinbaseVariantMismatch,
		},
	}

	for _, test := range tests {
		err := test.mutate().Check(auxHash, chainID, params)
		require.Errorf(t, err, "mutation %q must be rejected", test.name)
		requireRuleError(t, err, test.code)
	}
}

// equihashParentFor rebuilds the parent of the given evidence as an
// equihash header carrying the same merkle root.
func equihashParentFor(aux *AuxPow) *wire.EquihashParentHeader {
	var parent wire.EquihashParentHeader
	parent.SetVersion(1)
	parent.SetMerkleRoot(aux.Parent.MerkleRoot())
	return &parent
}
