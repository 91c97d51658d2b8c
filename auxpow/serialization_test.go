// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auxpow

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAuxPowSerializeRoundTrip serializes builder output for every coherent
// flag combination, decodes it back, and verifies the decoded evidence is
// byte-stable and still validates.
func TestAuxPowSerializeRoundTrip(t *testing.T) {
	t.Parallel()

	params := testParams(true)

	versions := []struct {
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
	for _, test := range versions {
		hdr := newTestHeader(params.ChainID)
		require.NoError(t, InitAuxPow(hdr, test.version, params), test.name)

		var first bytes.Buffer
		require.NoError(t, hdr.AuxPow.Serialize(&first), test.name)

		decoded := new(AuxPow)
		require.NoError(t, decoded.Deserialize(bytes.NewReader(first.Bytes())), test.name)
		require.Equal(t, hdr.AuxPow.Version, decoded.Version, test.name)

		var second bytes.Buffer
		require.NoError(t, decoded.Serialize(&second), test.name)
		require.Equalf(t, first.Bytes(), second.Bytes(),
			"%s: reserialization is not byte stable", test.name)

		err := decoded.Check(hdr.BlockHash(), params.ChainID, params)
		require.NoError(t, err, test.name)
	}
}

// TestBlockHeaderSerializeRoundTrip covers the header codec with and
// without attached evidence.
func TestBlockHeaderSerializeRoundTrip(t *testing.T) {
	t.Parallel()

	params := testParams(true)

	// Plain header, no evidence.
	plain := newTestHeader(params.ChainID)
	var buf bytes.Buffer
	require.NoError(t, plain.Serialize(&buf))

	decoded := new(BlockHeader)
	require.NoError(t, decoded.Deserialize(bytes.NewReader(buf.Bytes())))
	require.Nil(t, decoded.AuxPow)
	require.Equal(t, plain.BlockHash(), decoded.BlockHash())

	// Header with evidence attached.
	hdr := newTestHeader(params.ChainID)
	require.NoError(t, InitAuxPow(hdr, VersionEquihash, params))

	buf.Reset()
	require.NoError(t, hdr.Serialize(&buf))

	decoded = new(BlockHeader)
	require.NoError(t, decoded.Deserialize(bytes.NewReader(buf.Bytes())))
	require.True(t, decoded.IsAuxPow())
	require.NotNil(t, decoded.AuxPow)
	require.Equal(t, hdr.BlockHash(), decoded.BlockHash())

	err := decoded.AuxPow.Check(decoded.BlockHash(), params.ChainID, params)
	require.NoError(t, err)
}

// TestBlockVersion covers the version bit composition helpers.
func TestBlockVersion(t *testing.T) {
	t.Parallel()

	version := BlockVersion(4, 7, true)
	hdr := &BlockHeader{Version: version}
	require.Equal(t, int32(7), hdr.ChainID())
	require.True(t, hdr.IsAuxPow())

	hdr.SetAuxPow(nil)
	require.False(t, hdr.IsAuxPow())
	require.Equal(t, int32(7), hdr.ChainID())

	hdr.SetAuxPow(&AuxPow{})
	require.True(t, hdr.IsAuxPow())
}

// TestAuxPowCopy verifies the deep copy is detached from its source.
func TestAuxPowCopy(t *testing.T) {
	t.Parallel()

	params := testParams(true)
	hdr := newTestHeader(params.ChainID)
	require.NoError(t, InitAuxPow(hdr, VersionEquihash|VersionZhash, params))

	clone := hdr.AuxPow.Copy()
	clone.ZhashConfig[0] ^= 0xff
	clone.Parent.SetMerkleRoot(testHash(0x99))
	clone.ChainIndex = 5

	require.NoError(t, hdr.AuxPow.Check(hdr.BlockHash(), params.ChainID, params))
	require.NotEqual(t, clone.ZhashConfig, hdr.AuxPow.ZhashConfig)
	require.Equal(t, int32(0), hdr.AuxPow.ChainIndex)
}
