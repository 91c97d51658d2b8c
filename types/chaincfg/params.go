// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"errors"

	"gitlab.com/auxnet/auxnetd/types/wire"
)

// ErrDuplicateNet describes an error where the parameters for an auxiliary
// network could not be set due to the network already being a standard
// network or previously-registered via this package.
var ErrDuplicateNet = errors.New("duplicate auxiliary network")

// Params defines an auxiliary network by its consensus parameters.  The
// fields consumed by merge-mining verification are ChainID, StrictChainID,
// and ZhashPersonalize; the rest identify the network.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net defines the magic bytes used to identify the network.
	Net wire.AuxNet

	// DefaultPort defines the default peer-to-peer port for the network.
	DefaultPort string

	// ChainID is the merge-mining chain id of this auxiliary chain.  It
	// selects this chain's slot inside parent coinbase commitments.
	ChainID int32

	// StrictChainID, when set, forbids a parent block that declares this
	// chain's own id.  It prevents a chain from merge-mining itself.
	StrictChainID bool

	// ZhashPersonalize is the 8-byte personalization string used by
	// Zhash-family parent blocks.
	ZhashPersonalize string

	// CoinbaseMaturity is the number of blocks required before newly mined
	// coins can be spent.
	CoinbaseMaturity uint16
}

// ZhashPersonalizeLen is the only valid length of Params.ZhashPersonalize.
const ZhashPersonalizeLen = 8

// defaultZhashPersonalize is the personalization string of the upstream
// equihash variant.  Networks override it in their Params when they fork the
// personalization.
const defaultZhashPersonalize = "ZcashPoW"

// MainNetParams defines the network parameters for the main auxiliary
// network.
var MainNetParams = Params{
	Name:        "mainnet",
	Net:         wire.MainNet,
	DefaultPort: "8755",

	ChainID:          0x0001,
	StrictChainID:    true,
	ZhashPersonalize: defaultZhashPersonalize,
	CoinbaseMaturity: 100,
}

// TestNetParams defines the network parameters for the test auxiliary
// network.  The strict chain id rule is relaxed so that test setups can
// merge-mine against themselves.
var TestNetParams = Params{
	Name:        "testnet",
	Net:         wire.TestNet,
	DefaultPort: "18755",

	ChainID:          0x0001,
	StrictChainID:    false,
	ZhashPersonalize: defaultZhashPersonalize,
	CoinbaseMaturity: 100,
}

// SimNetParams defines the network parameters for the simulation test
// network.
var SimNetParams = Params{
	Name:        "simnet",
	Net:         wire.SimNet,
	DefaultPort: "18756",

	ChainID:          0x0002,
	StrictChainID:    false,
	ZhashPersonalize: defaultZhashPersonalize,
	CoinbaseMaturity: 100,
}

var (
	registeredNets  = make(map[wire.AuxNet]struct{})
	registeredNames = make(map[string]*Params)
)

// Register registers the network parameters so they can be looked
// up by name.  It returns ErrDuplicateNet if the network magic is already
// registered.
func Register(params *Params) error {
	if _, ok := registeredNets[params.Net]; ok {
		return ErrDuplicateNet
	}
	registeredNets[params.Net] = struct{}{}
	registeredNames[params.Name] = params
	return nil
}

// mustRegister performs the same function as Register except it panics if
// there is an error.  This should only be called from package init functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

// ParamsByName returns the registered network parameters with the given
// name, or nil when the name is unknown.
func ParamsByName(name string) *Params {
	return registeredNames[name]
}

func init() {
	// Register all default networks when the package is initialized.
	mustRegister(&MainNetParams)
	mustRegister(&TestNetParams)
	mustRegister(&SimNetParams)
}
