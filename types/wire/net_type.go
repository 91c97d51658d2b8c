// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "fmt"

// AuxNet represents which auxiliary network a message belongs to.
type AuxNet uint32

// Constants used to indicate the message's network.  They can also be used to
// seek to the next message when a stream's state is unknown, but this package
// does not provide that functionality since it's generally a better idea to
// simply disconnect clients that are misbehaving over TCP.
const (
	// MainNet represents the main auxiliary network.
	MainNet AuxNet = 0xd9b4bef9

	// TestNet represents the test auxiliary network.
	TestNet AuxNet = 0x0709110b

	// SimNet represents the simulation test network.
	SimNet AuxNet = 0x12141c16
)

// bnStrings is a map of auxiliary networks back to their constant names for
// pretty printing.
var bnStrings = map[AuxNet]string{
	MainNet: "MainNet",
	TestNet: "TestNet",
	SimNet:  "SimNet",
}

// String returns the AuxNet in human-readable form.
func (n AuxNet) String() string {
	if s, ok := bnStrings[n]; ok {
		return s
	}

	return fmt.Sprintf("Unknown AuxNet (%d)", uint32(n))
}
