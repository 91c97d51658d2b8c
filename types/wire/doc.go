// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire implements the serialized types exchanged between merge-mined
// chains: parent-chain transactions, the parent block header variants, and
// the element codec shared by everything that reads or writes them.
package wire
