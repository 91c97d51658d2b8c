// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package auxpow implements merged-mining proof verification and construction.

Merge mining lets a parent chain's proof of work simultaneously satisfy the
proof-of-work requirement of one or more auxiliary chains.  The parent block
commits to the auxiliary chains inside its coinbase script: the script carries
a chain merkle root whose leaves are per-chain auxiliary block hashes,
followed by the encoded tree size and a slot-selection nonce.

An AuxPow bundles everything needed to verify such a commitment offline: the
parent coinbase transaction, the merkle branch proving the coinbase belongs
to the parent block, the chain merkle branch positioning this chain's slot,
and the parent block header itself.  Check validates the whole bundle against
an auxiliary block hash and the chain parameters.  InitAuxPow builds the
minimal valid bundle for a given auxiliary header, which is what tests and
single-chain miners need.

Parent chains come in two header shapes (bitcoin-like and equihash-family)
and two coinbase layouts (standard and proof-of-stake).  The AuxPow version
bitfield declares which combination a particular proof carries.
*/
package auxpow
