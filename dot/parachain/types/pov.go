// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

import (
	"github.com/RainFallsSilent/polkadot/lib/common"
	"github.com/RainFallsSilent/polkadot/pkg/scale"
)

// BlockData is the collator-supplied, possibly-compressed witness data a PVF consumes
// alongside the parent head to produce a candidate.
type BlockData []byte

// PoV (Proof-of-Validity) is the opaque blob of block data a collator attaches to a
// candidate. It is size-bounded and may be compressed; decompression and the bomb-limit
// check happen in BlobDecompressor, not here.
type PoV struct {
	BlockData BlockData
}

// Encode returns the SCALE encoding of the PoV: a compact-length-prefixed byte vector
// of BlockData.
func (p PoV) Encode() []byte {
	return scale.EncodeBytes(p.BlockData)
}

// EncodedSize returns the length of Encode(), which is what BasicChecks compares
// against max_pov_size.
func (p PoV) EncodedSize() uint32 {
	return uint32(len(p.Encode()))
}

// Hash returns the blake2b-256 hash of the PoV's encoding.
func (p PoV) Hash() common.Hash {
	return common.BlakeHash(p.Encode())
}

// ValidationCodeHashLength is the byte length of a ValidationCodeHash.
const ValidationCodeHashLength = common.HashLength

// ValidationCodeHash is the hash of a (possibly still-compressed) ValidationCode blob.
type ValidationCodeHash common.Hash

// ValidationCode is the opaque, possibly-compressed WASM bytecode of a parachain's
// validation function.
type ValidationCode []byte

// Hash returns the hash of the code's SCALE encoding, taken over whatever bytes are
// currently held — compressed or not. Basic checks always hash the as-supplied blob,
// before any decompression happens.
func (v ValidationCode) Hash() ValidationCodeHash {
	return ValidationCodeHash(common.BlakeHash(scale.EncodeBytes(v)))
}

// HeadData is the parachain head produced by a successful PVF execution, or supplied as
// the parent head going into one.
type HeadData []byte

// Hash returns the blake2b-256 hash of the head data's SCALE encoding.
func (h HeadData) Hash() common.Hash {
	return common.BlakeHash(scale.EncodeBytes(h))
}
