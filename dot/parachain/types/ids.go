// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

// ParaID identifies a parachain registered with the relay chain.
type ParaID uint32

// BlockNumber is a relay-chain block height.
type BlockNumber uint32

// CollatorIDLength is the length in bytes of a collator's sr25519 public key.
const CollatorIDLength = 32

// CollatorID is a collator's sr25519 public key.
type CollatorID [CollatorIDLength]byte

// CollatorSignatureLength is the length in bytes of an sr25519 signature.
const CollatorSignatureLength = 64

// CollatorSignature is a collator's signature over a candidate descriptor's commitment
// payload.
type CollatorSignature [CollatorSignatureLength]byte
