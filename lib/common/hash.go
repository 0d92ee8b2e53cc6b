// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package common holds primitives shared across the node that don't belong to any one
// subsystem, chiefly the 32-byte hash type used throughout the relay-chain data model.
package common

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// HashLength is the length in bytes of a Hash.
const HashLength = 32

// Hash is a blake2b-256 digest, the hash type used for relay-chain state commitments.
type Hash [HashLength]byte

// String returns the 0x-prefixed hex encoding of the hash.
func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// IsZero reports whether h is the zero hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// NewHashFromBytes copies b into a Hash, erroring if the length doesn't match.
func NewHashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashLength {
		return h, fmt.Errorf("invalid hash length: expected %d, got %d", HashLength, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// BlakeHash returns the blake2b-256 digest of data.
func BlakeHash(data []byte) Hash {
	return Hash(blake2b.Sum256(data))
}
