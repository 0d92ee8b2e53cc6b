// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

import (
	"github.com/RainFallsSilent/polkadot/lib/common"
	"github.com/RainFallsSilent/polkadot/pkg/scale"
)

// PersistedValidationData is the relay-state snapshot a candidate must have been built
// against. It is part of the inputs fed into a PVF, and is returned verbatim in a Valid
// verdict so the caller can confirm which snapshot was used.
type PersistedValidationData struct {
	ParentHead             HeadData
	RelayParentNumber      BlockNumber
	RelayParentStorageRoot common.Hash
	MaxPovSize             uint32
}

// Encode returns the SCALE encoding of the persisted validation data.
func (d PersistedValidationData) Encode() []byte {
	out := scale.EncodeBytes(d.ParentHead)
	out = append(out, scale.EncodeUint32(uint32(d.RelayParentNumber))...)
	out = append(out, d.RelayParentStorageRoot[:]...)
	out = append(out, scale.EncodeUint32(d.MaxPovSize)...)
	return out
}

// Hash returns the blake2b-256 hash of the persisted validation data's encoding. A
// candidate descriptor carries exactly this hash, never the data itself.
func (d PersistedValidationData) Hash() common.Hash {
	return common.BlakeHash(d.Encode())
}

// ValidationParams is the contract passed into the PVF: the parent head, the
// (decompressed) block data, and the two relay-parent fields the PVF needs to validate
// against relay state.
type ValidationParams struct {
	ParentHeadData         HeadData
	BlockData              BlockData
	RelayParentNumber      BlockNumber
	RelayParentStorageRoot common.Hash
}

// Encode returns the canonical SCALE-like serialization of ValidationParams handed to
// the execution host.
func (p ValidationParams) Encode() []byte {
	out := scale.EncodeBytes(p.ParentHeadData)
	out = append(out, scale.EncodeBytes(p.BlockData)...)
	out = append(out, scale.EncodeUint32(uint32(p.RelayParentNumber))...)
	out = append(out, p.RelayParentStorageRoot[:]...)
	return out
}

// UpwardMessage is an opaque message a parachain sends to the relay chain.
type UpwardMessage []byte

// OutboundHrmpMessage is a message a parachain sends to another parachain via the relay
// chain, recorded in commitments so the relay chain can route it.
type OutboundHrmpMessage struct {
	Recipient ParaID
	Data      []byte
}

// CandidateCommitments are the authoritative outputs extracted from a successful PVF
// execution: everything the relay chain needs to record about the candidate.
type CandidateCommitments struct {
	HeadData                  HeadData
	UpwardMessages             []UpwardMessage
	HorizontalMessages         []OutboundHrmpMessage
	NewValidationCode          *ValidationCode
	ProcessedDownwardMessages  uint32
	HrmpWatermark              BlockNumber
}
