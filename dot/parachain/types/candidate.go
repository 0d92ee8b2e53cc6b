// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

import (
	"fmt"

	"github.com/RainFallsSilent/polkadot/lib/common"
	"github.com/RainFallsSilent/polkadot/lib/crypto/sr25519"
)

// CandidateDescriptor is a collator's commitment to a candidate: the relay parent it
// was built against, the para it belongs to, and hashes binding it to the persisted
// validation data, PoV, and validation code it was validated with. It is immutable for
// the lifetime of a validation request.
type CandidateDescriptor struct {
	ParaID                     ParaID
	RelayParent                common.Hash
	Collator                   CollatorID
	PersistedValidationDataHash common.Hash
	PovHash                    common.Hash
	ValidationCodeHash         ValidationCodeHash
	ParaHead                   common.Hash
	Signature                  CollatorSignature
}

// CollatorSignaturePayload returns the payload a collator signs to commit to a
// candidate descriptor: the concatenation of the relay parent, para ID, and the three
// hashes, in that order, per BasicChecks step 4.
func CollatorSignaturePayload(
	relayParent common.Hash,
	paraID ParaID,
	persistedValidationDataHash common.Hash,
	povHash common.Hash,
	validationCodeHash ValidationCodeHash,
) []byte {
	payload := make([]byte, 0, common.HashLength*4+4)
	payload = append(payload, relayParent[:]...)
	payload = append(payload, byte(paraID), byte(paraID>>8), byte(paraID>>16), byte(paraID>>24))
	payload = append(payload, persistedValidationDataHash[:]...)
	payload = append(payload, povHash[:]...)
	payload = append(payload, validationCodeHash[:]...)
	return payload
}

// CheckCollatorSignature verifies that Signature is a valid sr25519 signature, made by
// Collator, over this descriptor's commitment payload.
func (d *CandidateDescriptor) CheckCollatorSignature() error {
	payload := CollatorSignaturePayload(
		d.RelayParent,
		d.ParaID,
		d.PersistedValidationDataHash,
		d.PovHash,
		d.ValidationCodeHash,
	)

	publicKey, err := sr25519.NewPublicKey(d.Collator[:])
	if err != nil {
		return fmt.Errorf("decoding collator public key: %w", err)
	}

	ok, err := publicKey.Verify(payload, d.Signature[:])
	if err != nil {
		return fmt.Errorf("verifying collator signature: %w", err)
	}
	if !ok {
		return fmt.Errorf("collator signature does not verify")
	}
	return nil
}

// CandidateReceipt bundles a descriptor with the hash of its commitments; used when a
// caller already holds commitments and just needs to reference the candidate.
type CandidateReceipt struct {
	Descriptor      CandidateDescriptor
	CommitmentsHash common.Hash
}

// CommittedCandidateReceipt bundles a descriptor with its full commitments.
type CommittedCandidateReceipt struct {
	Descriptor  CandidateDescriptor
	Commitments CandidateCommitments
}
