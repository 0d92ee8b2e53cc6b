// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	parachaintypes "github.com/RainFallsSilent/polkadot/dot/parachain/types"
)

// performBasicChecks runs the synchronous, pre-execution checks of a candidate: size,
// then the two hash bindings, then the collator signature. It returns the first
// failing reason, or nil if all checks pass. These checks are cheap relative to WASM
// execution and exist to keep unvalidatable candidates away from the execution host.
func performBasicChecks(
	descriptor *parachaintypes.CandidateDescriptor,
	maxPovSize uint32,
	pov parachaintypes.PoV,
	validationCodeHash parachaintypes.ValidationCodeHash,
) *InvalidReason {
	encodedSize := pov.EncodedSize()
	if encodedSize > maxPovSize {
		return &InvalidReason{Kind: ParamsTooLarge, Size: uint64(encodedSize)}
	}

	if pov.Hash() != descriptor.PovHash {
		r := invalid(PoVHashMismatch)
		return &r
	}

	if validationCodeHash != descriptor.ValidationCodeHash {
		r := invalid(CodeHashMismatch)
		return &r
	}

	if err := descriptor.CheckCollatorSignature(); err != nil {
		r := invalid(BadSignature)
		return &r
	}

	return nil
}
