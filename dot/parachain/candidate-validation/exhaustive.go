// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"context"
	"fmt"
	"time"

	parachaintypes "github.com/RainFallsSilent/polkadot/dot/parachain/types"
	"github.com/RainFallsSilent/polkadot/internal/log"
)

// ExhaustiveValidator runs the full, no-shortcuts validation pipeline for a candidate:
// basic checks, decompression of the two size-bounded blobs, an execution host round
// trip, and classification of the result. It holds no chain-state dependency — callers
// that need chain-state-derived assumptions resolved first use ChainStateValidator,
// which wraps this type.
type ExhaustiveValidator struct {
	backend ExecutionBackend
	logger  *log.Logger
	metrics *Metrics
}

// NewExhaustiveValidator constructs an ExhaustiveValidator backed by the given
// execution capability.
func NewExhaustiveValidator(backend ExecutionBackend, logger *log.Logger, metrics *Metrics) *ExhaustiveValidator {
	return &ExhaustiveValidator{backend: backend, logger: logger, metrics: metrics}
}

// Validate runs basic checks, decompresses the validation code and PoV, builds the PVF
// inputs, invokes the execution backend, and classifies the result. It never returns a
// Go error: every failure mode is represented in the returned Outcome. This is the inner
// candidate-exhaustive check shared by both ValidateFromChainState and
// ValidateFromExhaustive; it only records the validate_candidate_exhaustive histogram,
// since its result may still be overridden by a post-execution check higher up the call
// chain before the request is considered settled for the validationRequests counter.
func (v *ExhaustiveValidator) Validate(
	ctx context.Context,
	descriptor *parachaintypes.CandidateDescriptor,
	pvd parachaintypes.PersistedValidationData,
	pov parachaintypes.PoV,
	compressedValidationCode parachaintypes.ValidationCode,
) Outcome {
	stop := v.metrics.startCandidateExhaustiveTimer()
	defer stop()

	validationCodeHash := compressedValidationCode.Hash()
	if reason := performBasicChecks(descriptor, pvd.MaxPovSize, pov, validationCodeHash); reason != nil {
		return InvalidVerdict(*reason)
	}

	decompressStart := time.Now()
	validationCode, err := decompress([]byte(compressedValidationCode), ValidationCodeBombLimit)
	v.metrics.observeCodeDecompression(time.Since(decompressStart))
	if err != nil {
		v.logger.Debugf("decompressing validation code: %s", err)
		return InvalidVerdict(invalid(CodeDecompressionFailure))
	}

	povStart := time.Now()
	blockData, err := decompress(pov.BlockData, PoVBombLimit)
	v.metrics.observePoVDecompression(time.Since(povStart))
	if err != nil {
		v.logger.Debugf("decompressing PoV: %s", err)
		return InvalidVerdict(invalid(PoVDecompressionFailure))
	}

	params := parachaintypes.ValidationParams{
		ParentHeadData:         pvd.ParentHead,
		BlockData:              blockData,
		RelayParentNumber:      pvd.RelayParentNumber,
		RelayParentStorageRoot: pvd.RelayParentStorageRoot,
	}

	result, execErr := v.backend.Execute(ctx, validationCode, params.Encode(), PriorityNormal)
	if execErr != nil {
		v.logger.Debugf("executing candidate %s: %s", descriptor.ParaHead, execErr)
	}

	return classifyExecution(descriptor, pvd, result, execErr)
}

// ValidateFromExhaustive is the outer entry point for a candidate validated against
// explicitly supplied persisted validation data and code, bypassing chain-state
// resolution entirely. It wraps Validate with the validate_from_exhaustive histogram and
// is the one place that increments validationRequests for this path, since (unlike
// ValidateFromChainState) there is no further post-execution check to downgrade the
// result afterwards.
func (v *ExhaustiveValidator) ValidateFromExhaustive(
	ctx context.Context,
	descriptor *parachaintypes.CandidateDescriptor,
	pvd parachaintypes.PersistedValidationData,
	pov parachaintypes.PoV,
	compressedValidationCode parachaintypes.ValidationCode,
) Outcome {
	stop := v.metrics.startFromExhaustiveTimer()
	outcome := v.Validate(ctx, descriptor, pvd, pov, compressedValidationCode)
	stop(outcome.validity())
	return outcome
}

// errValidationContextCanceled wraps a canceled/deadline-exceeded ctx error as an
// internal failure message, used by callers that need to bail out before reaching the
// execution backend at all (e.g. ChainStateValidator, when ctx has already ended before
// chain state is queried).
func errValidationContextCanceled(err error) string {
	return fmt.Sprintf("validation context ended before completion: %s", err)
}
