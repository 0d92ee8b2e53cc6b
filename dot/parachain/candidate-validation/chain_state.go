// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"context"

	parachaintypes "github.com/RainFallsSilent/polkadot/dot/parachain/types"
	"github.com/RainFallsSilent/polkadot/lib/common"
)

// ChainStateValidator validates a candidate using chain state alone: it resolves
// persisted validation data and validation code via AssumptionResolver, delegates the
// actual execution to ExhaustiveValidator, and then runs a post-execution check against
// the runtime before accepting a Valid verdict.
type ChainStateValidator struct {
	resolver   *AssumptionResolver
	exhaustive *ExhaustiveValidator
	runtime    RuntimeAPI
	metrics    *Metrics
}

// NewChainStateValidator constructs a ChainStateValidator.
func NewChainStateValidator(
	resolver *AssumptionResolver,
	exhaustive *ExhaustiveValidator,
	runtime RuntimeAPI,
	metrics *Metrics,
) *ChainStateValidator {
	return &ChainStateValidator{resolver: resolver, exhaustive: exhaustive, runtime: runtime, metrics: metrics}
}

// Validate resolves the candidate's persisted validation data and validation code
// against chain state at relayParent, runs exhaustive validation, and — only for a
// Valid result — checks the resulting commitments against the runtime's own acceptance
// rules, downgrading to Invalid(InvalidOutputs) if the runtime rejects them. The whole
// round trip (assumption resolution, execution, post-execution check) is timed under the
// validate_from_chain_state histogram, and validationRequests is incremented exactly
// once here with the final, post-check outcome — never by the inner ExhaustiveValidator,
// whose own result may still be downgraded below.
func (v *ChainStateValidator) Validate(
	ctx context.Context,
	relayParent common.Hash,
	descriptor *parachaintypes.CandidateDescriptor,
	pov parachaintypes.PoV,
) Outcome {
	stop := v.metrics.startChainStateTimer()
	var outcome Outcome
	defer func() { stop(outcome.validity()) }()

	if err := ctx.Err(); err != nil {
		outcome = InternalFailureVerdict(errValidationContextCanceled(err))
		return outcome
	}

	pvd, code, assumptionOutcome, err := v.resolver.Resolve(ctx, relayParent, descriptor)
	if err != nil {
		outcome = InternalFailureVerdict(err.Error())
		return outcome
	}
	if assumptionOutcome != AssumptionMatches {
		outcome = InvalidVerdict(invalid(BadParent))
		return outcome
	}

	outcome = v.exhaustive.Validate(ctx, descriptor, pvd, pov, code)
	valid, ok := outcome.Valid()
	if !ok {
		return outcome
	}

	accepted, err := v.runtime.CheckValidationOutputs(ctx, relayParent, CheckValidationOutputsRequest{
		ParaID:      descriptor.ParaID,
		Commitments: valid.Commitments,
	})
	if err != nil {
		outcome = InternalFailureVerdict((&runtimeAPIError{op: "check validation outputs", err: err}).Error())
		return outcome
	}
	if !accepted {
		outcome = InvalidVerdict(invalid(InvalidOutputs))
		return outcome
	}

	return outcome
}
