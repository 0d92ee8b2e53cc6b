// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"context"
	"errors"

	parachaintypes "github.com/RainFallsSilent/polkadot/dot/parachain/types"
	"github.com/RainFallsSilent/polkadot/lib/common"
)

// assumptionProbeOrder is the fixed order in which occupied-core assumptions are tried
// against chain state: a core that is Included is tried before one that TimedOut, since
// Included is the more common steady-state case. Free is never probed, since it is
// equivalent to TimedOut for persisted-validation-data resolution.
var assumptionProbeOrder = [...]parachaintypes.OccupiedCoreAssumption{
	parachaintypes.Included,
	parachaintypes.TimedOut,
}

// AssumptionCheckOutcome is the result of resolving a candidate's persisted validation
// data against chain state.
type AssumptionCheckOutcome uint8

const (
	// AssumptionMatches means persisted validation data was found and its hash
	// matches the candidate descriptor's committed hash.
	AssumptionMatches AssumptionCheckOutcome = iota
	// AssumptionDoesNotMatch means no occupied-core assumption produced persisted
	// validation data whose hash matches the descriptor.
	AssumptionDoesNotMatch
	// AssumptionBadRequest means the request itself could not be evaluated (e.g. the
	// para ID or relay parent doesn't correspond to a scheduled candidate at all).
	AssumptionBadRequest
)

// AssumptionResolver resolves the persisted validation data and validation code a
// candidate must be checked against, by probing occupied-core assumptions against chain
// state in a fixed order until one produces data whose hash matches the descriptor.
type AssumptionResolver struct {
	runtime RuntimeAPI
}

// NewAssumptionResolver constructs an AssumptionResolver over the given runtime query
// surface.
func NewAssumptionResolver(runtime RuntimeAPI) *AssumptionResolver {
	return &AssumptionResolver{runtime: runtime}
}

// Resolve probes assumptionProbeOrder in order, returning the first persisted
// validation data whose hash matches descriptor.PersistedValidationDataHash, along with
// the matching validation code. If no assumption's data matches,
// AssumptionDoesNotMatch is returned. If chain state could not be queried, or reports
// no persisted validation data or no validation code for a probed assumption, the error
// return is non-nil, the outcome is AssumptionBadRequest, and no further assumption is
// probed.
func (r *AssumptionResolver) Resolve(
	ctx context.Context,
	relayParent common.Hash,
	descriptor *parachaintypes.CandidateDescriptor,
) (parachaintypes.PersistedValidationData, parachaintypes.ValidationCode, AssumptionCheckOutcome, error) {
	for _, assumption := range assumptionProbeOrder {
		pvd, ok, err := r.runtime.PersistedValidationData(ctx, relayParent, descriptor.ParaID, assumption)
		if err != nil {
			return parachaintypes.PersistedValidationData{}, nil, AssumptionBadRequest,
				&runtimeAPIError{op: "persisted validation data", err: err}
		}
		if !ok {
			return parachaintypes.PersistedValidationData{}, nil, AssumptionBadRequest,
				errors.New("no persisted validation data for assumption " + assumption.String())
		}
		if pvd.Hash() != descriptor.PersistedValidationDataHash {
			continue
		}

		code, ok, err := r.runtime.ValidationCode(ctx, relayParent, descriptor.ParaID, assumption)
		if err != nil {
			return parachaintypes.PersistedValidationData{}, nil, AssumptionBadRequest,
				&runtimeAPIError{op: "validation code", err: err}
		}
		if !ok {
			// The persisted validation data matched but the code binding it refers to
			// is unknown: chain state is inconsistent for this query.
			return parachaintypes.PersistedValidationData{}, nil, AssumptionBadRequest,
				errors.New("no validation code for assumption " + assumption.String())
		}

		return pvd, code, AssumptionMatches, nil
	}

	return parachaintypes.PersistedValidationData{}, nil, AssumptionDoesNotMatch, nil
}
