// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"context"
	"fmt"

	parachaintypes "github.com/RainFallsSilent/polkadot/dot/parachain/types"
	"github.com/RainFallsSilent/polkadot/lib/common"
)

// CheckValidationOutputsRequest asks the runtime whether a candidate's commitments are
// acceptable given the current chain state (e.g. the HRMP watermark is monotonic, the
// new validation code if any is permitted). It is the post-execution check
// ChainStateValidator runs before accepting a Valid verdict.
type CheckValidationOutputsRequest struct {
	ParaID      parachaintypes.ParaID
	Commitments parachaintypes.CandidateCommitments
	Ch          chan parachaintypes.OverseerFuncRes[bool]
}

// RuntimeAPI is the chain-state query surface ChainStateValidator and
// AssumptionResolver depend on. Implementations read from the runtime at a given relay
// parent; this core never mutates chain state.
type RuntimeAPI interface {
	// PersistedValidationData returns the persisted validation data implied by the
	// given occupied-core assumption, or (zero, false, nil) if the assumption does not
	// hold at this relay parent.
	PersistedValidationData(
		ctx context.Context,
		relayParent common.Hash,
		paraID parachaintypes.ParaID,
		assumption parachaintypes.OccupiedCoreAssumption,
	) (parachaintypes.PersistedValidationData, bool, error)

	// ValidationCode returns the validation code registered for paraID under the given
	// occupied-core assumption at the given relay parent, or (nil, false, nil) if the
	// assumption does not hold there. assumption must be the same one that produced a
	// matching PersistedValidationData, so the pair is bound to one consistent view of
	// chain state rather than the code the candidate descriptor merely claims by hash.
	ValidationCode(
		ctx context.Context,
		relayParent common.Hash,
		paraID parachaintypes.ParaID,
		assumption parachaintypes.OccupiedCoreAssumption,
	) (parachaintypes.ValidationCode, bool, error)

	// CheckValidationOutputs reports whether the given commitments are acceptable
	// given current chain state.
	CheckValidationOutputs(
		ctx context.Context,
		relayParent common.Hash,
		req CheckValidationOutputsRequest,
	) (bool, error)
}

// runtimeAPIError wraps a transport-level failure talking to the runtime (e.g. the
// reply channel was dropped), kept distinct from both Invalid and InternalFailure so
// callers can decide how to report it; AssumptionResolver and ChainStateValidator both
// fold it into InternalFailure, since a caller cannot act on chain state it could not
// read.
type runtimeAPIError struct {
	op  string
	err error
}

func (e *runtimeAPIError) Error() string {
	return fmt.Sprintf("runtime api %s: %s", e.op, e.err)
}

func (e *runtimeAPIError) Unwrap() error { return e.err }
