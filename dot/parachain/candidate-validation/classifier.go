// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	parachaintypes "github.com/RainFallsSilent/polkadot/dot/parachain/types"
)

// classifyExecution maps the outcome of an ExecutionBackend.Execute call into an
// Outcome, per the fixed translation table: a successful run is Valid only if the
// result's head data hash matches the descriptor's committed ParaHead, every execution
// error kind maps to a specific Invalid reason except ExecInternalError which maps to
// InternalFailure, since an internal host malfunction carries no evidence the candidate
// itself is at fault.
func classifyExecution(
	descriptor *parachaintypes.CandidateDescriptor,
	pvd parachaintypes.PersistedValidationData,
	result WasmResult,
	execErr error,
) Outcome {
	if execErr != nil {
		var ee *ExecutionError
		if !asExecutionError(execErr, &ee) {
			return InternalFailureVerdict(execErr.Error())
		}

		switch ee.Kind {
		case ExecHardTimeout:
			return InvalidVerdict(invalid(Timeout))
		case ExecWorkerReportedError:
			return InvalidVerdict(InvalidReason{Kind: ExecutionError, Message: ee.Message})
		case ExecAmbiguousWorkerDeath:
			return InvalidVerdict(InvalidReason{Kind: ExecutionError, Message: "ambiguous worker death"})
		case ExecInternalError:
			fallthrough
		default:
			return InternalFailureVerdict(ee.Message)
		}
	}

	if result.HeadData.Hash() != descriptor.ParaHead {
		return InvalidVerdict(invalid(ParaHeadHashMismatch))
	}

	commitments := parachaintypes.CandidateCommitments{
		HeadData:                  result.HeadData,
		UpwardMessages:            result.UpwardMessages,
		HorizontalMessages:        result.HorizontalMessages,
		NewValidationCode:         result.NewValidationCode,
		ProcessedDownwardMessages: result.ProcessedDownwardMessages,
		HrmpWatermark:             result.HrmpWatermark,
	}
	return ValidVerdict(commitments, pvd)
}

// asExecutionError reports whether err is an *ExecutionError, assigning it into *target
// on success. A small helper instead of errors.As since ExecutionError has no wrapped
// cause to unwrap through.
func asExecutionError(err error, target **ExecutionError) bool {
	ee, ok := err.(*ExecutionError)
	if !ok {
		return false
	}
	*target = ee
	return true
}
