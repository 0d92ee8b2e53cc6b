// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"context"
	"fmt"

	parachaintypes "github.com/RainFallsSilent/polkadot/dot/parachain/types"
)

// Priority is the scheduling priority a validation request is submitted to the
// execution host with. This core always submits at Normal priority; Priority exists so
// the capability interface matches the host's real contract (§6).
type Priority uint8

const (
	PriorityNormal Priority = iota
	PriorityCritical
)

// ExecErrorKind discriminates the ways execution can fail, mirroring the host's
// ExecError contract one-for-one (§6). Go has no closed sum types, so ExecutionError
// carries this as a plain field and ExecutionClassifier switches on it.
type ExecErrorKind uint8

const (
	// ExecInternalError means the host itself malfunctioned with no evidence the
	// candidate is at fault: InternalFailure territory.
	ExecInternalError ExecErrorKind = iota
	// ExecHardTimeout means the PVF ran past its allotted wall-clock budget.
	ExecHardTimeout
	// ExecWorkerReportedError means the worker process itself reported that
	// executing the candidate failed (e.g. a WASM trap).
	ExecWorkerReportedError
	// ExecAmbiguousWorkerDeath means the worker died in a way that cannot be
	// attributed to either the candidate or the host with confidence.
	ExecAmbiguousWorkerDeath
)

// ExecutionError is the error type ExecutionBackend.Execute returns on failure.
type ExecutionError struct {
	Kind    ExecErrorKind
	Message string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("pvf execution failed (%v): %s", e.Kind, e.Message)
}

func (k ExecErrorKind) String() string {
	switch k {
	case ExecInternalError:
		return "internal error"
	case ExecHardTimeout:
		return "hard timeout"
	case ExecWorkerReportedError:
		return "worker reported error"
	case ExecAmbiguousWorkerDeath:
		return "ambiguous worker death"
	default:
		return "unknown"
	}
}

// WasmResult is what a successful PVF execution returns.
type WasmResult struct {
	HeadData                  parachaintypes.HeadData
	UpwardMessages             []parachaintypes.UpwardMessage
	HorizontalMessages         []parachaintypes.OutboundHrmpMessage
	NewValidationCode          *parachaintypes.ValidationCode
	ProcessedDownwardMessages  uint32
	HrmpWatermark              parachaintypes.BlockNumber
}

// ExecutionBackend is the capability this core depends on to actually run a PVF. The
// production implementation (process isolation, artifact caching, worker pooling) is
// out of scope for this repository (§1); pvf.ReferenceHost provides a
// minimal in-process stand-in, and tests use a hand-written mock.
type ExecutionBackend interface {
	Execute(ctx context.Context, code []byte, encodedParams []byte, priority Priority) (WasmResult, error)
}
