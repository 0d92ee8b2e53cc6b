// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package pvf

import (
	"context"
	"errors"
	"fmt"

	"github.com/tetratelabs/wazero/sys"

	candidatevalidation "github.com/RainFallsSilent/polkadot/dot/parachain/candidate-validation"
)

// classifyInstantiateError maps a module instantiation failure. A guest that traps
// during its start function is treated as the guest's own fault; anything else
// (resource exhaustion on the host side) is an internal failure.
func classifyInstantiateError(err error) error {
	var exitErr *sys.ExitError
	if errors.As(err, &exitErr) {
		return &candidatevalidation.ExecutionError{
			Kind:    candidatevalidation.ExecWorkerReportedError,
			Message: fmt.Sprintf("module start trapped: %s", exitErr),
		}
	}
	return &candidatevalidation.ExecutionError{
		Kind:    candidatevalidation.ExecInternalError,
		Message: fmt.Sprintf("instantiating module: %s", err),
	}
}

// classifyCallError maps a validate_block invocation failure: a context
// deadline/cancellation is the PVF's hard timeout, a guest trap is a worker-reported
// error, and anything else is treated as an ambiguous worker death since this reference
// host has no way to distinguish a host-side fault from a guest crash once the call
// itself has failed outside of those two known cases.
func classifyCallError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &candidatevalidation.ExecutionError{
			Kind:    candidatevalidation.ExecHardTimeout,
			Message: err.Error(),
		}
	}

	var exitErr *sys.ExitError
	if errors.As(err, &exitErr) {
		return &candidatevalidation.ExecutionError{
			Kind:    candidatevalidation.ExecWorkerReportedError,
			Message: fmt.Sprintf("validate_block trapped: %s", exitErr),
		}
	}

	return &candidatevalidation.ExecutionError{
		Kind:    candidatevalidation.ExecAmbiguousWorkerDeath,
		Message: err.Error(),
	}
}
