// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"fmt"

	parachaintypes "github.com/RainFallsSilent/polkadot/dot/parachain/types"
)

// InvalidKind enumerates the reasons a candidate can be rejected. Two of them carry
// extra data (ParamsTooLarge's encoded size, ExecutionError's message), recorded in the
// Size/Message fields of InvalidReason below since Go has no tagged-union payloads.
type InvalidKind uint8

const (
	BadParent InvalidKind = iota
	ParamsTooLarge
	PoVHashMismatch
	CodeHashMismatch
	BadSignature
	CodeDecompressionFailure
	PoVDecompressionFailure
	Timeout
	ExecutionError
	ParaHeadHashMismatch
	InvalidOutputs
)

func (k InvalidKind) String() string {
	switch k {
	case BadParent:
		return "BadParent"
	case ParamsTooLarge:
		return "ParamsTooLarge"
	case PoVHashMismatch:
		return "PoVHashMismatch"
	case CodeHashMismatch:
		return "CodeHashMismatch"
	case BadSignature:
		return "BadSignature"
	case CodeDecompressionFailure:
		return "CodeDecompressionFailure"
	case PoVDecompressionFailure:
		return "PoVDecompressionFailure"
	case Timeout:
		return "Timeout"
	case ExecutionError:
		return "ExecutionError"
	case ParaHeadHashMismatch:
		return "ParaHeadHashMismatch"
	case InvalidOutputs:
		return "InvalidOutputs"
	default:
		return "Unknown"
	}
}

// InvalidReason is why ExhaustiveValidator or ChainStateValidator rejected a candidate.
type InvalidReason struct {
	Kind InvalidKind
	// Size is populated only for Kind == ParamsTooLarge (the offending encoded size).
	Size uint64
	// Message is populated only for Kind == ExecutionError.
	Message string
}

func (r InvalidReason) String() string {
	switch r.Kind {
	case ParamsTooLarge:
		return fmt.Sprintf("ParamsTooLarge(%d)", r.Size)
	case ExecutionError:
		return fmt.Sprintf("ExecutionError(%q)", r.Message)
	default:
		return r.Kind.String()
	}
}

func invalid(kind InvalidKind) InvalidReason { return InvalidReason{Kind: kind} }

// ValidOutcome is the payload of a Valid verdict.
type ValidOutcome struct {
	Commitments             parachaintypes.CandidateCommitments
	PersistedValidationData parachaintypes.PersistedValidationData
}

// Outcome is the result of a validation request: exactly one of Valid, Invalid, or
// InternalFailure. It deliberately has no exported fields so callers cannot observe
// more than one branch populated at once — construct it only via the functions below
// and inspect it only via the accessor methods.
type Outcome struct {
	valid    *ValidOutcome
	invalid  *InvalidReason
	internal *string
}

// ValidVerdict builds a Valid outcome.
func ValidVerdict(commitments parachaintypes.CandidateCommitments, pvd parachaintypes.PersistedValidationData) Outcome {
	return Outcome{valid: &ValidOutcome{Commitments: commitments, PersistedValidationData: pvd}}
}

// InvalidVerdict builds an Invalid outcome for the given reason.
func InvalidVerdict(reason InvalidReason) Outcome {
	return Outcome{invalid: &reason}
}

// InternalFailureVerdict builds an InternalFailure outcome: this node could not reach a
// decision. Honest callers may retry.
func InternalFailureVerdict(msg string) Outcome {
	return Outcome{internal: &msg}
}

// IsValid reports whether the outcome is Valid.
func (o Outcome) IsValid() bool { return o.valid != nil }

// IsInvalid reports whether the outcome is Invalid.
func (o Outcome) IsInvalid() bool { return o.invalid != nil }

// IsInternalFailure reports whether the outcome is InternalFailure.
func (o Outcome) IsInternalFailure() bool { return o.internal != nil }

// Valid returns the Valid payload and true, or the zero value and false if the outcome
// is not Valid.
func (o Outcome) Valid() (ValidOutcome, bool) {
	if o.valid == nil {
		return ValidOutcome{}, false
	}
	return *o.valid, true
}

// InvalidReason returns the rejection reason and true, or the zero value and false if
// the outcome is not Invalid.
func (o Outcome) InvalidReason() (InvalidReason, bool) {
	if o.invalid == nil {
		return InvalidReason{}, false
	}
	return *o.invalid, true
}

// InternalFailureMessage returns the failure message and true, or "" and false if the
// outcome is not InternalFailure.
func (o Outcome) InternalFailureMessage() (string, bool) {
	if o.internal == nil {
		return "", false
	}
	return *o.internal, true
}

// String renders the outcome for logging.
func (o Outcome) String() string {
	switch {
	case o.valid != nil:
		return "Valid"
	case o.invalid != nil:
		return "Invalid(" + o.invalid.String() + ")"
	case o.internal != nil:
		return fmt.Sprintf("InternalFailure(%q)", *o.internal)
	default:
		return "Outcome{}"
	}
}

// validity returns the metrics label for this outcome: "valid", "invalid", or
// "validation failure".
func (o Outcome) validity() string {
	switch {
	case o.valid != nil:
		return "valid"
	case o.invalid != nil:
		return "invalid"
	default:
		return "validation failure"
	}
}
