// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

import (
	"errors"

	"github.com/RainFallsSilent/polkadot/lib/common"
)

// SubSystemName identifies a subsystem to the overseer.
type SubSystemName string

// CandidateValidationSubsystemName is this repository's subsystem name, used when
// registering with an overseer.
const CandidateValidationSubsystemName SubSystemName = "candidate-validation"

// ErrUnknownOverseerMessage is logged when a subsystem's message loop receives a
// message type it has no case for.
var ErrUnknownOverseerMessage = errors.New("unknown overseer message type")

// ActivatedLeaf is a relay chain block that became a leaf of the fork-choice tree.
type ActivatedLeaf struct {
	Hash   common.Hash
	Number BlockNumber
}

// ActiveLeavesUpdateSignal tells a subsystem which leaves of the fork-choice tree were
// activated or deactivated since the last signal.
type ActiveLeavesUpdateSignal struct {
	Activated   []ActivatedLeaf
	Deactivated []common.Hash
}

// BlockFinalizedSignal tells a subsystem that a block has been finalized.
type BlockFinalizedSignal struct {
	Hash   common.Hash
	Number BlockNumber
}

// OverseerFuncRes carries a response plus an optional error back to the overseer or
// another subsystem over a reply channel, following this node's convention of never
// returning a bare error from a channel round trip.
type OverseerFuncRes[T any] struct {
	Data T
	Err  error
}
