// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"context"
	"fmt"
	"time"

	parachaintypes "github.com/RainFallsSilent/polkadot/dot/parachain/types"
	"github.com/RainFallsSilent/polkadot/lib/common"
)

// runtimeCallTimeout bounds how long the channel adapter waits for a collaborator (the
// overseer, in Polkadot-host terminology) to answer a runtime query before treating it
// as a transport failure.
const runtimeCallTimeout = 2 * time.Second

// Sender is the narrow message-bus capability the channel adapter depends on: hand a
// message to whatever is on the other end and move on. It deliberately doesn't know
// anything about what answers it.
type Sender interface {
	SendMessage(msg any) error
}

// PersistedValidationDataRequest asks the collaborator behind a Sender for the
// persisted validation data implied by an occupied-core assumption, replying on Ch.
type PersistedValidationDataRequest struct {
	RelayParent common.Hash
	ParaID      parachaintypes.ParaID
	Assumption  parachaintypes.OccupiedCoreAssumption
	Ch          chan parachaintypes.OverseerFuncRes[persistedValidationDataResponse]
}

type persistedValidationDataResponse struct {
	Data parachaintypes.PersistedValidationData
	Ok   bool
}

// ValidationCodeRequest asks the collaborator for the validation code registered for
// ParaID under Assumption at a relay parent, replying on Ch. Assumption must match the
// one used for the paired PersistedValidationDataRequest.
type ValidationCodeRequest struct {
	RelayParent common.Hash
	ParaID      parachaintypes.ParaID
	Assumption  parachaintypes.OccupiedCoreAssumption
	Ch          chan parachaintypes.OverseerFuncRes[validationCodeResponse]
}

type validationCodeResponse struct {
	Code parachaintypes.ValidationCode
	Ok   bool
}

// checkValidationOutputsReply is what a CheckValidationOutputsRequest is answered with
// over its own reply channel; CheckValidationOutputsRequest itself (defined in
// runtime_api.go) carries the channel.
type checkValidationOutputsReply = parachaintypes.OverseerFuncRes[bool]

// ChannelRuntimeAPI implements RuntimeAPI by sending typed requests over a Sender and
// awaiting a one-shot reply, the same request/await-reply shape every other
// subsystem-to-subsystem query in this node uses. It never answers queries itself; the
// collaborator on the other end of Sender does.
type ChannelRuntimeAPI struct {
	sender Sender
}

// NewChannelRuntimeAPI constructs a ChannelRuntimeAPI over the given Sender.
func NewChannelRuntimeAPI(sender Sender) *ChannelRuntimeAPI {
	return &ChannelRuntimeAPI{sender: sender}
}

func (c *ChannelRuntimeAPI) PersistedValidationData(
	ctx context.Context,
	relayParent common.Hash,
	paraID parachaintypes.ParaID,
	assumption parachaintypes.OccupiedCoreAssumption,
) (parachaintypes.PersistedValidationData, bool, error) {
	ch := make(chan parachaintypes.OverseerFuncRes[persistedValidationDataResponse], 1)
	req := PersistedValidationDataRequest{RelayParent: relayParent, ParaID: paraID, Assumption: assumption, Ch: ch}
	if err := c.sender.SendMessage(req); err != nil {
		return parachaintypes.PersistedValidationData{}, false, fmt.Errorf("sending request: %w", err)
	}

	res, err := awaitReply(ctx, ch)
	if err != nil {
		return parachaintypes.PersistedValidationData{}, false, err
	}
	if res.Err != nil {
		return parachaintypes.PersistedValidationData{}, false, res.Err
	}
	return res.Data.Data, res.Data.Ok, nil
}

func (c *ChannelRuntimeAPI) ValidationCode(
	ctx context.Context,
	relayParent common.Hash,
	paraID parachaintypes.ParaID,
	assumption parachaintypes.OccupiedCoreAssumption,
) (parachaintypes.ValidationCode, bool, error) {
	ch := make(chan parachaintypes.OverseerFuncRes[validationCodeResponse], 1)
	req := ValidationCodeRequest{RelayParent: relayParent, ParaID: paraID, Assumption: assumption, Ch: ch}
	if err := c.sender.SendMessage(req); err != nil {
		return nil, false, fmt.Errorf("sending request: %w", err)
	}

	res, err := awaitReply(ctx, ch)
	if err != nil {
		return nil, false, err
	}
	if res.Err != nil {
		return nil, false, res.Err
	}
	return res.Data.Code, res.Data.Ok, nil
}

func (c *ChannelRuntimeAPI) CheckValidationOutputs(
	ctx context.Context,
	relayParent common.Hash,
	req CheckValidationOutputsRequest,
) (bool, error) {
	ch := make(chan checkValidationOutputsReply, 1)
	req.Ch = ch
	if err := c.sender.SendMessage(req); err != nil {
		return false, fmt.Errorf("sending request: %w", err)
	}

	res, err := awaitReply(ctx, ch)
	if err != nil {
		return false, err
	}
	return res.Data, res.Err
}

// awaitReply waits for ch to deliver a reply, ctx to be done, or runtimeCallTimeout to
// elapse, whichever happens first.
func awaitReply[T any](ctx context.Context, ch <-chan parachaintypes.OverseerFuncRes[T]) (parachaintypes.OverseerFuncRes[T], error) {
	timer := time.NewTimer(runtimeCallTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		return res, nil
	case <-ctx.Done():
		return parachaintypes.OverseerFuncRes[T]{}, fmt.Errorf("runtime call: %w", ctx.Err())
	case <-timer.C:
		return parachaintypes.OverseerFuncRes[T]{}, fmt.Errorf("runtime call: timed out after %s", runtimeCallTimeout)
	}
}
