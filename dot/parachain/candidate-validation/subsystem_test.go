// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	parachaintypes "github.com/RainFallsSilent/polkadot/dot/parachain/types"
)

func TestSubsystem_ValidateFromExhaustive(t *testing.T) {
	descriptor, pov, _ := validCandidateFixture(t)
	headData := parachaintypes.HeadData("committed head")
	descriptor.ParaHead = headData.Hash()

	ctrl := gomock.NewController(t)
	backend := NewMockExecutionBackend(ctrl)
	backend.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), PriorityNormal).
		Return(WasmResult{HeadData: headData}, nil)

	exhaustive := NewExhaustiveValidator(backend, discardLogger(), NewMetrics(nil))
	overseerChan := make(chan any, 1)
	toSubsystem := make(chan any)

	s := NewSubsystem(overseerChan, nil, exhaustive)
	s.OverseerToSubsystem = toSubsystem
	s.Run(context.Background(), nil, nil)
	defer s.Stop()

	reply := make(chan parachaintypes.OverseerFuncRes[Outcome], 1)
	toSubsystem <- ValidateFromExhaustive{
		PersistedValidationData: parachaintypes.PersistedValidationData{MaxPovSize: 1024},
		ValidationCode:          parachaintypes.ValidationCode("wasm bytes"),
		Descriptor:              *descriptor,
		PoV:                     pov,
		Ch:                      reply,
	}

	select {
	case res := <-reply:
		require.NoError(t, res.Err)
		require.True(t, res.Data.IsValid())
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for validation reply")
	}
}

func TestSubsystem_StopDrainsInFlightRequests(t *testing.T) {
	overseerChan := make(chan any, 1)
	toSubsystem := make(chan any)

	s := NewSubsystem(overseerChan, nil, nil)
	s.OverseerToSubsystem = toSubsystem
	s.Run(context.Background(), nil, nil)

	s.Stop()
	require.Equal(t, 0, s.InFlightCount())
}
