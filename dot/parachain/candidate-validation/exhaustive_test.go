// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	parachaintypes "github.com/RainFallsSilent/polkadot/dot/parachain/types"
)

func TestExhaustiveValidator_Validate(t *testing.T) {
	t.Run("basic check failure never reaches the execution backend", func(t *testing.T) {
		descriptor, pov, _ := validCandidateFixture(t)
		descriptor.PovHash[0] ^= 0xFF // corrupt so basic checks fail

		ctrl := gomock.NewController(t)
		backend := NewMockExecutionBackend(ctrl) // no EXPECT() calls: must not be invoked

		v := NewExhaustiveValidator(backend, discardLogger(), NewMetrics(nil))
		outcome := v.Validate(context.Background(), descriptor, parachaintypes.PersistedValidationData{MaxPovSize: 1024}, pov,
			parachaintypes.ValidationCode("wasm bytes"))

		reason, ok := outcome.InvalidReason()
		require.True(t, ok)
		require.Equal(t, PoVHashMismatch, reason.Kind)
	})

	t.Run("successful execution with matching head data is Valid", func(t *testing.T) {
		descriptor, pov, _ := validCandidateFixture(t)
		headData := parachaintypes.HeadData("committed head")
		descriptor.ParaHead = headData.Hash()

		ctrl := gomock.NewController(t)
		backend := NewMockExecutionBackend(ctrl)
		backend.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), PriorityNormal).
			Return(WasmResult{HeadData: headData}, nil)

		v := NewExhaustiveValidator(backend, discardLogger(), NewMetrics(nil))
		outcome := v.Validate(context.Background(), descriptor,
			parachaintypes.PersistedValidationData{MaxPovSize: 1024}, pov, parachaintypes.ValidationCode("wasm bytes"))

		require.True(t, outcome.IsValid())
	})

	t.Run("corrupted compressed code is Invalid CodeDecompressionFailure", func(t *testing.T) {
		// A blob that carries the zstd magic but isn't a valid frame: decompression
		// itself fails even though its hash matches the descriptor's commitment.
		corrupted := parachaintypes.ValidationCode(append(append([]byte{}, zstdMagic...), 0xFF, 0xFF, 0xFF))
		descriptor, pov, _ := candidateFixtureWithCode(t, corrupted)

		ctrl := gomock.NewController(t)
		backend := NewMockExecutionBackend(ctrl)

		v := NewExhaustiveValidator(backend, discardLogger(), NewMetrics(nil))
		outcome := v.Validate(context.Background(), descriptor,
			parachaintypes.PersistedValidationData{MaxPovSize: 1024}, pov, corrupted)

		reason, ok := outcome.InvalidReason()
		require.True(t, ok)
		require.Equal(t, CodeDecompressionFailure, reason.Kind)
	})
}

func TestExhaustiveValidator_ValidateFromExhaustive(t *testing.T) {
	descriptor, pov, _ := validCandidateFixture(t)
	headData := parachaintypes.HeadData("committed head")
	descriptor.ParaHead = headData.Hash()

	ctrl := gomock.NewController(t)
	backend := NewMockExecutionBackend(ctrl)
	backend.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), PriorityNormal).
		Return(WasmResult{HeadData: headData}, nil)

	metrics := NewMetrics(nil)
	v := NewExhaustiveValidator(backend, discardLogger(), metrics)
	outcome := v.ValidateFromExhaustive(context.Background(), descriptor,
		parachaintypes.PersistedValidationData{MaxPovSize: 1024}, pov, parachaintypes.ValidationCode("wasm bytes"))

	require.True(t, outcome.IsValid())
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.validationRequests.WithLabelValues("valid")))
}
