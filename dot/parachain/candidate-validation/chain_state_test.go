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
	"github.com/RainFallsSilent/polkadot/lib/common"
	"github.com/RainFallsSilent/polkadot/lib/crypto/sr25519"
)

func TestChainStateValidator_Validate(t *testing.T) {
	relayParent := common.BlakeHash([]byte("relay parent"))

	t.Run("runtime rejecting commitments downgrades Valid to Invalid InvalidOutputs", func(t *testing.T) {
		descriptor, pov, _ := validCandidateFixture(t)
		headData := parachaintypes.HeadData("committed head")
		descriptor.ParaHead = headData.Hash()

		pvd := parachaintypes.PersistedValidationData{MaxPovSize: 1024}
		descriptor.PersistedValidationDataHash = pvd.Hash()

		// The collator signature covers the persisted validation data hash, so re-sign
		// the descriptor after changing it.
		keypair, err := sr25519.GenerateKeypair()
		require.NoError(t, err)
		pub := keypair.Public().Encode()
		copy(descriptor.Collator[:], pub[:])
		sig, err := keypair.Sign(parachaintypes.CollatorSignaturePayload(
			descriptor.RelayParent, descriptor.ParaID, descriptor.PersistedValidationDataHash,
			descriptor.PovHash, descriptor.ValidationCodeHash))
		require.NoError(t, err)
		copy(descriptor.Signature[:], sig)

		ctrl := gomock.NewController(t)
		runtime := NewMockRuntimeAPI(ctrl)
		runtime.EXPECT().PersistedValidationData(gomock.Any(), relayParent, descriptor.ParaID, parachaintypes.Included).
			Return(pvd, true, nil)
		runtime.EXPECT().ValidationCode(gomock.Any(), relayParent, descriptor.ParaID, parachaintypes.Included).
			Return(parachaintypes.ValidationCode("wasm bytes"), true, nil)
		runtime.EXPECT().CheckValidationOutputs(gomock.Any(), relayParent, gomock.Any()).
			Return(false, nil)

		backend := NewMockExecutionBackend(ctrl)
		backend.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), PriorityNormal).
			Return(WasmResult{HeadData: headData}, nil)

		exhaustive := NewExhaustiveValidator(backend, discardLogger(), NewMetrics(nil))
		resolver := NewAssumptionResolver(runtime)
		metrics := NewMetrics(nil)
		v := NewChainStateValidator(resolver, exhaustive, runtime, metrics)

		outcome := v.Validate(context.Background(), relayParent, descriptor, pov)
		reason, ok := outcome.InvalidReason()
		require.True(t, ok)
		require.Equal(t, InvalidOutputs, reason.Kind)

		// The post-check downgrade must be reflected in the counter: this request is
		// counted as invalid, never as valid, even though the inner exhaustive check
		// alone produced a Valid outcome.
		require.Equal(t, float64(0), testutil.ToFloat64(metrics.validationRequests.WithLabelValues("valid")))
		require.Equal(t, float64(1), testutil.ToFloat64(metrics.validationRequests.WithLabelValues("invalid")))
	})

	t.Run("no assumption resolves to Invalid BadParent", func(t *testing.T) {
		descriptor, pov, _ := validCandidateFixture(t)

		ctrl := gomock.NewController(t)
		runtime := NewMockRuntimeAPI(ctrl)
		runtime.EXPECT().PersistedValidationData(gomock.Any(), relayParent, descriptor.ParaID, parachaintypes.Included).
			Return(parachaintypes.PersistedValidationData{}, true, nil)
		runtime.EXPECT().PersistedValidationData(gomock.Any(), relayParent, descriptor.ParaID, parachaintypes.TimedOut).
			Return(parachaintypes.PersistedValidationData{}, true, nil)

		backend := NewMockExecutionBackend(ctrl) // must not be called
		exhaustive := NewExhaustiveValidator(backend, discardLogger(), NewMetrics(nil))
		resolver := NewAssumptionResolver(runtime)
		v := NewChainStateValidator(resolver, exhaustive, runtime, NewMetrics(nil))

		outcome := v.Validate(context.Background(), relayParent, descriptor, pov)
		reason, ok := outcome.InvalidReason()
		require.True(t, ok)
		require.Equal(t, BadParent, reason.Kind)
	})
}
