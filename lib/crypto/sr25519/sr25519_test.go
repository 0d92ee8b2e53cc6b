// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package sr25519

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	keypair, err := GenerateKeypair()
	require.NoError(t, err)

	msg := []byte("candidate commitment payload")
	sig, err := keypair.Sign(msg)
	require.NoError(t, err)
	require.Len(t, sig, SignatureLength)

	pubEncoded := keypair.Public().Encode()
	pub, err := NewPublicKey(pubEncoded[:])
	require.NoError(t, err)

	ok, err := pub.Verify(msg, sig)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerify_WrongMessageFails(t *testing.T) {
	keypair, err := GenerateKeypair()
	require.NoError(t, err)

	sig, err := keypair.Sign([]byte("original"))
	require.NoError(t, err)

	pubEncoded := keypair.Public().Encode()
	pub, err := NewPublicKey(pubEncoded[:])
	require.NoError(t, err)

	ok, err := pub.Verify([]byte("tampered"), sig)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNewPublicKey_InvalidLength(t *testing.T) {
	_, err := NewPublicKey([]byte{1, 2, 3})
	require.Error(t, err)
}
