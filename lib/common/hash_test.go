// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlakeHashIsDeterministic(t *testing.T) {
	require.Equal(t, BlakeHash([]byte("a")), BlakeHash([]byte("a")))
	require.NotEqual(t, BlakeHash([]byte("a")), BlakeHash([]byte("b")))
}

func TestNewHashFromBytes(t *testing.T) {
	_, err := NewHashFromBytes(make([]byte, 31))
	require.Error(t, err)

	h, err := NewHashFromBytes(make([]byte, HashLength))
	require.NoError(t, err)
	require.True(t, h.IsZero())
}

func TestHashString(t *testing.T) {
	h := BlakeHash([]byte("x"))
	require.Contains(t, h.String(), "0x")
	require.Len(t, h.String(), 2+HashLength*2)
}
