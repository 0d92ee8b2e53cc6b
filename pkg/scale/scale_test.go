// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scale

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompactUintRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 63, 64, 16383, 16384, 1073741823, 1073741824, 1 << 40}
	for _, n := range cases {
		encoded := EncodeCompactUint(n)
		decoded, consumed, err := DecodeCompactUint(encoded)
		require.NoError(t, err)
		require.Equal(t, n, decoded)
		require.Equal(t, len(encoded), consumed)
	}
}

func TestDecodeCompactUint_BufferTooShort(t *testing.T) {
	_, _, err := DecodeCompactUint(nil)
	require.ErrorIs(t, err, ErrBufferTooShort)
}

func TestBytesRoundTrip(t *testing.T) {
	cases := [][]byte{nil, {}, []byte("a"), []byte("a longer byte slice to cross the single-byte compact mode boundary")}
	for _, b := range cases {
		encoded := EncodeBytes(b)
		decoded, consumed, err := DecodeBytes(encoded)
		require.NoError(t, err)
		require.Equal(t, len(b), len(decoded))
		require.Equal(t, len(encoded), consumed)
	}
}

func TestUint32RoundTrip(t *testing.T) {
	cases := []uint32{0, 1, 255, 256, 1 << 31}
	for _, n := range cases {
		encoded := EncodeUint32(n)
		decoded, err := DecodeUint32(encoded)
		require.NoError(t, err)
		require.Equal(t, n, decoded)
	}
}
