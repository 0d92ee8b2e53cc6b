// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Bomb limits for the two blob kinds this core decompresses. These mirror the relay
// chain's own constants: parachain validation code is capped well above the largest
// PVF anyone ships, and PoV block data is capped the same way.
const (
	ValidationCodeBombLimit = 16 * 1024 * 1024 * 4 // 64 MiB
	PoVBombLimit            = 16 * 1024 * 1024 * 4 // 64 MiB
)

// zstdMagic is the four-byte frame magic number zstd prefixes every frame with. A blob
// that doesn't start with it is treated as raw, uncompressed data — the format is
// self-describing, so no extra envelope is needed.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// ErrDecompressionBombTooLarge is returned when a blob's decompressed size would
// exceed the configured limit.
var ErrDecompressionBombTooLarge = errors.New("decompressed size exceeds limit")

// decompress returns raw unchanged if it isn't zstd-framed; otherwise it streams the
// frame through a zstd decoder, aborting as soon as more than limit bytes have come out
// so that the bomb limit is enforced during decompression, not after a full buffer has
// already been allocated.
func decompress(raw []byte, limit int) ([]byte, error) {
	if !bytes.HasPrefix(raw, zstdMagic) {
		return raw, nil
	}

	decoder, err := zstd.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("constructing zstd decoder: %w", err)
	}
	defer decoder.Close()

	limited := io.LimitReader(decoder, int64(limit)+1)
	out, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("decompressing: %w", err)
	}
	if len(out) > limit {
		return nil, ErrDecompressionBombTooLarge
	}
	return out, nil
}

// compress zstd-frames raw, used by tests to build compressed blobs this core can
// decompress.
func compress(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	encoder, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("constructing zstd encoder: %w", err)
	}
	if _, err := encoder.Write(raw); err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("writing to zstd encoder: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("closing zstd encoder: %w", err)
	}
	return buf.Bytes(), nil
}
