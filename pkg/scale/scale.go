// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package scale implements the small subset of the parity-scale-codec wire format this
// node needs: compact (variable-length) unsigned integers and length-prefixed byte
// vectors. It is not a general-purpose codec; each relay-chain type implements its own
// Encode method by composing these primitives, the same way upstream Substrate types
// hand-roll their Encode/Decode impls for anything performance- or format-sensitive.
package scale

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrBufferTooShort is returned when a Decode call runs out of input.
var ErrBufferTooShort = errors.New("scale: buffer too short")

// EncodeCompactUint encodes n using the SCALE compact-integer format: the low two bits
// of the first byte select a mode (single-byte, two-byte, four-byte, or big-integer),
// each progressively larger mode shifting the remaining bits left to make room.
func EncodeCompactUint(n uint64) []byte {
	switch {
	case n < 1<<6:
		return []byte{byte(n << 2)}
	case n < 1<<14:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(n<<2)|0b01)
		return buf
	case n < 1<<30:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(n<<2)|0b10)
		return buf
	default:
		// Big-integer mode: first byte encodes (byte-length - 4) in its top bits,
		// mode selector 0b11 in the bottom two, followed by the little-endian value.
		var raw [8]byte
		binary.LittleEndian.PutUint64(raw[:], n)
		length := 8
		for length > 1 && raw[length-1] == 0 {
			length--
		}
		buf := make([]byte, 1+length)
		buf[0] = byte((length-4)<<2) | 0b11
		copy(buf[1:], raw[:length])
		return buf
	}
}

// DecodeCompactUint decodes a compact integer from the start of buf, returning the
// value and the number of bytes consumed.
func DecodeCompactUint(buf []byte) (uint64, int, error) {
	if len(buf) == 0 {
		return 0, 0, ErrBufferTooShort
	}
	mode := buf[0] & 0b11
	switch mode {
	case 0b00:
		return uint64(buf[0] >> 2), 1, nil
	case 0b01:
		if len(buf) < 2 {
			return 0, 0, ErrBufferTooShort
		}
		return uint64(binary.LittleEndian.Uint16(buf[:2]) >> 2), 2, nil
	case 0b10:
		if len(buf) < 4 {
			return 0, 0, ErrBufferTooShort
		}
		return uint64(binary.LittleEndian.Uint32(buf[:4]) >> 2), 4, nil
	default:
		length := int(buf[0]>>2) + 4
		if len(buf) < 1+length {
			return 0, 0, ErrBufferTooShort
		}
		var raw [8]byte
		copy(raw[:length], buf[1:1+length])
		return binary.LittleEndian.Uint64(raw[:]), 1 + length, nil
	}
}

// EncodeBytes encodes b as a compact-length-prefixed byte vector, SCALE's Vec<u8>
// encoding.
func EncodeBytes(b []byte) []byte {
	out := make([]byte, 0, len(b)+5)
	out = append(out, EncodeCompactUint(uint64(len(b)))...)
	out = append(out, b...)
	return out
}

// DecodeBytes decodes a compact-length-prefixed byte vector from the start of buf,
// returning the decoded bytes and the number of input bytes consumed.
func DecodeBytes(buf []byte) ([]byte, int, error) {
	n, consumed, err := DecodeCompactUint(buf)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding length: %w", err)
	}
	end := consumed + int(n)
	if len(buf) < end {
		return nil, 0, ErrBufferTooShort
	}
	out := make([]byte, n)
	copy(out, buf[consumed:end])
	return out, end, nil
}

// EncodeUint32 encodes n as four little-endian bytes (SCALE's fixed-width u32).
func EncodeUint32(n uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, n)
	return buf
}

// DecodeUint32 decodes a fixed-width little-endian u32 from the start of buf.
func DecodeUint32(buf []byte) (uint32, error) {
	if len(buf) < 4 {
		return 0, ErrBufferTooShort
	}
	return binary.LittleEndian.Uint32(buf[:4]), nil
}

// EncodeOptionBytes encodes an optional byte vector: a single 0x00 byte for None, or
// 0x01 followed by the compact-length-prefixed bytes for Some(bytes).
func EncodeOptionBytes(b []byte, present bool) []byte {
	if !present {
		return []byte{0x00}
	}
	return append([]byte{0x01}, EncodeBytes(b)...)
}
