// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package pvf

import (
	"fmt"

	candidatevalidation "github.com/RainFallsSilent/polkadot/dot/parachain/candidate-validation"
	parachaintypes "github.com/RainFallsSilent/polkadot/dot/parachain/types"
	"github.com/RainFallsSilent/polkadot/pkg/scale"
)

// decodeWasmResult decodes the SCALE-encoded validate_block result: head data, upward
// messages, horizontal messages, an optional new validation code, the processed
// downward message count, and the HRMP watermark, in that order.
func decodeWasmResult(buf []byte) (candidatevalidation.WasmResult, error) {
	var out candidatevalidation.WasmResult

	headData, n, err := scale.DecodeBytes(buf)
	if err != nil {
		return out, fmt.Errorf("decoding head data: %w", err)
	}
	out.HeadData = parachaintypes.HeadData(headData)
	buf = buf[n:]

	upward, n, err := decodeByteVectors(buf)
	if err != nil {
		return out, fmt.Errorf("decoding upward messages: %w", err)
	}
	for _, m := range upward {
		out.UpwardMessages = append(out.UpwardMessages, parachaintypes.UpwardMessage(m))
	}
	buf = buf[n:]

	horizontalCount, n, err := scale.DecodeCompactUint(buf)
	if err != nil {
		return out, fmt.Errorf("decoding horizontal message count: %w", err)
	}
	buf = buf[n:]
	for i := uint64(0); i < horizontalCount; i++ {
		paraID, err := scale.DecodeUint32(buf)
		if err != nil {
			return out, fmt.Errorf("decoding horizontal message %d recipient: %w", i, err)
		}
		buf = buf[4:]

		data, n, err := scale.DecodeBytes(buf)
		if err != nil {
			return out, fmt.Errorf("decoding horizontal message %d data: %w", i, err)
		}
		buf = buf[n:]

		out.HorizontalMessages = append(out.HorizontalMessages, parachaintypes.OutboundHrmpMessage{
			Recipient: parachaintypes.ParaID(paraID),
			Data:      data,
		})
	}

	hasNewCode := len(buf) > 0 && buf[0] == 1
	if len(buf) == 0 {
		return out, fmt.Errorf("buffer exhausted before new-validation-code flag")
	}
	buf = buf[1:]
	if hasNewCode {
		code, n, err := scale.DecodeBytes(buf)
		if err != nil {
			return out, fmt.Errorf("decoding new validation code: %w", err)
		}
		nc := parachaintypes.ValidationCode(code)
		out.NewValidationCode = &nc
		buf = buf[n:]
	}

	processed, err := scale.DecodeUint32(buf)
	if err != nil {
		return out, fmt.Errorf("decoding processed downward message count: %w", err)
	}
	out.ProcessedDownwardMessages = processed
	buf = buf[4:]

	watermark, err := scale.DecodeUint32(buf)
	if err != nil {
		return out, fmt.Errorf("decoding hrmp watermark: %w", err)
	}
	out.HrmpWatermark = parachaintypes.BlockNumber(watermark)

	return out, nil
}

// decodeByteVectors decodes a compact-length-prefixed sequence of byte vectors,
// returning the decoded vectors and the number of bytes consumed from buf.
func decodeByteVectors(buf []byte) ([][]byte, int, error) {
	count, n, err := scale.DecodeCompactUint(buf)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding count: %w", err)
	}
	consumed := n
	out := make([][]byte, 0, count)
	for i := uint64(0); i < count; i++ {
		item, n, err := scale.DecodeBytes(buf[consumed:])
		if err != nil {
			return nil, 0, fmt.Errorf("decoding item %d: %w", i, err)
		}
		out = append(out, item)
		consumed += n
	}
	return out, consumed, nil
}
