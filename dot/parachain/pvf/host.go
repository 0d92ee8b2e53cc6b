// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package pvf provides a minimal, in-process stand-in for the relay chain's PVF
// execution host. The production host isolates every candidate's execution in its own
// worker process with strict resource limits and an artifact cache; this package
// deliberately does none of that. It exists only so ExecutionBackend has a real,
// runnable implementation to exercise in this repository — not a replacement for the
// production host.
package pvf

import (
	"context"
	"fmt"
	"time"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	candidatevalidation "github.com/RainFallsSilent/polkadot/dot/parachain/candidate-validation"
	parachaintypes "github.com/RainFallsSilent/polkadot/dot/parachain/types"
	"github.com/RainFallsSilent/polkadot/internal/log"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "parachain-pvf"))

// entrypoint is the name every PVF exports its validation function under.
const entrypoint = "validate_block"

// DefaultHardTimeout bounds how long a single validate_block call is allowed to run
// before it is treated as a hard timeout, mirroring the relay chain's approval-voting
// execution budget.
const DefaultHardTimeout = 12 * time.Second

// ReferenceHost is a simplified ExecutionBackend: it compiles and instantiates a fresh
// wazero module per call, writes the encoded ValidationParams into guest memory, calls
// validate_block, and decodes the result. A context deadline is enforced as the PVF's
// hard execution timeout.
type ReferenceHost struct {
	runtime     wazero.Runtime
	hardTimeout time.Duration
}

// NewReferenceHost constructs a ReferenceHost using a fresh wazero runtime and
// DefaultHardTimeout.
func NewReferenceHost(ctx context.Context) *ReferenceHost {
	return &ReferenceHost{runtime: wazero.NewRuntime(ctx), hardTimeout: DefaultHardTimeout}
}

// WithHardTimeout overrides the default hard execution timeout.
func (h *ReferenceHost) WithHardTimeout(d time.Duration) *ReferenceHost {
	h.hardTimeout = d
	return h
}

// Close releases the underlying wazero runtime's resources.
func (h *ReferenceHost) Close(ctx context.Context) error {
	return h.runtime.Close(ctx)
}

// Execute compiles code, instantiates it, and invokes its validate_block export with
// encodedParams. It satisfies candidatevalidation.ExecutionBackend.
func (h *ReferenceHost) Execute(
	ctx context.Context,
	code []byte,
	encodedParams []byte,
	_ candidatevalidation.Priority,
) (candidatevalidation.WasmResult, error) {
	ctx, cancel := context.WithTimeout(ctx, h.hardTimeout)
	defer cancel()

	if _, err := h.buildHostModule(ctx); err != nil {
		return candidatevalidation.WasmResult{}, &candidatevalidation.ExecutionError{
			Kind:    candidatevalidation.ExecInternalError,
			Message: fmt.Sprintf("building host module: %s", err),
		}
	}

	compiled, err := h.runtime.CompileModule(ctx, code)
	if err != nil {
		return candidatevalidation.WasmResult{}, &candidatevalidation.ExecutionError{
			Kind:    candidatevalidation.ExecWorkerReportedError,
			Message: fmt.Sprintf("compiling module: %s", err),
		}
	}

	mod, err := h.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig())
	if err != nil {
		return candidatevalidation.WasmResult{}, classifyInstantiateError(err)
	}
	defer mod.Close(ctx)

	result, execErr := h.callValidateBlock(ctx, mod, encodedParams)
	return result, execErr
}

// buildHostModule instantiates the small "env" host module PVFs are linked against. The
// production host imports dozens of ext_* functions covering storage, crypto, and
// offchain workers; this reference host stubs only logging, since candidate validation
// WASM has no other host dependency in this repository's scope.
func (h *ReferenceHost) buildHostModule(ctx context.Context) (api.Module, error) {
	return h.runtime.NewHostModuleBuilder("env").
		NewFunctionBuilder().
		WithFunc(func(_ context.Context, level int32, target, targetLen, msg, msgLen uint32, mod api.Module) {
			text, _ := readMemory(mod, msg, msgLen)
			logger.Debugf("pvf guest log (level %d): %s", level, string(text))
		}).
		Export("ext_logging_log_version_1").
		Instantiate(ctx)
}

// callValidateBlock writes encodedParams into guest memory, invokes validate_block, and
// decodes the SCALE-encoded result it returns.
func (h *ReferenceHost) callValidateBlock(
	ctx context.Context,
	mod api.Module,
	encodedParams []byte,
) (candidatevalidation.WasmResult, error) {
	fn := mod.ExportedFunction(entrypoint)
	if fn == nil {
		return candidatevalidation.WasmResult{}, &candidatevalidation.ExecutionError{
			Kind:    candidatevalidation.ExecWorkerReportedError,
			Message: fmt.Sprintf("module does not export %s", entrypoint),
		}
	}

	mem := mod.Memory()
	if mem == nil {
		return candidatevalidation.WasmResult{}, &candidatevalidation.ExecutionError{
			Kind:    candidatevalidation.ExecInternalError,
			Message: "module exports no memory",
		}
	}

	heapBase := uint32(0)
	if g := mod.ExportedGlobal("__heap_base"); g != nil {
		heapBase = api.DecodeU32(g.Get())
	}
	allocator := newBumpAllocator(mem, heapBase)

	ptr, err := allocator.allocate(encodedParams)
	if err != nil {
		return candidatevalidation.WasmResult{}, &candidatevalidation.ExecutionError{
			Kind:    candidatevalidation.ExecInternalError,
			Message: fmt.Sprintf("writing params to guest memory: %s", err),
		}
	}

	packed, err := fn.Call(ctx, uint64(ptr), uint64(len(encodedParams)))
	if err != nil {
		return candidatevalidation.WasmResult{}, classifyCallError(err)
	}
	if len(packed) != 1 {
		return candidatevalidation.WasmResult{}, &candidatevalidation.ExecutionError{
			Kind:    candidatevalidation.ExecWorkerReportedError,
			Message: "validate_block returned no value",
		}
	}

	resultPtr, resultLen := decodePointerSize(packed[0])
	encodedResult, ok := readMemory(mod, resultPtr, resultLen)
	if !ok {
		return candidatevalidation.WasmResult{}, &candidatevalidation.ExecutionError{
			Kind:    candidatevalidation.ExecWorkerReportedError,
			Message: "validate_block result pointer out of range",
		}
	}

	wasmResult, err := decodeWasmResult(encodedResult)
	if err != nil {
		return candidatevalidation.WasmResult{}, &candidatevalidation.ExecutionError{
			Kind:    candidatevalidation.ExecWorkerReportedError,
			Message: fmt.Sprintf("decoding validate_block result: %s", err),
		}
	}
	return wasmResult, nil
}

// decodePointerSize splits a packed (ptr<<32 | len) return value, the calling
// convention substrate-style runtime entrypoints use to return a memory span in a
// single i64.
func decodePointerSize(packed uint64) (ptr, size uint32) {
	return uint32(packed >> 32), uint32(packed)
}

func readMemory(mod api.Module, ptr, size uint32) ([]byte, bool) {
	mem := mod.Memory()
	if mem == nil {
		return nil, false
	}
	b, ok := mem.Read(ptr, size)
	if !ok {
		return nil, false
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, true
}
