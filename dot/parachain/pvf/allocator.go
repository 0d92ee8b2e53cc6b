// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package pvf

import (
	"fmt"

	"github.com/tetratelabs/wazero/api"
)

// bumpAllocator is a forward-only allocator over a guest module's linear memory,
// starting at the module's declared heap base. Unlike the relay chain's production
// allocator (a freeing, size-classed bump allocator reused across many calls), this one
// never frees: a reference host instantiates a fresh module per call, so nothing is ever
// reused across validations and there is nothing to reclaim.
type bumpAllocator struct {
	mem    api.Memory
	offset uint32
}

func newBumpAllocator(mem api.Memory, heapBase uint32) *bumpAllocator {
	return &bumpAllocator{mem: mem, offset: heapBase}
}

// allocate writes data into guest memory at the next free offset, growing memory if
// necessary, and returns the offset it was written at.
func (a *bumpAllocator) allocate(data []byte) (uint32, error) {
	ptr := a.offset
	end := ptr + uint32(len(data))

	size := a.mem.Size()
	if end > size {
		pages := (end-size)/wasmPageSize + 1
		if _, grew := a.mem.Grow(pages); !grew {
			return 0, fmt.Errorf("growing guest memory by %d pages: failed", pages)
		}
	}

	if !a.mem.Write(ptr, data) {
		return 0, fmt.Errorf("writing %d bytes at offset %d: out of range", len(data), ptr)
	}
	a.offset = end
	return ptr, nil
}

const wasmPageSize = 65536
