// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gc

import (
	"fmt"
	"os"
	"sync"
	"unsafe"
)

// Heap is the process-wide (or, for tests, per-test) collector
// instance: a contiguous mmap'd region, its page records and freelist,
// its per-heap layout descriptor table, its shadow stack, and its GC
// policy knobs. Heaps do not share memory and one heap's collector
// never inspects another heap's pages.
type Heap struct {
	region     []byte
	regionAddr uintptr
	pageSize   uintptr
	pages      []pageRecord
	freelist   []int
	activePage int

	descriptors []string
	descIndex   map[string]int

	shadow      *ShadowStack
	unsafeStack bool
	threshold   float64

	oom oomInjector

	// Trace, when true, writes a one-line diagnostic to stderr from
	// AllocStruct, AllocRaw and GC, mirroring the teacher allocator's
	// package-level trace flag. Init's diagnostic never fires, since
	// Trace can only be set on the handle Init returns.
	Trace bool

	allocs int
	gcs    int

	gcRunning bool
}

var (
	globalMu sync.Mutex
	global   *Heap
)

// Init reserves a heap of size bytes (rounded down to a whole number of
// pages), configures its unsafe-stack policy and GC trigger threshold,
// and returns a ready-to-use handle. A successful Init call made while
// no Global heap is set also makes the new heap the process-wide Global
// heap.
func Init(size uintptr, unsafeStack bool, threshold float64) (h *Heap, err error) {
	if threshold <= 0 || threshold > 1 {
		return nil, ErrInvalidThreshold
	}
	h = &Heap{
		unsafeStack: unsafeStack,
		threshold:   threshold,
		shadow:      NewShadowStack(),
		descIndex:   map[string]int{},
	}
	if h.Trace {
		defer func() {
			fmt.Fprintf(os.Stderr, "Init(%#x, %v, %v) %p, %v\n", size, unsafeStack, threshold, h, err)
		}()
	}
	if err = h.initPages(size); err != nil {
		return nil, err
	}
	globalMu.Lock()
	if global == nil {
		global = h
	}
	globalMu.Unlock()
	return h, nil
}

// Global returns the process-wide heap set by Init, or nil if none has
// run yet or that heap has since been deleted. Containers and demos
// that don't hold their own handle use this.
func Global() *Heap {
	globalMu.Lock()
	defer globalMu.Unlock()
	return global
}

// Delete releases the heap's virtual memory region. The handle must not
// be used afterward.
func (h *Heap) Delete() error {
	if h == nil {
		return ErrInvalidHandle
	}
	globalMu.Lock()
	if global == h {
		global = nil
	}
	globalMu.Unlock()
	return h.unmapRegion()
}

// Shadow returns the heap's shadow stack, the handle a host mutator
// pushes local-variable addresses onto before calling GC.
func (h *Heap) Shadow() *ShadowStack { return h.shadow }

// Size reports the heap's total capacity in bytes.
func (h *Heap) Size() int { return len(h.pages) * int(h.pageSize) }

// Used reports bytes currently held by live (active or full page)
// allocations.
func (h *Heap) Used() int { return h.usedBytes() }

// Avail reports Size minus Used.
func (h *Heap) Avail() int { return h.Size() - h.Used() }

// AllocStruct allocates an object whose shape is described by layout,
// per the layout-descriptor grammar in layout.go, and returns a pointer
// to its payload (the header is never exposed to callers).
func (h *Heap) AllocStruct(layout string) (p unsafe.Pointer, err error) {
	slots, err := ParseLayout(layout)
	if err != nil {
		return nil, err
	}
	total := roundupWord(headerSize + payloadSize(slots))
	if h.Trace {
		defer func() {
			fmt.Fprintf(os.Stderr, "AllocStruct(%q) class=%d %p, %v\n", layout, sizeClass(total), p, err)
		}()
	}
	addr, err := h.allocate(total)
	if err != nil {
		return nil, err
	}
	initHeader(addr, h.tagFor(layout), total)
	return unsafe.Pointer(addr + uintptr(headerSize)), nil
}

// AllocRaw allocates nbytes of opaque, pointer-free scalar storage and
// returns a pointer to its payload.
func (h *Heap) AllocRaw(nbytes int) (p unsafe.Pointer, err error) {
	if nbytes < 0 {
		return nil, fmt.Errorf("gc: invalid alloc size %d", nbytes)
	}
	total := roundupWord(headerSize + nbytes)
	if h.Trace {
		defer func() {
			fmt.Fprintf(os.Stderr, "AllocRaw(%#x) class=%d %p, %v\n", nbytes, sizeClass(total), p, err)
		}()
	}
	addr, err := h.allocate(total)
	if err != nil {
		return nil, err
	}
	initHeader(addr, tagRaw, total)
	return unsafe.Pointer(addr + uintptr(headerSize)), nil
}

// GC runs a full stop-the-world collection: scan roots (C4), trace
// reachability (C5), compact and forward (C6). It returns the number of
// bytes reclaimed. The mutator is assumed paused for its duration; GC
// is not reentrant.
func (h *Heap) GC() (reclaimed int) {
	if h.gcRunning {
		fatalf("gc: GC is not reentrant")
	}
	h.gcRunning = true
	defer func() { h.gcRunning = false }()

	if h.Trace {
		defer func() {
			fmt.Fprintf(os.Stderr, "GC() %#x\n", reclaimed)
		}()
	}

	h.gcs++
	roots := h.scanRoots()
	h.mark(roots)
	reclaimed = h.compact(roots)
	return reclaimed
}
