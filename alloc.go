package gc

import "github.com/cznic/mathutil"

// sizeClass buckets an allocation's total size by its bit length, the
// same log2 bucketing the teacher allocator uses to index its
// segregated free lists (mathutil.BitLen(roundup(size)-1)). This
// collector has no size-class free lists of its own — pages are bump
// allocated and reclaimed by compaction, not by class — so the bucket
// is surfaced only as a trace diagnostic, grouping allocations by
// rough size the same way the teacher's Malloc trace output does.
func sizeClass(total int) uint {
	if total <= 1 {
		return 0
	}
	return uint(mathutil.BitLen(total - 1))
}

// allocate implements C3's path: run a collection first if the heap's
// used fraction has reached the configured trigger threshold, then bump
// from the active page; if it doesn't fit, retire the active page and
// acquire a fresh one, collecting once more if the freelist is empty.
// An allocation either completes — a valid header installed, the
// cursor advanced — or has no observable effect.
func (h *Heap) allocate(total int) (addr uintptr, err error) {
	if h.oom.check() {
		return 0, ErrOutOfMemory
	}
	if total > int(h.pageSize) {
		return 0, ErrObjectTooLarge
	}

	if h.usedFraction() >= h.threshold {
		h.GC()
	}
	if addr, ok := h.tryBumpPage(h.activePage, total); ok {
		h.allocs++
		return addr, nil
	}

	h.retireActive()
	if !h.ensureActivePage() {
		h.GC()
		// The collection may leave a partly filled to-space page active.
		if addr, ok := h.tryBumpPage(h.activePage, total); ok {
			h.allocs++
			return addr, nil
		}
		h.retireActive()
		if !h.ensureActivePage() {
			return 0, ErrOutOfMemory
		}
	}

	addr, ok := h.tryBumpPage(h.activePage, total)
	if !ok {
		// A fresh, empty page smaller than total was already rejected
		// above by the page-size check; this cannot happen.
		return 0, ErrOutOfMemory
	}
	h.allocs++
	return addr, nil
}
