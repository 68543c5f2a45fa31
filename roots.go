package gc

import "unsafe"

// root is a discovered (root-location, root-value) pair: the address
// of the host memory holding a candidate pointer, and the pointer value
// observed there at scan time. The compactor later rewrites
// *location if value turns out to point at a survivor.
type root struct {
	location unsafe.Pointer
	value    uintptr
}

// probe answers the heap-internal question every root, mark and
// compaction decision is built on: does this address fall inside a
// live object, and if so, does it land exactly on that object's
// payload start (a precise pointer) or somewhere inside it (an
// interior pointer)? It walks the owning page's objects in bump order
// from the page base, which is linear in the number of objects on the
// page but bounded by one page's worth of allocations.
func (h *Heap) probe(addr uintptr) (hdr *header, exact bool) {
	idx := h.pageIndexOf(addr)
	if idx < 0 {
		return nil, false
	}
	p := &h.pages[idx]
	if p.state == pageFree {
		return nil, false
	}
	cur := p.base
	for cur < p.cursor {
		hd := (*header)(unsafe.Pointer(cur))
		objEnd := cur + uintptr(hd.size)
		if addr >= cur && addr < objEnd {
			return hd, addr == cur+uintptr(headerSize)
		}
		if hd.size == 0 {
			// Defensive: a zero-size header would spin forever;
			// corrupted bookkeeping, not a reachable state.
			fatalf("gc: zero-size object header at %#x", cur)
		}
		cur = objEnd
	}
	return nil, false
}

// scanRoots implements C4: every registered shadow-stack slot is a
// candidate root. A candidate is discarded unless it falls inside the
// heap region and resolves, via probe, to a live object header. The
// unsafe-stack policy controls only whether an *interior* pointer (one
// that resolves to an object but not exactly at its payload start) is
// accepted; probing the header itself always happens, regardless of
// policy — the open question spec.md leaves unresolved about the
// source this collector was ported from.
func (h *Heap) scanRoots() []root {
	var roots []root
	for _, slot := range h.shadow.snapshot() {
		val := *(*uintptr)(slot)
		if val == 0 {
			continue
		}
		if val < h.regionAddr || val >= h.regionAddr+uintptr(len(h.pages))*h.pageSize {
			continue
		}
		hdr, exact := h.probe(val)
		if hdr == nil {
			continue
		}
		if !exact && !h.unsafeStack {
			continue
		}
		roots = append(roots, root{location: slot, value: val})
	}
	return roots
}
