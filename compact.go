package gc

import "unsafe"

// compact implements C6. It assumes mark has already run: every
// reachable object's header.mark is 1. It evacuates survivors into
// fresh to-space pages, rewrites every pointer slot that referenced a
// moved object, rewrites every surviving root, and returns every
// from-space page — whether it held survivors or was pure garbage — to
// the freelist.
//
// Survivors are collected by an address-ordered sweep of every
// currently active/full page rather than by the order mark's work
// stack happened to visit them. Both "walk survivors in the order
// marked" and "compaction preserves the relative allocation order of
// survivors" appear in this collector's design; a DFS work-stack order
// does not generally agree with allocation order, so this sweep
// preserves survivors' relative allocation order. Where the copies land
// is up to the page store: to-space pages come from the freelist, which
// hands out pages from the highest index down, so a fresh heap's first
// collection moves its survivors to lower addresses (scenario 3: the
// new head of a chain sits at a lower address than the old one).
//
// It returns the number of bytes freed: the bytes the from-space pages
// held, minus the bytes of the survivors copied out of them.
func (h *Heap) compact(roots []root) int {
	occupied := make([]int, 0, len(h.pages))
	for i := range h.pages {
		if h.pages[i].state == pageActive || h.pages[i].state == pageFull {
			occupied = append(occupied, i)
		}
	}

	survivors := make([]*header, 0, 64)
	for _, idx := range occupied {
		p := &h.pages[idx]
		hasSurvivor := false
		cur := p.base
		for cur < p.cursor {
			hd := (*header)(unsafe.Pointer(cur))
			if hd.mark == 1 {
				survivors = append(survivors, hd)
				hasSurvivor = true
			}
			cur += uintptr(hd.size)
		}
		if hasSurvivor {
			p.state = pageEvacuating
		}
	}

	// Phase 1 — evacuate, preserving survivors' relative order.
	toActive := -1
	live := 0
	for _, hdr := range survivors {
		total := int(hdr.size)
		live += total
		addr, ok := h.tryBumpPage(toActive, total)
		if !ok {
			idx, ok2 := h.acquirePage()
			if !ok2 {
				// To-space pages come only from the freelist: every
				// from-space page is still reserved (not yet freed) at
				// this point, so when the free pages cannot hold the
				// survivors the collection aborts here.
				fatalf("gc: compaction ran out of pages for %d live bytes", total)
			}
			toActive = idx
			addr, _ = h.tryBumpPage(toActive, total)
		}
		copyBytes(addr, uintptr(unsafe.Pointer(hdr)), total)
		newHdr := (*header)(unsafe.Pointer(addr))
		newHdr.mark = 0
		newHdr.forward = nil
		hdr.forward = unsafe.Pointer(addr) // forwarding slot lives on the ORIGINAL
	}

	// Phase 2 — rewrite pointer slots inside every evacuated object, now
	// read from its new address. As in mark.go, a "**"-style declared
	// Pointer slot may legitimately hold a non-pointer scalar (e.g. a
	// container.Elem int/float/bool); a slot whose value doesn't resolve
	// to exactly a live (still-forwarded) object is left untouched
	// rather than treated as corruption.
	for _, hdr := range survivors {
		newHdr := (*header)(unsafe.Pointer(hdr.forward))
		if isRawTag(newHdr.tag) {
			continue
		}
		payload := payloadOf(newHdr)
		offset := uintptr(0)
		for _, s := range h.slotsFor(newHdr) {
			if s.Kind == Pointer {
				slotAddr := unsafe.Pointer(uintptr(payload) + offset)
				oldVal := *(*uintptr)(slotAddr)
				if oldVal != 0 {
					if oldHdr, exact := h.probe(oldVal); oldHdr != nil && exact && oldHdr.forward != nil {
						*(*uintptr)(slotAddr) = uintptr(payloadOf((*header)(oldHdr.forward)))
					}
				}
			}
			offset += uintptr(s.Size)
		}
	}

	// Phase 3 — rewrite roots. A root whose value never resolved to a
	// survivor (a conservative false positive, or one whose target
	// object in a from-space page simply wasn't marked) is left as-is.
	for _, r := range roots {
		oldHdr, _ := h.probe(r.value)
		if oldHdr != nil && oldHdr.forward != nil {
			*(*uintptr)(r.location) = uintptr(payloadOf((*header)(oldHdr.forward)))
		}
	}

	// Phase 4 — reclaim every from-space page, whether it held
	// survivors (now copied out) or was pure garbage (never copied),
	// except whichever to-space page is still active for future bumps.
	reclaimed := 0
	for _, idx := range occupied {
		if idx == toActive {
			continue
		}
		reclaimed += int(h.pages[idx].cursor - h.pages[idx].base)
		h.releasePage(idx)
	}
	if toActive >= 0 {
		h.pages[toActive].state = pageActive
	}
	h.activePage = toActive
	return reclaimed - live
}

func copyBytes(dst, src uintptr, n int) {
	d := unsafe.Slice((*byte)(unsafe.Pointer(dst)), n)
	s := unsafe.Slice((*byte)(unsafe.Pointer(src)), n)
	copy(d, s)
}
