package gc

import "unsafe"

// mark implements C5: from each root, follow the pointer to an object
// header and, unless already marked, set its mark bit and push it onto
// a work stack; then iterate that object's declared-pointer slots
// (never its scalar slots) looking for more reachable objects. Depth-
// first from root order, which is sufficient since nothing beyond
// "visit every reachable object exactly once" is required — cyclic
// graphs fall out for free from the mark bit, no cycle-specific logic
// needed.
//
// A declared-pointer slot is usually precisely typed, but container.Elem
// (and any other tagged-union payload) legitimately stores non-pointer
// scalars in a word a "**"-style layout marks Pointer, exactly the way
// lists-gc-compact.c stores size_t values through a node layout
// identical in shape to one holding real pointers. A slot whose value
// doesn't resolve to a live object's exact payload address is therefore
// treated the same way scanRoots treats an ambiguous stack word: it is
// not traced further, not an error.
func (h *Heap) mark(roots []root) {
	var work []*header

	markOne := func(hdr *header) {
		if hdr.mark == 0 {
			hdr.mark = 1
			work = append(work, hdr)
		}
	}

	for _, r := range roots {
		// scanRoots already discarded anything that didn't resolve to
		// a header, so a second probe here would be redundant; but
		// roots were taken before marking began and nothing moves
		// until the compactor runs, so the header is still valid.
		hdr, _ := h.probe(r.value)
		if hdr != nil {
			markOne(hdr)
		}
	}

	for len(work) > 0 {
		hdr := work[len(work)-1]
		work = work[:len(work)-1]

		payload := payloadOf(hdr)
		offset := uintptr(0)
		for _, s := range h.slotsFor(hdr) {
			if s.Kind == Pointer {
				val := *(*uintptr)(unsafe.Pointer(uintptr(payload) + offset))
				if val != 0 {
					if child, exact := h.probe(val); child != nil && exact {
						markOne(child)
					}
				}
			}
			offset += uintptr(s.Size)
		}
	}
}
