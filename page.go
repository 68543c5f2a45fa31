package gc

import "unsafe"

// defaultPageSize is the fixed page size for every page of every heap,
// chosen in the middle of the spec's suggested 2 KiB-16 KiB band. A
// heap's pages are always this size; there is no per-heap override,
// mirroring the teacher allocator's single package-level pageSize.
const defaultPageSize = 8192

// pageState is a page's position in the state machine described by
// the collector's design: free, active (bump target), full (retired,
// still holding live data) or evacuating (from-space during a GC).
type pageState uint8

const (
	pageFree pageState = iota
	pageActive
	pageFull
	pageEvacuating
)

// pageRecord is the out-of-band metadata for one page. Unlike the
// teacher, which writes its page header into the mmap'd bytes
// themselves (recovered from any object pointer by masking off the
// page-aligned low bits), this collector keeps page metadata in an
// ordinary Go slice on the Heap: the data model explicitly calls for
// "a fixed-size array of page records," and a heap-wide region/page
// index makes address-to-page lookup a single division instead of
// requiring every page to start on a naturally aligned boundary.
type pageRecord struct {
	state  pageState
	base   uintptr // absolute address of the page's first usable byte
	cursor uintptr // absolute address of the next free byte
	live   int     // objects bump-allocated into this page since acquire
}

func (p *pageRecord) end(pageSize uintptr) uintptr { return p.base + pageSize }

// initPages reserves the heap's virtual memory region via mmap, carves
// it into defaultPageSize pages, and pushes every page onto the
// freelist in a deterministic (descending index) acquisition order.
func (h *Heap) initPages(size uintptr) error {
	if size < defaultPageSize {
		return ErrHeapTooSmall
	}
	h.pageSize = defaultPageSize
	npages := int(size / h.pageSize)
	region, err := mmapRegion(npages * int(h.pageSize))
	if err != nil {
		return err
	}
	h.region = region
	h.regionAddr = uintptr(unsafe.Pointer(&region[0]))
	h.pages = make([]pageRecord, npages)
	h.freelist = make([]int, npages)
	for i := 0; i < npages; i++ {
		h.pages[i] = pageRecord{state: pageFree, base: h.regionAddr + uintptr(i)*h.pageSize}
		// Pushed in ascending order so popping from the tail hands
		// pages out npages-1, npages-2, ..., 0 — a deterministic,
		// reproducible order in which a collection's to-space pages lie
		// below the pages a fresh heap fills first.
		h.freelist[i] = i
	}
	h.activePage = -1
	return nil
}

func (h *Heap) unmapRegion() error {
	if h.region == nil {
		return nil
	}
	err := munmapRegion(h.region)
	h.region = nil
	h.regionAddr = 0
	h.pages = nil
	h.freelist = nil
	h.activePage = -1
	return err
}

// acquirePage pops one free page, in deterministic order, and marks it
// active. Reports false when the freelist is exhausted (heap-exhausted,
// per the page store's contract — the caller, the allocator, is
// responsible for triggering a collection).
func (h *Heap) acquirePage() (int, bool) {
	if len(h.freelist) == 0 {
		return -1, false
	}
	idx := h.freelist[len(h.freelist)-1]
	h.freelist = h.freelist[:len(h.freelist)-1]
	p := &h.pages[idx]
	p.state = pageActive
	p.cursor = p.base
	p.live = 0
	return idx, true
}

// releasePage zeroes a page's bytes and returns it to the freelist.
// Zeroing matches the collector's reclaim phase ("mark bits and
// forwarding slots are cleared as a side effect of freeing the source
// pages, which are zeroed").
func (h *Heap) releasePage(idx int) {
	p := &h.pages[idx]
	off := p.base - h.regionAddr
	clear(h.region[off : off+h.pageSize])
	*p = pageRecord{state: pageFree, base: p.base}
	h.freelist = append(h.freelist, idx)
}

// pageIndexOf returns the page index an address falls within, or -1 if
// it lies outside the heap region entirely.
func (h *Heap) pageIndexOf(addr uintptr) int {
	if addr < h.regionAddr {
		return -1
	}
	off := addr - h.regionAddr
	if off >= uintptr(len(h.pages))*h.pageSize {
		return -1
	}
	return int(off / h.pageSize)
}

// tryBumpPage bump-allocates total bytes from page idx, returning the
// address and true on success, or false if it would overrun the page.
func (h *Heap) tryBumpPage(idx int, total int) (uintptr, bool) {
	if idx < 0 {
		return 0, false
	}
	p := &h.pages[idx]
	addr := p.cursor
	if addr+uintptr(total) > p.end(h.pageSize) {
		return 0, false
	}
	p.cursor += uintptr(total)
	p.live++
	return addr, true
}

// retireActive, if a page is currently active, marks it full and clears
// the active-page pointer so the next allocation acquires a fresh page.
func (h *Heap) retireActive() {
	if h.activePage >= 0 {
		h.pages[h.activePage].state = pageFull
		h.activePage = -1
	}
}

// ensureActivePage acquires a fresh page from the freelist if none is
// currently active. Reports whether a page is active afterward.
func (h *Heap) ensureActivePage() bool {
	if h.activePage >= 0 {
		return true
	}
	idx, ok := h.acquirePage()
	if !ok {
		return false
	}
	h.activePage = idx
	return true
}

// usedBytes sums the live bytes of every active or full page. Freed and
// evacuating pages never contribute; the latter only exists mid-GC.
func (h *Heap) usedBytes() int {
	n := 0
	for i := range h.pages {
		switch h.pages[i].state {
		case pageActive, pageFull:
			n += int(h.pages[i].cursor - h.pages[i].base)
		}
	}
	return n
}

func (h *Heap) usedFraction() float64 {
	total := len(h.pages) * int(h.pageSize)
	if total == 0 {
		return 0
	}
	return float64(h.usedBytes()) / float64(total)
}
