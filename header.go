package gc

import "unsafe"

const wordSize = int(unsafe.Sizeof(uintptr(0)))

// header prefixes every allocation. It is never exposed to the mutator
// directly; mutator code only ever sees payload pointers, which lie
// headerSize bytes past their header (headerOf/payloadOf below convert
// between the two, per the encapsulation the design notes ask for
// around header/payload pointer arithmetic).
type header struct {
	tag     uint64         // layout tag: inline descriptor, descriptor-table index, or raw
	size    uint32         // total bytes, header included
	mark    uint32         // transient mark bit, meaningful only during GC
	forward unsafe.Pointer // nil outside GC; post-evacuation address once forwarded
}

const headerSize = int(unsafe.Sizeof(header{}))

// Tag encoding. Bit 0 set means the remaining bits hold an inline
// layout string (up to 7 bytes, long enough for every layout this
// collector's containers actually use, e.g. "**", "**ll", "i*d*").
// Bit 0 clear and bit 1 set means a raw, pointer-free allocation of
// arbitrary size with no layout string at all. Bit 0 clear and bit 1
// clear means the remaining bits (shifted right by 2) index the heap's
// descriptor table, for layouts too long to inline.
const (
	tagInline = uint64(1) << 0
	tagRaw    = uint64(1) << 1
	inlineCap = 7
)

func encodeInlineTag(s string) uint64 {
	tag := tagInline | uint64(len(s))<<1
	for i := 0; i < len(s); i++ {
		tag |= uint64(s[i]) << (8 + 8*i)
	}
	return tag
}

func decodeInlineTag(tag uint64) string {
	n := int((tag >> 1) & 0x7)
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		buf[i] = byte(tag >> (8 + 8*i))
	}
	return string(buf)
}

func encodeIndexTag(idx int) uint64 { return uint64(idx) << 2 }
func decodeIndexTag(tag uint64) int { return int(tag >> 2) }

func isInlineTag(tag uint64) bool { return tag&tagInline != 0 }
func isRawTag(tag uint64) bool    { return tag&tagInline == 0 && tag&tagRaw != 0 }

// tagFor returns the header tag for a validated layout string, growing
// the heap's descriptor table for layouts too long to inline.
func (h *Heap) tagFor(layout string) uint64 {
	if len(layout) <= inlineCap {
		return encodeInlineTag(layout)
	}
	if idx, ok := h.descIndex[layout]; ok {
		return encodeIndexTag(idx)
	}
	idx := len(h.descriptors)
	h.descriptors = append(h.descriptors, layout)
	h.descIndex[layout] = idx
	return encodeIndexTag(idx)
}

// layoutOf returns the layout string a header's tag describes, or ""
// for a raw (pointer-free) allocation.
func (h *Heap) layoutOf(hdr *header) string {
	switch {
	case isInlineTag(hdr.tag):
		return decodeInlineTag(hdr.tag)
	case isRawTag(hdr.tag):
		return ""
	default:
		return h.descriptors[decodeIndexTag(hdr.tag)]
	}
}

// slotsFor returns the parsed slot list for a header, or nil for a raw
// allocation (opaque scalars, nothing to trace).
func (h *Heap) slotsFor(hdr *header) []Slot {
	if isRawTag(hdr.tag) {
		return nil
	}
	slots, err := ParseLayout(h.layoutOf(hdr))
	if err != nil {
		// A header's tag was built from a layout this same package
		// validated at allocation time; if it no longer parses, the
		// collector's own bookkeeping is corrupt.
		fatalf("gc: header carries unparsable layout descriptor: %v", err)
	}
	return slots
}

func headerOf(payload unsafe.Pointer) *header {
	return (*header)(unsafe.Pointer(uintptr(payload) - uintptr(headerSize)))
}

func payloadOf(hdr *header) unsafe.Pointer {
	return unsafe.Pointer(uintptr(unsafe.Pointer(hdr)) + uintptr(headerSize))
}

// roundupWord rounds n up to the next multiple of the machine word
// size, keeping every header word-aligned the way page.go's bump
// cursor expects.
func roundupWord(n int) int {
	return (n + wordSize - 1) &^ (wordSize - 1)
}

func initHeader(addr uintptr, tag uint64, size int) {
	hdr := (*header)(unsafe.Pointer(addr))
	hdr.tag = tag
	hdr.size = uint32(size)
	hdr.mark = 0
	hdr.forward = nil
}
