package gc

import (
	"math"
	"testing"
	"unsafe"
)

// The layout "i*d*" packs an int32, a pointer, a float64 and a pointer
// back to back with no padding (offsets 0, 4, 12, 20) — deliberately
// not a Go struct's field layout, which would insert alignment padding
// after the int32. Accessors below read/write at the packed offsets
// directly, the same way mark.go and compact.go walk a layout's slots.
func mixedIntPtr(p unsafe.Pointer) *int32        { return (*int32)(p) }
func mixedFieldA(p unsafe.Pointer) *unsafe.Pointer { return (*unsafe.Pointer)(unsafe.Pointer(uintptr(p) + 4)) }
func mixedDouble(p unsafe.Pointer) *float64        { return (*float64)(unsafe.Pointer(uintptr(p) + 12)) }
func mixedFieldB(p unsafe.Pointer) *unsafe.Pointer { return (*unsafe.Pointer)(unsafe.Pointer(uintptr(p) + 20)) }

// Scenario 6: with only one of two pointer fields referenced from a
// root, the referenced child survives and the parent's scalar fields
// keep their exact bit patterns across GC.
func TestMixedPayloadPreservesScalars(t *testing.T) {
	h := mustInit(t, 16<<10, true, 0.9)

	var parent unsafe.Pointer
	h.Shadow().PushStack(unsafe.Pointer(&parent))
	defer h.Shadow().PopStack()

	p, err := h.AllocStruct("i*d*")
	if err != nil {
		t.Fatal(err)
	}
	parent = p
	*mixedIntPtr(parent) = -12345
	*mixedDouble(parent) = math.Pi
	child := newNode(h)
	nodeAt(child).entry = unsafe.Pointer(uintptr(7))
	*mixedFieldA(parent) = child
	*mixedFieldB(parent) = nil // deliberately left unreferenced

	h.GC()

	if got := *mixedIntPtr(parent); got != -12345 {
		t.Fatalf("int field = %d, want -12345", got)
	}
	if got := *mixedDouble(parent); got != math.Pi {
		t.Fatalf("double field = %v, want %v", got, math.Pi)
	}
	a := *mixedFieldA(parent)
	if a == nil {
		t.Fatal("referenced child pointer did not survive")
	}
	if got := nodeAt(a).entry; uintptr(got) != 7 {
		t.Fatalf("surviving child entry = %d, want 7", uintptr(got))
	}
	if b := *mixedFieldB(parent); b != nil {
		t.Fatalf("unreferenced pointer field changed: %v", b)
	}
}
