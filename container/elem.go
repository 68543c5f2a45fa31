// Package container adapts original_source/lib's linked-list, FIFO
// queue and iterator into containers whose nodes live in a gc.Heap
// instead of on the Go runtime's own heap, so that chains built from
// them are the things this collector's mark/compact passes are
// exercised against.
package container

import (
	"math"
	"unsafe"
)

// Elem is a single machine word capable of holding either a scalar
// value or a pointer into a gc.Heap, mirroring original_source/lib's
// elem_t union. Go has no anonymous unions, so Elem is instead a
// defined unsafe.Pointer: every constructor below packs its argument's
// bit pattern directly into the word, and every accessor unpacks it the
// same way, exactly as elem_to_int/int_to_elem and friends reinterpret
// the same union storage in the original.
type Elem unsafe.Pointer

// IntElem and ElemInt mirror int_to_elem/elem_to_int.
func IntElem(v int64) Elem { return Elem(unsafe.Pointer(uintptr(v))) }
func ElemInt(e Elem) int64 { return int64(uintptr(unsafe.Pointer(e))) }

// UintElem and ElemUint mirror uint_to_elem/elem_to_uint.
func UintElem(v uint64) Elem  { return Elem(unsafe.Pointer(uintptr(v))) }
func ElemUint(e Elem) uint64 { return uint64(uintptr(unsafe.Pointer(e))) }

// BoolElem and ElemBool mirror bool_to_elem/elem_to_bool.
func BoolElem(v bool) Elem {
	if v {
		return IntElem(1)
	}
	return IntElem(0)
}
func ElemBool(e Elem) bool { return ElemInt(e) != 0 }

// FloatElem and ElemFloat mirror double_to_elem/elem_to_double, packing
// the IEEE-754 bit pattern into the word the same way the union does.
func FloatElem(v float64) Elem {
	return Elem(unsafe.Pointer(uintptr(math.Float64bits(v))))
}
func ElemFloat(e Elem) float64 {
	return math.Float64frombits(uint64(uintptr(unsafe.Pointer(e))))
}

// PtrElem and ElemPtr mirror ptr_to_elem/elem_to_ptr: the word holds an
// actual gc.Heap payload pointer, traced like any other pointer slot.
func PtrElem(p unsafe.Pointer) Elem  { return Elem(p) }
func ElemPtr(e Elem) unsafe.Pointer { return unsafe.Pointer(e) }

// Nil is the zero Elem, equivalent to a node never written to.
var Nil Elem

// EqFunc reports whether two elements compare equal, mirroring
// ioopm_eq_function. Containers are parameterized by one so callers
// decide whether equality means "same pointer" or "same scalar value".
type EqFunc func(a, b Elem) bool

// PointerEq and ScalarEq are the two equality functions original_source
// demos actually use: one compares the raw word (scalar elements), the
// other compares the pointers an Elem wraps.
func PointerEq(a, b Elem) bool { return ElemPtr(a) == ElemPtr(b) }
func ScalarEq(a, b Elem) bool  { return ElemInt(a) == ElemInt(b) }
