package container

import (
	"errors"
	"unsafe"

	gc "github.com/hato1883/C-Garabage-Collector-sub001"
)

// ErrIndexOutOfBounds mirrors original_source/lib/linked_list.c's
// INDEX_OUT_OF_BOUNDS status code.
var ErrIndexOutOfBounds = errors.New("container: index out of bounds")

// node is the GC-visible half of a list link: an entry word followed by
// a pointer to the next node, laid out with the "**" descriptor (both
// words traced as pointer-shaped, since Elem may itself hold a
// gc.Heap pointer). This is the same two-word shape roots_test.go's
// listNode exercises directly against the collector.
const nodeLayout = "**"

func entrySlot(p unsafe.Pointer) *Elem           { return (*Elem)(p) }
func nextSlot(p unsafe.Pointer) *unsafe.Pointer { return (*unsafe.Pointer)(unsafe.Pointer(uintptr(p) + uintptr(unsafe.Sizeof(uintptr(0))))) }

// List is a singly linked list whose nodes are allocated from a gc.Heap,
// grounded on original_source/lib/linked_list.c's struct list/struct
// node pair. The List value itself (head/tail/size bookkeeping and the
// comparison function) lives on the ordinary Go heap: original_source's
// "**ll" header layout allocates first, last, eq_func and size inside
// the custom heap too, but a Go func value can't be packed into a raw
// word, so that bookkeeping is kept as plain Go fields instead. Callers
// that want the whole structure heap-resident can embed a *List in
// their own GC-traced object instead.
type List struct {
	h     *gc.Heap
	eq    EqFunc
	first unsafe.Pointer
	last  unsafe.Pointer
	size  int
}

// NewList creates an empty list backed by h, comparing elements with eq.
func NewList(h *gc.Heap, eq EqFunc) *List {
	return &List{h: h, eq: eq}
}

// Size returns the number of elements currently in the list.
func (l *List) Size() int { return l.size }

// IsEmpty reports whether the list holds no elements.
func (l *List) IsEmpty() bool { return l.size == 0 }

func (l *List) newNode(entry Elem, next unsafe.Pointer) (unsafe.Pointer, error) {
	p, err := l.h.AllocStruct(nodeLayout)
	if err != nil {
		return nil, err
	}
	*entrySlot(p) = entry
	*nextSlot(p) = next
	return p, nil
}

// Append inserts element at the end of the list.
func (l *List) Append(element Elem) error {
	return l.Insert(l.size, element)
}

// Prepend inserts element at the head of the list.
func (l *List) Prepend(element Elem) error {
	return l.Insert(0, element)
}

// Insert places element at index, shifting later elements back one
// place. index == Size() appends.
func (l *List) Insert(index int, element Elem) error {
	if index < 0 || index > l.size {
		return ErrIndexOutOfBounds
	}
	if index == 0 {
		node, err := l.newNode(element, l.first)
		if err != nil {
			return err
		}
		l.first = node
		if l.last == nil {
			l.last = node
		}
		l.size++
		return nil
	}

	prev := l.nodeAt(index - 1)
	node, err := l.newNode(element, *nextSlot(prev))
	if err != nil {
		return err
	}
	*nextSlot(prev) = node
	if index == l.size {
		l.last = node
	}
	l.size++
	return nil
}

// Get returns the element stored at index.
func (l *List) Get(index int) (Elem, error) {
	if index < 0 || index >= l.size {
		return Nil, ErrIndexOutOfBounds
	}
	return *entrySlot(l.nodeAt(index)), nil
}

// Set overwrites the element stored at index.
func (l *List) Set(index int, element Elem) error {
	if index < 0 || index >= l.size {
		return ErrIndexOutOfBounds
	}
	*entrySlot(l.nodeAt(index)) = element
	return nil
}

// RemoveAt unlinks and returns the element at index. The node itself is
// simply dropped; it becomes garbage and is reclaimed by the next GC.
func (l *List) RemoveAt(index int) (Elem, error) {
	if index < 0 || index >= l.size {
		return Nil, ErrIndexOutOfBounds
	}

	var removed unsafe.Pointer
	if index == 0 {
		removed = l.first
		l.first = *nextSlot(removed)
		if l.first == nil {
			l.last = nil
		}
	} else {
		prev := l.nodeAt(index - 1)
		removed = *nextSlot(prev)
		*nextSlot(prev) = *nextSlot(removed)
		if removed == l.last {
			l.last = prev
		}
	}
	l.size--
	return *entrySlot(removed), nil
}

// Contains reports whether any element compares equal to element.
func (l *List) Contains(element Elem) bool {
	for p := l.first; p != nil; p = *nextSlot(p) {
		if l.eq(*entrySlot(p), element) {
			return true
		}
	}
	return false
}

// All reports whether pred holds for every element.
func (l *List) All(pred func(Elem) bool) bool {
	for p := l.first; p != nil; p = *nextSlot(p) {
		if !pred(*entrySlot(p)) {
			return false
		}
	}
	return true
}

// Any reports whether pred holds for at least one element.
func (l *List) Any(pred func(Elem) bool) bool {
	for p := l.first; p != nil; p = *nextSlot(p) {
		if pred(*entrySlot(p)) {
			return true
		}
	}
	return false
}

// Apply replaces every element e with fn(e), in place.
func (l *List) Apply(fn func(Elem) Elem) {
	for p := l.first; p != nil; p = *nextSlot(p) {
		*entrySlot(p) = fn(*entrySlot(p))
	}
}

// Clear removes every element. Nodes become unreferenced garbage,
// reclaimed the next time the backing heap is collected.
func (l *List) Clear() {
	l.first, l.last = nil, nil
	l.size = 0
}

// Root registers the list's head pointer with the backing heap's shadow
// stack, so a GC run started while this list is alive does not reclaim
// it. Callers that keep a List reachable some other way (e.g. already
// rooted as a field of an already-rooted struct) don't need this.
func (l *List) Root() {
	l.h.Shadow().PushStack(unsafe.Pointer(&l.first))
}

// Unroot reverses the most recent Root call.
func (l *List) Unroot() {
	l.h.Shadow().PopStack()
}

func (l *List) nodeAt(index int) unsafe.Pointer {
	p := l.first
	for i := 0; i < index; i++ {
		p = *nextSlot(p)
	}
	return p
}
