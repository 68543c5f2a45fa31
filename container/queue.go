package container

import (
	"errors"

	gc "github.com/hato1883/C-Garabage-Collector-sub001"
)

// ErrQueueEmpty mirrors original_source/lib/fifo_queue.c's
// QUEUE_IS_EMPTY status.
var ErrQueueEmpty = errors.New("container: queue is empty")

// FIFOQueue is a first-in-first-out queue, grounded on
// original_source/lib/fifo_queue.c's struct queue. The original keeps
// its own first/last/size fields and a private node type identical in
// shape to the linked list's; here it's simply a List used
// front-to-back. Dequeue (remove index 0) is O(1); enqueue (append)
// walks the list from its head to reach the last node.
type FIFOQueue struct {
	l *List
}

// NewFIFOQueue creates an empty queue backed by h.
func NewFIFOQueue(h *gc.Heap) *FIFOQueue {
	return &FIFOQueue{l: NewList(h, PointerEq)}
}

// Enqueue places element last in the queue.
func (q *FIFOQueue) Enqueue(element Elem) error {
	return q.l.Append(element)
}

// Peek returns the first element without removing it.
func (q *FIFOQueue) Peek() (Elem, error) {
	if q.l.IsEmpty() {
		return Nil, ErrQueueEmpty
	}
	return q.l.Get(0)
}

// Dequeue removes and returns the first element.
func (q *FIFOQueue) Dequeue() (Elem, error) {
	if q.l.IsEmpty() {
		return Nil, ErrQueueEmpty
	}
	return q.l.RemoveAt(0)
}

// Size returns the number of queued elements.
func (q *FIFOQueue) Size() int { return q.l.Size() }

// IsEmpty reports whether the queue holds no elements.
func (q *FIFOQueue) IsEmpty() bool { return q.l.IsEmpty() }

// Clear removes every queued element.
func (q *FIFOQueue) Clear() { q.l.Clear() }

// Iterator walks the queue front to back.
func (q *FIFOQueue) Iterator() Iterator { return q.l.Iterator() }

// Root and Unroot delegate to the backing list.
func (q *FIFOQueue) Root()   { q.l.Root() }
func (q *FIFOQueue) Unroot() { q.l.Unroot() }
