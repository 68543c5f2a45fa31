package container

import "errors"

// ErrIteratorEmpty and ErrIteratorState mirror original_source/lib/
// iterator.c's ITERATOR_IS_EMPTY and INVALID_ITERATOR_STATE statuses.
var (
	ErrIteratorEmpty = errors.New("container: iterator has no next element")
	ErrIteratorState = errors.New("container: iterator is not positioned on an element")
)

// Iterator is the Go-idiomatic counterpart to iterator.c's struct
// iterator: there, a generic cursor is built from a void* data
// structure plus seven function pointers (has_next/next/current/
// remove/insert/reset/destroy) so any container can plug into the same
// type; here, a container instead returns a cursor type that implements
// this interface (List.Iterator returns a listIterator), which is what
// the function-pointer struct was standing in for in a language without
// interfaces.
type Iterator interface {
	HasNext() bool
	Next() (Elem, error)
	Current() (Elem, error)
	Remove() (Elem, error)
	Insert(Elem) error
	Reset()
}

// listIterator walks a List by index, mirroring the cursor state
// iterator.c keeps per data structure (a position plus "have we stepped
// onto a valid element yet" flag).
type listIterator struct {
	l        *List
	pos      int  // index Next() will return
	onElem   bool // true once Next has been called and Remove/Current apply to pos-1
}

// Iterator returns a fresh cursor positioned before the list's first
// element, per ioopm_iterator_reset's "initial state".
func (l *List) Iterator() Iterator {
	return &listIterator{l: l}
}

func (it *listIterator) HasNext() bool { return it.pos < it.l.size }

func (it *listIterator) Next() (Elem, error) {
	if !it.HasNext() {
		return Nil, ErrIteratorEmpty
	}
	e, err := it.l.Get(it.pos)
	if err != nil {
		return Nil, err
	}
	it.pos++
	it.onElem = true
	return e, nil
}

func (it *listIterator) Current() (Elem, error) {
	if !it.onElem {
		return Nil, ErrIteratorState
	}
	return it.l.Get(it.pos - 1)
}

func (it *listIterator) Remove() (Elem, error) {
	if !it.onElem {
		return Nil, ErrIteratorState
	}
	e, err := it.l.RemoveAt(it.pos - 1)
	if err != nil {
		return Nil, err
	}
	it.pos--
	it.onElem = false
	return e, nil
}

func (it *listIterator) Insert(element Elem) error {
	if !it.onElem {
		return ErrIteratorState
	}
	if err := it.l.Insert(it.pos, element); err != nil {
		return err
	}
	it.pos++
	return nil
}

func (it *listIterator) Reset() {
	it.pos = 0
	it.onElem = false
}
