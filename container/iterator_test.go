package container

import "testing"

func TestListIteratorWalksInOrder(t *testing.T) {
	h := mustHeap(t)
	l := NewList(h, ScalarEq)
	l.Root()
	defer l.Unroot()

	for i := 0; i < 6; i++ {
		if err := l.Append(IntElem(int64(i))); err != nil {
			t.Fatal(err)
		}
	}

	it := l.Iterator()
	if _, err := it.Current(); err != ErrIteratorState {
		t.Fatalf("Current() before Next error = %v, want %v", err, ErrIteratorState)
	}

	for i := 0; i < 6; i++ {
		if !it.HasNext() {
			t.Fatalf("HasNext() false before element %d", i)
		}
		e, err := it.Next()
		if err != nil {
			t.Fatalf("Next() at %d: %v", i, err)
		}
		if got := ElemInt(e); got != int64(i) {
			t.Fatalf("Next() = %d, want %d", got, i)
		}
		cur, err := it.Current()
		if err != nil {
			t.Fatal(err)
		}
		if got := ElemInt(cur); got != int64(i) {
			t.Fatalf("Current() = %d, want %d", got, i)
		}
	}
	if it.HasNext() {
		t.Fatal("expected iterator to be exhausted")
	}
	if _, err := it.Next(); err != ErrIteratorEmpty {
		t.Fatalf("Next() past end error = %v, want %v", err, ErrIteratorEmpty)
	}
}

func TestListIteratorRemove(t *testing.T) {
	h := mustHeap(t)
	l := NewList(h, ScalarEq)
	l.Root()
	defer l.Unroot()

	for i := 0; i < 4; i++ {
		if err := l.Append(IntElem(int64(i))); err != nil {
			t.Fatal(err)
		}
	}

	it := l.Iterator()
	it.Next() // positioned on 0
	it.Next() // positioned on 1
	removed, err := it.Remove()
	if err != nil {
		t.Fatal(err)
	}
	if got := ElemInt(removed); got != 1 {
		t.Fatalf("removed = %d, want 1", got)
	}
	if got := l.Size(); got != 3 {
		t.Fatalf("Size() after iterator Remove = %d, want 3", got)
	}

	// Remaining elements, read fresh from the list, are 0,2,3 in order.
	for i, want := range []int64{0, 2, 3} {
		e, err := l.Get(i)
		if err != nil {
			t.Fatal(err)
		}
		if got := ElemInt(e); got != want {
			t.Fatalf("Get(%d) = %d, want %d", i, got, want)
		}
	}
}
