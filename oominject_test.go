package gc

import "testing"

// Grounded on original_source/demo/test/oom.c: a harness can force the
// nth allocation (or every allocation from then on) to fail
// deterministically, to exercise OOM error paths without actually
// exhausting the heap.
func TestInjectOOMNextCall(t *testing.T) {
	h := mustInit(t, 16<<10, true, 0.9)

	h.InjectOOM(0, false)
	if _, err := h.AllocStruct("**"); err != ErrOutOfMemory {
		t.Fatalf("first alloc after InjectOOM(0,false) error = %v, want %v", err, ErrOutOfMemory)
	}
	if _, err := h.AllocStruct("**"); err != nil {
		t.Fatalf("alloc after a non-sticky injected failure should succeed: %v", err)
	}
}

func TestInjectOOMNthCall(t *testing.T) {
	h := mustInit(t, 16<<10, true, 0.9)

	h.InjectOOM(2, false)
	for i := 0; i < 2; i++ {
		if _, err := h.AllocStruct("**"); err != nil {
			t.Fatalf("alloc #%d before the injected failure: %v", i, err)
		}
	}
	if _, err := h.AllocStruct("**"); err != ErrOutOfMemory {
		t.Fatalf("3rd alloc error = %v, want %v", err, ErrOutOfMemory)
	}
	if _, err := h.AllocStruct("**"); err != nil {
		t.Fatalf("alloc after the injected failure should succeed: %v", err)
	}
}

func TestInjectOOMSticky(t *testing.T) {
	h := mustInit(t, 16<<10, true, 0.9)

	h.InjectOOM(0, true)
	for i := 0; i < 3; i++ {
		if _, err := h.AllocStruct("**"); err != ErrOutOfMemory {
			t.Fatalf("sticky injected alloc #%d error = %v, want %v", i, err, ErrOutOfMemory)
		}
	}
	h.ClearOOM()
	if _, err := h.AllocStruct("**"); err != nil {
		t.Fatalf("alloc after ClearOOM should succeed: %v", err)
	}
}
