package gc

import (
	"testing"
	"unsafe"
)

// listNode is a test-local stand-in for container.List's node layout
// ("**": entry pointer, next pointer), written directly against the
// unsafe.Pointer API the way a container library would.
type listNode struct {
	entry unsafe.Pointer
	next  unsafe.Pointer
}

func newNode(h *Heap) unsafe.Pointer {
	p, err := h.AllocStruct("**")
	if err != nil {
		panic(err)
	}
	return p
}

func nodeAt(p unsafe.Pointer) *listNode { return (*listNode)(p) }

// Scenario 2/3: a retained chain of 50 nodes survives GC, with contents
// preserved, and (since survivors are evacuated into fresh low pages)
// the new head sits at a strictly lower address than the old one.
func TestRetainedChainSurvivesAndCompacts(t *testing.T) {
	h := mustInit(t, 64<<10, true, 0.9)

	var head unsafe.Pointer
	h.Shadow().PushStack(unsafe.Pointer(&head))
	defer h.Shadow().PopStack()

	const n = 50
	for i := 0; i < n; i++ {
		node := newNode(h)
		nodeAt(node).entry = unsafe.Pointer(uintptr(i + 1))
		nodeAt(node).next = head
		head = node
	}
	oldHead := head

	h.GC()

	if head == nil {
		t.Fatal("chain head did not survive GC")
	}
	if uintptr(head) >= uintptr(oldHead) {
		t.Fatalf("new head %#x not below old head %#x after compaction", head, oldHead)
	}

	cur := head
	for i := n; i >= 1; i-- {
		node := nodeAt(cur)
		if uintptr(node.entry) != uintptr(i) {
			t.Fatalf("node entry = %d, want %d", uintptr(node.entry), i)
		}
		cur = node.next
	}
	if cur != nil {
		t.Fatalf("chain longer than %d nodes", n)
	}
}

// Scenario 5: a stack word whose bit pattern happens to equal a valid
// heap address is a root under the unsafe-stack policy, and is not a
// root (so its target is reclaimed) when the policy is disabled.
func TestUnsafeStackPolicy(t *testing.T) {
	for _, unsafeStack := range []bool{true, false} {
		h := mustInit(t, 16<<10, unsafeStack, 0.9)

		node := newNode(h)
		nodeAt(node).entry = unsafe.Pointer(uintptr(42))
		// An interior address: it lands inside the node's live bytes
		// but not exactly at its payload start, so whether it counts
		// as a root depends entirely on the unsafe-stack policy.
		planted := unsafe.Pointer(uintptr(node) + uintptr(wordSize))

		h.Shadow().PushStack(unsafe.Pointer(&planted))
		h.GC()
		h.Shadow().PopStack()

		survived := h.Used() > 0
		if unsafeStack && !survived {
			t.Fatal("planted address did not survive with unsafe_stack=true")
		}
		if !unsafeStack && survived {
			t.Fatal("planted address survived with unsafe_stack=false")
		}
		h.Delete()
	}
}
