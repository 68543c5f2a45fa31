// Command wordfreq counts word frequencies across one or more files and
// prints them sorted by word, grounded on
// original_source/demo/src/freq_count.c. The original keeps counts in a
// hash table (lib/hash_table.c); that file was filtered out of the
// retrieved source pack, so counts are instead kept in a
// container.List of word/count records, searched linearly the way
// ioopm_linked_list_contains already works — a direct, if slower,
// substitute building on a container this repo actually has.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"unsafe"

	gc "github.com/hato1883/C-Garabage-Collector-sub001"
	"github.com/hato1883/C-Garabage-Collector-sub001/container"
)

const delimiters = "+-#@()[]{}.,:;!? \t\n\r"

// record is a "*i" heap struct: a pointer to a raw null-terminated copy
// of the word's bytes, followed by its running count. The word is
// stored in the heap instead of as a Go string so the whole structure
// — and the word frequency counts it carries — really does live in,
// and survive collections of, the custom heap, the way freq_count.c's
// elem_t string members live in the same global_heap as everything
// else.
const recordLayout = "*i"

func recordWordPtr(p unsafe.Pointer) *unsafe.Pointer { return (*unsafe.Pointer)(p) }
func recordCount(p unsafe.Pointer) *int32 {
	return (*int32)(unsafe.Pointer(uintptr(p) + uintptr(unsafe.Sizeof(uintptr(0)))))
}

func recordWord(p unsafe.Pointer) string {
	wp := *recordWordPtr(p)
	n := 0
	for *(*byte)(unsafe.Pointer(uintptr(wp) + uintptr(n))) != 0 {
		n++
	}
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		buf[i] = *(*byte)(unsafe.Pointer(uintptr(wp) + uintptr(i)))
	}
	return string(buf)
}

func internWord(h *gc.Heap, word string) (unsafe.Pointer, error) {
	buf, err := h.AllocRaw(len(word) + 1)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(word); i++ {
		*(*byte)(unsafe.Pointer(uintptr(buf) + uintptr(i))) = word[i]
	}
	*(*byte)(unsafe.Pointer(uintptr(buf) + uintptr(len(word)))) = 0
	return buf, nil
}

func processWord(h *gc.Heap, records *container.List, word string) error {
	for it := records.Iterator(); it.HasNext(); {
		e, err := it.Next()
		if err != nil {
			return err
		}
		rec := container.ElemPtr(e)
		if recordWord(rec) == word {
			*recordCount(rec)++
			return nil
		}
	}

	wordPtr, err := internWord(h, word)
	if err != nil {
		return err
	}
	rec, err := h.AllocStruct(recordLayout)
	if err != nil {
		return err
	}
	*recordWordPtr(rec) = wordPtr
	*recordCount(rec) = 1
	return records.Append(container.PtrElem(rec))
}

func processFile(h *gc.Heap, records *container.List, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	for scanner.Scan() {
		for _, word := range strings.FieldsFunc(scanner.Text(), func(r rune) bool {
			return strings.ContainsRune(delimiters, r)
		}) {
			if word == "" {
				continue
			}
			if err := processWord(h, records, word); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: wordfreq file1 ... filen")
		return
	}

	h, err := gc.Init(2*1024*1024, true, 0.75)
	if err != nil {
		log.Fatalf("wordfreq: %v", err)
	}
	defer h.Delete()

	records := container.NewList(h, container.PointerEq)
	records.Root()
	defer records.Unroot()

	for _, filename := range os.Args[1:] {
		if err := processFile(h, records, filename); err != nil {
			log.Fatalf("wordfreq: %s: %v", filename, err)
		}
	}

	words := make([]string, 0, records.Size())
	counts := make(map[string]int32, records.Size())
	for it := records.Iterator(); it.HasNext(); {
		e, err := it.Next()
		if err != nil {
			log.Fatalf("wordfreq: %v", err)
		}
		rec := container.ElemPtr(e)
		w := recordWord(rec)
		words = append(words, w)
		counts[w] = *recordCount(rec)
	}
	sort.Strings(words)

	for _, w := range words {
		fmt.Printf("%q: %d\n", w, counts[w])
	}
}
