// Command listgc is a GC stress benchmark grounded on
// original_source/demo/src/lists-gc-compact.c: it partitions m random
// numbers across four linked lists, forces a full collection, then
// probes n further random numbers against whichever list their value
// range belongs to.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cznic/mathutil"

	gc "github.com/hato1883/C-Garabage-Collector-sub001"
	"github.com/hato1883/C-Garabage-Collector-sub001/container"
)

// Value ranges a generated number is bucketed into, one per list. The
// retrieved original_source pack does not include lists-gc.h (the
// header defining these as named constants), so the boundaries below
// are chosen to reproduce its four-way even split rather than copied
// from a missing source file.
const (
	firstStart  = 0
	secondStart = 1 << 16
	thirdStart  = 2 << 16
	fourthStart = 3 << 16
	fifthStart  = 4 << 16
)

func main() {
	m := flag.Int("m", 10000, "number of elements to insert before collection")
	n := flag.Int("n", 10000, "number of membership probes after collection")
	heapSize := flag.Int("heap", 0, "heap size in bytes (default: 16*m + 2048)")
	flag.Parse()

	if *m <= 0 || *n <= 0 {
		fmt.Fprintln(os.Stderr, "listgc: m and n must both be positive")
		os.Exit(1)
	}
	size := *heapSize
	if size <= 0 {
		size = 16*(*m) + 2048
	}

	h, err := gc.Init(uintptr(size), true, 1.0)
	if err != nil {
		log.Fatalf("listgc: %v", err)
	}
	defer h.Delete()

	lists := [4]*container.List{
		container.NewList(h, container.ScalarEq),
		container.NewList(h, container.ScalarEq),
		container.NewList(h, container.ScalarEq),
		container.NewList(h, container.ScalarEq),
	}
	for _, l := range lists {
		l.Root()
		defer l.Unroot()
	}

	rng, err := mathutil.NewFC32(firstStart, fifthStart-1, true)
	if err != nil {
		log.Fatalf("listgc: %v", err)
	}
	rng.Seed(1)

	for i := 0; i < *m; i++ {
		number := rng.Next()
		if err := lists[bucketOf(number)].Append(container.IntElem(int64(number))); err != nil {
			log.Fatalf("listgc: append: %v", err)
		}
	}

	before := h.Used()
	reclaimed := h.GC()
	fmt.Printf("used before GC: %d bytes, reclaimed: %d bytes\n", before, reclaimed)

	hits := 0
	for i := 0; i < *n; i++ {
		number := rng.Next()
		if lists[bucketOf(number)].Contains(container.IntElem(int64(number))) {
			hits++
		}
	}
	fmt.Printf("%d/%d probes hit an existing element\n", hits, *n)
}

func bucketOf(number int) int {
	switch {
	case number < secondStart:
		return 0
	case number < thirdStart:
		return 1
	case number < fourthStart:
		return 2
	default:
		return 3
	}
}
