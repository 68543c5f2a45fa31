package gc

import (
	"os"
	"unsafe"
)

var (
	osPageSize = os.Getpagesize()
	osPageMask = osPageSize - 1
)

// roundup rounds n up to the next multiple of m. m must be a power of 2.
func roundup(n, m int) int { return (n + m - 1) &^ (m - 1) }

// mmapRegion reserves a single anonymous, zero-filled, page-aligned
// region of at least size bytes from the OS, exactly as the teacher
// allocator's a.mmap does for each of its own pages — this collector
// just does it once, for the whole heap, instead of once per page.
func mmapRegion(size int) ([]byte, error) {
	b, err := mmap0(roundup(size, osPageSize))
	if err != nil {
		return nil, ErrReservationFailed
	}
	return b, nil
}

func munmapRegion(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return munmap0(unsafe.Pointer(&b[0]), len(b))
}
