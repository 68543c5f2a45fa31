package gc

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to the caller. Out-of-memory and malformed-handle
// conditions are ordinary errors; reachability and layout corruption are
// collector bugs or host misuse and are signaled with a panic instead
// (see fatalf), since the collector cannot safely continue once its type
// information can no longer be trusted.
var (
	ErrHeapTooSmall      = errors.New("gc: heap size is smaller than one page")
	ErrReservationFailed = errors.New("gc: virtual memory reservation failed")
	ErrInvalidHandle     = errors.New("gc: invalid or nil heap handle")
	ErrInvalidThreshold  = errors.New("gc: gc trigger threshold must be in (0, 1]")
	ErrMalformedLayout   = errors.New("gc: malformed layout descriptor")
	ErrOutOfMemory       = errors.New("gc: out of memory after collection")
	ErrObjectTooLarge    = errors.New("gc: object size exceeds one page")
)

func fatalf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}
