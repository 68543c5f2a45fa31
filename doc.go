// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gc implements a precise, compacting, page-based garbage
// collector for a hosted mutator.
//
// The collector owns one contiguous, mmap'd region of virtual memory
// carved into equally sized pages (see page.go), bump-allocates typed
// objects out of those pages (alloc.go) whose in-memory shape is
// described by a compact layout string (layout.go), discovers live
// roots by conservatively scanning a host-supplied shadow stack
// (shadowstack.go, roots.go), traces precisely from those roots through
// declared pointer slots only (mark.go), and reclaims unreachable
// objects by evacuating survivors into fresh pages and rewriting every
// pointer that referenced them (compact.go).
//
// Changelog
//
// Forked from the cznic/memory size-classed mmap allocator and
// generalized from an untyped byte slab into a typed, tracing,
// compacting collector.
package gc
