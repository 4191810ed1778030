// Copyright 2018 The gVisor Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package usermem

import (
	"unsafe"

	"uaccess.dev/uaccess/pkg/hostarch"
)

// This file is the only place in the package that materializes Go pointers
// from user addresses. Everything below is defined only under a region check
// (CheckRegion or the scan's per-page checks) licensing the access; keeping
// the conversions here gives a single audit point for that trust boundary.

// deref returns a pointer aliasing the T at addr.
//
// Preconditions: a region check covering [addr, addr+sizeof(T)) with the
// intended permissions has just succeeded.
//
//go:nosplit
func deref[T any](addr hostarch.Addr) *T {
	return (*T)(unsafe.Pointer(uintptr(addr)))
}

// derefSlice returns a slice aliasing the n elements of T starting at addr.
//
// Preconditions: as for deref, for all n elements.
func derefSlice[T any](addr hostarch.Addr, n int) []T {
	return unsafe.Slice(deref[T](addr), n)
}

// load performs a single element read through p. The read is kept out of line
// so the faulting instruction the page-fault handler resumes is this one, not
// a caller's re-ordered copy.
//
//go:noinline
func load[T any](p *T) T {
	return *p
}

// sizeAndAlignOf returns the size and required alignment of T.
func sizeAndAlignOf[T any]() (size, align uintptr) {
	var v T
	return unsafe.Sizeof(v), unsafe.Alignof(v)
}
