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

// Package usermem governs access to user memory.
//
// Kernel code must never dereference a user-supplied address directly. Every
// access goes through a region check against the task's AddressSpace, which
// confirms that the addressed range is mapped with sufficient permissions and
// makes it resident. Accesses that may legitimately fault anyway (the
// null-terminated scan reads ahead of population) run under the per-context
// AccessScope, which the host's page-fault handler consults to distinguish
// resumable user-memory faults from kernel bugs.
package usermem

import (
	"time"

	"uaccess.dev/uaccess/pkg/context"
	"uaccess.dev/uaccess/pkg/errors/linuxerr"
	"uaccess.dev/uaccess/pkg/hostarch"
	"uaccess.dev/uaccess/pkg/log"
)

// Populate failures are almost always application bugs (the mapping raced
// away or the address space ran out of backing), so they are worth a note,
// but not one a hostile application can spam the log with.
var populateWarn = log.BasicRateLimitedLogger(30 * time.Second)

// AddressSpace is the interface a host kernel's address-space implementation
// must provide for user-memory validation. Implementations decide what
// "mapped" and "permitted" mean; this package never inspects page tables
// itself.
type AddressSpace interface {
	// CheckRegionAccess returns nil iff the addresses in ar are mapped with
	// at least the permissions in at. It is a pure query and must not mutate
	// the address space. A failure is reported as linuxerr.EFAULT or a
	// suitably translated error.
	CheckRegionAccess(ctx context.Context, ar hostarch.AddrRange, at hostarch.AccessType) error

	// PopulateRegion makes the addresses in ar resident, allocating or
	// mapping physical backing as needed. It is idempotent if the region is
	// already resident, and may block (e.g. on I/O) while populating.
	PopulateRegion(ctx context.Context, ar hostarch.AddrRange, at hostarch.AccessType) error
}

// CheckRegion validates that size bytes at addr are mapped with at least the
// permissions in at, and makes them resident. addr must be aligned to align
// bytes.
//
// The result is valid only at the instant of the check; nothing pins the
// mapping afterward. Callers must re-check before every independent access,
// and the dereference immediately following a successful check is the only
// access the check is understood to license.
func CheckRegion(ctx context.Context, as AddressSpace, addr hostarch.Addr, size, align uintptr, at hostarch.AccessType) error {
	if !addr.IsAligned(align) {
		return linuxerr.ErrMisalignedAddress
	}
	ar, ok := addr.ToRange(uint64(size))
	if !ok {
		return linuxerr.EINVAL
	}
	if err := as.CheckRegionAccess(ctx, ar, at); err != nil {
		return err
	}
	if err := as.PopulateRegion(ctx, ar, at); err != nil {
		// The range is mapped but cannot be made usable, which is
		// indistinguishable from a bad address as far as the caller is
		// concerned.
		populateWarn.Warningf("usermem: cannot populate %v (%v): %v", ar, at, err)
		return linuxerr.EFAULT
	}
	return nil
}

// CheckNullTerminated returns the number of elements before the first zero
// element in the array of T starting at addr, validating each page of the
// array against as at most once. The count excludes the terminator.
//
// The scan runs under scope, so a hardware fault taken while reading an
// element that the address space reported mapped but has not yet populated is
// resumable rather than fatal.
//
// The frontier is advanced before each element read on the assumption that an
// aligned element never straddles a page boundary, i.e. that T's size does
// not exceed its alignment. For a wider T the trailing bytes of an element
// ending past the frontier are read before their page is checked.
func CheckNullTerminated[T comparable](ctx context.Context, as AddressSpace, scope *AccessScope, addr hostarch.Addr, at hostarch.AccessType) (int, error) {
	return checkNullTerminated[T](ctx, as, scope, addr, at, -1)
}

// checkNullTerminated implements CheckNullTerminated. If maxElems is
// non-negative and no terminator is found among the first maxElems elements,
// it returns (maxElems, linuxerr.ENAMETOOLONG); with maxElems == 0 it
// returns immediately, before reading any element.
func checkNullTerminated[T comparable](ctx context.Context, as AddressSpace, scope *AccessScope, addr hostarch.Addr, at hostarch.AccessType, maxElems int) (int, error) {
	size, align := sizeAndAlignOf[T]()
	if !addr.IsAligned(align) {
		return 0, linuxerr.ErrMisalignedAddress
	}
	if maxElems == 0 {
		// Even an empty array needs one element for its terminator.
		return 0, linuxerr.ENAMETOOLONG
	}

	var zero T

	cu := scope.beginUserAccess()
	defer cu.Clean()

	// page is the lowest page boundary not yet validated. Each page is
	// checked exactly once, as the scan first reaches it.
	page := addr.RoundDown()
	cur := addr
	for n := 0; ; n++ {
		for cur >= page {
			ar := hostarch.AddrRange{Start: page, End: page + hostarch.PageSize}
			if !ar.WellFormed() {
				// Wrapped around the top of the address space.
				return 0, linuxerr.EFAULT
			}
			if err := as.CheckRegionAccess(ctx, ar, at); err != nil {
				return 0, err
			}
			page += hostarch.PageSize
		}

		// This read may fault if the checked page is not yet resident;
		// scope tells the fault handler to resolve and resume.
		if load(deref[T](cur)) == zero {
			return n, nil
		}
		if maxElems >= 0 && n+1 >= maxElems {
			return n + 1, linuxerr.ENAMETOOLONG
		}

		next, ok := cur.AddLength(uint64(size))
		if !ok {
			// The array runs off the end of the address space.
			return 0, linuxerr.EFAULT
		}
		cur = next
	}
}
