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
	"uaccess.dev/uaccess/pkg/context"
	"uaccess.dev/uaccess/pkg/errors/linuxerr"
	"uaccess.dev/uaccess/pkg/hostarch"
)

// BytesSpace implements AddressSpace for a kernel-owned byte buffer standing
// in for an application address space. It backs tests and in-process
// emulation; regions are "mapped" iff they fall inside the buffer, carry the
// buffer-wide permissions, and do not intersect a denied range.
//
// The buffer is resident Go memory, so PopulateRegion never has real work to
// do; Populated records the requests for callers that want to assert on them.
type BytesSpace struct {
	// Bytes is the backing buffer. The space addresses exactly
	// [Base(), Base()+len(Bytes)). BytesSpace keeps Bytes reachable, which
	// is what makes addresses derived from it stable.
	Bytes []byte

	// Access is the permission set the whole buffer is mapped with.
	Access hostarch.AccessType

	// Denied are subranges reported inaccessible regardless of Access,
	// emulating holes in the mapping.
	Denied []hostarch.AddrRange

	// PopulateErr, if non-nil, is returned by every PopulateRegion call,
	// emulating an address space that cannot supply backing.
	PopulateErr error

	// Populated accumulates the ranges passed to successful PopulateRegion
	// calls.
	Populated []hostarch.AddrRange
}

// NewBytesSpace returns a BytesSpace over bytes with the given permissions.
func NewBytesSpace(bytes []byte, at hostarch.AccessType) *BytesSpace {
	return &BytesSpace{
		Bytes:  bytes,
		Access: at,
	}
}

// Range returns the mapped range of b.
func (b *BytesSpace) Range() hostarch.AddrRange {
	ar, _ := b.Base().ToRange(uint64(len(b.Bytes)))
	return ar
}

// CheckRegionAccess implements AddressSpace.CheckRegionAccess.
func (b *BytesSpace) CheckRegionAccess(ctx context.Context, ar hostarch.AddrRange, at hostarch.AccessType) error {
	if !ar.WellFormed() {
		return linuxerr.EFAULT
	}
	if !b.Access.SupersetOf(at) {
		return linuxerr.EFAULT
	}
	if !b.Range().IsSupersetOf(ar) {
		return linuxerr.EFAULT
	}
	for _, d := range b.Denied {
		if d.Overlaps(ar) {
			return linuxerr.EFAULT
		}
	}
	return nil
}

// PopulateRegion implements AddressSpace.PopulateRegion.
func (b *BytesSpace) PopulateRegion(ctx context.Context, ar hostarch.AddrRange, at hostarch.AccessType) error {
	if err := b.CheckRegionAccess(ctx, ar, at); err != nil {
		return err
	}
	if b.PopulateErr != nil {
		return b.PopulateErr
	}
	b.Populated = append(b.Populated, ar)
	return nil
}
