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
	"unicode/utf8"

	"uaccess.dev/uaccess/pkg/context"
	"uaccess.dev/uaccess/pkg/errors/linuxerr"
	"uaccess.dev/uaccess/pkg/gohacks"
	"uaccess.dev/uaccess/pkg/hostarch"
)

// ConstPtr is a user address tagged with an element type T, carrying
// read-only capability. Constructing a ConstPtr performs no access or
// validation; it is purely a typed address holder. Accessors request read
// permission only.
type ConstPtr[T any] struct {
	addr hostarch.Addr
}

// Ptr is a user address tagged with an element type T, carrying read-write
// capability. Like ConstPtr, constructing one performs no access. Mutating
// accessors request read+write permission; a Ptr can always be narrowed to a
// ConstPtr via Const, never the reverse.
type Ptr[T any] struct {
	addr hostarch.Addr
}

// ConstPtrAt returns a ConstPtr addressing the T at addr.
func ConstPtrAt[T any](addr hostarch.Addr) ConstPtr[T] {
	return ConstPtr[T]{addr: addr}
}

// PtrAt returns a Ptr addressing the T at addr.
func PtrAt[T any](addr hostarch.Addr) Ptr[T] {
	return Ptr[T]{addr: addr}
}

// Addr returns the user address p addresses.
func (p ConstPtr[T]) Addr() hostarch.Addr { return p.addr }

// Addr returns the user address p addresses.
func (p Ptr[T]) Addr() hostarch.Addr { return p.addr }

// IsNull returns true if p is the zero address. Higher-level code uses this
// to detect optional/absent pointers before attempting any access; see
// Nullable.
func (p ConstPtr[T]) IsNull() bool { return p.addr == 0 }

// IsNull returns true if p is the zero address.
func (p Ptr[T]) IsNull() bool { return p.addr == 0 }

// Offset returns a ConstPtr advanced by n elements of T. No validation is
// performed; overflow of the address space is detected by the region check
// on the next access, not here.
func (p ConstPtr[T]) Offset(n int) ConstPtr[T] {
	size, _ := sizeAndAlignOf[T]()
	return ConstPtr[T]{addr: p.addr + hostarch.Addr(n)*hostarch.Addr(size)}
}

// Offset returns a Ptr advanced by n elements of T, with the same deferral
// of overflow detection as ConstPtr.Offset.
func (p Ptr[T]) Offset(n int) Ptr[T] {
	size, _ := sizeAndAlignOf[T]()
	return Ptr[T]{addr: p.addr + hostarch.Addr(n)*hostarch.Addr(size)}
}

// Const narrows p to its read-only counterpart. Narrowing requires no
// revalidation; broadening is impossible without constructing a new Ptr.
func (p Ptr[T]) Const() ConstPtr[T] {
	return ConstPtr[T]{addr: p.addr}
}

// CastConst reinterprets p as addressing elements of type U. No validation is
// performed; alignment and bounds for U are checked on the next access.
func CastConst[U, T any](p ConstPtr[T]) ConstPtr[U] {
	return ConstPtr[U]{addr: p.addr}
}

// Cast reinterprets p as addressing elements of type U, preserving the
// read-write capability.
func Cast[U, T any](p Ptr[T]) Ptr[U] {
	return Ptr[U]{addr: p.addr}
}

// Deref validates the T at p for reading and returns a reference aliasing
// user memory. The reference is trustworthy only immediately after the call;
// it must not be retained, and must not be written through.
func (p ConstPtr[T]) Deref(ctx context.Context, as AddressSpace) (*T, error) {
	size, align := sizeAndAlignOf[T]()
	if err := CheckRegion(ctx, as, p.addr, size, align, hostarch.Read); err != nil {
		return nil, err
	}
	return deref[T](p.addr), nil
}

// DerefSlice validates n elements of T at p for reading and returns a slice
// aliasing user memory, with the same retention caveats as Deref.
func (p ConstPtr[T]) DerefSlice(ctx context.Context, as AddressSpace, n int) ([]T, error) {
	size, align := sizeAndAlignOf[T]()
	total, ok := arrayLayout(size, n)
	if !ok {
		return nil, linuxerr.EINVAL
	}
	if err := CheckRegion(ctx, as, p.addr, total, align, hostarch.Read); err != nil {
		return nil, err
	}
	return derefSlice[T](p.addr, n), nil
}

// Deref validates the T at p for reading, as ConstPtr.Deref. The returned
// reference must not be written through; use Mut for that.
func (p Ptr[T]) Deref(ctx context.Context, as AddressSpace) (*T, error) {
	return p.Const().Deref(ctx, as)
}

// DerefSlice validates n elements at p for reading, as ConstPtr.DerefSlice.
func (p Ptr[T]) DerefSlice(ctx context.Context, as AddressSpace, n int) ([]T, error) {
	return p.Const().DerefSlice(ctx, as, n)
}

// Mut validates the T at p for reading and writing and returns a mutable
// reference aliasing user memory. The reference is trustworthy only
// immediately after the call and must not be retained.
func (p Ptr[T]) Mut(ctx context.Context, as AddressSpace) (*T, error) {
	size, align := sizeAndAlignOf[T]()
	if err := CheckRegion(ctx, as, p.addr, size, align, hostarch.ReadWrite); err != nil {
		return nil, err
	}
	return deref[T](p.addr), nil
}

// MutSlice validates n elements of T at p for reading and writing and
// returns a mutable slice aliasing user memory.
func (p Ptr[T]) MutSlice(ctx context.Context, as AddressSpace, n int) ([]T, error) {
	size, align := sizeAndAlignOf[T]()
	total, ok := arrayLayout(size, n)
	if !ok {
		return nil, linuxerr.EINVAL
	}
	if err := CheckRegion(ctx, as, p.addr, total, align, hostarch.ReadWrite); err != nil {
		return nil, err
	}
	return derefSlice[T](p.addr, n), nil
}

// DerefNullTerminated returns a read-only slice of the elements at p up to,
// but not including, the first zero element, discovering the length with the
// page-by-page scan.
//
// This is a free function rather than a method because it needs T to be
// comparable, which the pointer types themselves do not require.
func DerefNullTerminated[T comparable](ctx context.Context, as AddressSpace, scope *AccessScope, p ConstPtr[T]) ([]T, error) {
	n, err := CheckNullTerminated[T](ctx, as, scope, p.addr, hostarch.Read)
	if err != nil {
		return nil, err
	}
	return derefSlice[T](p.addr, n), nil
}

// DerefStr returns the NUL-terminated bytes at p as a string, not including
// the NUL. It fails with linuxerr.EILSEQ if the bytes are not valid UTF-8.
// The string aliases user memory and must be copied (e.g. with strings.Clone)
// if retained.
func DerefStr(ctx context.Context, as AddressSpace, scope *AccessScope, p ConstPtr[byte]) (string, error) {
	s, err := DerefNullTerminated(ctx, as, scope, p)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(s) {
		return "", linuxerr.EILSEQ
	}
	return gohacks.StringFromImmutableBytes(s), nil
}

// MutNullTerminated is DerefNullTerminated with read-write permission,
// returning a mutable slice.
func MutNullTerminated[T comparable](ctx context.Context, as AddressSpace, scope *AccessScope, p Ptr[T]) ([]T, error) {
	n, err := CheckNullTerminated[T](ctx, as, scope, p.addr, hostarch.ReadWrite)
	if err != nil {
		return nil, err
	}
	return derefSlice[T](p.addr, n), nil
}

// arrayLayout returns the total byte length of n elements of size bytes each.
// ok is false if n is negative or the multiplication overflows.
func arrayLayout(size uintptr, n int) (uintptr, bool) {
	if n < 0 {
		return 0, false
	}
	total := size * uintptr(n)
	if size != 0 && total/size != uintptr(n) {
		return 0, false
	}
	return total, true
}
