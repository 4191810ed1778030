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
	"strings"
	"unicode/utf8"

	"uaccess.dev/uaccess/pkg/context"
	"uaccess.dev/uaccess/pkg/errors/linuxerr"
	"uaccess.dev/uaccess/pkg/gohacks"
	"uaccess.dev/uaccess/pkg/hostarch"
)

// UserSpace composes typed pointer access into whole-value and slice
// operations against one AddressSpace, on behalf of one execution context.
// Syscall implementations hold a UserSpace for the calling task and marshal
// their user arguments through it.
//
// A UserSpace is as context-local as its AccessScope: it must not be shared
// between execution contexts.
type UserSpace struct {
	as    AddressSpace
	scope *AccessScope
}

// New returns a UserSpace accessing as under scope.
func New(as AddressSpace, scope *AccessScope) *UserSpace {
	return &UserSpace{
		as:    as,
		scope: scope,
	}
}

// AddressSpace returns the address space us validates against.
func (us *UserSpace) AddressSpace() AddressSpace {
	return us.as
}

// Scope returns the AccessScope us runs under.
func (us *UserSpace) Scope() *AccessScope {
	return us.scope
}

// Read copies the T at ptr out of user memory by value.
func Read[T any](ctx context.Context, us *UserSpace, ptr ConstPtr[T]) (T, error) {
	r, err := ptr.Deref(ctx, us.as)
	if err != nil {
		var zero T
		return zero, err
	}
	return *r, nil
}

// Write copies val into the T at ptr in user memory.
func Write[T any](ctx context.Context, us *UserSpace, ptr Ptr[T], val T) error {
	r, err := ptr.Mut(ctx, us.as)
	if err != nil {
		return err
	}
	*r = val
	return nil
}

// ReadSlice validates n elements of T at ptr and returns a read-only view
// aliasing user memory. The view is only as trustworthy as the check that
// produced it; callers that need the data beyond the current operation must
// copy it (see ReadSliceTo).
func ReadSlice[T any](ctx context.Context, us *UserSpace, ptr ConstPtr[T], n int) ([]T, error) {
	return ptr.DerefSlice(ctx, us.as, n)
}

// ReadSliceTo copies len(dst) elements of T at ptr into dst. The length of
// dst determines how much user memory is validated.
func ReadSliceTo[T any](ctx context.Context, us *UserSpace, ptr ConstPtr[T], dst []T) error {
	src, err := ptr.DerefSlice(ctx, us.as, len(dst))
	if err != nil {
		return err
	}
	copy(dst, src)
	return nil
}

// WriteSlice copies src into user memory at ptr, validating exactly len(src)
// elements for writing.
func WriteSlice[T any](ctx context.Context, us *UserSpace, ptr Ptr[T], src []T) error {
	dst, err := ptr.MutSlice(ctx, us.as, len(src))
	if err != nil {
		return err
	}
	copy(dst, src)
	return nil
}

// ZeroOut writes toZero zero bytes to user memory starting at ptr.
func (us *UserSpace) ZeroOut(ctx context.Context, ptr Ptr[byte], toZero int) error {
	dst, err := ptr.MutSlice(ctx, us.as, toZero)
	if err != nil {
		return err
	}
	clear(dst)
	return nil
}

// ReadStr returns the NUL-terminated string at ptr (not including the NUL).
// The returned string aliases user memory and must be copied (e.g. with
// strings.Clone) if retained. It fails with linuxerr.EILSEQ if the bytes are
// not valid UTF-8.
func (us *UserSpace) ReadStr(ctx context.Context, ptr ConstPtr[byte]) (string, error) {
	return DerefStr(ctx, us.as, us.scope, ptr)
}

// ReadStrMax is ReadStr with a length cap: if the string, including the
// terminating NUL, would exceed maxlen bytes, ReadStrMax returns the string
// truncated to maxlen and linuxerr.ENAMETOOLONG.
func (us *UserSpace) ReadStrMax(ctx context.Context, ptr ConstPtr[byte], maxlen int) (string, error) {
	n, err := checkNullTerminated[byte](ctx, us.as, us.scope, ptr.Addr(), hostarch.Read, maxlen)
	if err != nil && err != linuxerr.ENAMETOOLONG {
		return "", err
	}
	s := derefSlice[byte](ptr.Addr(), n)
	if !utf8.Valid(s) {
		return "", linuxerr.EILSEQ
	}
	return gohacks.StringFromImmutableBytes(s), err
}

// ReadStrArray walks the NUL-terminated array of string pointers at ptr (an
// argv-style vector), returning the pointed-to strings in order as owned
// strings. The walk ends only at a null pointer slot; an invalid non-null
// pointer propagates its error immediately, abandoning the partial result.
func (us *UserSpace) ReadStrArray(ctx context.Context, ptr ConstPtr[ConstPtr[byte]]) ([]string, error) {
	var strs []string
	for i := 0; ; i++ {
		strPtr, err := Read(ctx, us, ptr.Offset(i))
		if err != nil {
			return nil, err
		}
		if strPtr.IsNull() {
			return strs, nil
		}
		s, err := us.ReadStr(ctx, strPtr)
		if err != nil {
			return nil, err
		}
		strs = append(strs, strings.Clone(s))
	}
}

// Nullable treats a null ptr as an absent value: it returns the zero R and
// ok == false without touching the address space. A non-null ptr is passed
// to f, whose result is returned with ok == true.
func Nullable[P interface{ IsNull() bool }, R any](ptr P, f func(P) (R, error)) (val R, ok bool, err error) {
	if ptr.IsNull() {
		return val, false, nil
	}
	val, err = f(ptr)
	if err != nil {
		var zero R
		return zero, false, err
	}
	return val, true, nil
}
