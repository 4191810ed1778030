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
	"bytes"
	"testing"

	"uaccess.dev/uaccess/pkg/errors/linuxerr"
	"uaccess.dev/uaccess/pkg/hostarch"
)

// timespec is a stand-in for the fixed-size ABI structs syscalls marshal.
type timespec struct {
	Sec  int64
	Nsec int64
}

func TestPtrRoundTrip(t *testing.T) {
	b := newSpace(t, 1, hostarch.ReadWrite)
	p := PtrAt[timespec](b.Base() + 16)

	want := timespec{Sec: 1, Nsec: 500000000}
	r, err := p.Mut(newContext(t), b)
	if err != nil {
		t.Fatalf("Mut: got %v, wanted nil", err)
	}
	*r = want

	// Reading back through the narrowed read-only pointer sees the value.
	got, err := p.Const().Deref(newContext(t), b)
	if err != nil {
		t.Fatalf("Deref: got %v, wanted nil", err)
	}
	if *got != want {
		t.Errorf("Deref: got %+v, wanted %+v", *got, want)
	}
}

func TestConstructionDoesNotValidate(t *testing.T) {
	// Wild pointers may be constructed, offset, and cast freely; only
	// accesses are checked.
	p := ConstPtrAt[uint64](0xdead0000)
	if p.IsNull() {
		t.Errorf("IsNull: got true, wanted false")
	}
	if got, want := p.Offset(3).Addr(), hostarch.Addr(0xdead0000+24); got != want {
		t.Errorf("Offset(3).Addr(): got %#x, wanted %#x", got, want)
	}
	if got, want := CastConst[byte](p).Offset(3).Addr(), hostarch.Addr(0xdead0003); got != want {
		t.Errorf("CastConst[byte].Offset(3).Addr(): got %#x, wanted %#x", got, want)
	}
	if !ConstPtrAt[uint64](0).IsNull() {
		t.Errorf("IsNull: got false, wanted true")
	}
}

func TestDerefSliceAliasesRequestedBytes(t *testing.T) {
	b := newSpace(t, 1, hostarch.ReadWrite)
	copy(b.Bytes[32:], "ABCDEFGH")

	s, err := ConstPtrAt[byte](b.Base()+33).DerefSlice(newContext(t), b, 4)
	if err != nil {
		t.Fatalf("DerefSlice: got %v, wanted nil", err)
	}
	if want := []byte("BCDE"); !bytes.Equal(s, want) {
		t.Errorf("DerefSlice: got %q, wanted %q", s, want)
	}

	// Writes through a mutable slice land at the same offsets.
	ms, err := PtrAt[byte](b.Base()+33).MutSlice(newContext(t), b, 4)
	if err != nil {
		t.Fatalf("MutSlice: got %v, wanted nil", err)
	}
	copy(ms, "wxyz")
	if got, want := b.Bytes[32:40], []byte("AwxyzFGH"); !bytes.Equal(got, want) {
		t.Errorf("Bytes: got %q, wanted %q", got, want)
	}
}

func TestDerefSliceBadLength(t *testing.T) {
	b := newSpace(t, 1, hostarch.ReadWrite)
	p := ConstPtrAt[uint64](b.Base())
	if _, err := p.DerefSlice(newContext(t), b, -1); err != linuxerr.EINVAL {
		t.Errorf("DerefSlice(-1): got %v, wanted EINVAL", err)
	}
	// Total byte length overflows uintptr.
	if _, err := p.DerefSlice(newContext(t), b, int(^uint(0)>>1)); err != linuxerr.EINVAL {
		t.Errorf("DerefSlice(huge): got %v, wanted EINVAL", err)
	}
}

func TestMutRequiresWritePermission(t *testing.T) {
	b := newSpace(t, 1, hostarch.Read)
	p := PtrAt[uint32](b.Base())
	if _, err := p.Deref(newContext(t), b); err != nil {
		t.Errorf("Deref: got %v, wanted nil", err)
	}
	if _, err := p.Mut(newContext(t), b); err != linuxerr.EFAULT {
		t.Errorf("Mut: got %v, wanted EFAULT", err)
	}
	if _, err := p.MutSlice(newContext(t), b, 4); err != linuxerr.EFAULT {
		t.Errorf("MutSlice: got %v, wanted EFAULT", err)
	}
}

func TestDerefOutOfRange(t *testing.T) {
	b := newSpace(t, 1, hostarch.ReadWrite)
	end := b.Base() + hostarch.PageSize
	if _, err := ConstPtrAt[uint32](end).Deref(newContext(t), b); err != linuxerr.EFAULT {
		t.Errorf("Deref(end): got %v, wanted EFAULT", err)
	}
	// The last element that fits is fine; one past is not.
	if _, err := ConstPtrAt[uint32](end - 4).Deref(newContext(t), b); err != nil {
		t.Errorf("Deref(end-4): got %v, wanted nil", err)
	}
	if _, err := ConstPtrAt[uint32](end-4).DerefSlice(newContext(t), b, 2); err != linuxerr.EFAULT {
		t.Errorf("DerefSlice(end-4, 2): got %v, wanted EFAULT", err)
	}
}

func TestMutNullTerminated(t *testing.T) {
	b := newSpace(t, 1, hostarch.ReadWrite)
	copy(b.Bytes, "scrub\x00")
	var scope AccessScope
	s, err := MutNullTerminated(newContext(t), b, &scope, PtrAt[byte](b.Base()))
	if err != nil {
		t.Fatalf("MutNullTerminated: got %v, wanted nil", err)
	}
	clear(s)
	if got, want := b.Bytes[:6], []byte("\x00\x00\x00\x00\x00\x00"); !bytes.Equal(got, want) {
		t.Errorf("Bytes: got %q, wanted %q", got, want)
	}
}

func TestDerefStr(t *testing.T) {
	b := newSpace(t, 1, hostarch.Read)
	copy(b.Bytes[8:], "console\x00")
	var scope AccessScope
	s, err := DerefStr(newContext(t), b, &scope, ConstPtrAt[byte](b.Base()+8))
	if s != "console" || err != nil {
		t.Errorf("DerefStr: got (%q, %v), wanted (\"console\", nil)", s, err)
	}
	copy(b.Bytes[32:], []byte{0xc0, 0x80, 0})
	if _, err := DerefStr(newContext(t), b, &scope, ConstPtrAt[byte](b.Base()+32)); err != linuxerr.EILSEQ {
		t.Errorf("DerefStr(invalid UTF-8): got %v, wanted EILSEQ", err)
	}
}

func TestDerefNullTerminatedReadOnlySpace(t *testing.T) {
	b := newSpace(t, 1, hostarch.Read)
	copy(b.Bytes, "ro\x00")
	var scope AccessScope
	s, err := DerefNullTerminated(newContext(t), b, &scope, ConstPtrAt[byte](b.Base()))
	if err != nil || len(s) != 2 {
		t.Errorf("DerefNullTerminated: got (%q, %v), wanted (\"ro\", nil)", s, err)
	}
	// The mutable variant needs write permission the space does not grant.
	if _, err := MutNullTerminated(newContext(t), b, &scope, PtrAt[byte](b.Base())); err != linuxerr.EFAULT {
		t.Errorf("MutNullTerminated: got %v, wanted EFAULT", err)
	}
}
