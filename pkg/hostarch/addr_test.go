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

package hostarch

import (
	"testing"
)

func TestAddLength(t *testing.T) {
	for _, test := range []struct {
		addr    Addr
		length  uint64
		wantEnd Addr
		wantOk  bool
	}{
		{addr: 0x1000, length: 0x1000, wantEnd: 0x2000, wantOk: true},
		{addr: 0x1000, length: 0, wantEnd: 0x1000, wantOk: true},
		{addr: ^Addr(0), length: 1, wantOk: false},
		{addr: ^Addr(0) - 4, length: 4, wantEnd: ^Addr(0), wantOk: true},
	} {
		end, ok := test.addr.AddLength(test.length)
		if ok != test.wantOk || (ok && end != test.wantEnd) {
			t.Errorf("%#x.AddLength(%#x): got (%#x, %v), wanted (%#x, %v)", test.addr, test.length, end, ok, test.wantEnd, test.wantOk)
		}
	}
}

func TestRounding(t *testing.T) {
	a := Addr(PageSize + 123)
	if got, want := a.RoundDown(), Addr(PageSize); got != want {
		t.Errorf("RoundDown: got %#x, wanted %#x", got, want)
	}
	if got, ok := a.RoundUp(); !ok || got != Addr(2*PageSize) {
		t.Errorf("RoundUp: got (%#x, %v), wanted (%#x, true)", got, ok, 2*PageSize)
	}
	if _, ok := (^Addr(0) - 1).RoundUp(); ok {
		t.Errorf("RoundUp near top of address space: got ok, wanted wrap")
	}
	if !Addr(2*PageSize).IsPageAligned() || a.IsPageAligned() {
		t.Errorf("IsPageAligned misbehaves around %#x", a)
	}
}

func TestMustRoundUp(t *testing.T) {
	if got, want := Addr(PageSize+1).MustRoundUp(), Addr(2*PageSize); got != want {
		t.Errorf("MustRoundUp: got %#x, wanted %#x", got, want)
	}
	defer func() {
		if recover() == nil {
			t.Errorf("MustRoundUp near top of address space: got no panic, wanted one")
		}
	}()
	(^Addr(0) - 1).MustRoundUp()
}

func TestIsAligned(t *testing.T) {
	if !Addr(0x1008).IsAligned(8) {
		t.Errorf("0x1008.IsAligned(8): got false, wanted true")
	}
	if Addr(0x1004).IsAligned(8) {
		t.Errorf("0x1004.IsAligned(8): got true, wanted false")
	}
}

func TestAccessType(t *testing.T) {
	if got, want := ReadWrite.String(), "rw-"; got != want {
		t.Errorf("String: got %q, wanted %q", got, want)
	}
	if !ReadWrite.SupersetOf(Read) {
		t.Errorf("ReadWrite.SupersetOf(Read): got false, wanted true")
	}
	if Read.SupersetOf(ReadWrite) {
		t.Errorf("Read.SupersetOf(ReadWrite): got true, wanted false")
	}
	if got, want := Write.Effective(), ReadWrite; got != want {
		t.Errorf("Write.Effective(): got %v, wanted %v", got, want)
	}
	if NoAccess.Any() {
		t.Errorf("NoAccess.Any(): got true, wanted false")
	}
}

func TestAddrRange(t *testing.T) {
	r := AddrRange{Start: 0x1000, End: 0x3000}
	if got, want := r.Length(), uint64(0x2000); got != want {
		t.Errorf("Length: got %#x, wanted %#x", got, want)
	}
	if !r.Contains(0x1000) || r.Contains(0x3000) {
		t.Errorf("Contains misbehaves at the boundaries of %v", r)
	}
	if !r.IsSupersetOf(AddrRange{Start: 0x1000, End: 0x2000}) {
		t.Errorf("IsSupersetOf: got false, wanted true")
	}
	if r.Overlaps(AddrRange{Start: 0x3000, End: 0x4000}) {
		t.Errorf("Overlaps: adjacent ranges should not overlap")
	}
	if got, want := r.Intersect(AddrRange{Start: 0x2000, End: 0x4000}), (AddrRange{Start: 0x2000, End: 0x3000}); got != want {
		t.Errorf("Intersect: got %v, wanted %v", got, want)
	}
}
