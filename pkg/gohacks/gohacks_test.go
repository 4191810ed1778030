// Copyright 2020 The gVisor Authors.
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

package gohacks

import (
	"bytes"
	"testing"
	"unsafe"
)

func TestImmutableBytesFromString(t *testing.T) {
	s := "shared storage"
	b := ImmutableBytesFromString(s)
	if !bytes.Equal(b, []byte(s)) {
		t.Errorf("ImmutableBytesFromString: got %q, wanted %q", b, s)
	}
	if unsafe.Pointer(unsafe.SliceData(b)) != unsafe.Pointer(unsafe.StringData(s)) {
		t.Errorf("ImmutableBytesFromString: view does not share storage with the string")
	}
}

func TestStringFromImmutableBytes(t *testing.T) {
	b := []byte("shared storage")
	s := StringFromImmutableBytes(b)
	if s != string(b) {
		t.Errorf("StringFromImmutableBytes: got %q, wanted %q", s, b)
	}
	if unsafe.Pointer(unsafe.StringData(s)) != unsafe.Pointer(unsafe.SliceData(b)) {
		t.Errorf("StringFromImmutableBytes: view does not share storage with the slice")
	}
	if got := StringFromImmutableBytes(nil); got != "" {
		t.Errorf("StringFromImmutableBytes(nil): got %q, wanted \"\"", got)
	}
}
