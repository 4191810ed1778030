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

// Base returns the address of the first byte of b.Bytes. The conversion is
// only sound because b keeps Bytes reachable for its own lifetime; callers
// must not outlive b with addresses derived from it.
func (b *BytesSpace) Base() hostarch.Addr {
	if len(b.Bytes) == 0 {
		return 0
	}
	return hostarch.Addr(uintptr(unsafe.Pointer(unsafe.SliceData(b.Bytes))))
}
