// Copyright 2021 The gVisor Authors.
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

// Package hostarch contains host arch address operations for user memory.
package hostarch

import (
	"encoding/binary"

	"golang.org/x/sys/unix"
)

// ByteOrder is the native byte order (little endian on all supported
// architectures).
var ByteOrder = binary.LittleEndian

const (
	// PageShift is the binary log of the system page size.
	PageShift = 12

	// PageSize is the system page size.
	PageSize = 1 << PageShift

	// PageMask is the mask of the page offset bits of a virtual address.
	PageMask = PageSize - 1
)

func init() {
	// Make sure the page size matches the host. The page-crossing logic in
	// pkg/usermem depends on it.
	if size := unix.Getpagesize(); size != PageSize {
		panic("Only 4K page size is supported!")
	}
}
