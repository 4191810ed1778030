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
	"uaccess.dev/uaccess/pkg/atomicbitops"
	"uaccess.dev/uaccess/pkg/context"
)

// Atomic operations on user memory. Futex-style synchronization between the
// kernel and an application needs these to be single hardware operations, so
// they go through the validated dereference rather than a copy.

// SwapUint32 atomically sets the uint32 at ptr to new and returns the
// previous value. ptr must be aligned to a 4-byte boundary.
func (us *UserSpace) SwapUint32(ctx context.Context, ptr Ptr[uint32], new uint32) (uint32, error) {
	r, err := ptr.Mut(ctx, us.as)
	if err != nil {
		return 0, err
	}
	return atomicbitops.SwapUint32(r, new), nil
}

// CompareAndSwapUint32 atomically compares the uint32 at ptr to old; if they
// are equal, the value in user memory is replaced by new. In either case, the
// previous value in user memory is returned. ptr must be aligned to a 4-byte
// boundary.
func (us *UserSpace) CompareAndSwapUint32(ctx context.Context, ptr Ptr[uint32], old, new uint32) (uint32, error) {
	r, err := ptr.Mut(ctx, us.as)
	if err != nil {
		return 0, err
	}
	return atomicbitops.CompareAndSwapUint32(r, old, new), nil
}
