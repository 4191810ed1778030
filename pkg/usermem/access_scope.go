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
	"uaccess.dev/uaccess/pkg/cleanup"
)

// AccessScope records whether the execution context that owns it is currently
// inside a user-memory access. The host kernel allocates one AccessScope per
// execution context (CPU core or hardware thread), embeds it in its per-task
// or per-CPU state, and has its page-fault handler consult InUserAccess: a
// fault taken while InUserAccess returns true is resolved and resumed, any
// other in-kernel fault is fatal.
//
// An AccessScope must never be shared between execution contexts, and must
// never remain set across a point that hands control back to ordinary kernel
// code. Flag transitions and the handler's reads are atomic, which on the
// same context gives the required visibility.
type AccessScope struct {
	inUserAccess atomicbitops.Bool
}

// InUserAccess returns true if the owning execution context is presently
// inside a user-memory access. It is the query the page-fault handler uses to
// classify a fault as resumable.
func (s *AccessScope) InUserAccess() bool {
	return s.inUserAccess.Load()
}

// beginUserAccess marks the start of a user-memory access window. The
// returned Cleanup clears the flag and must be run on every exit path,
// including error returns.
//
// Windows do not nest; callers hold at most one open window per scope.
func (s *AccessScope) beginUserAccess() cleanup.Cleanup {
	s.inUserAccess.Store(true)
	return cleanup.Make(func() {
		s.inUserAccess.Store(false)
	})
}

// Do invokes f inside a user-memory access window. It exists for host code
// that performs its own potentially-faulting user accesses outside this
// package.
func (s *AccessScope) Do(f func() error) error {
	cu := s.beginUserAccess()
	defer cu.Clean()
	return f()
}
