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

// Package errno holds the errno codes used by user-memory access errors.
package errno

// Errno represents a Linux errno value.
type Errno uint32

// Errno values from include/uapi/asm-generic/errno-base.h.
const (
	NOERRNO Errno = iota
	EPERM
	ENOENT
	ESRCH
	EINTR
	EIO
	ENXIO
	E2BIG
	ENOEXEC
	EBADF
	ECHILD // 10
	EAGAIN
	ENOMEM
	EACCES
	EFAULT
	ENOTBLK // 15
	EBUSY
	EEXIST
	EXDEV
	ENODEV
	ENOTDIR // 20
	EISDIR
	EINVAL
	ENFILE
	EMFILE
	ENOTTY // 25
	ETXTBSY
	EFBIG
	ENOSPC
	ESPIPE
	EROFS // 30
	EMLINK
	EPIPE
	EDOM
	ERANGE // 34
)

// Errno values from include/uapi/asm-generic/errno.h. 41 is unassigned.
const (
	EDEADLK Errno = iota + 35
	ENAMETOOLONG
	ENOLCK
	ENOSYS
	ENOTEMPTY
	ELOOP // 40
)

// Errno values from include/uapi/asm-generic/errno.h. 58 is unassigned.
const (
	ENOMSG Errno = iota + 42
	EIDRM
	ECHRNG
	EL2NSYNC // 45
	EL3HLT
	EL3RST
	ELNRNG
	EUNATCH
	ENOCSI // 50
	EL2HLT
	EBADE
	EBADR
	EXFULL
	ENOANO // 55
	EBADRQC
	EBADSLT // 57
)

// Errno values from include/uapi/asm-generic/errno.h.
const (
	EBFONT Errno = iota + 59
	ENOSTR // 60
	ENODATA
	ETIME
	ENOSR
	ENONET
	ENOPKG // 65
	EREMOTE
	ENOLINK
	EADV
	ESRMNT
	ECOMM // 70
	EPROTO
	EMULTIHOP
	EDOTDOT
	EBADMSG
	EOVERFLOW // 75
	ENOTUNIQ
	EBADFD
	EREMCHG
	ELIBACC
	ELIBBAD // 80
	ELIBSCN
	ELIBMAX
	ELIBEXEC
	EILSEQ
	ERESTART // 85
	ESTRPIPE
	EUSERS
	ENOTSOCK
	EDESTADDRREQ
	EMSGSIZE // 90
)

// EWOULDBLOCK is the "blocking" alias of EAGAIN.
const EWOULDBLOCK = EAGAIN
