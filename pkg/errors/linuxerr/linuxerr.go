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

// Package linuxerr contains syscall error codes exported as error interface
// pointers. This allows for fast comparison and return operations comperable
// to unix.Errno constants.
package linuxerr

import (
	"fmt"

	"golang.org/x/sys/unix"
	"uaccess.dev/uaccess/pkg/abi/linux/errno"
	"uaccess.dev/uaccess/pkg/errors"
)

// The following errors are semantically identical to Errno of type unix.Errno
// or syscall.Errno. However, since the types are distinct (these are
// *errors.Error), they are not directly comperable. The Errno method returns
// an Errno number such that the error can be compared to unix/syscall.Errno
// (e.g. unix.Errno(EFAULT.Errno()) == unix.EFAULT is true). Converting
// unix/syscall.Errno to the errors should be done via the lookup methods
// provided.
var (
	noError      *errors.Error = nil
	EPERM                      = errors.New(errno.EPERM, "operation not permitted")
	ESRCH        = errors.New(errno.ESRCH, "no such process")
	EINTR        = errors.New(errno.EINTR, "interrupted system call")
	EIO          = errors.New(errno.EIO, "I/O error")
	E2BIG        = errors.New(errno.E2BIG, "argument list too long")
	EAGAIN       = errors.New(errno.EAGAIN, "try again")
	ENOMEM       = errors.New(errno.ENOMEM, "out of memory")
	EACCES       = errors.New(errno.EACCES, "permission denied")
	EFAULT       = errors.New(errno.EFAULT, "bad address")
	EBUSY        = errors.New(errno.EBUSY, "device or resource busy")
	EINVAL       = errors.New(errno.EINVAL, "invalid argument")
	ERANGE       = errors.New(errno.ERANGE, "math result not representable")
	ENAMETOOLONG = errors.New(errno.ENAMETOOLONG, "file name too long")
	ENOSYS       = errors.New(errno.ENOSYS, "invalid system call number")
	EOVERFLOW    = errors.New(errno.EOVERFLOW, "value too large for defined data type")
	EILSEQ       = errors.New(errno.EILSEQ, "illegal byte sequence")
)

// A nil *errors.Error denotes no error and is placed at the 0 index of
// errorSlice. Thus, any other empty index should not be nil or a valid error.
// This marks that index as an invalid error so any comparison to nil or a
// valid linuxerr fails.
var errNotValidError = errors.New(errno.Errno(0xffff), "not a valid error")

// The following errorSlice holds errors by errno for fast translation between
// errnos (especially uint32(sycall.Errno)) and *errors.Error.
var errorSlice = []*errors.Error{
	// Errno values from include/uapi/asm-generic/errno-base.h.
	errno.NOERRNO: nil,
	errno.EPERM:   EPERM,
	errno.ENOENT:  errNotValidError,
	errno.ESRCH:   ESRCH,
	errno.EINTR:   EINTR,
	errno.EIO:     EIO,
	errno.ENXIO:   errNotValidError,
	errno.E2BIG:   E2BIG,
	errno.ENOEXEC: errNotValidError,
	errno.EBADF:   errNotValidError,
	errno.ECHILD:  errNotValidError,
	errno.EAGAIN:  EAGAIN,
	errno.ENOMEM:  ENOMEM,
	errno.EACCES:  EACCES,
	errno.EFAULT:  EFAULT,
	errno.ENOTBLK: errNotValidError,
	errno.EBUSY:   EBUSY,
	errno.EEXIST:  errNotValidError,
	errno.EXDEV:   errNotValidError,
	errno.ENODEV:  errNotValidError,
	errno.ENOTDIR: errNotValidError,
	errno.EISDIR:  errNotValidError,
	errno.EINVAL:  EINVAL,
	errno.ENFILE:  errNotValidError,
	errno.EMFILE:  errNotValidError,
	errno.ENOTTY:  errNotValidError,
	errno.ETXTBSY: errNotValidError,
	errno.EFBIG:   errNotValidError,
	errno.ENOSPC:  errNotValidError,
	errno.ESPIPE:  errNotValidError,
	errno.EROFS:   errNotValidError,
	errno.EMLINK:  errNotValidError,
	errno.EPIPE:   errNotValidError,
	errno.EDOM:    errNotValidError,
	errno.ERANGE:  ERANGE,

	// Errno values from include/uapi/asm-generic/errno.h.
	errno.EDEADLK:      errNotValidError,
	errno.ENAMETOOLONG: ENAMETOOLONG,
	errno.ENOLCK:       errNotValidError,
	errno.ENOSYS:       ENOSYS,
	errno.ENOTEMPTY:    errNotValidError,
	errno.ELOOP:        errNotValidError,
	errno.ENOMSG:       errNotValidError,
	errno.EIDRM:        errNotValidError,
	errno.EOVERFLOW:    EOVERFLOW,
	errno.EILSEQ:       EILSEQ,
	errno.EMSGSIZE:     errNotValidError,
}

func init() {
	// Sparse entries above default to nil, which must remain reserved for
	// NOERRNO alone.
	for i := 1; i < len(errorSlice); i++ {
		if errorSlice[i] == nil {
			errorSlice[i] = errNotValidError
		}
	}
}

// ErrorFromUnix returns a linuxerr from a unix.Errno.
func ErrorFromUnix(err unix.Errno) error {
	if err == unix.Errno(0) {
		return nil
	}
	if int(err) >= len(errorSlice) {
		panic(fmt.Sprintf("invalid error requested with errno: %d", err))
	}
	e := errorSlice[errno.Errno(err)]
	// Done this way because a single comparison in benchmarks is 2-3 faster
	// than something like ( if err == nil && err > 0 ).
	if e == errNotValidError {
		panic(fmt.Sprintf("invalid error requested with errno: %v", e))
	}
	return e
}

// ToError converts a linuxerr to an error type.
func ToError(err *errors.Error) error {
	if err == noError {
		return nil
	}
	return err
}

// ToUnix converts a linuxerr to a unix.Errno.
func ToUnix(e *errors.Error) unix.Errno {
	var unixErr unix.Errno
	if e != noError {
		unixErr = unix.Errno(e.Errno())
	}
	return unixErr
}

// Equals compars a linuxerr to a given error.
func Equals(e *errors.Error, err error) bool {
	if err == nil {
		return e == noError || e == nil
	}
	if e == noError || e == nil {
		return false
	}
	return e == err || ToUnix(e) == err
}
