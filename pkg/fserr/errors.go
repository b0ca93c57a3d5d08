// Package fserr defines the error taxonomy shared by every layer of the
// core: the KV adapter, the object store, the namespace engine, and the
// VFS operation surface. Internal helpers return *Error; only the VFS
// operation surface converts it to a negated errno for the gateway.
package fserr

import "syscall"

// Code categorizes a core error. Each Code maps to exactly one POSIX errno.
type Code int

const (
	// NotFound indicates a path, FCB, or data object does not exist.
	NotFound Code = iota
	// NotDir indicates a path component expected to be a directory was not.
	NotDir
	// IsDir indicates an open-flag or operation expected a non-directory.
	IsDir
	// NotLink indicates an open-flag expected a symlink but found something else.
	NotLink
	// AccessDenied indicates a permission or open-handle check failed.
	AccessDenied
	// TooBig indicates a write or truncate would exceed MAX_FILE_SIZE.
	TooBig
	// NameTooLong indicates a path reached or exceeded MAX_PATH.
	NameTooLong
	// NotEmpty indicates rmdir was attempted on a non-empty directory.
	NotEmpty
	// NoMem indicates the KV store reported an allocation failure.
	NoMem
	// IOError is the catch-all for KV failures, short reads, and buffer faults.
	IOError
	// Exist indicates a create-style operation found the name already taken.
	Exist
	// Invalid indicates a malformed argument (bad mode, empty name, etc).
	Invalid
)

var errnoByCode = map[Code]syscall.Errno{
	NotFound:     syscall.ENOENT,
	NotDir:       syscall.ENOTDIR,
	IsDir:        syscall.EISDIR,
	NotLink:      syscall.ENOLINK,
	AccessDenied: syscall.EACCES,
	TooBig:       syscall.EFBIG,
	NameTooLong:  syscall.ENAMETOOLONG,
	NotEmpty:     syscall.ENOTEMPTY,
	NoMem:        syscall.ENOMEM,
	IOError:      syscall.EIO,
	Exist:        syscall.EEXIST,
	Invalid:      syscall.EINVAL,
}

// Error is a domain error produced anywhere in the core. It carries enough
// context (the offending path) for logging without forcing every caller to
// thread a path string through error wrapping by hand.
type Error struct {
	Code    Code
	Message string
	Path    string
}

func (e *Error) Error() string {
	if e.Path != "" {
		return e.Message + ": " + e.Path
	}
	return e.Message
}

// Errno returns the POSIX errno this error maps to.
func (e *Error) Errno() syscall.Errno {
	if errno, ok := errnoByCode[e.Code]; ok {
		return errno
	}
	return syscall.EIO
}

// Negated returns the negated errno value the VFS gateway boundary expects
// (0 is reserved for success and is never returned by this function).
func (e *Error) Negated() int {
	return -int(e.Errno())
}

// New constructs an *Error with the given code, message, and offending path.
func New(code Code, message, path string) *Error {
	return &Error{Code: code, Message: message, Path: path}
}

// NotFoundf builds a NotFound error for path.
func NotFoundf(path string) *Error {
	return New(NotFound, "no such file or directory", path)
}

// NotDirf builds a NotDir error for path.
func NotDirf(path string) *Error {
	return New(NotDir, "not a directory", path)
}

// IsDirf builds an IsDir error for path.
func IsDirf(path string) *Error {
	return New(IsDir, "is a directory", path)
}

// AccessDeniedf builds an AccessDenied error for path.
func AccessDeniedf(path, reason string) *Error {
	return New(AccessDenied, reason, path)
}

// Is reports whether err is a *Error with the given code.
func Is(err error, code Code) bool {
	fe, ok := err.(*Error)
	return ok && fe.Code == code
}

// ToNegatedErrno converts any error into the negated-errno form the VFS
// operation surface returns to its caller. Non-*Error values (which should
// never occur on a correctly wired core) are reported as -EIO.
func ToNegatedErrno(err error) int {
	if err == nil {
		return 0
	}
	if fe, ok := err.(*Error); ok {
		return fe.Negated()
	}
	return -int(syscall.EIO)
}
