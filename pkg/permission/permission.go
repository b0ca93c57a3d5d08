// Package permission implements the open-time POSIX permission resolver:
// it checks a requested open mode against an FCB's owner/group/other bits
// and encodes the grant into a Handle that later read/write/readdir calls
// consult instead of re-deriving permissions from the FCB each time.
package permission

import (
	"syscall"

	"github.com/nodalfs/nodalfs/pkg/fserr"
	"github.com/nodalfs/nodalfs/pkg/objectstore"
)

// Handle is the result of a successful open-time permission resolution.
// It is the sole source of truth consulted by read, write, and readdir:
// they check Handle, never the FCB's mode bits directly.
type Handle struct {
	// AccessMode holds O_ACCMODE & flags (0=O_RDONLY, 1=O_WRONLY, 2=O_RDWR),
	// with O_CREAT OR'd in when a create grant was given.
	AccessMode int
	// Nonseekable is set when the handle was opened O_APPEND; writes must
	// reject any offset less than the file's current size.
	Nonseekable bool
	// OpenCalled marks that this handle actually went through Resolve;
	// read/write/readdir use it to reject calls on a handle that bypassed
	// open entirely.
	OpenCalled bool
}

// CanRead reports whether h grants read access: the low bit of AccessMode
// is clear (O_RDONLY or O_RDWR).
func (h *Handle) CanRead() bool {
	return h.AccessMode%2 == 0
}

// CanWrite reports whether h grants write access: O_WRONLY or O_RDWR was
// requested, i.e. AccessMode modulo 4 is nonzero and not the unreachable
// sentinel value 3.
func (h *Handle) CanWrite() bool {
	permission := h.AccessMode % 4
	return permission != 0 && permission != 3
}

// HasCreateGrant reports whether h carries a create grant from O_CREAT.
func (h *Handle) HasCreateGrant() bool {
	return h.AccessMode&syscall.O_CREAT != 0
}

// Resolve checks flags against fcb's owner/group/other permission bits
// for the requesting uid/gid and, on success, returns the resulting
// Handle. Type bits present in flags (S_IFDIR/S_IFREG/S_IFLNK) are checked
// against fcb's own type before the permission check proceeds.
func Resolve(fcb *objectstore.FCB, flags int, uid, gid uint32) (*Handle, error) {
	working := flags

	// S_IFLNK shares the S_IFREG bit, so it is tested first.
	switch {
	case working&syscall.S_IFLNK == syscall.S_IFLNK:
		if !fcb.IsSymlink() {
			return nil, fserr.New(fserr.NotLink, "not a symbolic link", fcb.Path)
		}
		working ^= syscall.S_IFLNK
	case working&syscall.S_IFDIR == syscall.S_IFDIR:
		if !fcb.IsDir() {
			return nil, fserr.NotDirf(fcb.Path)
		}
		working ^= syscall.S_IFDIR
	case working&syscall.S_IFREG == syscall.S_IFREG:
		if !fcb.IsRegular() {
			return nil, fserr.IsDirf(fcb.Path)
		}
		working ^= syscall.S_IFREG
	}

	var canRead, canWrite bool
	switch {
	case uid == fcb.UID:
		canRead = fcb.Mode&syscall.S_IRUSR != 0
		canWrite = fcb.Mode&syscall.S_IWUSR != 0
	case gid == fcb.GID:
		canRead = fcb.Mode&syscall.S_IRGRP != 0
		canWrite = fcb.Mode&syscall.S_IWGRP != 0
	default:
		canRead = fcb.Mode&syscall.S_IROTH != 0
		canWrite = fcb.Mode&syscall.S_IWOTH != 0
	}

	h := &Handle{AccessMode: syscall.O_ACCMODE & working}

	if h.AccessMode%2 == 0 && !canRead {
		return nil, fserr.AccessDeniedf(fcb.Path, "no read permission")
	}
	if h.AccessMode > 0 && !canWrite {
		return nil, fserr.AccessDeniedf(fcb.Path, "no write permission")
	}

	if working&syscall.O_APPEND != 0 {
		if !canWrite {
			return nil, fserr.AccessDeniedf(fcb.Path, "no append permission")
		}
		h.Nonseekable = true
	}

	if working&syscall.O_CREAT != 0 {
		if !canWrite {
			return nil, fserr.AccessDeniedf(fcb.Path, "no create permission")
		}
		h.AccessMode |= syscall.O_CREAT
	}

	h.OpenCalled = true
	return h, nil
}
