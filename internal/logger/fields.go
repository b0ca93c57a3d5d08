package logger

import (
	"fmt"
	"log/slog"
)

// Standard field keys for structured logging of core filesystem operations.
// Use these keys consistently across log statements so records stay queryable
// across getattr, read/write, and namespace operations alike.
const (
	// ========================================================================
	// Operation identity
	// ========================================================================
	KeyOperation = "operation" // Operation name: getattr, write, mkdir, etc.
	KeyStatus    = "status"    // Operation outcome (ok, error)

	// ========================================================================
	// Filesystem paths
	// ========================================================================
	KeyPath       = "path"        // Full file/directory path
	KeyParentPath = "parent_path" // Parent directory path
	KeyOldPath    = "old_path"    // Source path for rename/link operations
	KeyNewPath    = "new_path"    // Destination path for rename/link operations
	KeyType       = "type"        // File type: regular, directory, symlink
	KeySize       = "size"        // Logical size in bytes (or entry count for dirs)
	KeyMode       = "mode"        // POSIX mode bits

	// ========================================================================
	// I/O
	// ========================================================================
	KeyOffset       = "offset"        // File offset for read/write
	KeyCount        = "count"         // Byte count requested
	KeyBytesRead    = "bytes_read"    // Actual bytes read
	KeyBytesWritten = "bytes_written" // Actual bytes written

	// ========================================================================
	// Identity
	// ========================================================================
	KeyUID = "uid" // Effective user ID of the requester
	KeyGID = "gid" // Effective group ID of the requester

	// ========================================================================
	// Errors
	// ========================================================================
	KeyError     = "error"      // Error message
	KeyErrorCode = "error_code" // Numeric errno

	// ========================================================================
	// Object identity
	// ========================================================================
	KeyFileDataID = "file_data_id" // FCB primary key
	KeyDataID     = "data_id"      // Data blob / directory-entry list key
	KeyLinkCount  = "link_count"   // Hard link count (nlinks)
	KeyLinkTarget = "link_target"  // Symbolic link target path
	KeyEntries    = "entries"      // Number of directory entries

	// ========================================================================
	// Timing
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
)

// Operation returns a slog.Attr naming the VFS operation being logged.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Path returns a slog.Attr for a full path.
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// ParentPath returns a slog.Attr for a parent directory path.
func ParentPath(p string) slog.Attr {
	return slog.String(KeyParentPath, p)
}

// OldPath returns a slog.Attr for a rename/link source path.
func OldPath(p string) slog.Attr {
	return slog.String(KeyOldPath, p)
}

// NewPath returns a slog.Attr for a rename/link destination path.
func NewPath(p string) slog.Attr {
	return slog.String(KeyNewPath, p)
}

// Size returns a slog.Attr for a logical size.
func Size(s uint64) slog.Attr {
	return slog.Uint64(KeySize, s)
}

// Mode returns a slog.Attr for a POSIX mode, formatted in octal.
func Mode(m uint32) slog.Attr {
	return slog.String(KeyMode, fmt.Sprintf("0%o", m))
}

// Offset returns a slog.Attr for a read/write offset.
func Offset(off uint64) slog.Attr {
	return slog.Uint64(KeyOffset, off)
}

// Count returns a slog.Attr for a requested byte count.
func Count(c int) slog.Attr {
	return slog.Int(KeyCount, c)
}

// BytesRead returns a slog.Attr for the number of bytes actually read.
func BytesRead(n int) slog.Attr {
	return slog.Int(KeyBytesRead, n)
}

// BytesWritten returns a slog.Attr for the number of bytes actually written.
func BytesWritten(n int) slog.Attr {
	return slog.Int(KeyBytesWritten, n)
}

// UID returns a slog.Attr for an effective user ID.
func UID(uid uint32) slog.Attr {
	return slog.Uint64(KeyUID, uint64(uid))
}

// GID returns a slog.Attr for an effective group ID.
func GID(gid uint32) slog.Attr {
	return slog.Uint64(KeyGID, uint64(gid))
}

// Err returns a slog.Attr wrapping an error's message, or a no-op attr if nil.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ErrorCode returns a slog.Attr for a numeric errno.
func ErrorCode(code int) slog.Attr {
	return slog.Int(KeyErrorCode, code)
}

// FileDataID returns a slog.Attr for an FCB's primary key, hex-encoded.
func FileDataID(hex string) slog.Attr {
	return slog.String(KeyFileDataID, hex)
}

// DataID returns a slog.Attr for a data blob key, hex-encoded.
func DataID(hex string) slog.Attr {
	return slog.String(KeyDataID, hex)
}

// LinkCount returns a slog.Attr for a hard link count.
func LinkCount(n uint32) slog.Attr {
	return slog.Uint64(KeyLinkCount, uint64(n))
}

// LinkTarget returns a slog.Attr for a symlink target.
func LinkTarget(target string) slog.Attr {
	return slog.String(KeyLinkTarget, target)
}

// Entries returns a slog.Attr for a directory entry count.
func Entries(n int) slog.Attr {
	return slog.Int(KeyEntries, n)
}

// DurationMs returns a slog.Attr for an operation duration in milliseconds.
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}
