package objectstore

import "syscall"

// FileType is the tagged file-type carried by a mode_t's upper bits,
// split out here per the design note that a fresh implementation should
// treat file type as a tagged value rather than inline bit-twiddling
// scattered across every consumer; it still flattens to a single POSIX
// mode_t at the persisted-FCB and gateway boundary.
type FileType uint32

const (
	TypeRegular FileType = syscall.S_IFREG
	TypeDir     FileType = syscall.S_IFDIR
	TypeSymlink FileType = syscall.S_IFLNK
)

const typeMask = syscall.S_IFMT

// Type extracts the file-type bits from mode.
func Type(mode uint32) FileType {
	return FileType(mode & typeMask)
}

// PermBits extracts the permission bits (owner/group/other rwx plus
// setuid/setgid/sticky) from mode.
func PermBits(mode uint32) uint32 {
	return mode &^ typeMask
}

// WithType returns perm with ft's type bits set, replacing any existing
// type bits.
func WithType(ft FileType, perm uint32) uint32 {
	return uint32(ft) | (perm &^ typeMask)
}

// Type returns the file's type, decoded from the FCB's mode.
func (f *FCB) Type() FileType {
	return Type(f.Mode)
}

// IsDir reports whether f names a directory.
func (f *FCB) IsDir() bool {
	return f.Type() == TypeDir
}

// IsRegular reports whether f names a regular file.
func (f *FCB) IsRegular() bool {
	return f.Type() == TypeRegular
}

// IsSymlink reports whether f names a symbolic link.
func (f *FCB) IsSymlink() bool {
	return f.Type() == TypeSymlink
}
