package vfsops

import (
	"context"
	"time"

	"github.com/nodalfs/nodalfs/pkg/fserr"
	"github.com/nodalfs/nodalfs/pkg/namespace"
	"github.com/nodalfs/nodalfs/pkg/permission"
)

// DirFiller receives one directory entry name at a time, mirroring the
// gateway's fuse_fill_dir_t callback shape.
type DirFiller func(name string) error

// Readdir requires a read grant on handle, emits "." and "..", then each
// child's trailing path component through fill, and refreshes atime.
func (o *Ops) Readdir(ctx context.Context, path string, handle *permission.Handle, fill DirFiller) int {
	start := time.Now()
	if handle == nil || !handle.OpenCalled || !handle.CanRead() {
		return o.errno(ctx, "readdir", path, start, fserr.AccessDeniedf(path, "no read permission"))
	}

	fcb, err := o.ns.GetFCB(path)
	if err != nil {
		return o.errno(ctx, "readdir", path, start, err)
	}
	meta, err := o.store.GetMeta(fcb.DataID)
	if err != nil {
		return o.errno(ctx, "readdir", path, start, err)
	}
	entries, err := o.store.GetDirEntries(fcb, meta)
	if err != nil {
		return o.errno(ctx, "readdir", path, start, err)
	}

	for _, name := range []string{".", ".."} {
		if err := fill(name); err != nil {
			return o.errno(ctx, "readdir", path, start, fserr.New(fserr.IOError, "directory filler failed", path))
		}
	}
	for _, entry := range entries {
		if err := fill(namespace.BaseName(entry.Path)); err != nil {
			return o.errno(ctx, "readdir", path, start, fserr.New(fserr.IOError, "directory filler failed", path))
		}
	}

	meta.Atime = time.Now()
	return o.errno(ctx, "readdir", path, start, o.store.SetMeta(fcb.DataID, meta))
}
