package vfsops

import (
	"context"
	"time"

	"github.com/nodalfs/nodalfs/pkg/objectstore"
)

// Utime sets atime/mtime. A nil times pair sets both to now, mirroring
// the POSIX utime(path, NULL) semantics of "touch now".
func (o *Ops) Utime(ctx context.Context, path string, atime, mtime *time.Time) int {
	start := time.Now()
	fcb, err := o.ns.GetFCB(path)
	if err != nil {
		return o.errno(ctx, "utime", path, start, err)
	}
	meta, err := o.store.GetMeta(fcb.DataID)
	if err != nil {
		return o.errno(ctx, "utime", path, start, err)
	}
	now := time.Now()
	if atime != nil {
		meta.Atime = *atime
	} else {
		meta.Atime = now
	}
	if mtime != nil {
		meta.Mtime = *mtime
	} else {
		meta.Mtime = now
	}
	return o.errno(ctx, "utime", path, start, o.store.SetMeta(fcb.DataID, meta))
}

// Chmod replaces the FCB's permission bits with those of mode, keeping the
// FCB's own file-type bits whatever type bits mode carries; persisting the
// metadata record alongside refreshes ctime.
func (o *Ops) Chmod(ctx context.Context, path string, mode uint32) int {
	start := time.Now()
	fcb, err := o.ns.GetFCB(path)
	if err != nil {
		return o.errno(ctx, "chmod", path, start, err)
	}
	fcb.Mode = objectstore.WithType(fcb.Type(), mode)
	if err := o.store.SaveFCB(fcb); err != nil {
		return o.errno(ctx, "chmod", path, start, err)
	}
	meta, err := o.store.GetMeta(fcb.DataID)
	if err != nil {
		return o.errno(ctx, "chmod", path, start, err)
	}
	return o.errno(ctx, "chmod", path, start, o.store.SetMeta(fcb.DataID, meta))
}

// Chown sets the FCB's uid/gid.
func (o *Ops) Chown(ctx context.Context, path string, uid, gid uint32) int {
	start := time.Now()
	fcb, err := o.ns.GetFCB(path)
	if err != nil {
		return o.errno(ctx, "chown", path, start, err)
	}
	fcb.UID = uid
	fcb.GID = gid
	if err := o.store.SaveFCB(fcb); err != nil {
		return o.errno(ctx, "chown", path, start, err)
	}
	meta, err := o.store.GetMeta(fcb.DataID)
	if err != nil {
		return o.errno(ctx, "chown", path, start, err)
	}
	return o.errno(ctx, "chown", path, start, o.store.SetMeta(fcb.DataID, meta))
}
