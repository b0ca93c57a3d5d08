package vfsops

import (
	"context"
	"time"

	"github.com/nodalfs/nodalfs/pkg/fserr"
	"github.com/nodalfs/nodalfs/pkg/objectstore"
)

// Truncate sets the logical size of path's regular-file data. It never
// touches the underlying blob: bytes beyond the new length are left in
// place, so a subsequent write that extends the file again exposes the
// file's prior contents rather than zeros. The exception is a truncate to
// size 0: the next write then starts from a fresh zero-filled blob.
func (o *Ops) Truncate(ctx context.Context, path string, newSize int64) int {
	start := time.Now()
	if newSize >= objectstore.MaxFileSize {
		return o.errno(ctx, "truncate", path, start, fserr.New(fserr.TooBig, "truncate size exceeds maximum file size", path))
	}
	fcb, err := o.ns.GetFCB(path)
	if err != nil {
		return o.errno(ctx, "truncate", path, start, err)
	}
	meta, err := o.store.GetMeta(fcb.DataID)
	if err != nil {
		return o.errno(ctx, "truncate", path, start, err)
	}
	meta.Size = newSize
	meta.Mtime = time.Now()
	return o.errno(ctx, "truncate", path, start, o.store.SetMeta(fcb.DataID, meta))
}
