package vfsops

import (
	"context"
	"time"

	"github.com/nodalfs/nodalfs/pkg/fserr"
	"github.com/nodalfs/nodalfs/pkg/permission"
)

// Read requires a read grant on handle, then copies up to len(buf) bytes
// from path's fixed-width data blob starting at offset, clipping to the
// file's logical size. It returns the number of bytes copied.
func (o *Ops) Read(ctx context.Context, path string, buf []byte, offset int64, handle *permission.Handle) (int, int) {
	start := time.Now()
	if handle == nil || !handle.OpenCalled || !handle.CanRead() {
		return 0, o.errno(ctx, "read", path, start, fserr.AccessDeniedf(path, "no read permission"))
	}

	fcb, err := o.ns.GetFCB(path)
	if err != nil {
		return 0, o.errno(ctx, "read", path, start, err)
	}
	meta, err := o.store.GetMeta(fcb.DataID)
	if err != nil {
		return 0, o.errno(ctx, "read", path, start, err)
	}
	if meta.Size == 0 {
		return 0, o.errno(ctx, "read", path, start, nil)
	}

	blob, err := o.store.GetFileBlob(fcb)
	if err != nil {
		return 0, o.errno(ctx, "read", path, start, err)
	}

	size := int64(len(buf))
	if offset >= meta.Size {
		return 0, o.errno(ctx, "read", path, start, nil)
	}
	if offset+size > meta.Size {
		size = meta.Size - offset
	}
	n := copy(buf[:size], blob[offset:offset+size])

	meta.Atime = time.Now()
	if err := o.store.SetMeta(fcb.DataID, meta); err != nil {
		return 0, o.errno(ctx, "read", path, start, err)
	}
	if o.metrics != nil {
		o.metrics.AddBytesRead(n)
	}
	return n, o.errno(ctx, "read", path, start, nil)
}
