package vfsops

import (
	"context"
	"time"

	"github.com/nodalfs/nodalfs/pkg/fserr"
	"github.com/nodalfs/nodalfs/pkg/objectstore"
	"github.com/nodalfs/nodalfs/pkg/permission"
)

// Write requires a write grant on handle and copies data into path's
// fixed-width data blob at offset, persisting the full MaxFileSize block.
//
// Size and offset bound checks are evaluated before clipping: a write
// whose length or offset alone reaches or exceeds MaxFileSize fails EFBIG
// outright. A write that passes both checks but runs past the end of the
// block is clipped to the bytes that fit, and that clipped count is
// returned.
func (o *Ops) Write(ctx context.Context, path string, data []byte, offset int64, handle *permission.Handle) (int, int) {
	start := time.Now()
	if handle == nil || !handle.OpenCalled || !handle.CanWrite() {
		return 0, o.errno(ctx, "write", path, start, fserr.AccessDeniedf(path, "no write permission"))
	}

	fcb, err := o.ns.GetFCB(path)
	if err != nil {
		return 0, o.errno(ctx, "write", path, start, err)
	}
	meta, err := o.store.GetMeta(fcb.DataID)
	if err != nil {
		return 0, o.errno(ctx, "write", path, start, err)
	}

	if handle.Nonseekable && offset < meta.Size {
		return 0, o.errno(ctx, "write", path, start, fserr.AccessDeniedf(path, "append-only handle cannot write before end of file"))
	}
	if int64(len(data)) >= objectstore.MaxFileSize {
		return 0, o.errno(ctx, "write", path, start, fserr.New(fserr.TooBig, "write size exceeds maximum file size", path))
	}
	if offset >= objectstore.MaxFileSize {
		return 0, o.errno(ctx, "write", path, start, fserr.New(fserr.TooBig, "write offset exceeds maximum file size", path))
	}

	var blob []byte
	if meta.Size > 0 {
		blob, err = o.store.GetFileBlob(fcb)
		if err != nil {
			return 0, o.errno(ctx, "write", path, start, err)
		}
	} else {
		blob = make([]byte, objectstore.MaxFileSize)
	}

	size := int64(len(data))
	if offset+size > objectstore.MaxFileSize {
		size = objectstore.MaxFileSize - offset
	}
	n := copy(blob[offset:offset+size], data[:size])

	if err := o.store.PutFileBlob(fcb, blob); err != nil {
		return 0, o.errno(ctx, "write", path, start, err)
	}

	newSize := offset + size
	if newSize < meta.Size {
		newSize = meta.Size
	}
	meta.Size = newSize
	now := time.Now()
	meta.Mtime = now
	meta.Atime = now
	if err := o.store.SetMeta(fcb.DataID, meta); err != nil {
		return 0, o.errno(ctx, "write", path, start, err)
	}
	if o.metrics != nil {
		o.metrics.AddBytesWritten(n)
	}
	return n, o.errno(ctx, "write", path, start, nil)
}
