package vfsops

import (
	"context"
	"time"
)

// Getattr resolves path and returns its attributes: mode/uid/gid from the
// FCB, size/nlinks/atime/mtime/ctime from the data object's metadata.
func (o *Ops) Getattr(ctx context.Context, path string) (Attr, int) {
	start := time.Now()
	fcb, err := o.ns.GetFCB(path)
	if err != nil {
		return Attr{}, o.errno(ctx, "getattr", path, start, err)
	}
	meta, err := o.store.GetMeta(fcb.DataID)
	if err != nil {
		return Attr{}, o.errno(ctx, "getattr", path, start, err)
	}
	return attrFrom(fcb, meta), o.errno(ctx, "getattr", path, start, nil)
}
