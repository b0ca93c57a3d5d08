package vfsops

import (
	"context"
	"time"
)

// Readlink resolves path and returns its symlink target, truncated to at
// most maxLen bytes (the caller-supplied buffer capacity).
func (o *Ops) Readlink(ctx context.Context, path string, maxLen int) (string, int) {
	start := time.Now()
	fcb, err := o.ns.GetFCB(path)
	if err != nil {
		return "", o.errno(ctx, "readlink", path, start, err)
	}
	meta, err := o.store.GetMeta(fcb.DataID)
	if err != nil {
		return "", o.errno(ctx, "readlink", path, start, err)
	}
	target, err := o.store.GetSymlinkTarget(fcb, meta)
	if err != nil {
		return "", o.errno(ctx, "readlink", path, start, err)
	}
	if len(target) > maxLen {
		target = target[:maxLen]
	}
	return target, o.errno(ctx, "readlink", path, start, nil)
}
