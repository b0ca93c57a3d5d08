package vfsops

import (
	"context"
	"time"

	"github.com/nodalfs/nodalfs/pkg/permission"
)

// Open resolves path and runs the permission resolver against flags,
// returning the handle the gateway must thread back into Read, Write, and
// Readdir for this file descriptor.
func (o *Ops) Open(ctx context.Context, caller Caller, path string, flags int) (*permission.Handle, int) {
	start := time.Now()
	ctx = withCallerContext(ctx, "open", path, caller)
	fcb, err := o.ns.GetFCB(path)
	if err != nil {
		return nil, o.errno(ctx, "open", path, start, err)
	}
	handle, err := permission.Resolve(fcb, flags, caller.UID, caller.GID)
	if err != nil {
		return nil, o.errno(ctx, "open", path, start, err)
	}
	return handle, o.errno(ctx, "open", path, start, nil)
}
