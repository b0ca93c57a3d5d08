package vfsops

import (
	"context"
	"time"

	"github.com/nodalfs/nodalfs/pkg/fserr"
	"github.com/nodalfs/nodalfs/pkg/objectstore"
	"github.com/nodalfs/nodalfs/pkg/permission"
)

// Create attaches a new regular-file FCB at path. The caller's handle
// must already carry a create grant from a preceding Open(O_CREAT, ...);
// Create itself does not re-run the permission resolver.
func (o *Ops) Create(ctx context.Context, caller Caller, path string, mode uint32, handle *permission.Handle) int {
	start := time.Now()
	ctx = withCallerContext(ctx, "create", path, caller)
	if handle == nil || !handle.OpenCalled || !handle.HasCreateGrant() {
		return o.errno(ctx, "create", path, start, fserr.AccessDeniedf(path, "no create permission"))
	}
	_, _, err := o.ns.AttachToTree(path, objectstore.WithType(objectstore.TypeRegular, mode), caller.reqCtx())
	return o.errno(ctx, "create", path, start, err)
}
