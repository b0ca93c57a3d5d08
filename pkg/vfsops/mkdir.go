package vfsops

import (
	"context"
	"time"

	"github.com/nodalfs/nodalfs/pkg/objectstore"
)

// Mkdir attaches a new directory FCB at path and initializes its data
// blob as an empty directory-entry list.
func (o *Ops) Mkdir(ctx context.Context, caller Caller, path string, mode uint32) int {
	start := time.Now()
	ctx = withCallerContext(ctx, "mkdir", path, caller)
	newFCB, _, err := o.ns.AttachToTree(path, objectstore.WithType(objectstore.TypeDir, mode), caller.reqCtx())
	if err != nil {
		return o.errno(ctx, "mkdir", path, start, err)
	}
	return o.errno(ctx, "mkdir", path, start, o.store.PutDirEntries(newFCB, nil))
}
