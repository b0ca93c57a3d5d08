package vfsops

import (
	"context"
	"time"

	"github.com/nodalfs/nodalfs/pkg/fserr"
	"github.com/nodalfs/nodalfs/pkg/namespace"
)

// Rmdir resolves path's parent, locates path, rejects it with ENOTEMPTY
// if its own metadata size is nonzero, and otherwise detaches it.
func (o *Ops) Rmdir(ctx context.Context, path string) int {
	start := time.Now()
	parent, err := o.ns.GetFCB(namespace.ParentPath(path))
	if err != nil {
		return o.errno(ctx, "rmdir", path, start, err)
	}
	parentMeta, err := o.store.GetMeta(parent.DataID)
	if err != nil {
		return o.errno(ctx, "rmdir", path, start, err)
	}
	child, index, entries, err := o.ns.GetChildFCB(parent, parentMeta, path)
	if err != nil {
		return o.errno(ctx, "rmdir", path, start, err)
	}
	childMeta, err := o.store.GetMeta(child.DataID)
	if err != nil {
		return o.errno(ctx, "rmdir", path, start, err)
	}
	if childMeta.Size > 0 {
		return o.errno(ctx, "rmdir", path, start, fserr.New(fserr.NotEmpty, "directory not empty", path))
	}
	return o.errno(ctx, "rmdir", path, start, o.ns.DetachFromTree(parent, child, index, entries))
}
