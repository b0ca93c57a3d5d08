package vfsops

import (
	"context"
	"time"

	"github.com/nodalfs/nodalfs/pkg/namespace"
)

// Unlink resolves path's parent, locates path among its entries, and
// detaches it, decrementing (or, on the last link, removing) the shared
// data object.
func (o *Ops) Unlink(ctx context.Context, path string) int {
	start := time.Now()
	parent, err := o.ns.GetFCB(namespace.ParentPath(path))
	if err != nil {
		return o.errno(ctx, "unlink", path, start, err)
	}
	parentMeta, err := o.store.GetMeta(parent.DataID)
	if err != nil {
		return o.errno(ctx, "unlink", path, start, err)
	}
	child, index, entries, err := o.ns.GetChildFCB(parent, parentMeta, path)
	if err != nil {
		return o.errno(ctx, "unlink", path, start, err)
	}
	return o.errno(ctx, "unlink", path, start, o.ns.DetachFromTree(parent, child, index, entries))
}
