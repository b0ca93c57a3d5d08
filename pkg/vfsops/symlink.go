package vfsops

import (
	"context"
	"syscall"
	"time"

	"github.com/nodalfs/nodalfs/pkg/objectstore"
)

// Symlink attaches a new FCB at newPath with mode S_IFLNK|S_IRUSR|S_IWUSR
// and stores target as its data blob.
func (o *Ops) Symlink(ctx context.Context, caller Caller, target, newPath string) int {
	start := time.Now()
	ctx = withCallerContext(ctx, "symlink", newPath, caller)
	mode := objectstore.WithType(objectstore.TypeSymlink, syscall.S_IRUSR|syscall.S_IWUSR)
	newFCB, newMeta, err := o.ns.AttachToTree(newPath, mode, caller.reqCtx())
	if err != nil {
		return o.errno(ctx, "symlink", newPath, start, err)
	}
	if err := o.store.PutSymlinkTarget(newFCB, target); err != nil {
		return o.errno(ctx, "symlink", newPath, start, err)
	}
	newMeta.Size = int64(len(target))
	return o.errno(ctx, "symlink", newPath, start, o.store.SetMeta(newFCB.DataID, newMeta))
}
