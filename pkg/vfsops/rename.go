package vfsops

import (
	"context"
	"time"

	"github.com/nodalfs/nodalfs/pkg/fserr"
)

// Rename moves from to to: if to already exists it is unlinked first,
// then from is linked at to and the original name is unlinked, leaving
// the same data object reachable under its new name only.
func (o *Ops) Rename(ctx context.Context, caller Caller, from, to string) int {
	start := time.Now()
	ctx = withCallerContext(ctx, "rename", to, caller)
	if _, err := o.ns.GetFCB(to); err == nil {
		if rc := o.Unlink(ctx, to); rc != 0 {
			return rc
		}
	} else if !fserr.Is(err, fserr.NotFound) {
		return o.errno(ctx, "rename", to, start, err)
	}

	if rc := o.Link(ctx, caller, from, to); rc != 0 {
		return rc
	}
	if rc := o.Unlink(ctx, from); rc != 0 {
		return rc
	}
	return o.errno(ctx, "rename", to, start, nil)
}
