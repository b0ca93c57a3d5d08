package vfsops

import (
	"context"
	"time"
)

// Link resolves existing, attaches a new FCB at newPath sharing
// existing's mode, repoints the new FCB's data_id at existing's data
// object, and increments that object's link count.
func (o *Ops) Link(ctx context.Context, caller Caller, existing, newPath string) int {
	start := time.Now()
	ctx = withCallerContext(ctx, "link", newPath, caller)
	existingFCB, err := o.ns.GetFCB(existing)
	if err != nil {
		return o.errno(ctx, "link", existing, start, err)
	}
	existingMeta, err := o.store.GetMeta(existingFCB.DataID)
	if err != nil {
		return o.errno(ctx, "link", existing, start, err)
	}

	newFCB, _, err := o.ns.AttachToTree(newPath, existingFCB.Mode, caller.reqCtx())
	if err != nil {
		return o.errno(ctx, "link", newPath, start, err)
	}

	// AttachToTree gave newFCB its own fresh data object; discard it before
	// repointing at the shared one, or it leaks as an unreferenced blob.
	orphanedDataID := newFCB.DataID
	if err := o.store.DeleteData(orphanedDataID); err != nil {
		return o.errno(ctx, "link", newPath, start, err)
	}
	if err := o.store.RemoveMeta(orphanedDataID); err != nil {
		return o.errno(ctx, "link", newPath, start, err)
	}

	newFCB.DataID = existingFCB.DataID
	if err := o.store.SaveFCB(newFCB); err != nil {
		return o.errno(ctx, "link", newPath, start, err)
	}

	existingMeta.Nlinks++
	return o.errno(ctx, "link", newPath, start, o.store.SetMeta(existingFCB.DataID, existingMeta))
}
