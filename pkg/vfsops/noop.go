package vfsops

import (
	"context"
	"time"
)

// Flush is a no-op, retained as an operation-table entry for the gateway.
func (o *Ops) Flush(ctx context.Context, path string) int {
	return o.errno(ctx, "flush", path, time.Now(), nil)
}

// Release is a no-op, retained as an operation-table entry for the gateway.
func (o *Ops) Release(ctx context.Context, path string) int {
	return o.errno(ctx, "release", path, time.Now(), nil)
}
