// Package vfsops implements the VFS operation surface: one function per
// entry in the gateway's operation table, each resolving/mutating the
// namespace and object store, then converting any failure to a negated
// POSIX errno at its own boundary. Internally every helper below this
// package returns a typed *fserr.Error; vfsops is the only layer that
// flattens it to an int.
package vfsops

import (
	"context"
	"time"

	"github.com/nodalfs/nodalfs/internal/logger"
	"github.com/nodalfs/nodalfs/pkg/fserr"
	"github.com/nodalfs/nodalfs/pkg/metrics"
	"github.com/nodalfs/nodalfs/pkg/namespace"
	"github.com/nodalfs/nodalfs/pkg/objectstore"
	"github.com/nodalfs/nodalfs/pkg/permission"
)

// Ops bundles the namespace engine and object store every VFS operation
// needs. It holds no per-open-file state; the caller (the gateway) is
// responsible for threading an *permission.Handle back into Read/Write/
// Readdir the way it threads fuse_file_info across calls.
type Ops struct {
	ns      *namespace.Engine
	store   *objectstore.Store
	metrics *metrics.Metrics
}

// New builds an Ops from a namespace engine and its backing object store.
// m may be nil, in which case operations run uninstrumented.
func New(ns *namespace.Engine, store *objectstore.Store, m *metrics.Metrics) *Ops {
	return &Ops{ns: ns, store: store, metrics: m}
}

// Caller is the effective identity driving a single VFS request, resolved
// by the gateway before each call per the single-threaded, cooperative
// scheduling contract (§5): one caller identity in flight at a time.
type Caller struct {
	UID uint32
	GID uint32
}

func (c Caller) reqCtx() namespace.RequestContext {
	return namespace.RequestContext{UID: c.UID, GID: c.GID}
}

// Attr is the attribute set returned by Getattr, assembled from an FCB's
// identity fields and its data object's metadata record.
type Attr struct {
	Mode   uint32
	UID    uint32
	GID    uint32
	Size   int64
	Nlinks uint64
	Atime  time.Time
	Mtime  time.Time
	Ctime  time.Time
}

func attrFrom(fcb *objectstore.FCB, meta *objectstore.Metadata) Attr {
	return Attr{
		Mode:   fcb.Mode,
		UID:    fcb.UID,
		GID:    fcb.GID,
		Size:   meta.Size,
		Nlinks: meta.Nlinks,
		Atime:  meta.Atime,
		Mtime:  meta.Mtime,
		Ctime:  meta.Ctime,
	}
}

// errno is the shared tail of every exported operation: record the
// operation's outcome and latency, log failures, and return the negated
// errno the gateway boundary expects.
//
// It also owns the LogContext attached to ctx: if a caller identity was
// already threaded in by the operation (see withCallerContext), it is
// preserved and just stamped with this call's operation/path/start time;
// otherwise a fresh, identity-less LogContext is built from them. Either
// way logger.ErrorCtx on the resulting ctx picks up Operation/Path/UID/GID
// automatically, so callers no longer pass them as explicit attrs.
func (o *Ops) errno(ctx context.Context, op, path string, start time.Time, err error) int {
	lc := logger.FromContext(ctx)
	if lc == nil {
		lc = logger.NewLogContext(op, path)
	} else {
		lc = lc.Clone()
		lc.Operation = op
		lc.Path = path
	}
	lc.StartTime = start
	ctx = logger.WithContext(ctx, lc)

	if o.metrics != nil {
		o.metrics.ObserveOp(op, start, err)
	}
	if err == nil {
		return 0
	}
	logger.ErrorCtx(ctx, "vfs op failed", logger.Err(err))
	return fserr.ToNegatedErrno(err)
}

// withCallerContext attaches caller's identity to ctx as a LogContext, so
// that a later o.errno call on the same ctx logs failures with the
// requesting UID/GID instead of an identity-less context.
func withCallerContext(ctx context.Context, op, path string, caller Caller) context.Context {
	lc := logger.NewLogContext(op, path).WithIdentity(caller.UID, caller.GID)
	return logger.WithContext(ctx, lc)
}
