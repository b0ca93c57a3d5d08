// Package namespace implements the path resolver and directory-tree
// mutation algorithms: path -> FCB resolution, child lookup within a
// parent, and the attach/detach operations every tree-mutating VFS
// operation (create, mkdir, symlink, link, unlink, rmdir, rename) builds
// on.
package namespace

import (
	"time"

	"github.com/nodalfs/nodalfs/pkg/fserr"
	"github.com/nodalfs/nodalfs/pkg/fsid"
	"github.com/nodalfs/nodalfs/pkg/objectstore"
)

// RequestContext carries the effective uid/gid of the VFS request driving
// a namespace mutation. AttachToTree always attributes ownership of a new
// FCB to the current caller, even when it runs as part of link or
// symlink rather than a direct create.
type RequestContext struct {
	UID uint32
	GID uint32
}

// Engine is the namespace engine: path resolution and tree mutation over
// an object store.
type Engine struct {
	store *objectstore.Store
}

// New wraps store in an Engine.
func New(store *objectstore.Store) *Engine {
	return &Engine{store: store}
}

// EnsureRoot guarantees the root FCB exists. If already present it is
// left untouched; otherwise a fresh root directory is
// created, owned by reqCtx, with mode rwxrwxrwx and an empty entry list
// under the fixed root data id.
func (e *Engine) EnsureRoot(reqCtx RequestContext) (*objectstore.FCB, error) {
	if root, err := e.store.GetRootFCB(); err == nil {
		return root, nil
	} else if !fserr.Is(err, fserr.NotFound) {
		return nil, err
	}

	root := &objectstore.FCB{
		Path:       "/",
		FileDataID: fsid.New(),
		DataID:     fsid.RootDataID,
		UID:        reqCtx.UID,
		GID:        reqCtx.GID,
		Mode:       objectstore.WithType(objectstore.TypeDir, 0777),
	}
	meta := objectstore.NewMetadata()
	meta.Size = 0

	if err := e.store.SetMeta(root.DataID, meta); err != nil {
		return nil, err
	}
	if err := e.store.PutDirEntries(root, nil); err != nil {
		return nil, err
	}
	if err := e.store.PutRootFCB(root); err != nil {
		return nil, err
	}
	return root, nil
}

// GetFCB resolves path to its FCB. The root is resolved by identity ("/"
// or the root FCB's own stored path); any other path resolves its parent
// recursively, then linear-scans the parent's directory entries against
// the canonical absolute form only (leading slash always present in
// stored entries).
func (e *Engine) GetFCB(path string) (*objectstore.FCB, error) {
	root, err := e.store.GetRootFCB()
	if err != nil {
		return nil, err
	}
	if path == "/" || path == root.Path {
		return root, nil
	}

	parentPath := ParentPath(path)
	parent, err := e.GetFCB(parentPath)
	if err != nil {
		return nil, err
	}
	if !parent.IsDir() {
		return nil, fserr.NotDirf(parentPath)
	}

	parentMeta, err := e.store.GetMeta(parent.DataID)
	if err != nil {
		return nil, err
	}
	entries, err := e.store.GetDirEntries(parent, parentMeta)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.Path == path {
			return e.store.GetFCB(entry.ChildID)
		}
	}
	return nil, fserr.NotFoundf(path)
}

// GetChildFCB resolves child within parent by linear scan, returning the
// child FCB and its index in the parent's entry array (needed by callers
// that mutate the array directly: rmdir, unlink).
func (e *Engine) GetChildFCB(parent *objectstore.FCB, parentMeta *objectstore.Metadata, childPath string) (*objectstore.FCB, int, []objectstore.Dentry, error) {
	entries, err := e.store.GetDirEntries(parent, parentMeta)
	if err != nil {
		return nil, -1, nil, err
	}
	for i, entry := range entries {
		if entry.Path == childPath {
			child, err := e.store.GetFCB(entry.ChildID)
			if err != nil {
				return nil, -1, nil, err
			}
			return child, i, entries, nil
		}
	}
	return nil, -1, entries, fserr.NotFoundf(childPath)
}

// AttachToTree creates a new FCB named path with the given mode, owned by
// the requesting context, and links it into its parent's directory-entry
// list. It returns the new FCB and its freshly initialized metadata.
func (e *Engine) AttachToTree(path string, mode uint32, reqCtx RequestContext) (*objectstore.FCB, *objectstore.Metadata, error) {
	if len(path) >= objectstore.MaxPath {
		return nil, nil, fserr.New(fserr.NameTooLong, "path too long", path)
	}

	parentPath := ParentPath(path)
	parent, err := e.GetFCB(parentPath)
	if err != nil {
		return nil, nil, err
	}
	if !parent.IsDir() {
		return nil, nil, fserr.NotDirf(parentPath)
	}
	parentMeta, err := e.store.GetMeta(parent.DataID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := e.store.GetDirEntries(parent, parentMeta)
	if err != nil {
		return nil, nil, err
	}

	newFCB := &objectstore.FCB{
		Path:       path,
		FileDataID: fsid.New(),
		DataID:     fsid.New(),
		UID:        reqCtx.UID,
		GID:        reqCtx.GID,
		Mode:       mode,
	}
	newMeta := objectstore.NewMetadata()

	if err := e.store.PutFCB(newFCB.FileDataID, newFCB); err != nil {
		return nil, nil, err
	}
	if err := e.store.SetMeta(newFCB.DataID, newMeta); err != nil {
		return nil, nil, err
	}

	entries = append(entries, objectstore.Dentry{ChildID: newFCB.FileDataID, Path: path})
	if err := e.store.PutDirEntries(parent, entries); err != nil {
		return nil, nil, err
	}

	parentMeta.Size = int64(len(entries))
	parentMeta.Mtime = time.Now()
	if err := e.store.SetMeta(parent.DataID, parentMeta); err != nil {
		return nil, nil, err
	}

	return newFCB, newMeta, nil
}

// DetachFromTree removes child from parent's directory-entry list at
// index, decrementing the shared data object's link count. On the link
// count reaching zero, the data blob, its metadata, and the child FCB's
// own KV entry are all removed, rather than leaking the FCB record.
func (e *Engine) DetachFromTree(parent *objectstore.FCB, child *objectstore.FCB, index int, entries []objectstore.Dentry) error {
	childMeta, err := e.store.GetMeta(child.DataID)
	if err != nil {
		return err
	}

	if childMeta.Nlinks <= 1 {
		if err := e.store.DeleteData(child.DataID); err != nil {
			return err
		}
		if err := e.store.RemoveMeta(child.DataID); err != nil {
			return err
		}
		if err := e.store.DeleteFCB(child.FileDataID); err != nil {
			return err
		}
	} else {
		childMeta.Nlinks--
		if err := e.store.SetMeta(child.DataID, childMeta); err != nil {
			return err
		}
	}

	remaining := make([]objectstore.Dentry, 0, len(entries)-1)
	remaining = append(remaining, entries[:index]...)
	remaining = append(remaining, entries[index+1:]...)

	if err := e.store.PutDirEntries(parent, remaining); err != nil {
		return err
	}

	parentMeta, err := e.store.GetMeta(parent.DataID)
	if err != nil {
		return err
	}
	parentMeta.Size = int64(len(remaining))
	parentMeta.Mtime = time.Now()
	return e.store.SetMeta(parent.DataID, parentMeta)
}
