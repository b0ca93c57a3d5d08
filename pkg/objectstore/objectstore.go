// Package objectstore implements the object-store layer: the encode/decode
// of File Control Blocks, metadata records, and fixed-size data blobs onto
// the flat KV keyspace the kvstore package exposes. Every key in that
// keyspace is either a 16-byte object id, a "meta "-prefixed 16-byte id, or
// the well-known root sentinel key.
package objectstore

import (
	"encoding/binary"
	"time"

	"github.com/nodalfs/nodalfs/pkg/fserr"
	"github.com/nodalfs/nodalfs/pkg/fsid"
	"github.com/nodalfs/nodalfs/pkg/kvstore"
)

const (
	// MaxPath is the maximum length, in bytes, of a stored path or
	// directory-entry name.
	MaxPath = 4096

	// MaxFileSize is the fixed capacity of every regular-file data blob.
	// Files never grow past this bound: a write whose length or offset
	// reaches it, or a truncate to a size that reaches it, fails with
	// fserr.TooBig, and a write that starts below it but runs past it is
	// clipped at the bound.
	MaxFileSize = 4194304

	// DentrySize is the width of one encoded directory entry: a fixed
	// 16-byte child id followed by a fixed MaxPath-byte name field.
	DentrySize = fsid.Size + MaxPath

	// MetaPrefix namespaces metadata-record keys apart from FCB and data
	// keys in the shared flat keyspace.
	MetaPrefix = "meta "
)

// RootObjectKey is the well-known key under which the filesystem's root
// FCB is stored. It is unrelated to the fsid.ID keyspace: it is always
// looked up by this literal string, never derived from a generated id.
var RootObjectKey = []byte("root_object_key")

// Metadata is the fixed-width status record attached to every object:
// size, link count, and the three POSIX timestamps.
type Metadata struct {
	Size   int64
	Nlinks uint64
	Atime  time.Time
	Mtime  time.Time
	Ctime  time.Time
}

const metadataEncodedSize = 8 + 8 + 8 + 8 + 8

// NewMetadata returns a freshly initialized Metadata with Nlinks 1 and all
// three timestamps set to now.
func NewMetadata() *Metadata {
	now := time.Now()
	return &Metadata{Nlinks: 1, Atime: now, Mtime: now, Ctime: now}
}

func (m *Metadata) encode() []byte {
	buf := make([]byte, metadataEncodedSize)
	binary.BigEndian.PutUint64(buf[0:8], uint64(m.Size))
	binary.BigEndian.PutUint64(buf[8:16], m.Nlinks)
	binary.BigEndian.PutUint64(buf[16:24], uint64(m.Atime.UnixNano()))
	binary.BigEndian.PutUint64(buf[24:32], uint64(m.Mtime.UnixNano()))
	binary.BigEndian.PutUint64(buf[32:40], uint64(m.Ctime.UnixNano()))
	return buf
}

func decodeMetadata(buf []byte) (*Metadata, error) {
	if len(buf) != metadataEncodedSize {
		return nil, fserr.New(fserr.IOError, "corrupt metadata record", "")
	}
	return &Metadata{
		Size:   int64(binary.BigEndian.Uint64(buf[0:8])),
		Nlinks: binary.BigEndian.Uint64(buf[8:16]),
		Atime:  time.Unix(0, int64(binary.BigEndian.Uint64(buf[16:24]))),
		Mtime:  time.Unix(0, int64(binary.BigEndian.Uint64(buf[24:32]))),
		Ctime:  time.Unix(0, int64(binary.BigEndian.Uint64(buf[32:40]))),
	}, nil
}

// FCB is a File Control Block: the per-path identity record. Its own
// primary key is file_data_id; its data_id field points at the object's
// payload (a data blob for regular files, a directory-entry list for
// directories, a target path for symlinks).
type FCB struct {
	Path       string
	FileDataID fsid.ID
	DataID     fsid.ID
	UID        uint32
	GID        uint32
	Mode       uint32
}

// Store wraps the kvstore adapter with typed FCB/metadata/data-blob
// operations, per the object-store layer's responsibilities.
type Store struct {
	kv *kvstore.Adapter
}

// New wraps kv in a Store.
func New(kv *kvstore.Adapter) *Store {
	return &Store{kv: kv}
}

func fcbKey(id fsid.ID) []byte {
	return id.Bytes()
}

func metaKey(id fsid.ID) []byte {
	key := make([]byte, 0, len(MetaPrefix)+fsid.Size)
	key = append(key, MetaPrefix...)
	key = append(key, id.Bytes()...)
	return key
}

// fcbEncodedSize mirrors the source's fixed-width struct layout: a
// MaxPath-byte NUL-padded path field followed by the two 16-byte ids and
// the three fixed-width attribute words.
const fcbEncodedSize = MaxPath + fsid.Size*2 + 4 + 4 + 4

func (s *Store) encodeFCB(fcb *FCB) []byte {
	buf := make([]byte, fcbEncodedSize)
	copy(buf[0:MaxPath], fcb.Path)
	off := MaxPath
	copy(buf[off:off+fsid.Size], fcb.FileDataID.Bytes())
	off += fsid.Size
	copy(buf[off:off+fsid.Size], fcb.DataID.Bytes())
	off += fsid.Size
	binary.BigEndian.PutUint32(buf[off:off+4], fcb.UID)
	off += 4
	binary.BigEndian.PutUint32(buf[off:off+4], fcb.GID)
	off += 4
	binary.BigEndian.PutUint32(buf[off:off+4], fcb.Mode)
	return buf
}

func decodeFCB(buf []byte) (*FCB, error) {
	if len(buf) != fcbEncodedSize {
		return nil, fserr.New(fserr.IOError, "corrupt fcb record", "")
	}
	fcb := &FCB{}
	nul := MaxPath
	for i, b := range buf[0:MaxPath] {
		if b == 0 {
			nul = i
			break
		}
	}
	fcb.Path = string(buf[0:nul])
	off := MaxPath
	fcb.FileDataID = fsid.FromBytes(buf[off : off+fsid.Size])
	off += fsid.Size
	fcb.DataID = fsid.FromBytes(buf[off : off+fsid.Size])
	off += fsid.Size
	fcb.UID = binary.BigEndian.Uint32(buf[off : off+4])
	off += 4
	fcb.GID = binary.BigEndian.Uint32(buf[off : off+4])
	off += 4
	fcb.Mode = binary.BigEndian.Uint32(buf[off : off+4])
	return fcb, nil
}

// PutFCB stores fcb under key.
func (s *Store) PutFCB(key fsid.ID, fcb *FCB) error {
	return s.kv.Put(fcbKey(key), s.encodeFCB(fcb))
}

// GetFCB fetches the FCB stored under key.
func (s *Store) GetFCB(key fsid.ID) (*FCB, error) {
	val, err := s.kv.Get(fcbKey(key))
	if err != nil {
		return nil, err
	}
	return decodeFCB(val)
}

// GetRootFCB fetches the FCB stored at the well-known root sentinel key.
func (s *Store) GetRootFCB() (*FCB, error) {
	val, err := s.kv.Get(RootObjectKey)
	if err != nil {
		return nil, err
	}
	return decodeFCB(val)
}

// PutRootFCB stores fcb at the well-known root sentinel key.
func (s *Store) PutRootFCB(fcb *FCB) error {
	return s.kv.Put(RootObjectKey, s.encodeFCB(fcb))
}

// SaveFCB persists fcb back to whichever key it was resolved from: the
// well-known root sentinel when fcb names the root directory, its own
// file_data_id key otherwise. Callers that mutate an FCB returned by the
// namespace engine (chmod, chown, rename) use this instead of PutFCB
// directly so root updates land in the right place.
func (s *Store) SaveFCB(fcb *FCB) error {
	if fcb.Path == "/" {
		return s.PutRootFCB(fcb)
	}
	return s.PutFCB(fcb.FileDataID, fcb)
}

// DeleteFCB removes the FCB stored under key.
func (s *Store) DeleteFCB(key fsid.ID) error {
	return s.kv.Remove(fcbKey(key))
}

// GetMeta fetches the metadata record for id.
func (s *Store) GetMeta(id fsid.ID) (*Metadata, error) {
	val, err := s.kv.Get(metaKey(id))
	if err != nil {
		return nil, err
	}
	return decodeMetadata(val)
}

// SetMeta stores meta for id, bumping Ctime to now per the
// timestamp-refresh invariant: any metadata write refreshes ctime.
func (s *Store) SetMeta(id fsid.ID, meta *Metadata) error {
	meta.Ctime = time.Now()
	return s.kv.Put(metaKey(id), meta.encode())
}

// RemoveMeta deletes the metadata record for id.
func (s *Store) RemoveMeta(id fsid.ID) error {
	return s.kv.Remove(metaKey(id))
}

// GetNlinks returns the link count recorded in id's metadata.
func (s *Store) GetNlinks(id fsid.ID) (uint64, error) {
	meta, err := s.GetMeta(id)
	if err != nil {
		return 0, err
	}
	return meta.Nlinks, nil
}

// SetNlinks updates only the link count in id's metadata, leaving size and
// access/modify times untouched (ctime still refreshes, per SetMeta).
func (s *Store) SetNlinks(id fsid.ID, nlinks uint64) error {
	meta, err := s.GetMeta(id)
	if err != nil {
		return err
	}
	meta.Nlinks = nlinks
	return s.SetMeta(id, meta)
}

// GetData fetches the raw payload stored under id: a data blob for a
// regular file, an encoded directory-entry list for a directory, or a
// target path for a symlink.
func (s *Store) GetData(id fsid.ID) ([]byte, error) {
	return s.kv.Get(id.Bytes())
}

// PutData stores the raw payload under id.
func (s *Store) PutData(id fsid.ID, data []byte) error {
	return s.kv.Put(id.Bytes(), data)
}

// DeleteData removes the payload stored under id.
func (s *Store) DeleteData(id fsid.ID) error {
	return s.kv.Remove(id.Bytes())
}

// GetDirEntries fetches and decodes fcb's directory-entry list, sizing the
// expected blob at meta.Size * DentrySize per the object store's
// responsibility for computing payload size from metadata.
func (s *Store) GetDirEntries(fcb *FCB, meta *Metadata) ([]Dentry, error) {
	buf, err := s.GetData(fcb.DataID)
	if err != nil {
		return nil, err
	}
	return DecodeDentries(buf, int(meta.Size))
}

// PutDirEntries encodes and stores entries as fcb's directory data blob.
func (s *Store) PutDirEntries(fcb *FCB, entries []Dentry) error {
	return s.PutData(fcb.DataID, EncodeDentries(entries))
}

// GetFileBlob fetches a regular file's fixed-width data blob, asserting
// its length equals MaxFileSize.
func (s *Store) GetFileBlob(fcb *FCB) ([]byte, error) {
	buf, err := s.GetData(fcb.DataID)
	if err != nil {
		return nil, err
	}
	if len(buf) != MaxFileSize {
		return nil, fserr.New(fserr.IOError, "regular file blob has unexpected size", fcb.Path)
	}
	return buf, nil
}

// PutFileBlob stores buf, which must be exactly MaxFileSize bytes, as
// fcb's regular-file data blob.
func (s *Store) PutFileBlob(fcb *FCB, buf []byte) error {
	if len(buf) != MaxFileSize {
		return fserr.New(fserr.IOError, "attempted to store non-fixed-width file blob", fcb.Path)
	}
	return s.PutData(fcb.DataID, buf)
}

// GetSymlinkTarget fetches a symlink's target path, sized by metadata.
func (s *Store) GetSymlinkTarget(fcb *FCB, meta *Metadata) (string, error) {
	buf, err := s.GetData(fcb.DataID)
	if err != nil {
		return "", err
	}
	if int64(len(buf)) != meta.Size {
		return "", fserr.New(fserr.IOError, "symlink target size mismatch", fcb.Path)
	}
	return string(buf), nil
}

// PutSymlinkTarget stores target as fcb's data blob.
func (s *Store) PutSymlinkTarget(fcb *FCB, target string) error {
	return s.PutData(fcb.DataID, []byte(target))
}
