package objectstore

import (
	"github.com/nodalfs/nodalfs/pkg/fserr"
	"github.com/nodalfs/nodalfs/pkg/fsid"
)

// Dentry is one directory entry: a child's file_data_id paired with its
// full absolute path, canonically stored with a single leading slash.
type Dentry struct {
	ChildID fsid.ID
	Path    string
}

// EncodeDentries packs entries into a directory data blob: a flat array of
// fixed-width DentrySize records, each a 16-byte child id followed by a
// MaxPath-byte NUL-padded path field.
func EncodeDentries(entries []Dentry) []byte {
	buf := make([]byte, len(entries)*DentrySize)
	for i, e := range entries {
		off := i * DentrySize
		copy(buf[off:off+fsid.Size], e.ChildID.Bytes())
		copy(buf[off+fsid.Size:off+DentrySize], e.Path)
	}
	return buf
}

// DecodeDentries unpacks a directory data blob of n entries.
func DecodeDentries(buf []byte, n int) ([]Dentry, error) {
	if len(buf) != n*DentrySize {
		return nil, fserrCorruptDentries()
	}
	entries := make([]Dentry, n)
	for i := 0; i < n; i++ {
		off := i * DentrySize
		entries[i].ChildID = fsid.FromBytes(buf[off : off+fsid.Size])
		nameBuf := buf[off+fsid.Size : off+DentrySize]
		nul := len(nameBuf)
		for j, b := range nameBuf {
			if b == 0 {
				nul = j
				break
			}
		}
		entries[i].Path = string(nameBuf[0:nul])
	}
	return entries, nil
}

func fserrCorruptDentries() error {
	return fserr.New(fserr.IOError, "corrupt directory entries", "")
}
