// Package fsid defines the fixed-size identifiers used throughout the core
// object model: the 16-byte file_data_id and data_id that key FCBs, data
// blobs, and metadata records in the flat KV keyspace.
package fsid

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// Size is the width, in bytes, of every file_data_id and data_id.
const Size = 16

// ID is a 16-byte opaque identifier. FCBs use it as their own primary key
// (file_data_id) and as a pointer to their associated data blob (data_id).
type ID [Size]byte

// Zero is the all-zero ID, never assigned to a live object.
var Zero ID

// New generates a fresh random ID.
func New() ID {
	var id ID
	copy(id[:], uuid.New()[:])
	return id
}

// String returns the hex encoding of the ID, for logging.
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool {
	return id == Zero
}

// Bytes returns the raw 16 bytes backing id.
func (id ID) Bytes() []byte {
	return id[:]
}

// FromBytes copies the first Size bytes of b into a new ID. It panics if b
// is shorter than Size; callers control buffer layout and a short read here
// indicates a corrupt record, not a recoverable condition.
func FromBytes(b []byte) ID {
	var id ID
	copy(id[:], b[:Size])
	return id
}

// RootDataID is the fixed literal data_id of the root directory's
// directory-entry list: the 15-byte ASCII string "root_direntries" padded
// with a trailing NUL to fill the 16-byte ID width, per the persisted-layout
// contract.
var RootDataID = ID([Size]byte{'r', 'o', 'o', 't', '_', 'd', 'i', 'r', 'e', 'n', 't', 'r', 'i', 'e', 's', 0})
