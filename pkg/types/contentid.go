package types

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ContentID is a Git-style SHA-1 content hash (20 bytes) of a document
// snapshot. Two snapshots with the same ContentID scan identically.
type ContentID [20]byte

// ComputeContentID computes Git-style blob ID: SHA-1("blob {len}\0{content}").
func ComputeContentID(content []byte) ContentID {
	header := fmt.Sprintf("blob %d\x00", len(content))
	h := sha1.New()
	h.Write([]byte(header))
	h.Write(content)

	var id ContentID
	copy(id[:], h.Sum(nil))
	return id
}

// Hex returns 40-character hex string.
func (id ContentID) Hex() string {
	return hex.EncodeToString(id[:])
}

// String implements Stringer (returns Hex()).
func (id ContentID) String() string {
	return id.Hex()
}

// IsZero reports whether id is the zero value.
func (id ContentID) IsZero() bool {
	return id == ContentID{}
}

// MarshalJSON implements json.Marshaler.
func (id ContentID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Hex())
}
