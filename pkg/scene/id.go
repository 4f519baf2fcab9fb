package scene

import (
	"crypto/sha256"
	"encoding/hex"
)

// NodeID is a content-addressed node identifier: the hex SHA-256 of the
// path that created the node.
type NodeID string

// ZeroID is the empty node reference.
const ZeroID NodeID = ""

// NewNodeID derives the ID for a node created at path.
func NewNodeID(path string) NodeID {
	sum := sha256.Sum256([]byte(path))
	return NodeID(hex.EncodeToString(sum[:]))
}

// IsZero reports whether id is the empty reference.
func (id NodeID) IsZero() bool {
	return id == ZeroID
}

// Short returns the first 8 characters of the ID for display.
func (id NodeID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}
