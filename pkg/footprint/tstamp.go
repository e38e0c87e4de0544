package footprint

import (
	"fmt"

	"github.com/google/uuid"
)

// seedNamespace anchors footprint seed derivation. Seeds are UUIDv5
// values of the footprint name under this namespace, so the same name
// always produces the same seed.
var seedNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("kicadfp"))

// SeedFor derives the identifier seed for a footprint name.
func SeedFor(name string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte(name))
}

// deriveTStamp computes a node identifier from the tree seed and the
// node's own identity. The derivation is a UUIDv5 over a name that
// includes the node kind, the disambiguating unique ID and the content
// hash, so two nodes with identical content under the same seed only
// differ when their unique IDs do.
func deriveTStamp(seed uuid.UUID, kind, uniqueID, contentHash string) uuid.UUID {
	name := fmt.Sprintf("kicadfp.node.%s.%s.%s", kind, uniqueID, contentHash)
	return uuid.NewSHA1(seed, []byte(name))
}
