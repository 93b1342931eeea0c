package assets

import (
	"fmt"

	"github.com/minio/highwayhash"
)

// GUID is the opaque identifier of a persisted artifact. GUIDs are
// assigned when an artifact is first created and remain stable across
// reimports; the GUID index maps them to project-relative paths.
type GUID string

// String returns the string representation of a GUID.
func (g GUID) String() string {
	return string(g)
}

// guidKey is the fixed HighwayHash key for GUID derivation. GUIDs are
// identifiers, not secrets; the key only has to be stable.
var guidKey = []byte("mocforge/assets/guid/hash/key/01")

// NewGUID derives a 32-hex-digit GUID from an artifact's project
// relative path and its initial content. Path and content are hashed
// separately so renames and content changes produce distinct GUIDs.
func NewGUID(path string, content []byte) GUID {
	return GUID(fmt.Sprintf("%016x%016x", hash64([]byte(path)), hash64(content)))
}

func hash64(data []byte) uint64 {
	h, err := highwayhash.New64(guidKey)
	if err != nil {
		// The key is a compile-time constant of valid length; New64
		// only fails on bad key sizes.
		panic(err)
	}
	_, _ = h.Write(data)
	return h.Sum64()
}
