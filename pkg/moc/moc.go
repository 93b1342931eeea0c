// Package moc handles the compiled binary model blob referenced by a
// .model3.json descriptor. The blob body is opaque to this package: only
// the header magic and format version are inspected, plus a content hash
// used for GUID derivation and change detection. No deserialization of
// the body is performed.
package moc

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/minio/highwayhash"

	"github.com/mocforge/mocforge/pkg/errors"
)

// magic is the four-byte header every moc blob starts with.
var magic = []byte("MOC3")

// headerSize covers magic, format version, and the endianness flag.
const headerSize = 6

// hashKey is the fixed HighwayHash key. Hashes are identifiers, not
// secrets; the key only has to be stable across builds.
var hashKey = []byte("mocforge/moc/content/hash/key/01")

// Version classifies the moc format revision from the header byte.
type Version byte

// Known moc format versions.
const (
	Version30 Version = 1
	Version33 Version = 2
	Version40 Version = 3
	Version42 Version = 4
	Version50 Version = 5
)

// String returns a human-readable version label. Unknown revisions are
// tolerated and reported numerically.
func (v Version) String() string {
	switch v {
	case Version30:
		return "3.0"
	case Version33:
		return "3.3"
	case Version40:
		return "4.0"
	case Version42:
		return "4.2"
	case Version50:
		return "5.0"
	default:
		return fmt.Sprintf("unknown(%d)", byte(v))
	}
}

// Moc is an immutable, validated moc blob.
type Moc struct {
	data []byte
	hash uint64
}

// Read consumes a moc blob from r, validating the header and computing
// the content hash.
func Read(r io.Reader) (*Moc, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", "moc", err)
	}
	return FromBytes(data)
}

// ReadFile reads and validates a moc blob from disk.
func ReadFile(path string) (*Moc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	m, err := FromBytes(data)
	if err != nil {
		return nil, errors.WrapResource("read", "moc", path, err)
	}
	return m, nil
}

// FromBytes validates a moc blob held in memory.
func FromBytes(data []byte) (*Moc, error) {
	if len(data) < headerSize {
		return nil, errors.WrapResource("validate", "moc", "", errors.ErrInvalidMoc)
	}
	if !bytes.Equal(data[:len(magic)], magic) {
		return nil, errors.WrapResource("validate", "moc header", "", errors.ErrInvalidMoc)
	}

	hash, err := hashBytes(data)
	if err != nil {
		return nil, errors.WrapResource("hash", "moc", "", err)
	}

	return &Moc{data: data, hash: hash}, nil
}

// Bytes returns the raw blob. Callers must not mutate it.
func (m *Moc) Bytes() []byte {
	return m.data
}

// Size returns the blob length in bytes.
func (m *Moc) Size() int {
	return len(m.data)
}

// Version returns the format revision from the header.
func (m *Moc) Version() Version {
	return Version(m.data[4])
}

// BigEndian reports the blob's declared byte order.
func (m *Moc) BigEndian() bool {
	return m.data[5] != 0
}

// Hash returns the HighwayHash64 of the whole blob. Two blobs with the
// same hash are treated as the same moc revision.
func (m *Moc) Hash() uint64 {
	return m.hash
}

// HashString returns the content hash in fixed-width hex, the form used
// in asset GUIDs and the GUID index.
func (m *Moc) HashString() string {
	return fmt.Sprintf("%016x", m.hash)
}

func hashBytes(data []byte) (uint64, error) {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, err
	}
	if _, err := h.Write(data); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
