package moc

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mocforge/mocforge/pkg/errors"
)

func blob(version byte, bigEndian byte, body ...byte) []byte {
	data := append([]byte("MOC3"), version, bigEndian)
	return append(data, body...)
}

func TestFromBytes(t *testing.T) {
	m, err := FromBytes(blob(3, 0, 0xDE, 0xAD))
	require.NoError(t, err)

	assert.Equal(t, Version40, m.Version())
	assert.False(t, m.BigEndian())
	assert.Equal(t, 8, m.Size())
	assert.NotZero(t, m.Hash())
	assert.Len(t, m.HashString(), 16)
}

func TestFromBytesRejectsBadHeaders(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", []byte("MOC")},
		{"wrong magic", []byte("MOC2\x03\x00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromBytes(tt.data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidMoc))
		})
	}
}

func TestHashTracksContent(t *testing.T) {
	a, err := FromBytes(blob(3, 0, 1, 2, 3))
	require.NoError(t, err)
	same, err := FromBytes(blob(3, 0, 1, 2, 3))
	require.NoError(t, err)
	changed, err := FromBytes(blob(3, 0, 1, 2, 4))
	require.NoError(t, err)

	assert.Equal(t, a.Hash(), same.Hash())
	assert.NotEqual(t, a.Hash(), changed.Hash())
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "3.0", Version30.String())
	assert.Equal(t, "4.2", Version42.String())
	assert.Equal(t, "5.0", Version50.String())
	assert.Equal(t, "unknown(9)", Version(9).String())
}

func TestRead(t *testing.T) {
	m, err := Read(bytes.NewReader(blob(1, 1)))
	require.NoError(t, err)
	assert.Equal(t, Version30, m.Version())
	assert.True(t, m.BigEndian())
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.moc3")
	require.NoError(t, os.WriteFile(path, blob(4, 0, 7, 7), 0o644))

	m, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Version42, m.Version())

	_, err = ReadFile(filepath.Join(dir, "missing.moc3"))
	assert.Error(t, err)
}
