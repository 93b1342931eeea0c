package errors

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelMatching(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("prefab", "abc123")))
	assert.True(t, IsAlreadyExists(WrapResource("register", "kind", "parameter", ErrAlreadyExists)))
	assert.True(t, IsValidationError(NewValidationError("name", "", "required")))
	assert.True(t, IsUnsupportedVersion(WrapResource("parse", "descriptor", "", ErrUnsupportedVersion)))
	assert.False(t, IsNotFound(New("unrelated")))
}

func TestWrappersPreserveCause(t *testing.T) {
	cause := os.ErrNotExist

	err := WrapIO("read", "Hiyori.moc3", cause)
	assert.True(t, Is(err, os.ErrNotExist))

	var ioErr *IOError
	require.True(t, As(err, &ioErr))
	assert.Equal(t, "read", ioErr.Operation)
	assert.Equal(t, "Hiyori.moc3", ioErr.Path)
}

func TestWrappersPassNil(t *testing.T) {
	assert.NoError(t, WrapIO("read", "x", nil))
	assert.NoError(t, WrapParse("json", "x", nil))
	assert.NoError(t, WrapResource("load", "asset", "x", nil))
	assert.NoError(t, WrapValidation("field", nil))
}

func TestImportErrorUnwraps(t *testing.T) {
	cause := ErrInvalidMoc
	err := NewImportError("Hiyori.model3.json", "parse", WrapResource("validate", "moc", "", cause))

	assert.True(t, Is(err, ErrInvalidMoc))
	assert.Contains(t, err.Error(), "Hiyori.model3.json")
	assert.Contains(t, err.Error(), "parse")

	var importErr *ImportError
	require.True(t, As(err, &importErr))
	assert.Equal(t, "parse", importErr.Stage)
}

func TestParseErrorMessage(t *testing.T) {
	err := NewParseError("yaml", "Hiyori.prefab", "bad document", nil)
	assert.Contains(t, err.Error(), "yaml")
	assert.Contains(t, err.Error(), "Hiyori.prefab")
}
