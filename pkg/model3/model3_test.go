package model3

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mocforge/mocforge/pkg/errors"
)

const descriptorJSON = `{
  "Version": 3,
  "FileReferences": {
    "Moc": "Hiyori.moc3",
    "Textures": ["Hiyori.2048/texture_00.png", "Hiyori.2048/texture_01.png"],
    "Physics": "Hiyori.physics3.json",
    "DisplayInfo": "Hiyori.cdi3.json",
    "Motions": {
      "Idle": [{"File": "motions/Hiyori_m01.motion3.json", "FadeInTime": 0.5}]
    },
    "Expressions": [{"Name": "smile", "File": "expressions/smile.exp3.json"}]
  },
  "Groups": [
    {"Target": "Parameter", "Name": "EyeBlink", "Ids": ["ParamEyeLOpen", "ParamEyeROpen"]},
    {"Target": "Parameter", "Name": "LipSync", "Ids": ["ParamMouthOpenY"]}
  ],
  "HitAreas": [{"Id": "D_HEAD", "Name": "Head"}]
}`

func TestParseDescriptor(t *testing.T) {
	m, err := Parse([]byte(descriptorJSON))
	require.NoError(t, err)

	assert.Equal(t, 3, m.Version)
	assert.Equal(t, "Hiyori.moc3", m.FileReferences.Moc)
	assert.Len(t, m.FileReferences.Textures, 2)
	assert.Equal(t, "Hiyori.cdi3.json", m.FileReferences.DisplayInfo)
	assert.Len(t, m.FileReferences.Motions["Idle"], 1)
	assert.Len(t, m.FileReferences.Expressions, 1)

	assert.Equal(t, []string{"ParamEyeLOpen", "ParamEyeROpen"}, m.EyeBlinkParameters())
	assert.Equal(t, []string{"ParamMouthOpenY"}, m.LipSyncParameters())

	require.Len(t, m.HitAreas, 1)
	assert.Equal(t, "D_HEAD", m.HitAreas[0].ID)
}

func TestParseRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{nope"},
		{"wrong version", `{"Version": 2, "FileReferences": {"Moc": "a.moc3"}}`},
		{"missing moc", `{"Version": 3, "FileReferences": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParseVersionSentinel(t *testing.T) {
	_, err := Parse([]byte(`{"Version": 4, "FileReferences": {"Moc": "a.moc3"}}`))
	assert.True(t, errors.IsUnsupportedVersion(err))
}

func TestName(t *testing.T) {
	assert.Equal(t, "Hiyori", Name("assets/Hiyori.model3.json"))
	assert.Equal(t, "美咲", Name("美咲.model3.json"))
	assert.Equal(t, "plain", Name("plain.json"))
}

func TestPathResolution(t *testing.T) {
	m, err := Parse([]byte(descriptorJSON))
	require.NoError(t, err)

	descriptor := filepath.Join("assets", "hiyori", "Hiyori.model3.json")
	assert.Equal(t, filepath.Join("assets", "hiyori", "Hiyori.moc3"), m.MocPath(descriptor))
	assert.Equal(t, filepath.Join("assets", "hiyori", "Hiyori.cdi3.json"), m.DisplayInfoPath(descriptor))

	textures := m.TexturePaths(descriptor)
	require.Len(t, textures, 2)
	assert.Equal(t, filepath.Join("assets", "hiyori", "Hiyori.2048", "texture_00.png"), textures[0])
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Hiyori.model3.json")
	require.NoError(t, os.WriteFile(path, []byte(descriptorJSON), 0o644))

	m, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hiyori.moc3", m.FileReferences.Moc)

	_, err = ParseFile(filepath.Join(dir, "missing.model3.json"))
	assert.Error(t, err)
}
