package assets

import (
	"encoding/base64"

	"github.com/goccy/go-yaml"

	"github.com/mocforge/mocforge/pkg/errors"
	"github.com/mocforge/mocforge/pkg/moc"
)

// Artifact format identifiers written into persisted documents.
const (
	mocAssetFormat = "mocforge/moc-asset"
	formatVersion  = 1
)

// mocAssetDoc is the YAML document shape of a persisted <name>.asset
// artifact: the opaque moc blob plus enough metadata to detect changes
// without decoding it.
type mocAssetDoc struct {
	Format  string     `yaml:"format"`
	Version int        `yaml:"version"`
	Moc     mocBlobDoc `yaml:"moc"`
}

type mocBlobDoc struct {
	FormatVersion string `yaml:"formatVersion"`
	BigEndian     bool   `yaml:"bigEndian"`
	Hash          string `yaml:"hash"`
	Data          string `yaml:"data"`
}

// encodeMocAsset serializes a validated moc blob into the asset document.
func encodeMocAsset(m *moc.Moc) ([]byte, error) {
	doc := mocAssetDoc{
		Format:  mocAssetFormat,
		Version: formatVersion,
		Moc: mocBlobDoc{
			FormatVersion: m.Version().String(),
			BigEndian:     m.BigEndian(),
			Hash:          m.HashString(),
			Data:          base64.StdEncoding.EncodeToString(m.Bytes()),
		},
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.WrapResource("marshal", "asset", "", err)
	}
	return data, nil
}

// decodeMocAsset deserializes an asset document back into a validated
// moc blob.
func decodeMocAsset(data []byte) (*moc.Moc, error) {
	var doc mocAssetDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("yaml", "asset", err)
	}
	if doc.Format != mocAssetFormat {
		return nil, errors.NewParseError("yaml", "asset", "not a moc asset document", nil)
	}
	blob, err := base64.StdEncoding.DecodeString(doc.Moc.Data)
	if err != nil {
		return nil, errors.WrapParse("base64", "asset", err)
	}
	return moc.FromBytes(blob)
}
