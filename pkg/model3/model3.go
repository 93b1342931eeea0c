// Package model3 parses the Cubism descriptor family: the .model3.json
// model descriptor and the .cdi3.json display info file it references.
//
// https://docs.live2d.com/en/cubism-sdk-manual/model3-json/
package model3

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/mocforge/mocforge/pkg/errors"
)

// SupportedVersion is the descriptor format version this build understands.
const SupportedVersion = 3

// Suffix is the canonical descriptor file suffix.
const Suffix = ".model3.json"

// Model3 is the root of a .model3.json descriptor.
type Model3 struct {
	Version        int            `json:"Version"`
	FileReferences FileReferences `json:"FileReferences"`
	Groups         []Group        `json:"Groups,omitempty"`
	HitAreas       []HitArea      `json:"HitAreas,omitempty"`
}

// FileReferences lists the sibling files a descriptor points at. Paths
// are relative to the descriptor.
type FileReferences struct {
	Moc         string              `json:"Moc"`
	Textures    []string            `json:"Textures,omitempty"`
	Physics     string              `json:"Physics,omitempty"`
	Pose        string              `json:"Pose,omitempty"`
	DisplayInfo string              `json:"DisplayInfo,omitempty"`
	UserData    string              `json:"UserData,omitempty"`
	Motions     map[string][]Motion `json:"Motions,omitempty"`
	Expressions []Expression        `json:"Expressions,omitempty"`
}

// Motion is one motion file reference within a motion group.
type Motion struct {
	File        string  `json:"File"`
	FadeInTime  float64 `json:"FadeInTime,omitempty"`
	FadeOutTime float64 `json:"FadeOutTime,omitempty"`
	Sound       string  `json:"Sound,omitempty"`
}

// Expression is one expression file reference.
type Expression struct {
	Name string `json:"Name"`
	File string `json:"File"`
}

// Group targets a set of parameters by role, e.g. EyeBlink or LipSync.
type Group struct {
	Target string   `json:"Target"`
	Name   string   `json:"Name"`
	IDs    []string `json:"Ids"`
}

// Group names with built-in meaning.
const (
	GroupEyeBlink = "EyeBlink"
	GroupLipSync  = "LipSync"
)

// HitArea binds a drawable to a named hit-test region.
type HitArea struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

// Parse decodes a .model3.json descriptor and validates its version.
func Parse(data []byte) (*Model3, error) {
	var m Model3
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.WrapParse("json", "model3", err)
	}
	if m.Version != SupportedVersion {
		return nil, errors.WrapResource("parse", "descriptor", "", errors.ErrUnsupportedVersion)
	}
	if m.FileReferences.Moc == "" {
		return nil, errors.NewValidationError("FileReferences.Moc", "", "descriptor references no moc file")
	}
	return &m, nil
}

// ParseFile reads and decodes a .model3.json descriptor from disk.
func ParseFile(path string) (*Model3, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		if parseErr, ok := err.(*errors.ParseError); ok {
			parseErr.File = path
		}
		return nil, err
	}
	return m, nil
}

// Name derives the model name from a descriptor path:
// "path/to/Hiyori.model3.json" yields "Hiyori".
func Name(path string) string {
	base := filepath.Base(path)
	if strings.HasSuffix(base, Suffix) {
		return strings.TrimSuffix(base, Suffix)
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// EyeBlinkParameters returns the parameter ids of the EyeBlink group.
func (m *Model3) EyeBlinkParameters() []string {
	return m.groupIDs(GroupEyeBlink)
}

// LipSyncParameters returns the parameter ids of the LipSync group.
func (m *Model3) LipSyncParameters() []string {
	return m.groupIDs(GroupLipSync)
}

func (m *Model3) groupIDs(name string) []string {
	for _, g := range m.Groups {
		if g.Name == name && g.Target == "Parameter" {
			return g.IDs
		}
	}
	return nil
}

// MocPath resolves the moc file reference against the descriptor path.
func (m *Model3) MocPath(descriptorPath string) string {
	return filepath.Join(filepath.Dir(descriptorPath), m.FileReferences.Moc)
}

// DisplayInfoPath resolves the display info reference against the
// descriptor path, or returns "" when the descriptor carries none.
func (m *Model3) DisplayInfoPath(descriptorPath string) string {
	if m.FileReferences.DisplayInfo == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(descriptorPath), m.FileReferences.DisplayInfo)
}

// TexturePaths resolves the texture references against the descriptor path.
func (m *Model3) TexturePaths(descriptorPath string) []string {
	dir := filepath.Dir(descriptorPath)
	paths := make([]string, 0, len(m.FileReferences.Textures))
	for _, tex := range m.FileReferences.Textures {
		paths = append(paths, filepath.Join(dir, tex))
	}
	return paths
}
