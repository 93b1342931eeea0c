package model3

import (
	"encoding/json"
	"os"

	"github.com/mocforge/mocforge/pkg/errors"
)

// DisplayInfo is the root of a .cdi3.json display info file. It lists
// the model's parameters and parts with their user-facing names.
type DisplayInfo struct {
	Version         int                `json:"Version"`
	Parameters      []DisplayItem      `json:"Parameters,omitempty"`
	ParameterGroups []DisplayItem      `json:"ParameterGroups,omitempty"`
	Parts           []DisplayItem      `json:"Parts,omitempty"`
	CombinedParams  []CombinedParamSet `json:"CombinedParameters,omitempty"`
}

// DisplayItem is one parameter, parameter group, or part entry.
type DisplayItem struct {
	ID      string `json:"Id"`
	GroupID string `json:"GroupId,omitempty"`
	Name    string `json:"Name"`
}

// CombinedParamSet lists parameter ids edited together in the editor.
type CombinedParamSet struct {
	IDs []string `json:"Ids"`
}

// ParseDisplayInfo decodes a .cdi3.json display info file and validates
// its version.
func ParseDisplayInfo(data []byte) (*DisplayInfo, error) {
	var di DisplayInfo
	if err := json.Unmarshal(data, &di); err != nil {
		return nil, errors.WrapParse("json", "cdi3", err)
	}
	if di.Version != SupportedVersion {
		return nil, errors.WrapResource("parse", "display info", "", errors.ErrUnsupportedVersion)
	}
	return &di, nil
}

// ParseDisplayInfoFile reads and decodes a .cdi3.json file from disk.
func ParseDisplayInfoFile(path string) (*DisplayInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	di, err := ParseDisplayInfo(data)
	if err != nil {
		if parseErr, ok := err.(*errors.ParseError); ok {
			parseErr.File = path
		}
		return nil, err
	}
	return di, nil
}
