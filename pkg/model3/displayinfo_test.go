package model3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const displayInfoJSON = `{
  "Version": 3,
  "Parameters": [
    {"Id": "ParamAngleX", "GroupId": "ParamGroupAngle", "Name": "Angle X"},
    {"Id": "ParamAngleY", "GroupId": "ParamGroupAngle", "Name": "Angle Y"}
  ],
  "ParameterGroups": [{"Id": "ParamGroupAngle", "GroupId": "", "Name": "Angle"}],
  "Parts": [{"Id": "PartHair", "Name": "Hair"}],
  "CombinedParameters": [{"Ids": ["ParamAngleX", "ParamAngleY"]}]
}`

func TestParseDisplayInfo(t *testing.T) {
	di, err := ParseDisplayInfo([]byte(displayInfoJSON))
	require.NoError(t, err)

	require.Len(t, di.Parameters, 2)
	assert.Equal(t, "ParamAngleX", di.Parameters[0].ID)
	assert.Equal(t, "Angle X", di.Parameters[0].Name)
	assert.Equal(t, "ParamGroupAngle", di.Parameters[0].GroupID)

	require.Len(t, di.ParameterGroups, 1)
	require.Len(t, di.Parts, 1)
	assert.Equal(t, "PartHair", di.Parts[0].ID)

	require.Len(t, di.CombinedParams, 1)
	assert.Len(t, di.CombinedParams[0].IDs, 2)
}

func TestParseDisplayInfoRejectsBadInput(t *testing.T) {
	_, err := ParseDisplayInfo([]byte("{"))
	assert.Error(t, err)

	_, err = ParseDisplayInfo([]byte(`{"Version": 2}`))
	assert.Error(t, err)
}
