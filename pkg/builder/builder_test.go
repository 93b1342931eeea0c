package builder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mocforge/mocforge/pkg/hierarchy"
	"github.com/mocforge/mocforge/pkg/model3"
)

func testInput() *Input {
	return &Input{
		Name: "hiyori",
		Descriptor: &model3.Model3{
			Version: model3.SupportedVersion,
			Groups: []model3.Group{
				{Target: "Parameter", Name: "EyeBlink", IDs: []string{"ParamEyeLOpen", "ParamEyeROpen"}},
				{Target: "Parameter", Name: "LipSync", IDs: []string{"ParamMouthOpenY"}},
			},
			HitAreas: []model3.HitArea{
				{ID: "D_HEAD", Name: "Head"},
				{ID: "D_BODY", Name: "Body"},
			},
		},
		DisplayInfo: &model3.DisplayInfo{
			Parameters: []model3.DisplayItem{
				{ID: "ParamAngleX", GroupID: "ParamGroupAngle", Name: "Angle X"},
				{ID: "ParamEyeLOpen", GroupID: "ParamGroupEye", Name: "Eye L Open"},
			},
			Parts: []model3.DisplayItem{
				{ID: "PartHair", Name: "Hair"},
			},
		},
	}
}

func TestBuild(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	m, err := b.Build(context.Background(), testInput())
	require.NoError(t, err)

	assert.Equal(t, "hiyori", m.Name)

	// Display info order first, then group-only parameters.
	assert.Equal(t,
		[]string{"ParamAngleX", "ParamEyeLOpen", "ParamEyeROpen", "ParamMouthOpenY"},
		m.Parameters().ChildNames())

	angle := m.Parameters().FindChild("ParamAngleX")
	require.NotNil(t, angle.FindComponent(hierarchy.KindParameter))
	display := angle.FindComponent(hierarchy.KindDisplayInfo)
	require.NotNil(t, display)
	assert.Equal(t, "Angle X", display.Payload.(*hierarchy.DisplayInfo).DisplayName)

	// Group-only parameters carry no display info component.
	mouth := m.Parameters().FindChild("ParamMouthOpenY")
	require.NotNil(t, mouth)
	assert.Nil(t, mouth.FindComponent(hierarchy.KindDisplayInfo))

	hair := m.Parts().FindChild("PartHair")
	require.NotNil(t, hair)
	assert.Equal(t, 1.0, hair.FindComponent(hierarchy.KindPart).Payload.(*hierarchy.Part).Opacity)

	assert.Equal(t, []string{"D_HEAD", "D_BODY"}, m.Drawables().ChildNames())
	body := m.Drawables().FindChild("D_BODY")
	assert.Equal(t, 1, body.FindComponent(hierarchy.KindDrawable).Payload.(*hierarchy.Drawable).Index)
	assert.Equal(t, "Body", body.FindComponent(hierarchy.KindHitArea).Payload.(*hierarchy.HitArea).Name)

	eyeBlink := m.Root.FindComponent(hierarchy.KindEyeBlink)
	require.NotNil(t, eyeBlink)
	assert.Equal(t, []string{"ParamEyeLOpen", "ParamEyeROpen"},
		eyeBlink.Payload.(*hierarchy.EyeBlink).ParameterIDs)
	require.NotNil(t, m.Root.FindComponent(hierarchy.KindLipSync))
}

func TestBuildWithoutDisplayInfo(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	in := testInput()
	in.DisplayInfo = nil

	m, err := b.Build(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"ParamEyeLOpen", "ParamEyeROpen", "ParamMouthOpenY"},
		m.Parameters().ChildNames())
	assert.Empty(t, m.Parts().Children)
}

func TestBuildValidatesInput(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	_, err = b.Build(context.Background(), nil)
	assert.Error(t, err)

	_, err = b.Build(context.Background(), &Input{Name: "x"})
	assert.Error(t, err)

	in := testInput()
	in.Name = ""
	_, err = b.Build(context.Background(), in)
	assert.Error(t, err)
}

func TestNewRejectsNilRegistry(t *testing.T) {
	_, err := New(WithRegistry(nil))
	assert.Error(t, err)
}
