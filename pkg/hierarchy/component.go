package hierarchy

// Kind identifies a component type. Kinds are registered in a Registry
// together with a payload factory and the movable flag.
type Kind string

// String returns the string representation of a kind.
func (k Kind) String() string {
	return string(k)
}

// Built-in component kinds.
const (
	// KindParameter holds a parameter's value range and current value.
	// Regenerated from the model source on every import.
	KindParameter Kind = "parameter"

	// KindPart holds a part's opacity. Regenerated on every import.
	KindPart Kind = "part"

	// KindDrawable holds a drawable's render order index. Regenerated
	// on every import.
	KindDrawable Kind = "drawable"

	// KindDisplayInfo holds user-facing display names and grouping.
	KindDisplayInfo Kind = "display-info"

	// KindUserData holds arbitrary user-authored tags.
	KindUserData Kind = "user-data"

	// KindEyeBlink lists the parameters driven by automatic eye blinking.
	KindEyeBlink Kind = "eye-blink"

	// KindLipSync lists the parameters driven by lip sync input.
	KindLipSync Kind = "lip-sync"

	// KindHitArea names a drawable used for hit testing.
	KindHitArea Kind = "hit-area"
)

// Component is an opaque attached behavior/data blob on a node. The
// payload is a pointer to the kind's registered payload struct.
type Component struct {
	Kind    Kind
	Payload any
}

// NewComponent creates a component of the given kind with the given payload.
func NewComponent(kind Kind, payload any) *Component {
	return &Component{Kind: kind, Payload: payload}
}

// Parameter is the payload of KindParameter.
type Parameter struct {
	Value   float64 `yaml:"value"`
	Default float64 `yaml:"default"`
	Minimum float64 `yaml:"minimum"`
	Maximum float64 `yaml:"maximum"`
}

// Part is the payload of KindPart.
type Part struct {
	Opacity float64 `yaml:"opacity"`
}

// Drawable is the payload of KindDrawable.
type Drawable struct {
	Index int `yaml:"index"`
}

// DisplayInfo is the payload of KindDisplayInfo.
type DisplayInfo struct {
	DisplayName string `yaml:"displayName"`
	GroupID     string `yaml:"groupId,omitempty"`
}

// UserData is the payload of KindUserData.
type UserData struct {
	Tags map[string]string `yaml:"tags,omitempty"`
}

// EyeBlink is the payload of KindEyeBlink.
type EyeBlink struct {
	ParameterIDs []string `yaml:"parameterIds,omitempty"`
}

// LipSync is the payload of KindLipSync.
type LipSync struct {
	ParameterIDs []string `yaml:"parameterIds,omitempty"`
}

// HitArea is the payload of KindHitArea.
type HitArea struct {
	Name string `yaml:"name"`
}
