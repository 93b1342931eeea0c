package hierarchy

import (
	"github.com/goccy/go-yaml"

	"github.com/mocforge/mocforge/pkg/errors"
)

// Generic is the payload used for components whose kind is not
// registered. It lets user-defined component kinds round-trip through
// the prefab document without the importer understanding them.
type Generic map[string]any

// Codec marshals models to and from the persisted prefab document.
// Component payloads are resolved through the registry so they decode
// into their registered types rather than raw maps.
type Codec struct {
	registry *Registry
}

// NewCodec creates a codec bound to the given registry.
func NewCodec(registry *Registry) *Codec {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Codec{registry: registry}
}

// modelDoc is the YAML document shape of a persisted model hierarchy.
type modelDoc struct {
	Name string   `yaml:"name"`
	Root *nodeDoc `yaml:"root"`
}

type nodeDoc struct {
	Name       string          `yaml:"name"`
	Components []*componentDoc `yaml:"components,omitempty"`
	Children   []*nodeDoc      `yaml:"children,omitempty"`
}

type componentDoc struct {
	Kind    string `yaml:"kind"`
	Payload any    `yaml:"payload,omitempty"`
}

// MarshalModel encodes a model into the prefab document format.
func (c *Codec) MarshalModel(m *Model) ([]byte, error) {
	doc := &modelDoc{Name: m.Name, Root: encodeNode(m.Root)}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.WrapResource("marshal", "prefab", m.Name, err)
	}
	return data, nil
}

// UnmarshalModel decodes a prefab document into a model. Components of
// registered kinds decode into their registered payload types; unknown
// kinds decode into Generic payloads.
func (c *Codec) UnmarshalModel(data []byte) (*Model, error) {
	var doc modelDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("yaml", "prefab", err)
	}
	if doc.Root == nil {
		return nil, errors.NewParseError("yaml", "prefab", "document has no root node", nil)
	}

	root, err := c.decodeNode(doc.Root)
	if err != nil {
		return nil, err
	}
	name := doc.Name
	if name == "" {
		name = root.Name
	}
	return &Model{Name: name, Root: root}, nil
}

func encodeNode(n *Node) *nodeDoc {
	doc := &nodeDoc{Name: n.Name}
	for _, comp := range n.Components {
		doc.Components = append(doc.Components, &componentDoc{
			Kind:    string(comp.Kind),
			Payload: comp.Payload,
		})
	}
	for _, child := range n.Children {
		doc.Children = append(doc.Children, encodeNode(child))
	}
	return doc
}

func (c *Codec) decodeNode(doc *nodeDoc) (*Node, error) {
	node := NewNode(doc.Name)
	for _, comp := range doc.Components {
		decoded, err := c.decodeComponent(comp)
		if err != nil {
			return nil, err
		}
		node.AddComponent(decoded)
	}
	for _, child := range doc.Children {
		decoded, err := c.decodeNode(child)
		if err != nil {
			return nil, err
		}
		node.AddChild(decoded)
	}
	return node, nil
}

func (c *Codec) decodeComponent(doc *componentDoc) (*Component, error) {
	kind := Kind(doc.Kind)
	if kind == "" {
		return nil, errors.NewParseError("yaml", "prefab", "component without a kind", nil)
	}

	if doc.Payload == nil {
		return NewComponent(kind, nil), nil
	}

	// Payloads decode generically first; re-marshal the raw value and
	// decode it into the kind's registered payload type.
	raw, err := yaml.Marshal(doc.Payload)
	if err != nil {
		return nil, errors.WrapParse("yaml", "prefab", err)
	}

	payload, ok := c.registry.New(kind)
	if !ok {
		payload = &Generic{}
	}
	if err := yaml.Unmarshal(raw, payload); err != nil {
		return nil, errors.NewParseError("yaml", "prefab",
			"component payload for kind "+doc.Kind+" did not decode", err)
	}
	return NewComponent(kind, payload), nil
}
