package hierarchy

import (
	"reflect"
	"sort"

	"github.com/tiendc/go-deepcopy"

	"github.com/mocforge/mocforge/pkg/errors"
)

// Spec describes a registered component kind: how to create a fresh
// payload and whether the kind carries user data that must survive a
// reimport (the "movable" capability).
type Spec struct {
	// New returns a fresh zero payload for the kind. Must return a
	// pointer to a struct.
	New func() any

	// Movable reports that payloads of this kind are user-authored and
	// are carried over during reconciliation. Non-movable kinds keep
	// whatever the fresh generation produced.
	Movable bool
}

// Registry maps component kinds to their specs. It replaces runtime
// reflection over host component types with an explicit, build-time
// resolved table.
type Registry struct {
	specs map[Kind]Spec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[Kind]Spec)}
}

// DefaultRegistry returns a registry with all built-in kinds registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	// Structural kinds are regenerated from the model source and must
	// never receive cross-reimport data.
	_ = r.Register(KindParameter, Spec{New: func() any { return &Parameter{} }})
	_ = r.Register(KindPart, Spec{New: func() any { return &Part{} }})
	_ = r.Register(KindDrawable, Spec{New: func() any { return &Drawable{} }})
	// User data kinds survive reimports.
	_ = r.Register(KindDisplayInfo, Spec{New: func() any { return &DisplayInfo{} }, Movable: true})
	_ = r.Register(KindUserData, Spec{New: func() any { return &UserData{} }, Movable: true})
	_ = r.Register(KindEyeBlink, Spec{New: func() any { return &EyeBlink{} }, Movable: true})
	_ = r.Register(KindLipSync, Spec{New: func() any { return &LipSync{} }, Movable: true})
	_ = r.Register(KindHitArea, Spec{New: func() any { return &HitArea{} }, Movable: true})
	return r
}

// Register adds a kind to the registry. Registering the same kind twice
// is an error.
func (r *Registry) Register(kind Kind, spec Spec) error {
	if kind == "" {
		return errors.NewValidationError("kind", kind, "kind must not be empty")
	}
	if spec.New == nil {
		return errors.NewValidationError("spec", kind, "spec.New must not be nil")
	}
	if _, ok := r.specs[kind]; ok {
		return errors.WrapResource("register", "component kind", string(kind), errors.ErrAlreadyExists)
	}
	r.specs[kind] = spec
	return nil
}

// Registered reports whether the kind is known to the registry.
func (r *Registry) Registered(kind Kind) bool {
	_, ok := r.specs[kind]
	return ok
}

// Movable reports whether the kind carries user data that must survive
// reimport. Unregistered kinds are treated as movable: a kind the
// importer does not know about cannot be regenerated, so dropping its
// data would lose user state.
func (r *Registry) Movable(kind Kind) bool {
	spec, ok := r.specs[kind]
	if !ok {
		return true
	}
	return spec.Movable
}

// New returns a fresh payload for the kind, or false if unregistered.
func (r *Registry) New(kind Kind) (any, bool) {
	spec, ok := r.specs[kind]
	if !ok {
		return nil, false
	}
	return spec.New(), true
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.specs))
	for kind := range r.specs {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// FindOrCreate returns the node's first component of the given kind,
// creating one with a fresh payload if absent.
func (r *Registry) FindOrCreate(n *Node, kind Kind) *Component {
	if c := n.FindComponent(kind); c != nil {
		return c
	}
	payload, _ := r.New(kind)
	return n.AddComponent(NewComponent(kind, payload))
}

// CopyPayload overwrites dst's payload with a full field-level copy of
// src's payload. It is never a reference swap: dst keeps (or receives)
// its own payload instance.
func (r *Registry) CopyPayload(dst, src *Component) error {
	if src.Payload == nil {
		dst.Payload = nil
		return nil
	}

	if dst.Payload == nil || reflect.TypeOf(dst.Payload) != reflect.TypeOf(src.Payload) {
		fresh, err := clonePayloadShell(src.Payload, r, src.Kind)
		if err != nil {
			return err
		}
		dst.Payload = fresh
	}

	if err := deepcopy.Copy(dst.Payload, src.Payload); err != nil {
		return errors.WrapResource("copy", "component payload", string(src.Kind), err)
	}
	return nil
}

// CloneComponent creates a detached copy of a component with its own
// payload instance.
func (r *Registry) CloneComponent(c *Component) (*Component, error) {
	clone := NewComponent(c.Kind, nil)
	if err := r.CopyPayload(clone, c); err != nil {
		return nil, err
	}
	return clone, nil
}

// CloneSubtree deep-clones a node with all descendants and components.
// The clone shares nothing with the original.
func (r *Registry) CloneSubtree(n *Node) (*Node, error) {
	clone := NewNode(n.Name)
	for _, c := range n.Components {
		cc, err := r.CloneComponent(c)
		if err != nil {
			return nil, err
		}
		clone.AddComponent(cc)
	}
	for _, child := range n.Children {
		cc, err := r.CloneSubtree(child)
		if err != nil {
			return nil, err
		}
		clone.AddChild(cc)
	}
	return clone, nil
}

// CloneModel deep-clones a whole model.
func (r *Registry) CloneModel(m *Model) (*Model, error) {
	root, err := r.CloneSubtree(m.Root)
	if err != nil {
		return nil, err
	}
	return &Model{Name: m.Name, Root: root}, nil
}

// clonePayloadShell allocates an empty payload of the same dynamic type
// as src. Registered kinds use their factory; unregistered kinds fall
// back to allocating the pointed-to struct type directly.
func clonePayloadShell(src any, r *Registry, kind Kind) (any, error) {
	if fresh, ok := r.New(kind); ok && reflect.TypeOf(fresh) == reflect.TypeOf(src) {
		return fresh, nil
	}
	t := reflect.TypeOf(src)
	if t.Kind() != reflect.Ptr {
		return nil, errors.NewValidationError("payload", kind, "payload must be a pointer")
	}
	return reflect.New(t.Elem()).Interface(), nil
}
