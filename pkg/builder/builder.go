// Package builder turns a parsed descriptor family into a fresh model
// hierarchy: the destination side of reconciliation. It is the importer's
// "model source loader" capability.
//
// The default builder derives the hierarchy inventory from the JSON
// descriptor family alone: parameters and parts come from the cdi3
// display info file, drawable entries from the descriptor's hit areas,
// and the eye blink / lip sync groups from the descriptor. Hosts with a
// real moc runtime can supply a Builder that enumerates the full
// inventory from the compiled model instead; the moc body is never
// decoded here.
package builder

import (
	"context"

	"github.com/mocforge/mocforge/pkg/errors"
	"github.com/mocforge/mocforge/pkg/hierarchy"
	"github.com/mocforge/mocforge/pkg/logging"
	"github.com/mocforge/mocforge/pkg/moc"
	"github.com/mocforge/mocforge/pkg/model3"
)

// Input carries everything a build needs. DisplayInfo may be nil when
// the descriptor references none.
type Input struct {
	Name        string
	Descriptor  *model3.Model3
	DisplayInfo *model3.DisplayInfo
	Moc         *moc.Moc
}

// Builder produces a fresh model hierarchy from a parsed model source.
type Builder interface {
	Build(ctx context.Context, in *Input) (*hierarchy.Model, error)
}

// builder is the default descriptor-driven implementation.
type builder struct {
	registry *hierarchy.Registry
}

// Compile-time interface check to ensure proper implementation.
var _ Builder = (*builder)(nil)

// Option configures a Builder.
type Option func(*builder) error

// WithRegistry sets the component registry used for payload creation.
func WithRegistry(registry *hierarchy.Registry) Option {
	return func(b *builder) error {
		if registry == nil {
			return errors.New("registry cannot be nil")
		}
		b.registry = registry
		return nil
	}
}

// New creates the default Builder.
func New(opts ...Option) (Builder, error) {
	b := &builder{registry: hierarchy.DefaultRegistry()}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Build generates the fresh destination hierarchy. The reserved
// subtrees it produces are the structural truth of this import;
// reconciliation never adds or removes their leaf items.
func (b *builder) Build(ctx context.Context, in *Input) (*hierarchy.Model, error) {
	if in == nil || in.Descriptor == nil {
		return nil, errors.NewValidationError("input", nil, "descriptor is required")
	}
	if in.Name == "" {
		return nil, errors.NewValidationError("name", "", "model name is required")
	}

	model := hierarchy.NewModel(in.Name)

	b.buildRootComponents(model, in.Descriptor)
	b.buildParameters(model.Parameters(), in)
	b.buildParts(model.Parts(), in)
	b.buildDrawables(model.Drawables(), in.Descriptor)

	logging.FromContext(ctx).Debug().
		Int("parameters", len(model.Parameters().Children)).
		Int("parts", len(model.Parts().Children)).
		Int("drawables", len(model.Drawables().Children)).
		Msg("Built fresh hierarchy")

	return model, nil
}

// buildRootComponents attaches the parameter group components to the
// model root.
func (b *builder) buildRootComponents(model *hierarchy.Model, desc *model3.Model3) {
	if ids := desc.EyeBlinkParameters(); len(ids) > 0 {
		model.Root.AddComponent(hierarchy.NewComponent(
			hierarchy.KindEyeBlink, &hierarchy.EyeBlink{ParameterIDs: ids}))
	}
	if ids := desc.LipSyncParameters(); len(ids) > 0 {
		model.Root.AddComponent(hierarchy.NewComponent(
			hierarchy.KindLipSync, &hierarchy.LipSync{ParameterIDs: ids}))
	}
}

// buildParameters fills the Parameters subtree. Display info is the
// primary inventory; parameters named only by descriptor groups are
// appended after it.
func (b *builder) buildParameters(subtree *hierarchy.Node, in *Input) {
	seen := make(map[string]bool)

	if in.DisplayInfo != nil {
		for _, item := range in.DisplayInfo.Parameters {
			if seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			leaf := subtree.AddChild(hierarchy.NewNode(item.ID))
			leaf.AddComponent(hierarchy.NewComponent(hierarchy.KindParameter, &hierarchy.Parameter{}))
			leaf.AddComponent(hierarchy.NewComponent(hierarchy.KindDisplayInfo, &hierarchy.DisplayInfo{
				DisplayName: item.Name,
				GroupID:     item.GroupID,
			}))
		}
	}

	for _, group := range in.Descriptor.Groups {
		if group.Target != "Parameter" {
			continue
		}
		for _, id := range group.IDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			leaf := subtree.AddChild(hierarchy.NewNode(id))
			leaf.AddComponent(hierarchy.NewComponent(hierarchy.KindParameter, &hierarchy.Parameter{}))
		}
	}
}

// buildParts fills the Parts subtree from display info.
func (b *builder) buildParts(subtree *hierarchy.Node, in *Input) {
	if in.DisplayInfo == nil {
		return
	}
	for _, item := range in.DisplayInfo.Parts {
		if subtree.FindChild(item.ID) != nil {
			continue
		}
		leaf := subtree.AddChild(hierarchy.NewNode(item.ID))
		leaf.AddComponent(hierarchy.NewComponent(hierarchy.KindPart, &hierarchy.Part{Opacity: 1}))
		leaf.AddComponent(hierarchy.NewComponent(hierarchy.KindDisplayInfo, &hierarchy.DisplayInfo{
			DisplayName: item.Name,
			GroupID:     item.GroupID,
		}))
	}
}

// buildDrawables fills the Drawables subtree from the descriptor's hit
// areas.
func (b *builder) buildDrawables(subtree *hierarchy.Node, desc *model3.Model3) {
	for i, hitArea := range desc.HitAreas {
		if subtree.FindChild(hitArea.ID) != nil {
			continue
		}
		leaf := subtree.AddChild(hierarchy.NewNode(hitArea.ID))
		leaf.AddComponent(hierarchy.NewComponent(hierarchy.KindDrawable, &hierarchy.Drawable{Index: i}))
		leaf.AddComponent(hierarchy.NewComponent(hierarchy.KindHitArea, &hierarchy.HitArea{Name: hitArea.Name}))
	}
}
