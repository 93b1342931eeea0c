// Package mocforge imports Live2D Cubism models into a project
// workspace. An import reads a .model3.json descriptor plus its
// referenced binary moc blob, builds the model's scene-graph hierarchy,
// and persists it as a moc asset and a prefab. On reimport the freshly
// generated hierarchy is reconciled with the previously persisted one so
// user-added nodes and movable component data survive.
package mocforge

import (
	"context"
	"sync"

	"github.com/mocforge/mocforge/pkg/assets"
	"github.com/mocforge/mocforge/pkg/builder"
	"github.com/mocforge/mocforge/pkg/errors"
	"github.com/mocforge/mocforge/pkg/hierarchy"
	"github.com/mocforge/mocforge/pkg/reconcile"
)

// Importer runs the import pipeline against a project workspace.
type Importer interface {
	// Import imports or reimports the model described by the given
	// .model3.json descriptor path.
	Import(ctx context.Context, descriptorPath string) (*Result, error)

	// Store returns the asset store backing this importer.
	Store(ctx context.Context) (assets.Store, error)

	// Save commits any pending artifacts.
	Save(ctx context.Context) error
}

// importer is the internal implementation of the Importer interface.
type importer struct {
	config *config

	mu         sync.Mutex
	store      assets.Store
	builder    builder.Builder
	reconciler reconcile.Reconciler
	registry   *hierarchy.Registry
}

// Compile-time interface check to ensure proper implementation.
var _ Importer = (*importer)(nil)

// New creates a new Importer with the given options.
func New(opts ...Option) (Importer, error) {
	imp := &importer{
		config: defaultConfig(),
	}

	for _, opt := range opts {
		if err := opt(imp.config); err != nil {
			return nil, errors.WrapResource("apply", "option", "", err)
		}
	}

	imp.registry = imp.config.registry
	if imp.registry == nil {
		imp.registry = hierarchy.DefaultRegistry()
	}

	imp.store = imp.config.store

	var err error
	imp.builder = imp.config.builder
	if imp.builder == nil {
		if imp.builder, err = builder.New(builder.WithRegistry(imp.registry)); err != nil {
			return nil, err
		}
	}

	imp.reconciler = imp.config.reconciler
	if imp.reconciler == nil {
		opts := []reconcile.Option{reconcile.WithRegistry(imp.registry)}
		if imp.config.logger != nil {
			opts = append(opts, reconcile.WithLogger(imp.config.logger))
		}
		if imp.reconciler, err = reconcile.New(opts...); err != nil {
			return nil, err
		}
	}

	return imp, nil
}

// Store returns the asset store, opening one rooted at the configured
// project root on first use.
func (imp *importer) Store(ctx context.Context) (assets.Store, error) {
	imp.mu.Lock()
	defer imp.mu.Unlock()

	if imp.store != nil {
		return imp.store, nil
	}

	store, err := assets.New(ctx, imp.config.projectRoot, assets.WithRegistry(imp.registry))
	if err != nil {
		return nil, err
	}
	imp.store = store
	return store, nil
}
