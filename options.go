package mocforge

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mocforge/mocforge/pkg/assets"
	"github.com/mocforge/mocforge/pkg/builder"
	"github.com/mocforge/mocforge/pkg/hierarchy"
	"github.com/mocforge/mocforge/pkg/reconcile"
)

// TextureResolver maps a texture reference from a descriptor to the
// asset the materialized model should use. The returned path is
// recorded in the import result.
type TextureResolver func(ctx context.Context, descriptorPath, texturePath string) (string, error)

// MaterialResolver names the material asset for a texture slot of the
// materialized model.
type MaterialResolver func(ctx context.Context, modelName string, textureIndex int) (string, error)

// config holds the configuration for an Importer.
type config struct {
	projectRoot      string
	store            assets.Store
	registry         *hierarchy.Registry
	builder          builder.Builder
	reconciler       reconcile.Reconciler
	logger           *zerolog.Logger
	force            bool
	textureResolver  TextureResolver
	materialResolver MaterialResolver
}

// defaultConfig returns the default importer configuration.
func defaultConfig() *config {
	return &config{
		projectRoot:      ".",
		textureResolver:  defaultTextureResolver,
		materialResolver: defaultMaterialResolver,
	}
}

// defaultTextureResolver keeps texture references as resolved by the
// descriptor.
func defaultTextureResolver(_ context.Context, _, texturePath string) (string, error) {
	return texturePath, nil
}

// defaultMaterialResolver names materials after the model and slot.
func defaultMaterialResolver(_ context.Context, modelName string, textureIndex int) (string, error) {
	return fmt.Sprintf("%s_%02d.mat", modelName, textureIndex), nil
}

// Option is a function that configures an Importer instance.
type Option func(*config) error

// WithProjectRoot sets the project root the asset store is opened at.
// Accepts a plain directory path or any afs URL.
func WithProjectRoot(root string) Option {
	return func(c *config) error {
		c.projectRoot = root
		return nil
	}
}

// WithStore sets a pre-opened asset store, bypassing WithProjectRoot.
func WithStore(store assets.Store) Option {
	return func(c *config) error {
		c.store = store
		return nil
	}
}

// WithRegistry sets the component registry shared by the builder,
// reconciler, and store codec.
func WithRegistry(registry *hierarchy.Registry) Option {
	return func(c *config) error {
		c.registry = registry
		return nil
	}
}

// WithBuilder sets a custom model source loader. Hosts with a real moc
// runtime use this to enumerate the full parameter/part/drawable
// inventory from the compiled model.
func WithBuilder(b builder.Builder) Option {
	return func(c *config) error {
		c.builder = b
		return nil
	}
}

// WithReconciler sets a custom reconciler.
func WithReconciler(r reconcile.Reconciler) Option {
	return func(c *config) error {
		c.reconciler = r
		return nil
	}
}

// WithLogger sets the logger used by the import pipeline.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithForce reimports even when the moc content hash is unchanged.
func WithForce(force bool) Option {
	return func(c *config) error {
		c.force = force
		return nil
	}
}

// WithTextureResolver sets the texture resolution hook.
func WithTextureResolver(resolver TextureResolver) Option {
	return func(c *config) error {
		if resolver == nil {
			return nil
		}
		c.textureResolver = resolver
		return nil
	}
}

// WithMaterialResolver sets the material resolution hook.
func WithMaterialResolver(resolver MaterialResolver) Option {
	return func(c *config) error {
		if resolver == nil {
			return nil
		}
		c.materialResolver = resolver
		return nil
	}
}
