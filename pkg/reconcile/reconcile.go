// Package reconcile implements the reimport reconciliation pass: given a
// previously materialized model hierarchy (source, carrying arbitrary
// user-added children and component data) and a freshly generated one
// (destination), it mutates the destination in place so it keeps the new
// model's structural truth while carrying forward user data attached to
// matching named nodes.
//
// The pass is a single synchronous in-memory tree transformation. It
// performs no I/O; the caller commits the destination to storage strictly
// after Reconcile returns.
package reconcile

import (
	"github.com/rs/zerolog"

	"github.com/mocforge/mocforge/pkg/errors"
	"github.com/mocforge/mocforge/pkg/hierarchy"
	"github.com/mocforge/mocforge/pkg/logging"
)

// Reconciler merges a previously persisted hierarchy into a freshly
// generated one.
type Reconciler interface {
	// Reconcile mutates destination in place, grafting over user-added
	// children and movable component payloads from source. The source
	// hierarchy is read-only during the pass and is expected to be
	// destroyed by the caller afterwards.
	Reconcile(source, destination *hierarchy.Model) error
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	registry *hierarchy.Registry
	logger   *zerolog.Logger
}

// Compile-time interface check to ensure proper implementation.
var _ Reconciler = (*reconciler)(nil)

// Option configures a Reconciler.
type Option func(*reconciler) error

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	r := &reconciler{
		registry: hierarchy.DefaultRegistry(),
		logger:   &logging.Nop,
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Reconcile carries user data from source over to destination.
//
// Step 1 handles the three reserved subtrees independently, iterating
// the DESTINATION's leaf items: items present only in the source are
// silently discarded (removed upstream), items present only in the
// destination start empty (newly introduced). Step 2 handles the model
// root: movable root components plus every non-reserved root child.
//
// Absence of a match is never an error. Duplicate leaf names resolve to
// the first occurrence.
func (r *reconciler) Reconcile(source, destination *hierarchy.Model) error {
	if source == nil || destination == nil {
		return nil
	}

	for _, reserved := range hierarchy.ReservedNames {
		src := source.Root.FindChild(reserved)
		dst := destination.Root.FindChild(reserved)
		if src == nil || dst == nil {
			continue
		}
		if err := r.reconcileSubtree(src, dst); err != nil {
			return err
		}
	}

	return r.reconcileRoot(source.Root, destination.Root)
}

// reconcileSubtree carries user data between the matching leaf items of
// one reserved subtree.
func (r *reconciler) reconcileSubtree(src, dst *hierarchy.Node) error {
	for _, item := range dst.Children {
		match := src.FindChild(item.Name)
		if match == nil {
			// Newly introduced item, nothing to carry over.
			continue
		}

		// User-added children under the matched item survive.
		for _, child := range match.Children {
			clone, err := r.registry.CloneSubtree(child)
			if err != nil {
				return err
			}
			item.AddChild(clone)
		}

		if err := r.copyMovableComponents(match, item); err != nil {
			return err
		}

		if len(match.Children) > 0 {
			r.logger.Debug().
				Str("subtree", src.Name).
				Str("item", item.Name).
				Int("children", len(match.Children)).
				Msg("Carried over user children")
		}
	}
	return nil
}

// reconcileRoot carries movable root components and non-reserved root
// children. The reserved subtrees were already handled structurally and
// must not be duplicated.
func (r *reconciler) reconcileRoot(src, dst *hierarchy.Node) error {
	if err := r.copyMovableComponents(src, dst); err != nil {
		return err
	}

	for _, child := range src.Children {
		if hierarchy.IsReserved(child.Name) {
			continue
		}
		clone, err := r.registry.CloneSubtree(child)
		if err != nil {
			return err
		}
		dst.AddChild(clone)
		r.logger.Debug().Str("child", child.Name).Msg("Carried over root child")
	}
	return nil
}

// copyMovableComponents overwrites, for every movable component on from,
// the payload of the same-kind component on to (created if absent) with
// a full field-level copy. Non-movable components are left untouched.
func (r *reconciler) copyMovableComponents(from, to *hierarchy.Node) error {
	for _, comp := range from.Components {
		if !r.registry.Movable(comp.Kind) {
			continue
		}
		target := r.registry.FindOrCreate(to, comp.Kind)
		if err := r.registry.CopyPayload(target, comp); err != nil {
			return err
		}
	}
	return nil
}

// Option Functions
// ================

// WithRegistry sets the component registry used for movability checks,
// payload copies, and subtree clones.
func WithRegistry(registry *hierarchy.Registry) Option {
	return func(r *reconciler) error {
		if registry == nil {
			return errors.New("registry cannot be nil")
		}
		r.registry = registry
		return nil
	}
}

// WithLogger sets the logger used for debug events during the pass.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *reconciler) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		r.logger = logger
		return nil
	}
}
