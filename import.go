package mocforge

import (
	"context"
	"os"

	"github.com/mocforge/mocforge/pkg/assets"
	"github.com/mocforge/mocforge/pkg/builder"
	"github.com/mocforge/mocforge/pkg/errors"
	"github.com/mocforge/mocforge/pkg/hierarchy"
	"github.com/mocforge/mocforge/pkg/logging"
	"github.com/mocforge/mocforge/pkg/moc"
	"github.com/mocforge/mocforge/pkg/model3"
)

// Import imports or reimports the model described by descriptorPath.
//
// A first-time import goes straight to asset creation. A reimport loads
// the persisted prefab, instantiates it as the transient source
// hierarchy, reconciles the fresh destination against it, and commits
// the destination over the existing artifacts. The transient source is
// destroyed on every exit path; the commit happens strictly after the
// reconciliation pass returns.
func (imp *importer) Import(ctx context.Context, descriptorPath string) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// Step 0: Tag the context logger with the model name.
	name := model3.Name(descriptorPath)
	if imp.config.logger != nil {
		ctx = logging.WithLogger(ctx, imp.config.logger)
	}
	ctx = logging.WithModel(ctx, name)
	logger := logging.FromContext(ctx)

	// Step 1: Parse the descriptor family.
	desc, err := model3.ParseFile(descriptorPath)
	if err != nil {
		return nil, errors.NewImportError(descriptorPath, "parse", err)
	}

	displayInfo, err := imp.loadDisplayInfo(ctx, desc, descriptorPath)
	if err != nil {
		return nil, errors.NewImportError(descriptorPath, "parse", err)
	}

	// Step 2: Read and validate the moc blob.
	blob, err := moc.ReadFile(desc.MocPath(descriptorPath))
	if err != nil {
		return nil, errors.NewImportError(descriptorPath, "parse", err)
	}
	logger.Debug().
		Str("version", blob.Version().String()).
		Int("bytes", blob.Size()).
		Msg("Read moc blob")

	// Step 3: Open the asset store and decide first import vs reimport.
	store, err := imp.Store(ctx)
	if err != nil {
		return nil, errors.NewImportError(descriptorPath, "commit", err)
	}

	prefabGUID, reimport := store.Lookup(assets.PrefabPath(name))

	// Step 4: Skip unchanged reimports unless forced.
	if reimport && !imp.config.force && imp.unchanged(ctx, store, name, blob) {
		logger.Info().Msg("Moc unchanged, skipping import")
		return &Result{Model: name, PrefabGUID: prefabGUID, Skipped: true}, nil
	}

	// Step 5: Build the fresh destination hierarchy.
	destination, err := imp.builder.Build(ctx, &builder.Input{
		Name:        name,
		Descriptor:  desc,
		DisplayInfo: displayInfo,
		Moc:         blob,
	})
	if err != nil {
		return nil, errors.NewImportError(descriptorPath, "build", err)
	}

	// Step 6: Resolve texture and material assets through the hooks.
	textures, materials, err := imp.resolve(ctx, name, desc, descriptorPath)
	if err != nil {
		return nil, errors.NewImportError(descriptorPath, "build", err)
	}

	result := &Result{
		Model:       name,
		FirstImport: !reimport,
		Parameters:  len(destination.Parameters().Children),
		Parts:       len(destination.Parts().Children),
		Drawables:   len(destination.Drawables().Children),
		Textures:    textures,
		Materials:   materials,
	}

	// Step 7: Reconcile against the previously persisted hierarchy.
	if reimport {
		if err := imp.reconcile(ctx, store, prefabGUID, destination, result); err != nil {
			return nil, errors.NewImportError(descriptorPath, "reconcile", err)
		}
	}

	// Step 8: Commit, strictly after the reconciliation pass returned.
	if err := imp.commit(ctx, store, name, blob, destination, result); err != nil {
		return nil, errors.NewImportError(descriptorPath, "commit", err)
	}

	logger.Info().
		Bool("first_import", result.FirstImport).
		Int("parameters", result.Parameters).
		Int("parts", result.Parts).
		Int("drawables", result.Drawables).
		Int("carried_nodes", result.CarriedNodes).
		Msg("Import complete")

	return result, nil
}

// loadDisplayInfo parses the referenced cdi3 file. A descriptor without
// one, or one whose file is absent, builds without display names.
func (imp *importer) loadDisplayInfo(ctx context.Context, desc *model3.Model3, descriptorPath string) (*model3.DisplayInfo, error) {
	path := desc.DisplayInfoPath(descriptorPath)
	if path == "" {
		return nil, nil
	}
	displayInfo, err := model3.ParseDisplayInfoFile(path)
	if err != nil {
		if errors.IsNotFound(err) || errors.Is(err, os.ErrNotExist) {
			logging.FromContext(ctx).Warn().Str("path", path).Msg("Display info file missing, continuing without it")
			return nil, nil
		}
		return nil, err
	}
	return displayInfo, nil
}

// unchanged reports whether the committed moc asset carries the same
// content hash as the freshly read blob. Any load failure counts as
// changed so a corrupt asset is rewritten.
func (imp *importer) unchanged(ctx context.Context, store assets.Store, name string, blob *moc.Moc) bool {
	guid, ok := store.Lookup(assets.AssetPath(name))
	if !ok {
		return false
	}
	existing, err := store.LoadAsset(ctx, guid)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("Existing moc asset unreadable, reimporting")
		return false
	}
	return existing.Hash() == blob.Hash()
}

// reconcile loads and instantiates the persisted prefab as the
// transient source, then grafts its user data onto the destination.
// The transient is destroyed on every exit path.
func (imp *importer) reconcile(ctx context.Context, store assets.Store, prefabGUID assets.GUID, destination *hierarchy.Model, result *Result) error {
	persisted, err := store.LoadPrefab(ctx, prefabGUID)
	if err != nil {
		return err
	}

	source, err := store.Instantiate(persisted)
	if err != nil {
		return err
	}
	defer store.Destroy(source)

	nodesBefore := destination.Root.Count()
	componentsBefore := countComponents(destination.Root)

	if err := imp.reconciler.Reconcile(source, destination); err != nil {
		return err
	}

	result.CarriedNodes = destination.Root.Count() - nodesBefore
	result.CarriedComponents = countComponents(destination.Root) - componentsBefore
	return nil
}

// commit stages both artifacts, marks them dirty, and saves.
func (imp *importer) commit(ctx context.Context, store assets.Store, name string, blob *moc.Moc, destination *hierarchy.Model, result *Result) error {
	assetGUID, err := store.CreateAsset(ctx, name, blob)
	if err != nil {
		return err
	}
	prefabGUID, err := store.CreatePrefab(ctx, name, destination)
	if err != nil {
		return err
	}

	store.MarkDirty(assets.AssetPath(name))
	store.MarkDirty(assets.PrefabPath(name))

	if err := store.SaveAll(ctx); err != nil {
		return err
	}

	result.AssetGUID = assetGUID
	result.PrefabGUID = prefabGUID
	return nil
}

// resolve runs the texture and material hooks for every texture slot.
func (imp *importer) resolve(ctx context.Context, name string, desc *model3.Model3, descriptorPath string) ([]string, []string, error) {
	texturePaths := desc.TexturePaths(descriptorPath)
	textures := make([]string, 0, len(texturePaths))
	materials := make([]string, 0, len(texturePaths))

	for i, path := range texturePaths {
		resolved, err := imp.config.textureResolver(ctx, descriptorPath, path)
		if err != nil {
			return nil, nil, errors.WrapResource("resolve", "texture", path, err)
		}
		textures = append(textures, resolved)

		material, err := imp.config.materialResolver(ctx, name, i)
		if err != nil {
			return nil, nil, errors.WrapResource("resolve", "material", name, err)
		}
		materials = append(materials, material)
	}
	return textures, materials, nil
}

// countComponents sums the components over a whole subtree.
func countComponents(n *hierarchy.Node) int {
	count := 0
	n.Walk(func(node *hierarchy.Node) { count += len(node.Components) })
	return count
}
