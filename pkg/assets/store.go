// Package assets is the persistence boundary of the importer: it stages
// moc asset and prefab artifacts, maps opaque GUIDs to project-relative
// paths, tracks dirty artifacts, and commits pending writes. The store
// is an explicit context object passed into every operation that needs
// persistence; there is no ambient global asset database.
//
// Storage goes through viant/afs, so a project root can be a plain
// directory ("/work/project" or "file://...") or an in-memory scheme
// ("mem://localhost/project") in tests.
package assets

import (
	"bytes"
	"context"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/viant/afs"
	"golang.org/x/text/unicode/norm"

	"github.com/mocforge/mocforge/pkg/errors"
	"github.com/mocforge/mocforge/pkg/hierarchy"
	"github.com/mocforge/mocforge/pkg/logging"
	"github.com/mocforge/mocforge/pkg/moc"
)

// indexPath is the project-relative location of the GUID index.
const indexPath = ".mocforge/guids.yaml"

// filePermissions is the mode for committed artifacts.
const filePermissions = os.FileMode(0o644)

// Store handles persisted artifacts for imported models.
type Store interface {
	// CreateAsset stages the moc asset artifact for a model and returns
	// its GUID (assigned on first create, stable afterwards).
	CreateAsset(ctx context.Context, name string, m *moc.Moc) (GUID, error)

	// CreatePrefab stages the prefab artifact for a model hierarchy and
	// returns its GUID.
	CreatePrefab(ctx context.Context, name string, model *hierarchy.Model) (GUID, error)

	// LoadAsset loads a committed moc asset by GUID.
	LoadAsset(ctx context.Context, guid GUID) (*moc.Moc, error)

	// LoadPrefab loads a committed prefab by GUID.
	LoadPrefab(ctx context.Context, guid GUID) (*hierarchy.Model, error)

	// Lookup returns the GUID assigned to a project-relative path.
	Lookup(path string) (GUID, bool)

	// PathForGUID returns the project-relative path of a GUID.
	PathForGUID(guid GUID) (string, bool)

	// Instantiate deep-clones a loaded prefab into a transient, mutable
	// hierarchy. The caller owns the instance and must Destroy it.
	Instantiate(model *hierarchy.Model) (*hierarchy.Model, error)

	// Destroy releases a transient hierarchy obtained from Instantiate.
	// Safe to call more than once.
	Destroy(model *hierarchy.Model)

	// LiveInstances reports how many transient hierarchies are still
	// alive. Zero after every import completes.
	LiveInstances() int

	// MarkDirty flags a staged artifact for the next SaveAll.
	MarkDirty(path string)

	// SaveAll commits every dirty artifact and the GUID index.
	SaveAll(ctx context.Context) error
}

// store is the afs-backed implementation of Store.
type store struct {
	fs       afs.Service
	rootURL  string
	registry *hierarchy.Registry
	codec    *hierarchy.Codec

	mu     sync.Mutex
	guids  map[string]GUID            // project-relative path -> GUID
	staged map[string][]byte          // project-relative path -> pending content
	dirty  map[string]bool            // project-relative path -> needs commit
	live   map[*hierarchy.Model]bool  // transient instances not yet destroyed
}

// Compile-time interface check to ensure proper implementation.
var _ Store = (*store)(nil)

// Option configures a Store.
type Option func(*store) error

// WithFS sets the afs service used for storage.
func WithFS(fs afs.Service) Option {
	return func(s *store) error {
		if fs == nil {
			return errors.New("fs cannot be nil")
		}
		s.fs = fs
		return nil
	}
}

// WithRegistry sets the component registry used by the prefab codec and
// for instantiation clones.
func WithRegistry(registry *hierarchy.Registry) Option {
	return func(s *store) error {
		if registry == nil {
			return errors.New("registry cannot be nil")
		}
		s.registry = registry
		s.codec = hierarchy.NewCodec(registry)
		return nil
	}
}

// New opens a store rooted at the given URL, loading the GUID index if
// one exists.
func New(ctx context.Context, rootURL string, opts ...Option) (Store, error) {
	if rootURL == "" {
		return nil, errors.NewConfigError("assets", "project root URL is required", nil)
	}

	registry := hierarchy.DefaultRegistry()
	s := &store{
		fs:       afs.New(),
		rootURL:  strings.TrimRight(rootURL, "/"),
		registry: registry,
		codec:    hierarchy.NewCodec(registry),
		guids:    make(map[string]GUID),
		staged:   make(map[string][]byte),
		dirty:    make(map[string]bool),
		live:     make(map[*hierarchy.Model]bool),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if err := s.loadIndex(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// AssetPath returns the project-relative path of a model's moc asset.
// Names normalize to NFC so the same model yields the same file name
// regardless of how its (frequently non-ASCII) name was composed.
func AssetPath(name string) string {
	return norm.NFC.String(name) + ".asset"
}

// PrefabPath returns the project-relative path of a model's prefab.
func PrefabPath(name string) string {
	return norm.NFC.String(name) + ".prefab"
}

// CreateAsset stages the moc asset artifact for a model.
func (s *store) CreateAsset(ctx context.Context, name string, m *moc.Moc) (GUID, error) {
	data, err := encodeMocAsset(m)
	if err != nil {
		return "", err
	}
	return s.stage(AssetPath(name), data), nil
}

// CreatePrefab stages the prefab artifact for a model hierarchy.
func (s *store) CreatePrefab(ctx context.Context, name string, model *hierarchy.Model) (GUID, error) {
	data, err := s.codec.MarshalModel(model)
	if err != nil {
		return "", err
	}
	return s.stage(PrefabPath(name), data), nil
}

// LoadAsset loads a committed moc asset by GUID.
func (s *store) LoadAsset(ctx context.Context, guid GUID) (*moc.Moc, error) {
	data, err := s.read(ctx, guid, "asset")
	if err != nil {
		return nil, err
	}
	return decodeMocAsset(data)
}

// LoadPrefab loads a committed prefab by GUID.
func (s *store) LoadPrefab(ctx context.Context, guid GUID) (*hierarchy.Model, error) {
	data, err := s.read(ctx, guid, "prefab")
	if err != nil {
		return nil, err
	}
	return s.codec.UnmarshalModel(data)
}

// Lookup returns the GUID assigned to a project-relative path.
func (s *store) Lookup(path string) (GUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	guid, ok := s.guids[path]
	return guid, ok
}

// PathForGUID returns the project-relative path of a GUID.
func (s *store) PathForGUID(guid GUID) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for path, g := range s.guids {
		if g == guid {
			return path, true
		}
	}
	return "", false
}

// Instantiate deep-clones a prefab into a transient hierarchy.
func (s *store) Instantiate(model *hierarchy.Model) (*hierarchy.Model, error) {
	clone, err := s.registry.CloneModel(model)
	if err != nil {
		return nil, errors.WrapResource("instantiate", "prefab", model.Name, err)
	}
	s.mu.Lock()
	s.live[clone] = true
	s.mu.Unlock()
	return clone, nil
}

// Destroy releases a transient hierarchy. The tree is detached so late
// references fail loudly rather than silently reading stale data.
func (s *store) Destroy(model *hierarchy.Model) {
	if model == nil {
		return
	}
	s.mu.Lock()
	delete(s.live, model)
	s.mu.Unlock()
	model.Root = nil
}

// LiveInstances reports how many transient hierarchies are still alive.
func (s *store) LiveInstances() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// MarkDirty flags a staged artifact for the next SaveAll.
func (s *store) MarkDirty(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.staged[path]; ok {
		s.dirty[path] = true
	}
}

// SaveAll commits every dirty artifact and the GUID index.
func (s *store) SaveAll(ctx context.Context) error {
	s.mu.Lock()
	paths := make([]string, 0, len(s.dirty))
	for path, isDirty := range s.dirty {
		if isDirty {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	s.mu.Unlock()

	for _, path := range paths {
		s.mu.Lock()
		data := s.staged[path]
		s.mu.Unlock()

		if err := s.fs.Upload(ctx, s.url(path), filePermissions, bytes.NewReader(data)); err != nil {
			return errors.WrapIO("write", path, err)
		}

		s.mu.Lock()
		delete(s.dirty, path)
		s.mu.Unlock()

		logging.FromContext(ctx).Debug().Str("path", path).Msg("Committed artifact")
	}

	return s.saveIndex(ctx)
}

// stage records pending artifact content, assigning a GUID on first
// sight of the path, and marks it dirty.
func (s *store) stage(path string, data []byte) GUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	guid, ok := s.guids[path]
	if !ok {
		guid = NewGUID(path, data)
		s.guids[path] = guid
	}
	s.staged[path] = data
	s.dirty[path] = true
	return guid
}

// read resolves a GUID and downloads the committed artifact.
func (s *store) read(ctx context.Context, guid GUID, resource string) ([]byte, error) {
	path, ok := s.PathForGUID(guid)
	if !ok {
		return nil, errors.NewNotFoundError(resource, string(guid))
	}
	data, err := s.fs.DownloadWithURL(ctx, s.url(path))
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return data, nil
}

// url joins a project-relative path onto the store root.
func (s *store) url(path string) string {
	return s.rootURL + "/" + path
}

// indexDoc is the YAML document shape of the GUID index.
type indexDoc struct {
	Artifacts []indexEntry `yaml:"artifacts"`
}

type indexEntry struct {
	GUID GUID   `yaml:"guid"`
	Path string `yaml:"path"`
}

// loadIndex reads the GUID index. A missing index is a fresh project.
func (s *store) loadIndex(ctx context.Context) error {
	exists, err := s.fs.Exists(ctx, s.url(indexPath))
	if err != nil || !exists {
		return nil
	}

	data, err := s.fs.DownloadWithURL(ctx, s.url(indexPath))
	if err != nil {
		return errors.WrapIO("read", indexPath, err)
	}

	var doc indexDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.WrapParse("yaml", indexPath, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range doc.Artifacts {
		s.guids[entry.Path] = entry.GUID
	}
	return nil
}

// saveIndex writes the GUID index.
func (s *store) saveIndex(ctx context.Context) error {
	s.mu.Lock()
	doc := indexDoc{}
	paths := make([]string, 0, len(s.guids))
	for path := range s.guids {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		doc.Artifacts = append(doc.Artifacts, indexEntry{GUID: s.guids[path], Path: path})
	}
	s.mu.Unlock()

	data, err := yaml.Marshal(doc)
	if err != nil {
		return errors.WrapResource("marshal", "guid index", "", err)
	}
	if err := s.fs.Upload(ctx, s.url(indexPath), filePermissions, bytes.NewReader(data)); err != nil {
		return errors.WrapIO("write", indexPath, err)
	}
	return nil
}
