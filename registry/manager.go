package registry

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cloudchase/oi-hub/discovery"
)

// ModelManager provides high-level operations over the local model store
// and the catalog cache.
type ModelManager struct {
	store   *Store
	catalog *CatalogStore
	log     zerolog.Logger
}

// NewModelManager creates a ModelManager and ensures the storage directories
// exist. catalogPath locates the catalog cache; empty means the default
// file under baseDir.
func NewModelManager(baseDir, catalogPath string) (*ModelManager, error) {
	store := NewStore(baseDir)
	if err := store.EnsureDirs(); err != nil {
		return nil, err
	}
	if catalogPath == "" {
		catalogPath = DefaultCatalogPath(baseDir)
	}
	return &ModelManager{
		store:   store,
		catalog: NewCatalogStore(catalogPath),
		log:     log.Logger,
	}, nil
}

// DefaultBaseDir returns the default base directory (~/.oi).
func DefaultBaseDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".oi")
}

// DefaultCatalogPath returns the catalog cache path under baseDir.
func DefaultCatalogPath(baseDir string) string {
	return filepath.Join(baseDir, "hf_models.json")
}

// WithLogger replaces the manager's logger.
func (m *ModelManager) WithLogger(l zerolog.Logger) *ModelManager {
	m.log = l
	return m
}

// Store returns the underlying model store.
func (m *ModelManager) Store() *Store { return m.store }

// Catalog returns the catalog cache.
func (m *ModelManager) Catalog() *CatalogStore { return m.catalog }

// SaveCatalog replaces the catalog cache.
func (m *ModelManager) SaveCatalog(entries []discovery.CatalogEntry) error {
	if err := m.catalog.Save(entries); err != nil {
		return err
	}
	m.log.Debug().Str("path", m.catalog.Path()).Int("models", len(entries)).Msg("catalog saved")
	return nil
}

// LoadCatalog returns the cached catalog entries.
func (m *ModelManager) LoadCatalog() ([]discovery.CatalogEntry, error) {
	return m.catalog.Load()
}

// GetModel retrieves a model manifest by name.
func (m *ModelManager) GetModel(name string) (*ModelManifest, error) {
	return m.store.LoadManifest(name)
}

// ListModels returns all downloaded model manifests.
func (m *ModelManager) ListModels() ([]ModelManifest, error) {
	return m.store.ListManifests()
}

// RemoveModel deletes a model's manifest and files.
func (m *ModelManager) RemoveModel(name string) error {
	if err := m.store.DeleteManifest(name); err != nil {
		return err
	}
	m.log.Debug().Str("model", name).Msg("model removed")
	return nil
}
