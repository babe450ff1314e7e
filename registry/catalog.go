package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio"

	"github.com/cloudchase/oi-hub/discovery"
)

// Catalog is the on-disk form of the dynamic model catalog.
type Catalog struct {
	Models []discovery.CatalogEntry `json:"models"`
}

// CatalogStore reads and writes the catalog cache file.
type CatalogStore struct {
	path string
}

// NewCatalogStore returns a store for the cache file at path.
func NewCatalogStore(path string) *CatalogStore {
	return &CatalogStore{path: path}
}

// Path returns the cache file path.
func (c *CatalogStore) Path() string { return c.path }

// Save replaces the cache with entries, keeping their order. Readers never
// observe a partially written file.
func (c *CatalogStore) Save(entries []discovery.CatalogEntry) error {
	if entries == nil {
		entries = []discovery.CatalogEntry{}
	}
	data, err := json.MarshalIndent(Catalog{Models: entries}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating catalog directory: %w", err)
	}
	return renameio.WriteFile(c.path, append(data, '\n'), 0o644)
}

// Load reads the cached entries.
func (c *CatalogStore) Load() ([]discovery.CatalogEntry, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoCatalog
		}
		return nil, err
	}
	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("corrupt catalog %s: %w", c.path, err)
	}
	return cat.Models, nil
}

// Lookup returns the cached entry with the given id.
func (c *CatalogStore) Lookup(id string) (discovery.CatalogEntry, error) {
	entries, err := c.Load()
	if err != nil {
		return discovery.CatalogEntry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return discovery.CatalogEntry{}, fmt.Errorf("%w: %s", ErrNotInCatalog, id)
}
