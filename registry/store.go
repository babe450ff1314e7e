package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/renameio"
)

// Store manages on-disk storage for model manifests and blobs.
//
//	<baseDir>/models/manifests/<name>.json
//	<baseDir>/models/blobs/<name>/<file>
type Store struct {
	baseDir string
}

// NewStore creates a Store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// ModelsDir returns the top-level models directory.
func (s *Store) ModelsDir() string { return filepath.Join(s.baseDir, "models") }

// ManifestsDir returns the directory where model manifests are stored.
func (s *Store) ManifestsDir() string { return filepath.Join(s.ModelsDir(), "manifests") }

// BlobsDir returns the directory where model files are stored.
func (s *Store) BlobsDir() string { return filepath.Join(s.ModelsDir(), "blobs") }

// BlobDir returns the directory holding one model's files.
func (s *Store) BlobDir(name string) string { return filepath.Join(s.BlobsDir(), name) }

// EnsureDirs creates the required directory structure if it does not exist.
func (s *Store) EnsureDirs() error {
	for _, d := range []string{s.ManifestsDir(), s.BlobsDir()} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// SaveManifest atomically writes a model manifest.
func (s *Store) SaveManifest(m *ModelManifest) error {
	if err := checkName(m.Name); err != nil {
		return err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return renameio.WriteFile(s.manifestPath(m.Name), data, 0o644)
}

// LoadManifest reads a model manifest by name.
func (s *Store) LoadManifest(name string) (*ModelManifest, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.manifestPath(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotInstalled, name)
		}
		return nil, err
	}
	var m ModelManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("corrupt manifest %s: %w", name, err)
	}
	return &m, nil
}

// ListManifests returns every readable manifest, sorted by name.
func (s *Store) ListManifests() ([]ModelManifest, error) {
	entries, err := os.ReadDir(s.ManifestsDir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var manifests []ModelManifest
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		m, err := s.LoadManifest(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			continue
		}
		manifests = append(manifests, *m)
	}
	sort.Slice(manifests, func(i, j int) bool { return manifests[i].Name < manifests[j].Name })
	return manifests, nil
}

// DeleteManifest removes a model's manifest and its blob directory.
func (s *Store) DeleteManifest(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.Remove(s.manifestPath(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotInstalled, name)
		}
		return err
	}
	return os.RemoveAll(s.BlobDir(name))
}

func (s *Store) manifestPath(name string) string {
	return filepath.Join(s.ManifestsDir(), name+".json")
}

// checkName rejects names that would escape the store directories.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
