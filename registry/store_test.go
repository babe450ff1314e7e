package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudchase/oi-hub/discovery"
)

func newTestManager(t *testing.T) *ModelManager {
	t.Helper()
	m, err := NewModelManager(t.TempDir(), "")
	require.NoError(t, err)
	return m.WithLogger(zerolog.Nop())
}

func TestStoreManifestLifecycle(t *testing.T) {
	m := newTestManager(t)
	s := m.Store()

	require.NoError(t, os.MkdirAll(s.BlobDir("qwen3-8b"), 0o755))
	blob := filepath.Join(s.BlobDir("qwen3-8b"), "Qwen3-8B-Q4_K_M.gguf")
	require.NoError(t, os.WriteFile(blob, []byte("GGUF"), 0o644))

	added := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, name := range []string{"qwen3-8b", "llama-3-8b"} {
		require.NoError(t, s.SaveManifest(&ModelManifest{Name: name, Path: blob, Size: 4, AddedAt: added}))
	}

	got, err := m.GetModel("qwen3-8b")
	require.NoError(t, err)
	assert.Equal(t, blob, got.Path)
	assert.True(t, added.Equal(got.AddedAt))

	list, err := m.ListModels()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "llama-3-8b", list[0].Name)

	require.NoError(t, m.RemoveModel("qwen3-8b"))
	_, err = os.Stat(s.BlobDir("qwen3-8b"))
	assert.True(t, os.IsNotExist(err))

	_, err = m.GetModel("qwen3-8b")
	assert.ErrorIs(t, err, ErrNotInstalled)
	assert.ErrorIs(t, m.RemoveModel("qwen3-8b"), ErrNotInstalled)
}

func TestStoreRejectsBadNames(t *testing.T) {
	s := newTestManager(t).Store()
	for _, name := range []string{"", "..", "a/b", `a\b`} {
		assert.ErrorIs(t, s.SaveManifest(&ModelManifest{Name: name}), ErrInvalidName, name)
		_, err := s.LoadManifest(name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestListManifestsSkipsCorrupt(t *testing.T) {
	s := newTestManager(t).Store()
	require.NoError(t, s.SaveManifest(&ModelManifest{Name: "ok"}))
	require.NoError(t, os.WriteFile(filepath.Join(s.ManifestsDir(), "bad.json"), []byte("{"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(s.ManifestsDir(), "notes.txt"), []byte("x"), 0o644))

	list, err := s.ListManifests()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ok", list[0].Name)
}

func TestListManifestsMissingDir(t *testing.T) {
	list, err := NewStore(filepath.Join(t.TempDir(), "nowhere")).ListManifests()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCatalogStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hf_models.json")
	c := NewCatalogStore(path)

	_, err := c.Load()
	assert.ErrorIs(t, err, ErrNoCatalog)

	entries := []discovery.CatalogEntry{
		{ID: "llama-3-2-1b", Repo: "bartowski/Llama-3.2-1B-Instruct-GGUF", MinVRAMGB: 1.1, Tags: []string{"dynamic", "bartowski"}},
		{ID: "qwen3-8b", Repo: "Qwen/Qwen3-8B-GGUF", MinVRAMGB: 5.3, Tags: []string{"dynamic", "qwen"}},
	}
	require.NoError(t, c.Save(entries))

	got, err := c.Load()
	require.NoError(t, err)
	assert.Equal(t, entries, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"models": [`)
	assert.Contains(t, string(raw), `"min_vram_gb": 1.1`)

	e, err := c.Lookup("qwen3-8b")
	require.NoError(t, err)
	assert.Equal(t, "Qwen/Qwen3-8B-GGUF", e.Repo)

	_, err = c.Lookup("missing")
	assert.ErrorIs(t, err, ErrNotInCatalog)
}

func TestCatalogStoreEmpty(t *testing.T) {
	c := NewCatalogStore(filepath.Join(t.TempDir(), "hf_models.json"))
	require.NoError(t, c.Save(nil))

	raw, err := os.ReadFile(c.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"models": []}`, string(raw))
}
