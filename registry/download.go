package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/renameio"

	"github.com/cloudchase/oi-hub/discovery"
)

// FileSource opens repository files for download. *hub.Client implements it.
type FileSource interface {
	OpenFile(ctx context.Context, repoID, filename string) (io.ReadCloser, int64, error)
}

// Progress receives download progress. Start is called once per file,
// total is -1 when unknown.
type Progress interface {
	Start(filename string, total int64)
	Add(n int)
	Done()
}

type nopProgress struct{}

func (nopProgress) Start(string, int64) {}
func (nopProgress) Add(int)             {}
func (nopProgress) Done()               {}

// PullOptions tune Pull.
type PullOptions struct {
	// Quant selects the quantization. Empty means the quantization the
	// catalog entry was built from.
	Quant    string
	Progress Progress
}

// Pull downloads the catalog model id into the local store and records its
// manifest. Sharded models download every shard. A file is only visible in
// the store once it is complete, and a failed pull leaves the store as it
// was.
func (m *ModelManager) Pull(ctx context.Context, src FileSource, id string, opts PullOptions) (*ModelManifest, error) {
	if err := checkName(id); err != nil {
		return nil, err
	}
	entry, err := m.catalog.Lookup(id)
	if err != nil {
		return nil, err
	}

	first, err := pullFile(entry, opts.Quant)
	if err != nil {
		return nil, err
	}
	files := shardFiles(first)
	progress := opts.Progress
	if progress == nil {
		progress = nopProgress{}
	}

	prev, err := m.store.LoadManifest(id)
	if err != nil && !errors.Is(err, ErrNotInstalled) {
		m.log.Warn().Err(err).Str("model", id).Msg("replacing unreadable manifest")
	}

	dir := m.store.BlobDir(id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	var total int64
	local := make([]string, 0, len(files))
	for _, f := range files {
		dest := filepath.Join(dir, path.Base(f))
		m.log.Debug().Str("repo", entry.Repo).Str("file", f).Msg("downloading")
		n, err := fetchFile(ctx, src, entry.Repo, f, dest, progress)
		if err != nil {
			m.discard(dir, prev, local)
			return nil, err
		}
		total += n
		local = append(local, dest)
	}

	quant, ok := discovery.FileQuant(first)
	if !ok {
		quant = discovery.QuantUnknown
	}
	manifest := &ModelManifest{
		Name:         id,
		Path:         local[0],
		Files:        local,
		Size:         total,
		Repo:         entry.Repo,
		Quantization: quant,
		AddedAt:      time.Now(),
	}
	if params, ok := discovery.ParseParamBillions(entry.Repo); ok {
		manifest.Parameters = strconv.FormatFloat(params, 'f', -1, 64) + "B"
	}
	if err := m.store.SaveManifest(manifest); err != nil {
		m.discard(dir, prev, local)
		return nil, fmt.Errorf("saving manifest: %w", err)
	}
	if prev != nil {
		removeStale(prev, local)
	}
	return manifest, nil
}

// pullFile resolves the repository file to download for entry. Templates
// without a placeholder name a single quantization, and asking for another
// one is an error.
func pullFile(entry discovery.CatalogEntry, quant string) (string, error) {
	if !discovery.HasPlaceholder(entry.FilenameTemplate) {
		if quant == "" {
			return entry.FilenameTemplate, nil
		}
		have, ok := discovery.FileQuant(entry.FilenameTemplate)
		if !ok {
			have = discovery.QuantUnknown
		}
		if want, _ := discovery.ExtractQuant(quant); !strings.EqualFold(want, have) {
			return "", fmt.Errorf("%w: %s only has %s", ErrQuantUnavailable, entry.ID, have)
		}
		return entry.FilenameTemplate, nil
	}

	switch {
	case quant == "" && entry.Quant != "":
		quant = entry.Quant
	case quant == "":
		quant = discovery.PreferredQuant
	case entry.Quant != "" && entry.Quant == strings.ToLower(entry.Quant):
		// Repositories that spell quants in lowercase do so throughout.
		quant = strings.ToLower(quant)
	}
	return discovery.ExpandTemplate(entry.FilenameTemplate, quant), nil
}

// discard undoes a failed pull. Without a previous install the whole blob
// directory goes, otherwise only files the previous manifest does not own.
func (m *ModelManager) discard(dir string, prev *ModelManifest, written []string) {
	if prev == nil {
		if err := os.RemoveAll(dir); err != nil {
			m.log.Warn().Err(err).Str("dir", dir).Msg("cleaning up failed pull")
		}
		return
	}
	owned := manifestFiles(prev)
	for _, f := range written {
		if !owned[f] {
			os.Remove(f)
		}
	}
}

// removeStale deletes files of a replaced install that the new one does not
// reuse.
func removeStale(prev *ModelManifest, current []string) {
	keep := make(map[string]bool, len(current))
	for _, f := range current {
		keep[f] = true
	}
	for f := range manifestFiles(prev) {
		if !keep[f] {
			os.Remove(f)
		}
	}
}

func manifestFiles(m *ModelManifest) map[string]bool {
	files := make(map[string]bool, len(m.Files)+1)
	for _, f := range m.Files {
		files[f] = true
	}
	if m.Path != "" {
		files[m.Path] = true
	}
	return files
}

// shardFiles expands the first shard of a sharded file into every shard
// name. Other files are returned as is.
func shardFiles(first string) []string {
	shard, ok := discovery.ParseShard(first)
	if !ok || shard.Index != 1 || shard.Total <= 1 {
		return []string{first}
	}
	marker := fmt.Sprintf("-%05d-of-%05d", 1, shard.Total)
	files := make([]string, 0, shard.Total)
	for i := 1; i <= shard.Total; i++ {
		files = append(files, strings.Replace(first, marker, fmt.Sprintf("-%05d-of-%05d", i, shard.Total), 1))
	}
	return files
}

func fetchFile(ctx context.Context, src FileSource, repo, file, dest string, progress Progress) (int64, error) {
	body, size, err := src.OpenFile(ctx, repo, file)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	pending, err := renameio.TempFile(filepath.Dir(dest), dest)
	if err != nil {
		return 0, err
	}
	defer pending.Cleanup()

	progress.Start(file, size)
	n, err := io.Copy(pending, &progressReader{r: body, p: progress})
	progress.Done()
	if err != nil {
		return 0, fmt.Errorf("downloading %s: %w", file, err)
	}
	if size >= 0 && n != size {
		return 0, fmt.Errorf("downloading %s: got %d of %d bytes", file, n, size)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return 0, err
	}
	return n, nil
}

type progressReader struct {
	r io.Reader
	p Progress
}

func (pr *progressReader) Read(b []byte) (int, error) {
	n, err := pr.r.Read(b)
	if n > 0 {
		pr.p.Add(n)
	}
	return n, err
}
