package discovery

import "github.com/cloudchase/oi-hub/hub"

// RawFile is one entry of a repository manifest.
type RawFile struct {
	Path string
	Size int64
}

// FromSiblings converts a hub file listing. Missing or negative sizes
// become zero.
func FromSiblings(siblings []hub.Sibling) []RawFile {
	files := make([]RawFile, 0, len(siblings))
	for _, s := range siblings {
		files = append(files, RawFile{Path: s.RFilename, Size: max(s.Size, 0)})
	}
	return files
}

// CandidateModel is a search hit annotated with its size estimate.
type CandidateModel struct {
	RepoID    string
	DisplayID string
	Downloads int
	Likes     int

	// ParamsB and FootprintGB are nil when the repository id carries no
	// parameter count.
	ParamsB     *float64
	FootprintGB *float64
}

// CatalogEntry is one model of the persisted catalog file.
type CatalogEntry struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Repo             string   `json:"repo"`
	FilenameTemplate string   `json:"filename_template"`
	// Quant expands FilenameTemplate back into the representative file.
	// Empty when the template has no placeholder.
	Quant       string   `json:"quant,omitempty"`
	MinVRAMGB   float64  `json:"min_vram_gb"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// SearchResult is one advisory search hit.
type SearchResult struct {
	Repo      string       `json:"repo"`
	Name      string       `json:"name"`
	Downloads int          `json:"downloads"`
	EstSizeGB *float64     `json:"est_size_gb"`
	Format    WeightFormat `json:"format"`
}
