package registry

import "time"

// ModelManifest describes a downloaded model.
type ModelManifest struct {
	Name string `json:"name"`

	// Path is the file a runtime loads. For sharded models it is the first
	// shard; the others sit next to it.
	Path  string   `json:"path"`
	Files []string `json:"files,omitempty"`
	Size  int64    `json:"size"`

	Repo         string    `json:"repo,omitempty"`
	Parameters   string    `json:"parameters,omitempty"`
	Quantization string    `json:"quantization,omitempty"`
	AddedAt      time.Time `json:"added_at"`
}
