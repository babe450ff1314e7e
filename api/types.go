package api

import "github.com/cloudchase/oi-hub/discovery"

// CatalogResponse is the JSON response for GET /api/catalog.
type CatalogResponse struct {
	Models []discovery.CatalogEntry `json:"models"`
}

// ModelInfo describes a downloaded model in list responses.
type ModelInfo struct {
	Name         string `json:"name"`
	Repo         string `json:"repo,omitempty"`
	Size         int64  `json:"size"`
	Parameters   string `json:"parameters,omitempty"`
	Quantization string `json:"quantization,omitempty"`
}

// ListResponse is the JSON response for GET /api/tags.
type ListResponse struct {
	Models []ModelInfo `json:"models"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DeleteRequest is the JSON body for DELETE /api/delete.
type DeleteRequest struct {
	Name string `json:"name"`
}
