package registry

import "errors"

var (
	// ErrNotInstalled is returned for a model name with no local manifest.
	ErrNotInstalled = errors.New("model not installed")

	// ErrNotInCatalog is returned when a catalog id is unknown.
	ErrNotInCatalog = errors.New("model not in catalog")

	// ErrNoCatalog is returned when the catalog cache has not been fetched.
	ErrNoCatalog = errors.New("no catalog cache, run 'oi-hub fetch' first")

	// ErrQuantUnavailable is returned when a catalog model does not ship the
	// requested quantization.
	ErrQuantUnavailable = errors.New("quantization not available")

	// ErrInvalidName is returned for names that cannot be used as file names.
	ErrInvalidName = errors.New("invalid model name")
)
