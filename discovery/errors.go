package discovery

import "errors"

var (
	// ErrRegistryUnavailable is returned by Fetch when every planned query
	// failed at the transport level, leaving nothing to build a catalog from.
	ErrRegistryUnavailable = errors.New("discovery: registry unavailable")

	// ErrNoArtifacts marks a repository without a qualifying weight file.
	ErrNoArtifacts = errors.New("discovery: no qualifying artifacts")

	// ErrEmptyKeyword is returned by Search for a blank keyword.
	ErrEmptyKeyword = errors.New("discovery: empty search keyword")
)
