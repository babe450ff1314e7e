package hub

import "errors"

// Sentinel errors for registry calls. Use errors.Is to test for them.
var (
	// ErrNetwork indicates a transport failure, including timeouts.
	ErrNetwork = errors.New("hub: network error")

	// ErrNotFound indicates the repository or file does not exist.
	ErrNotFound = errors.New("hub: not found")

	// ErrBadResponse indicates an unexpected status or an unparseable body.
	ErrBadResponse = errors.New("hub: invalid registry response")
)
