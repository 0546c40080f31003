package release

import (
	"fmt"

	"github.com/blendget/blendget/internal/platform"
)

// NetworkError reports a connection-level failure talking to the upstream
// host. It is transient but never retried; the caller reports and exits.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NotFoundError reports an upstream HTTP 404.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: not found (404)", e.URL)
}

// ServerError reports an upstream 5xx response.
type ServerError struct {
	URL        string
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: upstream server error (%d)", e.URL, e.StatusCode)
}

// VersionNotFoundError reports that no entry matched the requested token on
// the requested platform. It names exactly what was searched, since this is
// the most common user-facing failure.
type VersionNotFoundError struct {
	Token    string
	Platform platform.OS
	Bits     platform.Bits
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("no release matching %q for %s %d-bit in the official repositories",
		e.Token, e.Platform, e.Bits)
}
