package fortune

import (
	"errors"
	"fmt"
)

var (
	// ErrNoAPIKey indicates the upstream API key is not configured.
	ErrNoAPIKey = errors.New("OPENAI_API_KEY is not configured")

	// ErrNoResponseText indicates the upstream answered but carried no output_text.
	ErrNoResponseText = errors.New("no response text")
)

// APIError is a non-success answer from the upstream API.
// Body keeps the raw payload for server-side logs only.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openai api error: status %d", e.StatusCode)
}

// IsUpstreamError reports whether err should surface as a bad gateway.
func IsUpstreamError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) || errors.Is(err, ErrNoResponseText)
}
