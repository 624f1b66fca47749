package confluence

import (
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/conflu-cli/internal/core/domain"
)

// APIError represents a Confluence API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("confluence: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Is maps conflict and not-found responses onto the domain sentinels so
// callers can use errors.Is without knowing the transport.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrConflict:
		return e.StatusCode == 409
	case domain.ErrNotFound:
		return e.StatusCode == 404
	default:
		return false
	}
}

// newAPIError builds an APIError from a response body, keeping the message
// readable when the body is long or not textual.
func newAPIError(status int, body []byte, url string) *APIError {
	message := string(body)
	if len(message) > 200 {
		message = message[:200]
	}
	return &APIError{StatusCode: status, Message: message, URL: url}
}

// RateLimitError indicates the service asked us to back off.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("confluence: rate limited, retry after %s", e.RetryAfter)
}

// IsNotFound checks if the error indicates a missing resource.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateErr *RateLimitError
	return errors.As(err, &rateErr)
}
