package confluence

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// ProactiveRate is the steady request rate kept below Atlassian's
// per-client ceiling.
const ProactiveRate = 5.0

// HeaderRetryAfter is the back-off header sent with 429 responses.
const HeaderRetryAfter = "Retry-After"

// RateLimiter throttles outgoing requests proactively and surfaces
// service-imposed back-off as RateLimitError.
type RateLimiter struct {
	bucket *rate.Limiter
}

// NewRateLimiter creates a limiter with proactive throttling.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(ProactiveRate), 1),
	}
}

// Wait blocks until it is safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.bucket.Wait(ctx)
}

// CheckResponse returns a RateLimitError when the response says to back
// off; nil otherwise.
func (r *RateLimiter) CheckResponse(resp *http.Response) error {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return nil
	}

	retryAfter := time.Minute
	if header := resp.Header.Get(HeaderRetryAfter); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil {
			retryAfter = time.Duration(seconds) * time.Second
		}
	}
	return &RateLimitError{RetryAfter: retryAfter}
}
