package remote

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// StatusError is a non-200 response from a template host.
type StatusError struct {
	URL        string
	StatusCode int
	Message    string

	// RateLimitRemaining is the X-RateLimit-Remaining header, if sent.
	RateLimitRemaining string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: HTTP %d: %s", e.URL, e.StatusCode, e.Message)
}

// IsRateLimited reports whether err is a rate limit response. 429 always is;
// 403 only when the host says so through the remaining-quota header or the
// message, since 403 is otherwise a permission failure.
func IsRateLimited(err error) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	switch statusErr.StatusCode {
	case http.StatusTooManyRequests:
		return true
	case http.StatusForbidden:
		return statusErr.RateLimitRemaining == "0" || isRateLimitMessage(statusErr.Message)
	default:
		return false
	}
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

func isRateLimitMessage(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "abuse detection")
}
