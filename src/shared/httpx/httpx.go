package httpx

import (
	"net/http"
	"time"
)

// NewDefault returns an HTTP client with the given total request timeout.
func NewDefault(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
