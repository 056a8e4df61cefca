// Package httputil provides shared HTTP client construction utilities
// for the actor. It centralizes timeout defaults and client creation so
// that every outbound call uses consistent configuration, and wires
// OpenTelemetry instrumentation into the transport.
package httputil

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Standard timeout defaults used across the actor.
const (
	// DefaultSearchTimeout is the HTTP timeout for Sketchfab search calls.
	// These are single GET requests against a fast read endpoint.
	DefaultSearchTimeout = 30 * time.Second

	// DefaultTranslateTimeout is the HTTP timeout for Gemini translation
	// calls. Model inference can take noticeably longer than a plain API
	// read, so it uses a longer timeout.
	DefaultTranslateTimeout = 60 * time.Second
)

// NewHTTPClient returns an *http.Client configured with the given timeout
// and an otelhttp-instrumented transport. Pass one of the Default*Timeout
// constants, or a custom duration.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}
