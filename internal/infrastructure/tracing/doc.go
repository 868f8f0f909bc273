/*
Package tracing provides per-request correlation and access logging.

# Overview

Every HTTP request gets a ULID request ID (or keeps the one supplied in the
X-Request-ID header). The ID is stored in the request context, echoed in the
response and attached to the span that the collector logs once the request
finishes.

# Usage

	tracer := tracing.New("filesystem", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	// Inside a handler
	reqID := tracing.GetRequestID(c.Request.Context())

Spans are buffered (1000) and written by a single collector goroutine. When
the buffer is full spans are dropped with a warning.
*/
package tracing
