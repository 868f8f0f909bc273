// Package middleware provides the HTTP middleware for the filesystem server.
//
// Middleware stack includes:
//   - Recovery: Panic recovery with a JSON error body and a zap log entry
//   - CORS: Cross-origin resource sharing with configurable origins
//   - RateLimit: Per-IP token bucket rate limiting with idle eviction
//   - MaxBodySize: Request body cap
//
// Rate Limiting:
//   - Per-IP tracking; limiters idle longer than IdleTTL are dropped
//   - Token bucket algorithm (golang.org/x/time/rate)
//   - Global rate limiting option
//
// Error bodies use the same {"detail", "kind"} shape as the API handlers.
//
// Example Usage:
//
//	router.Use(middleware.Recovery(logger))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
