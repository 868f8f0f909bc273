// Package config provides 12-factor configuration management for the filesystem server.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
// The loaded value is passed down explicitly; core packages never read the
// environment themselves.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Filesystem: Allowed roots and operation limits
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Serving %v on %s:%s\n", cfg.Filesystem.AllowedPaths, cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - FILESYSTEM_ALLOWED_PATHS (comma-separated, default "/workspace,/tmp")
//   - FILESYSTEM_MAX_READ_SIZE, FILESYSTEM_MAX_DEPTH, FILESYSTEM_FIND_LIMIT
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
