// Package main is the entry point for the sandboxed filesystem server.
//
// The server exposes read, write, list, find, delete, mkdir and stat over a
// JSON HTTP API. Every path is confined to the allowed roots configured at
// startup.
//
// Configuration:
//   - Environment variables (FILESYSTEM_ALLOWED_PATHS, PORT, LOG_LEVEL, ...)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Serve /workspace and /tmp on port 8000
//	./server
//
//	# Custom roots and port, development logging
//	FILESYSTEM_ALLOWED_PATHS=/srv/data,/var/tmp ./server -port 9000 -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
