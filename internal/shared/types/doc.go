// Package types defines the request bodies accepted by the HTTP API.
//
// Each operation has its own struct with gin binding tags, so malformed or
// incomplete requests are rejected before any handler logic runs. Optional
// fields whose zero value is meaningful (max_size, create_dirs, content) are
// pointers and expose an ...OrDefault accessor.
//
// Example Usage:
//
//	var req types.ReadFileRequest
//	if err := c.ShouldBindJSON(&req); err != nil { ... }
//	limit := req.MaxSizeOrDefault(cfg.Filesystem.MaxReadSize)
package types
