// Package filesystem implements the sandboxed file operations.
//
// This package is organized into specialized modules:
//   - basic: Read, Write and Delete
//   - directory: List (bounded recursion, hidden filtering) and Create
//   - metadata: Stat and Entry construction (permissions, MIME guess)
//   - search: Find, a doublestar glob over a fastwalk traversal
//   - encoding: text encodings for Read and Write
//
// All operations:
//   - Resolve the caller's path through the sandbox before any I/O
//   - Return *fserr.Error values carrying a stable failure kind
//   - Never retry and never share mutable state between calls
//
// Listing order follows directory enumeration order and is unspecified.
//
// Example Usage:
//
//	ops := filesystem.NewFilesystemOps(sb, afero.NewOsFs(), logger, metrics, filesystem.DefaultLimits())
//	fs := filesystem.NewProvider(ops)
//	res, err := fs.Basic.Read(ctx, "/workspace/a.txt", "utf-8", filesystem.DefaultMaxReadSize)
package filesystem
