// Package sandbox restricts filesystem access to a fixed set of allowed roots.
//
// Resolution order is the security property of the whole service:
//
//  1. Relative input is anchored at the process working directory
//  2. The path is canonicalized: "." and ".." are applied and every symbolic
//     link is replaced by its target, component by component
//  3. Only the canonical form is compared against the roots, component-wise
//
// Checking containment on the raw string, or resolving after the check,
// reopens path traversal through ".." segments and symlinks.
//
// Paths that do not exist yet (write and mkdir targets) resolve as far as
// the filesystem allows and keep the remainder lexically.
//
// Comparison is case-sensitive and byte-exact; no Unicode normalization is
// applied.
//
// Example Usage:
//
//	sb, err := sandbox.New([]string{"/workspace", "/tmp"})
//	p, err := sb.Resolve("/workspace/../etc/passwd") // fserr.ErrDenied
package sandbox
