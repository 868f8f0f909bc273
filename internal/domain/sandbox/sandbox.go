package sandbox

import (
	"fmt"
	"os"
	"strings"

	"github.com/GriffinCanCode/AgentOS/filesystem/internal/shared/fserr"
)

// Sandbox decides whether a caller-supplied path may be touched at all.
// It is immutable after New and safe for concurrent use.
type Sandbox struct {
	roots []string
}

// ResolvedPath is a canonical absolute path that passed containment
type ResolvedPath struct {
	path string
	root string
}

// String returns the canonical path
func (p ResolvedPath) String() string {
	return p.path
}

// Root returns the allowed root containing the path
func (p ResolvedPath) Root() string {
	return p.root
}

// IsRoot reports whether the path is the allowed root itself
func (p ResolvedPath) IsRoot() bool {
	return p.path == p.root
}

// New canonicalizes the configured roots. Blank entries are dropped and
// duplicates collapse onto the first occurrence.
func New(roots []string) (*Sandbox, error) {
	seen := make(map[string]bool, len(roots))
	canonical := make([]string, 0, len(roots))

	for _, raw := range roots {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		root, err := canonicalize(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed root %q: %w", raw, err)
		}
		if seen[root] {
			continue
		}
		seen[root] = true
		canonical = append(canonical, root)
	}

	if len(canonical) == 0 {
		return nil, fmt.Errorf("at least one allowed root is required")
	}

	return &Sandbox{roots: canonical}, nil
}

// Roots returns a copy of the canonical allowed roots in configured order
func (s *Sandbox) Roots() []string {
	return append([]string(nil), s.roots...)
}

// Resolve canonicalizes raw and accepts it only when it lies inside an
// allowed root. Canonicalization always happens before the containment test.
func (s *Sandbox) Resolve(raw string) (ResolvedPath, error) {
	if raw == "" {
		return ResolvedPath{}, fserr.New(fserr.KindInvalid, "resolve", raw, "Invalid path: path is empty")
	}
	if strings.IndexByte(raw, 0) >= 0 {
		return ResolvedPath{}, fserr.New(fserr.KindInvalid, "resolve", raw, "Invalid path: embedded null byte")
	}

	path, err := canonicalize(raw)
	if err != nil {
		return ResolvedPath{}, fserr.Wrap(fserr.KindInvalid, "resolve", raw, "Invalid path", err)
	}

	for _, root := range s.roots {
		if within(path, root) {
			return ResolvedPath{path: path, root: root}, nil
		}
	}

	return ResolvedPath{}, fserr.Denied("resolve", raw, s.roots)
}

// within compares whole components: /workspace-evil is not inside /workspace.
func within(path, root string) bool {
	if path == root {
		return true
	}
	if !strings.HasSuffix(root, string(os.PathSeparator)) {
		root += string(os.PathSeparator)
	}
	return strings.HasPrefix(path, root)
}
