package filesystem

import (
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/GriffinCanCode/AgentOS/filesystem/internal/domain/sandbox"
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/infrastructure/monitoring"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// newTestProvider returns a provider sandboxed to a fresh temp directory and
// the canonical path of that directory.
func newTestProvider(t *testing.T) (*Provider, string) {
	t.Helper()
	return newTestProviderWithLimits(t, DefaultLimits())
}

func newTestProviderWithLimits(t *testing.T, limits Limits) (*Provider, string) {
	t.Helper()
	return newTestProviderOn(t, limits, func(string) afero.Fs { return afero.NewOsFs() })
}

// newTestProviderOn builds the provider over the filesystem returned by
// mkFs, which receives the canonical temp root.
func newTestProviderOn(t *testing.T, limits Limits, mkFs func(root string) afero.Fs) (*Provider, string) {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	sb, err := sandbox.New([]string{root})
	require.NoError(t, err)

	ops := NewFilesystemOps(sb, mkFs(root), logging.NewNop(), monitoring.NewMetrics(), limits)
	return NewProvider(ops), root
}

// denyingFs refuses to open one path, standing in for a directory the
// process lacks permission to read.
type denyingFs struct {
	afero.Fs
	denied string
}

func (d denyingFs) Open(name string) (afero.File, error) {
	if name == d.denied {
		return nil, &iofs.PathError{Op: "open", Path: name, Err: iofs.ErrPermission}
	}
	return d.Fs.Open(name)
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o755))
}

// relNames returns the entry paths relative to root, sorted, with forward
// slashes.
func relNames(t *testing.T, root string, entries []Entry) []string {
	t.Helper()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		rel, err := filepath.Rel(root, e.Path)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out
}
