package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/AgentOS/filesystem/internal/shared/fserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSourceTree(t *testing.T, root string) {
	t.Helper()
	mustWrite(t, filepath.Join(root, "a.go"), "package a")
	mustWrite(t, filepath.Join(root, "pkg", "b.go"), "package pkg")
	mustWrite(t, filepath.Join(root, "pkg", "sub", "c.go"), "package sub")
	mustWrite(t, filepath.Join(root, "pkg", "sub", "notes.md"), "# notes")
	mustWrite(t, filepath.Join(root, ".hidden", "d.go"), "package hidden")
	mustWrite(t, filepath.Join(root, "docs", "readme.md"), "# readme")
}

func TestFindGlob(t *testing.T) {
	fs, root := newTestProvider(t)
	buildSourceTree(t, root)
	ctx := context.Background()

	tests := []struct {
		pattern    string
		showHidden bool
		want       []string
	}{
		{"**/*.go", false, []string{"a.go", "pkg/b.go", "pkg/sub/c.go"}},
		{"**/*.go", true, []string{".hidden/d.go", "a.go", "pkg/b.go", "pkg/sub/c.go"}},
		{"*.go", false, []string{"a.go"}},
		{"**/*.md", false, []string{"docs/readme.md", "pkg/sub/notes.md"}},
		{"pkg/*", false, []string{"pkg/b.go", "pkg/sub"}},
		{"**/*.rs", false, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			res, err := fs.Search.Find(ctx, root, tt.pattern, tt.showHidden, 0)
			require.NoError(t, err)

			assert.Equal(t, tt.pattern, res.Pattern)
			assert.Equal(t, root, res.Path)
			assert.Equal(t, tt.want, relNames(t, root, res.Entries))
			assert.False(t, res.Truncated)
		})
	}
}

func TestFindLimit(t *testing.T) {
	fs, root := newTestProvider(t)
	buildSourceTree(t, root)

	res, err := fs.Search.Find(context.Background(), root, "**/*.go", false, 2)
	require.NoError(t, err)
	assert.Len(t, res.Entries, 2)
	assert.True(t, res.Truncated)
}

func TestFindDepthCap(t *testing.T) {
	fs, root := newTestProviderWithLimits(t, Limits{MaxDepth: 1, FindLimit: 100})
	mustWrite(t, filepath.Join(root, "x", "y", "z.go"), "package z")
	mustWrite(t, filepath.Join(root, "x", "top.go"), "package x")

	res, err := fs.Search.Find(context.Background(), root, "**/*.go", false, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"x/top.go"}, relNames(t, root, res.Entries))
	assert.True(t, res.Truncated)
}

func TestFindDoesNotFollowSymlinks(t *testing.T) {
	fs, root := newTestProvider(t)
	mustWrite(t, filepath.Join(root, "real", "x.go"), "package x")
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link")))

	res, err := fs.Search.Find(context.Background(), root, "**", false, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"link", "real", "real/x.go"}, relNames(t, root, res.Entries))
}

func TestFindDescribesOutsideLinksByLstat(t *testing.T) {
	fs, root := newTestProvider(t)
	outside, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	target := filepath.Join(outside, "big.bin")
	mustWrite(t, target, "outside content that is longer than the link")
	link := filepath.Join(root, "escape.bin")
	require.NoError(t, os.Symlink(target, link))

	res, err := fs.Search.Find(context.Background(), root, "*.bin", false, 0)
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)

	e := res.Entries[0]
	assert.Equal(t, link, e.Path)
	assert.True(t, e.Symlink)
	require.NotNil(t, e.Size)
	assert.Equal(t, int64(len(target)), *e.Size)
}

func TestFindFailures(t *testing.T) {
	fs, root := newTestProvider(t)
	mustWrite(t, filepath.Join(root, "f.txt"), "x")
	ctx := context.Background()

	_, err := fs.Search.Find(ctx, root, "[", false, 0)
	assert.True(t, errors.Is(err, fserr.ErrInvalid))

	_, err = fs.Search.Find(ctx, root, "", false, 0)
	assert.True(t, errors.Is(err, fserr.ErrInvalid))

	_, err = fs.Search.Find(ctx, filepath.Join(root, "f.txt"), "*", false, 0)
	assert.True(t, errors.Is(err, fserr.ErrWrongType))

	_, err = fs.Search.Find(ctx, filepath.Join(root, "ghost"), "*", false, 0)
	assert.True(t, errors.Is(err, fserr.ErrNotFound))

	_, err = fs.Search.Find(ctx, filepath.Dir(root), "*", false, 0)
	assert.True(t, errors.Is(err, fserr.ErrDenied))
}
