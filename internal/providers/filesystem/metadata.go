package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/AgentOS/filesystem/internal/shared/fserr"
	"github.com/gabriel-vasile/mimetype"
)

// MetadataOps handles metadata lookups
type MetadataOps struct {
	*FilesystemOps
}

// Stat returns the Entry for a path
func (m *MetadataOps) Stat(ctx context.Context, path string) (entry Entry, err error) {
	defer m.startOp("stat", &err)()

	resolved, err := m.resolve(ctx, "stat", path)
	if err != nil {
		return Entry{}, err
	}
	return m.entry("stat", resolved.String())
}

// entry stats p, following links, and builds its Entry
func (ops *FilesystemOps) entry(op, p string) (Entry, error) {
	info, err := ops.Fs.Stat(p)
	if err != nil {
		return Entry{}, fserr.FromOS(op, p, err)
	}
	return ops.buildEntry(p, info, false), nil
}

// linkEntry describes a symlink met during a traversal. A link whose target
// resolves inside the allowed roots is described by the target; any other
// link is described only by its own Lstat info.
func (ops *FilesystemOps) linkEntry(p string, link fs.FileInfo) (Entry, error) {
	if _, err := ops.Sandbox.Resolve(p); errors.Is(err, fserr.ErrDenied) {
		return ops.buildEntry(p, link, true), nil
	}
	// other resolution failures, such as link loops, surface from Stat
	target, err := ops.Fs.Stat(p)
	if err != nil {
		return Entry{}, err
	}
	return ops.buildEntry(p, target, true), nil
}

// buildEntry describes p from already-fetched info. Content is never sniffed
// through a link.
func (ops *FilesystemOps) buildEntry(p string, info fs.FileInfo, symlink bool) Entry {
	e := Entry{
		Name:        filepath.Base(p),
		Path:        p,
		Type:        TypeFile,
		Modified:    info.ModTime(),
		Permissions: fmt.Sprintf("%03o", info.Mode().Perm()),
		Symlink:     symlink,
	}
	if info.IsDir() {
		e.Type = TypeDirectory
		return e
	}

	size := info.Size()
	e.Size = &size
	e.MIMEType = ops.guessMIME(p, info, !symlink)
	return e
}

// guessMIME tries the extension table first and, when sniff is set, reads
// content only if the extension is unknown. Failure yields "".
func (ops *FilesystemOps) guessMIME(p string, info fs.FileInfo, sniff bool) string {
	if t := mime.TypeByExtension(filepath.Ext(p)); t != "" {
		return mediaType(t)
	}
	if !sniff || !info.Mode().IsRegular() || info.Size() == 0 {
		return ""
	}

	f, err := ops.Fs.Open(p)
	if err != nil {
		return ""
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return ""
	}
	return mediaType(mtype.String())
}

// mediaType drops parameters such as "; charset=utf-8"
func mediaType(t string) string {
	base, _, _ := strings.Cut(t, ";")
	return strings.TrimSpace(base)
}
