package filesystem

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/GriffinCanCode/AgentOS/filesystem/internal/shared/fserr"
	"go.uber.org/zap"
)

// DirectoryOps handles directory listing and creation
type DirectoryOps struct {
	*FilesystemOps
}

type listOptions struct {
	recursive  bool
	showHidden bool
}

// List enumerates a directory. With recursive set it descends into child
// directories up to Limits.MaxDepth levels; symlinked directories are
// reported but never entered. Entries that cannot be read are recorded in
// Listing.Skipped instead of failing the call.
func (d *DirectoryOps) List(ctx context.Context, path string, recursive, showHidden bool) (listing *Listing, err error) {
	defer d.startOp("list", &err)()

	resolved, err := d.resolve(ctx, "list", path)
	if err != nil {
		return nil, err
	}
	p := resolved.String()

	info, err := d.Fs.Stat(p)
	if err != nil {
		return nil, fserr.FromOS("list", p, err)
	}
	if !info.IsDir() {
		return nil, fserr.New(fserr.KindWrongType, "list", p, "Path is not a directory")
	}

	listing = &Listing{Path: p, Entries: []Entry{}, Skipped: []Skipped{}}
	opts := listOptions{recursive: recursive, showHidden: showHidden}

	// An unreadable requested directory lists as empty with a skip record
	if err := d.walk(ctx, p, 0, opts, listing); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fserr.Wrap(fserr.KindIO, "list", p, "listing cancelled", ctxErr)
		}
		if !errors.Is(err, fs.ErrPermission) {
			return nil, fserr.FromOS("list", p, err)
		}
		d.skip(ctx, listing, p, err)
	}

	if d.Metrics != nil {
		d.Metrics.AddListed("list", len(listing.Entries), len(listing.Skipped))
	}
	return listing, nil
}

// walk appends the children of dir, which sits at the given level, to l.
// Errors reading dir itself are returned; errors below it are recorded.
func (d *DirectoryOps) walk(ctx context.Context, dir string, level int, opts listOptions, l *Listing) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := d.Fs.Open(dir)
	if err != nil {
		return err
	}
	infos, err := f.Readdir(-1)
	f.Close()
	if err != nil {
		return err
	}

	for _, info := range infos {
		name := info.Name()
		if !opts.showHidden && isHidden(name) {
			continue
		}

		child := filepath.Join(dir, name)
		entry, err := d.childEntry(child, info)
		if err != nil {
			d.skip(ctx, l, child, err)
			continue
		}
		l.Entries = append(l.Entries, entry)

		if !opts.recursive || !entry.IsDir() || entry.Symlink {
			continue
		}
		if level >= d.Limits.MaxDepth {
			l.Truncated = true
			continue
		}
		if err := d.walk(ctx, child, level+1, opts, l); err != nil {
			if ctx.Err() != nil {
				return err
			}
			d.skip(ctx, l, child, err)
		}
	}
	return nil
}

// childEntry builds the Entry for a directory child. info comes from Lstat.
func (d *DirectoryOps) childEntry(child string, info fs.FileInfo) (Entry, error) {
	if info.Mode()&fs.ModeSymlink == 0 {
		return d.buildEntry(child, info, false), nil
	}
	return d.linkEntry(child, info)
}

func (d *DirectoryOps) skip(ctx context.Context, l *Listing, p string, err error) {
	reason := skipReason(err)
	l.Skipped = append(l.Skipped, Skipped{Path: p, Reason: reason})
	d.logger(ctx).Debug("skipped unreadable entry",
		zap.String("path", p),
		zap.String("reason", reason),
	)
}

// Create makes a directory and any missing parents. Creating an existing
// directory succeeds.
func (d *DirectoryOps) Create(ctx context.Context, path string) (entry Entry, err error) {
	defer d.startOp("create_directory", &err)()

	resolved, err := d.resolve(ctx, "create_directory", path)
	if err != nil {
		return Entry{}, err
	}
	p := resolved.String()

	if info, statErr := d.Fs.Stat(p); statErr == nil && !info.IsDir() {
		return Entry{}, fserr.New(fserr.KindWrongType, "create_directory", p, "Path exists and is not a directory")
	}
	if err := d.Fs.MkdirAll(p, 0o755); err != nil {
		return Entry{}, fserr.FromOS("create_directory", p, err)
	}

	d.logger(ctx).Info("directory created", zap.String("path", p))
	return d.entry("create_directory", p)
}
