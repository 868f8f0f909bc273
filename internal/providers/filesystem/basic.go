package filesystem

import (
	"context"
	"io"
	"math"
	"path/filepath"

	"github.com/GriffinCanCode/AgentOS/filesystem/internal/shared/fserr"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// DefaultMaxReadSize is the read limit used when the caller does not set one
const DefaultMaxReadSize int64 = 1024 * 1024

// BasicOps handles file reads, writes and deletes
type BasicOps struct {
	*FilesystemOps
}

// ReadResult is the decoded content of a file plus its metadata
type ReadResult struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	Entry    Entry  `json:"file_info"`
}

// Read returns the decoded content of a regular file no larger than maxSize
func (b *BasicOps) Read(ctx context.Context, path, encodingName string, maxSize int64) (res ReadResult, err error) {
	defer b.startOp("read", &err)()

	resolved, err := b.resolve(ctx, "read", path)
	if err != nil {
		return ReadResult{}, err
	}
	p := resolved.String()

	if maxSize < 0 {
		return ReadResult{}, fserr.New(fserr.KindInvalid, "read", path, "max_size must not be negative")
	}
	c, err := lookupCodec("read", encodingName)
	if err != nil {
		return ReadResult{}, err
	}

	info, err := b.Fs.Stat(p)
	if err != nil {
		return ReadResult{}, fserr.FromOS("read", p, err)
	}
	if !info.Mode().IsRegular() {
		return ReadResult{}, fserr.New(fserr.KindWrongType, "read", p, "Path is not a file")
	}
	if info.Size() > maxSize {
		return ReadResult{}, fserr.TooLarge("read", p, maxSize)
	}

	f, err := b.Fs.Open(p)
	if err != nil {
		return ReadResult{}, fserr.FromOS("read", p, err)
	}
	defer f.Close()

	// One byte past the limit detects files that grew after Stat
	limit := maxSize
	if limit < math.MaxInt64 {
		limit++
	}
	data, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return ReadResult{}, fserr.FromOS("read", p, err)
	}
	if int64(len(data)) > maxSize {
		return ReadResult{}, fserr.TooLarge("read", p, maxSize)
	}

	content, used, err := c.decode("read", p, data)
	if err != nil {
		return ReadResult{}, err
	}

	if b.Metrics != nil {
		b.Metrics.AddBytesRead(len(data))
	}

	return ReadResult{
		Content:  content,
		Encoding: used,
		Entry:    b.buildEntry(p, info, false),
	}, nil
}

// Write replaces the content of a file, creating it (and optionally its
// parent directories) when missing.
func (b *BasicOps) Write(ctx context.Context, path, content, encodingName string, createDirs bool) (entry Entry, err error) {
	defer b.startOp("write", &err)()

	resolved, err := b.resolve(ctx, "write", path)
	if err != nil {
		return Entry{}, err
	}
	p := resolved.String()

	c, err := lookupCodec("write", encodingName)
	if err != nil {
		return Entry{}, err
	}
	if info, statErr := b.Fs.Stat(p); statErr == nil && info.IsDir() {
		return Entry{}, fserr.New(fserr.KindWrongType, "write", p, "Path is a directory")
	}

	data, err := c.encode("write", p, content)
	if err != nil {
		return Entry{}, err
	}

	if createDirs {
		if err := b.Fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return Entry{}, fserr.FromOS("write", p, err)
		}
	}
	if err := afero.WriteFile(b.Fs, p, data, 0o644); err != nil {
		return Entry{}, fserr.FromOS("write", p, err)
	}

	if b.Metrics != nil {
		b.Metrics.AddBytesWritten(len(data))
	}
	b.logger(ctx).Info("file written",
		zap.String("path", p),
		zap.Int("bytes", len(data)),
		zap.String("encoding", c.name),
	)

	return b.entry("write", p)
}

// DeleteResult describes what a delete removed
type DeleteResult struct {
	Path      string
	Directory bool
	Recursive bool
}

// Delete removes a file or directory. A non-empty directory is only removed
// when recursive is set. Allowed roots themselves can never be deleted.
func (b *BasicOps) Delete(ctx context.Context, path string, recursive bool) (res DeleteResult, err error) {
	defer b.startOp("delete", &err)()

	resolved, err := b.resolve(ctx, "delete", path)
	if err != nil {
		return DeleteResult{}, err
	}
	p := resolved.String()

	if resolved.IsRoot() {
		b.logger(ctx).Warn("refusing to delete allowed root", zap.String("path", p))
		return DeleteResult{}, fserr.New(fserr.KindDenied, "delete", path, "Cannot delete an allowed root directory")
	}

	info, err := b.Fs.Stat(p)
	if err != nil {
		return DeleteResult{}, fserr.FromOS("delete", p, err)
	}

	switch {
	case !info.IsDir():
		err = b.Fs.Remove(p)
	case recursive:
		err = b.Fs.RemoveAll(p)
	default:
		err = b.Fs.Remove(p)
	}
	if err != nil {
		return DeleteResult{}, fserr.FromOS("delete", p, err)
	}

	res = DeleteResult{Path: p, Directory: info.IsDir(), Recursive: recursive && info.IsDir()}
	b.logger(ctx).Info("path deleted",
		zap.String("path", p),
		zap.Bool("directory", res.Directory),
		zap.Bool("recursive", res.Recursive),
	)
	return res, nil
}
