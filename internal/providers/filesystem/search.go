package filesystem

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/GriffinCanCode/AgentOS/filesystem/internal/shared/fserr"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"
)

// SearchOps handles pattern searches below a directory
type SearchOps struct {
	*FilesystemOps
}

// FindResult is a listing of the entries matching a glob pattern
type FindResult struct {
	Listing
	Pattern string `json:"pattern"`
}

// errStop ends a walk once the result limit is reached
var errStop = errors.New("find limit reached")

// Find walks path and returns entries whose slash-separated path relative to
// path matches pattern ("**/*.go", "docs/*.md"). The walk honours the same
// depth cap and hidden-file rule as List and never follows symlinks. At most
// limit results are returned; limit <= 0 uses Limits.FindLimit.
//
// The walk runs on the host filesystem directly, so Find ignores Fs.
func (s *SearchOps) Find(ctx context.Context, path, pattern string, showHidden bool, limit int) (result *FindResult, err error) {
	defer s.startOp("find", &err)()

	resolved, err := s.resolve(ctx, "find", path)
	if err != nil {
		return nil, err
	}
	root := resolved.String()

	if pattern == "" || !doublestar.ValidatePattern(pattern) {
		return nil, fserr.New(fserr.KindInvalid, "find", path, "Invalid glob pattern: "+pattern)
	}
	if limit <= 0 || limit > s.Limits.FindLimit {
		limit = s.Limits.FindLimit
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fserr.FromOS("find", root, err)
	}
	if !info.IsDir() {
		return nil, fserr.New(fserr.KindWrongType, "find", root, "Path is not a directory")
	}

	result = &FindResult{
		Listing: Listing{Path: root, Entries: []Entry{}, Skipped: []Skipped{}},
		Pattern: pattern,
	}
	var mu sync.Mutex

	conf := fastwalk.Config{Follow: false}
	walkErr := fastwalk.Walk(&conf, root, func(p string, d fs.DirEntry, err error) error {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if p == root {
			return err
		}
		if err != nil {
			s.recordSkip(ctx, &mu, &result.Listing, p, err)
			return nil
		}
		if !showHidden && isHidden(d.Name()) {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		level := strings.Count(rel, "/")

		var descend error
		if d.IsDir() && level >= s.Limits.MaxDepth {
			descend = fastwalk.SkipDir
			mu.Lock()
			result.Truncated = true
			mu.Unlock()
		}

		if !doublestar.MatchUnvalidated(pattern, rel) {
			return descend
		}

		entry, err := s.findEntry(p, d)
		if err != nil {
			s.recordSkip(ctx, &mu, &result.Listing, p, err)
			return descend
		}

		mu.Lock()
		defer mu.Unlock()
		if len(result.Entries) >= limit {
			result.Truncated = true
			return errStop
		}
		result.Entries = append(result.Entries, entry)
		return descend
	})

	if walkErr != nil && !errors.Is(walkErr, errStop) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fserr.Wrap(fserr.KindIO, "find", root, "find cancelled", ctxErr)
		}
		return nil, fserr.FromOS("find", root, walkErr)
	}

	if s.Metrics != nil {
		s.Metrics.AddListed("find", len(result.Entries), len(result.Skipped))
	}
	return result, nil
}

// findEntry builds the Entry for a walked path, following links for the kind
func (s *SearchOps) findEntry(p string, d fs.DirEntry) (Entry, error) {
	info, err := d.Info()
	if err != nil {
		return Entry{}, err
	}
	if d.Type()&fs.ModeSymlink != 0 {
		return s.linkEntry(p, info)
	}
	return s.buildEntry(p, info, false), nil
}

func (s *SearchOps) recordSkip(ctx context.Context, mu *sync.Mutex, l *Listing, p string, err error) {
	reason := skipReason(err)

	mu.Lock()
	l.Skipped = append(l.Skipped, Skipped{Path: p, Reason: reason})
	mu.Unlock()

	s.logger(ctx).Debug("skipped unreadable entry",
		zap.String("path", p),
		zap.String("reason", reason),
	)
}
