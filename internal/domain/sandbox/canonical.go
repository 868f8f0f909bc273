package sandbox

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// maxLinkHops matches the Linux MAXSYMLINKS limit
const maxLinkHops = 40

// canonicalize returns the unique absolute form of path. Components are
// processed left to right so a ".." after a symbolic link climbs out of the
// link target, not out of the link's lexical parent. Components that do not
// exist yet are kept lexically, which lets write and mkdir targets resolve.
func canonicalize(path string) (string, error) {
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("working directory: %w", err)
		}
		path = wd + string(os.PathSeparator) + path
	}

	hops := 0
	return resolveFrom(path, &hops)
}

func resolveFrom(path string, hops *int) (string, error) {
	vol := filepath.VolumeName(path)
	resolved := vol + string(os.PathSeparator)
	rest := path[len(vol):]

	for _, name := range strings.Split(rest, string(os.PathSeparator)) {
		switch name {
		case "", ".":
			continue
		case "..":
			resolved = filepath.Dir(resolved)
			continue
		}

		next := filepath.Join(resolved, name)
		info, err := os.Lstat(next)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
				resolved = next
				continue
			}
			return "", err
		}

		if info.Mode()&fs.ModeSymlink == 0 {
			resolved = next
			continue
		}

		*hops++
		if *hops > maxLinkHops {
			return "", fmt.Errorf("%s: too many levels of symbolic links", next)
		}

		target, err := os.Readlink(next)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(target) {
			target = resolved + string(os.PathSeparator) + target
		}

		resolved, err = resolveFrom(target, hops)
		if err != nil {
			return "", err
		}
	}

	return resolved, nil
}
