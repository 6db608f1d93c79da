// Package validation checks folders and file paths before the session
// trusts them.
package validation

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Folder validation failures. Callers match these with errors.Is to present
// accurate messages for each case.
var (
	ErrFolderNotFound   = errors.New("folder does not exist")
	ErrNotADirectory    = errors.New("path is not a directory")
	ErrFolderUnreadable = errors.New("folder is not readable")
)

// ValidateDirectory confirms the path exists, is a directory, and can be
// opened for reading.
func ValidateDirectory(path string) error {
	info, err := os.Stat(path)
	switch {
	case err != nil && os.IsNotExist(err):
		return fmt.Errorf("%w: %q", ErrFolderNotFound, path)
	case err != nil:
		return fmt.Errorf("%w: %q: %v", ErrFolderUnreadable, path, err)
	case !info.IsDir():
		return fmt.Errorf("%w: %q", ErrNotADirectory, path)
	}

	// Stat alone does not prove read permission.
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrFolderUnreadable, path, err)
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %q: %v", ErrFolderUnreadable, path, err)
	}
	return nil
}

// HasTraversal reports whether the raw path string contains a parent
// directory reference. The check runs on the string exactly as stored,
// before any resolution, so "a/../b" is rejected even though it cleans
// to "b".
func HasTraversal(path string) bool {
	return strings.Contains(path, "..")
}

// CanonicalAbs returns the cleaned absolute form of path without touching
// the filesystem. Relative paths resolve against the working directory.
func CanonicalAbs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// ResolveReal resolves symlinks in path for comparison purposes. A missing
// suffix is kept lexically below its nearest existing ancestor, so a file
// that has since been deleted still compares under its real parent.
func ResolveReal(path string) string {
	p := CanonicalAbs(path)
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return resolved
	}

	dir, tail := filepath.Dir(p), filepath.Base(p)
	for {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(resolved, tail)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return p
		}
		tail = filepath.Join(filepath.Base(dir), tail)
		dir = parent
	}
}

// IsSubpath reports whether sub sits at or below base. Both sides are
// symlink-resolved first so folders reached through links compare by
// their targets.
func IsSubpath(base, sub string) bool {
	rel, err := filepath.Rel(ResolveReal(base), ResolveReal(sub))
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}

// NormalizeExts lowercases extensions and ensures each carries a leading
// dot, so "MKV" and ".mkv" configure the same filter. Blank entries are
// dropped.
func NormalizeExts(exts []string) map[string]struct{} {
	out := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out[e] = struct{}{}
	}
	return out
}

// HasExt reports whether path's extension is in the normalized set.
// Matching is case-insensitive.
func HasExt(path string, exts map[string]struct{}) bool {
	_, ok := exts[strings.ToLower(filepath.Ext(path))]
	return ok
}
