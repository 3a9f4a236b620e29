package project

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// DefaultIgnoreDirs are directory names skipped during project walks. They
// hold generated or vendored content that should not influence scoring.
var DefaultIgnoreDirs = []string{
	".git", "node_modules", "vendor", "dist", "build", "out",
	".next", ".venv", "venv", "__pycache__", "coverage", "target",
}

// FileInfo describes one regular file found during a walk, with its path
// relative to the project root.
type FileInfo struct {
	RelPath string
	Size    int64
}

// WalkFiles traverses the project tree below root, skipping ignored
// directories, and calls fn for each regular file. The walk is read-only;
// unreadable entries are skipped rather than failing the whole scan.
func WalkFiles(root string, ignoreDirs []string, fn func(FileInfo)) error {
	if ignoreDirs == nil {
		ignoreDirs = DefaultIgnoreDirs
	}
	skip := make(map[string]bool, len(ignoreDirs))
	for _, d := range ignoreDirs {
		skip[d] = true
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && skip[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}

		info, infoErr := d.Info()
		var size int64
		if infoErr == nil {
			size = info.Size()
		}

		fn(FileInfo{RelPath: filepath.ToSlash(rel), Size: size})
		return nil
	})
}

// HasExtension reports whether the path ends with any of the given
// extensions (compared case-insensitively).
func HasExtension(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
