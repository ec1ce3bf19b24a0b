package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"audiocat/internal/metadata"
)

// Options controls file discovery.
type Options struct {
	// Extensions is the lower-case, dot-prefixed allow-list.
	Extensions []string
	// ExcludeDirs are directory names skipped wherever they appear.
	ExcludeDirs []string
	// SkipPaths are absolute file paths never treated as input, such as the
	// run's own output file.
	SkipPaths []string
}

// Discover returns every audio file under root matching the allow-list,
// sorted by relative path. A missing root or one that is not a directory is
// an ErrConfiguration failure.
func Discover(root string, opts Options) ([]metadata.File, error) {
	root, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}

	allowed := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	excluded := make(map[string]struct{}, len(opts.ExcludeDirs))
	for _, name := range opts.ExcludeDirs {
		if name = strings.TrimSpace(name); name != "" {
			excluded[name] = struct{}{}
		}
	}
	skipped := make(map[string]struct{}, len(opts.SkipPaths))
	for _, p := range opts.SkipPaths {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			skipped[filepath.Clean(abs)] = struct{}{}
		}
	}

	var files []metadata.File
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// Unreadable subdirectories are left out; files inside them are
			// never discovered, so they cannot be counted as skipped.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			if _, ok := excluded[name]; ok {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if _, ok := allowed[strings.ToLower(filepath.Ext(d.Name()))]; !ok {
			return nil
		}
		if _, ok := skipped[path]; ok {
			return nil
		}
		var size int64
		if info, infoErr := d.Info(); infoErr == nil {
			size = info.Size()
		}
		files = append(files, metadata.NewFile(root, path, size))
		return nil
	})
	if walkErr != nil {
		return nil, metadata.Wrap(metadata.ErrConfiguration, "scan", "walk", root, walkErr)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})
	return files, nil
}

// ResolveRoot returns the absolute scan root, or an ErrConfiguration error
// when it is empty, missing, or not a directory. Callers check it before
// creating any output so a bad root leaves earlier results untouched.
func ResolveRoot(root string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", metadata.Wrap(metadata.ErrConfiguration, "scan", "root", "root path is empty", nil)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", metadata.Wrap(metadata.ErrConfiguration, "scan", "root", root, err)
	}
	abs = filepath.Clean(abs)
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", metadata.Wrap(metadata.ErrConfiguration, "scan", "root", fmt.Sprintf("%s does not exist", abs), err)
		}
		return "", metadata.Wrap(metadata.ErrConfiguration, "scan", "root", abs, err)
	}
	if !info.IsDir() {
		return "", metadata.Wrap(metadata.ErrConfiguration, "scan", "root", fmt.Sprintf("%s is not a directory", abs), nil)
	}
	return abs, nil
}
