package metadata

import (
	"context"
	"path/filepath"
	"strings"
)

// File describes one audio file handed to every source.
type File struct {
	Root    string // scanned root, clean and absolute
	Path    string // clean absolute path of the audio file
	RelPath string // Path relative to Root
	Name    string // base name with extension
	Base    string // base name without extension
	Ext     string // lower-case extension including the dot
	Size    int64
}

// NewFile builds a File from a root and a path below it.
func NewFile(root, path string, size int64) File {
	root = filepath.Clean(root)
	path = filepath.Clean(path)
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(path)
	}
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	return File{
		Root:    root,
		Path:    path,
		RelPath: rel,
		Name:    name,
		Base:    strings.TrimSuffix(name, ext),
		Ext:     strings.ToLower(ext),
		Size:    size,
	}
}

// Result is what one source returns for one file.
type Result struct {
	Fields    PartialRecord
	Technical *Technical
	Events    []Event
}

// Extractor is implemented by every source. Implementations hold no mutable
// per-file state and never log; outcomes are returned as Events.
type Extractor interface {
	Source() Source
	Extract(ctx context.Context, file File) Result
}
