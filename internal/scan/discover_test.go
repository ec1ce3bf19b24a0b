package scan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"audiocat/internal/metadata"
	"audiocat/internal/testsupport"
)

func TestDiscoverFiltersAndSorts(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{
		"b/02.mp3",
		"a/01.M4B",
		"a/notes.txt",
		".hidden/x.mp3",
		"tmp/skip.mp3",
		"out.mp3",
		"c/d/03.flac",
	} {
		testsupport.WriteAudioFile(t, filepath.Join(root, rel))
	}

	files, err := Discover(root, Options{
		Extensions:  []string{".mp3", ".m4b", ".flac"},
		ExcludeDirs: []string{"tmp"},
		SkipPaths:   []string{filepath.Join(root, "out.mp3")},
	})
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}

	want := []string{"a/01.M4B", "b/02.mp3", "c/d/03.flac"}
	if len(files) != len(want) {
		t.Fatalf("expected %d files, got %d: %+v", len(want), len(files), files)
	}
	for i, rel := range want {
		if files[i].RelPath != filepath.FromSlash(rel) {
			t.Fatalf("expected file %d to be %s, got %s", i, rel, files[i].RelPath)
		}
	}
	if files[0].Ext != ".m4b" || files[0].Size != testsupport.AudioPayloadSize {
		t.Fatalf("unexpected file metadata %+v", files[0])
	}
}

func TestDiscoverRootErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.mp3")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	for _, root := range []string{filepath.Join(dir, "missing"), file} {
		if _, err := Discover(root, Options{Extensions: []string{".mp3"}}); !errors.Is(err, metadata.ErrConfiguration) {
			t.Fatalf("expected configuration error for %s, got %v", root, err)
		}
	}
}

func TestDiscoverEmptyRoot(t *testing.T) {
	files, err := Discover(t.TempDir(), Options{Extensions: []string{".mp3"}})
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files, got %d", len(files))
	}
}
