package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile fills path with size filler bytes. A size <= 0 writes one byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()
	if size <= 0 {
		size = 1
	}
	writeBytes(t, path, filler(int(size)))
}

// WriteUnreadableFile writes an audio file and removes every permission bit.
// The test is skipped when running as root, where permissions are not
// enforced.
func WriteUnreadableFile(t testing.TB, path string) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks are not enforced for root")
	}
	WriteAudioFile(t, path)
	if err := os.Chmod(path, 0); err != nil {
		t.Fatalf("chmod %s: %v", path, err)
	}
	t.Cleanup(func() {
		_ = os.Chmod(path, 0o644)
	})
}

// WriteStubBinary writes an executable shell script named name under dir that
// prints output and exits zero. It returns the script path.
func WriteStubBinary(t testing.TB, dir, name, output string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	target := filepath.Join(dir, name)
	script := "#!/bin/sh\ncat <<'EOF'\n" + output + "\nEOF\n"
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}
