package scan

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"audiocat/internal/metadata"
)

// RecordWriter receives each merged record as soon as it is produced.
type RecordWriter interface {
	Write(rec metadata.NormalizedRecord) error
}

// Writer encodes records as JSON Lines and flushes after every record.
type Writer struct {
	buf     *bufio.Writer
	enc     *json.Encoder
	file    *os.File
	lock    *flock.Flock
	path    string
	written int
}

// NewWriter streams records to w. Closing the Writer flushes but does not
// close w.
func NewWriter(w io.Writer) *Writer {
	buf := bufio.NewWriter(w)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	return &Writer{buf: buf, enc: enc}
}

// OpenOutput truncates path and returns a Writer for it. An advisory lock on
// "<path>.lock" is held until Close so two runs cannot interleave writes.
func OpenOutput(path string) (*Writer, error) {
	if path == "" {
		return nil, metadata.Wrap(metadata.ErrConfiguration, "scan", "output", "output path is empty", nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, metadata.Wrap(metadata.ErrConfiguration, "scan", "output", "create output directory", err)
	}

	lockPath := LockPath(path)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, metadata.Wrap(metadata.ErrConfiguration, "scan", "output", "acquire lock", err)
	}
	if !ok {
		return nil, metadata.Wrap(metadata.ErrConfiguration, "scan", "output",
			fmt.Sprintf("another run is writing %s (lock %s)", path, lockPath), nil)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		_ = lock.Unlock()
		return nil, metadata.Wrap(metadata.ErrConfiguration, "scan", "output", "open output", err)
	}
	w := NewWriter(file)
	w.file = file
	w.lock = lock
	w.path = path
	return w, nil
}

// LockPath returns the advisory lock file guarding an output path.
func LockPath(output string) string {
	return output + ".lock"
}

// Write encodes rec as one line and flushes it.
func (w *Writer) Write(rec metadata.NormalizedRecord) error {
	if err := w.enc.Encode(rec); err != nil {
		return fmt.Errorf("encode record %s: %w", rec.FilePath, err)
	}
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("flush record %s: %w", rec.FilePath, err)
	}
	w.written++
	return nil
}

// Written reports how many records have been flushed.
func (w *Writer) Written() int {
	return w.written
}

// Path returns the output file path, or "" for stream writers.
func (w *Writer) Path() string {
	return w.path
}

// Close flushes buffered data, closes the output file, and releases the lock.
func (w *Writer) Close() error {
	var errs []error
	if err := w.buf.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("flush output: %w", err))
	}
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close output: %w", err))
		}
		w.file = nil
	}
	if w.lock != nil {
		if err := w.lock.Unlock(); err != nil {
			errs = append(errs, fmt.Errorf("release output lock: %w", err))
		}
		_ = os.Remove(w.lock.Path())
		w.lock = nil
	}
	return errors.Join(errs...)
}
