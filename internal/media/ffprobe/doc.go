// Package ffprobe provides a typed wrapper around ffprobe JSON output for
// audio files.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual stream properties (codec, sample rate, channels)
//   - Format: container-level metadata (duration, size, bitrate)
//
// Entry points:
//   - Inspect: executes ffprobe and returns a parsed Result
//   - Prober: binds a binary path and reports whether it can be found
//
// Helper methods on Result pick the primary audio stream and convert the
// string-typed numbers ffprobe emits.
package ffprobe
