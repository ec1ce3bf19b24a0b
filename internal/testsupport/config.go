package testsupport

import (
	"path/filepath"
	"testing"

	"audiocat/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a per-test temp directory. Probing is
// disabled so tests never depend on a host ffprobe; use WithFFprobe to enable
// it against a stub.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.Output = filepath.Join(base, "out", "metadata.jsonl")
	cfgVal.Paths.Database = filepath.Join(base, "db", "archive.db")
	cfgVal.Probe.Enabled = false
	cfgVal.Logging.File = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithExtensions replaces the scanned extension allow-list.
func WithExtensions(exts ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.Extensions = append([]string(nil), exts...)
	}
}

// WithExcludeDirs sets directory names skipped during discovery.
func WithExcludeDirs(names ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.ExcludeDirs = append([]string(nil), names...)
	}
}

// WithFFprobe enables probing through a stub ffprobe that prints output.
func WithFFprobe(output string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Probe.Enabled = true
		b.cfg.Probe.FFprobeBinary = WriteStubBinary(b.t, filepath.Join(b.baseDir, "bin"), "ffprobe", output)
	}
}

// WithFileLogging enables the rotating log file under the config's log dir.
func WithFileLogging() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.File = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
