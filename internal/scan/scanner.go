package scan

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"audiocat/internal/config"
	"audiocat/internal/logging"
	"audiocat/internal/media/ffprobe"
	"audiocat/internal/merge"
	"audiocat/internal/metadata"
	"audiocat/internal/sources/embedded"
	"audiocat/internal/sources/filename"
	"audiocat/internal/sources/folder"
	"audiocat/internal/sources/manifest"
)

// Scanner runs the metadata sources over discovered files.
type Scanner struct {
	opts       Options
	extractors []metadata.Extractor
	logger     *slog.Logger
	observer   Observer
}

// Option customizes a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger used for run and event records.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver registers progress callbacks.
func WithObserver(observer Observer) Option {
	return func(s *Scanner) {
		if observer != nil {
			s.observer = observer
		}
	}
}

// New constructs a Scanner over the given extractors. Extractors may be
// passed in any order; results are merged by source priority.
func New(opts Options, extractors []metadata.Extractor, options ...Option) *Scanner {
	s := &Scanner{
		opts:       opts,
		extractors: append([]metadata.Extractor(nil), extractors...),
		logger:     logging.NewNop(),
		observer:   NopObserver{},
	}
	for _, opt := range options {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "scan")
	return s
}

// NewFromConfig builds a Scanner with the four standard sources configured
// from cfg.
func NewFromConfig(cfg *config.Config, options ...Option) *Scanner {
	opts := Options{
		Extensions:  cfg.Scan.Extensions,
		ExcludeDirs: cfg.Scan.ExcludeDirs,
	}
	return New(opts, DefaultExtractors(cfg), options...)
}

// DefaultExtractors returns folder, filename, manifest, and embedded sources.
// The embedded source probes with ffprobe only when it is enabled and found.
func DefaultExtractors(cfg *config.Config) []metadata.Extractor {
	var prober embedded.Prober
	if binary := cfg.FFprobeBinary(); binary != "" {
		if p := ffprobe.NewProber(binary); p.Available() {
			prober = p
		}
	}
	return []metadata.Extractor{
		folder.New(cfg.Scan.YearMin, cfg.Scan.YearMax),
		filename.New(),
		manifest.New(),
		embedded.New(prober),
	}
}

// SourceResult pairs a source with what it returned for one file.
type SourceResult struct {
	Source metadata.Source
	Result metadata.Result
}

// Inspection is the full per-file outcome: every source's result and the
// merged record.
type Inspection struct {
	File    metadata.File
	Results []SourceResult
	Record  metadata.NormalizedRecord
	Events  []metadata.Event
}

// Inspect runs every source on one file and merges the results. An
// ErrUnreadable error means the file could not be opened and no record was
// produced.
func (s *Scanner) Inspect(ctx context.Context, file metadata.File) (Inspection, error) {
	out := Inspection{File: file}
	if err := checkReadable(file); err != nil {
		out.Events = append(out.Events, metadata.Event{
			Kind:     metadata.EventUnreadable,
			Source:   "scan",
			FilePath: file.Path,
			Message:  "file could not be opened",
			Err:      err,
		})
		return out, err
	}

	partials := make([]metadata.PartialRecord, 0, len(s.extractors))
	var tech *metadata.Technical
	techSource := metadata.Source(-1)
	for _, extractor := range s.extractors {
		result := extractor.Extract(ctx, file)
		out.Results = append(out.Results, SourceResult{Source: extractor.Source(), Result: result})
		out.Events = append(out.Events, result.Events...)
		partials = append(partials, result.Fields)
		if result.Technical != nil && extractor.Source() > techSource {
			tech = result.Technical
			techSource = extractor.Source()
		}
	}
	out.Record = merge.Merge(file, tech, partials...)
	return out, nil
}

// InspectPath builds a File for path relative to root and inspects it. An
// empty root uses the file's directory.
func (s *Scanner) InspectPath(ctx context.Context, root, path string) (Inspection, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Inspection{}, metadata.Wrap(metadata.ErrConfiguration, "scan", "inspect", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Inspection{}, metadata.Wrap(metadata.ErrConfiguration, "scan", "inspect", abs, err)
	}
	if info.IsDir() {
		return Inspection{}, metadata.Wrap(metadata.ErrConfiguration, "scan", "inspect", abs+" is a directory", nil)
	}
	if root == "" {
		root = filepath.Dir(abs)
	} else if root, err = filepath.Abs(root); err != nil {
		return Inspection{}, metadata.Wrap(metadata.ErrConfiguration, "scan", "inspect", root, err)
	}
	return s.Inspect(ctx, metadata.NewFile(root, abs, info.Size()))
}

// Run discovers files under root and streams one record per readable file to
// out. Only discovery failures, cancellation, and output write failures
// return an error; the summary reflects the work done so far in every case.
func (s *Scanner) Run(ctx context.Context, root string, out RecordWriter) (Summary, error) {
	start := time.Now()
	logger, runID := logging.WithRunID(s.logger, "")
	summary := Summary{RunID: runID, Root: root, ContentTypes: map[string]int{}}

	files, err := Discover(root, s.opts)
	if err != nil {
		logging.ErrorWithContext(logger, "scan aborted", "scan_root_invalid",
			logging.String("root", root),
			logging.Error(err),
			logging.Hint("pass an existing directory as the scan root"),
		)
		return summary, err
	}
	if abs, absErr := filepath.Abs(root); absErr == nil {
		summary.Root = filepath.Clean(abs)
	}
	summary.Discovered = len(files)

	logger.Info("scan started",
		logging.String("root", summary.Root),
		logging.Int("files", len(files)),
	)
	s.observer.OnStart(summary.Root, len(files))

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			summary.Duration = time.Since(start)
			logger.Info("scan cancelled",
				logging.Int("processed", summary.Processed),
				logging.Int("remaining", len(files)-i),
			)
			return summary, err
		}

		report := FileReport{Index: i + 1, Total: len(files), File: file}
		inspection, inspectErr := s.Inspect(ctx, file)
		for _, event := range inspection.Events {
			s.logEvent(ctx, logger, event)
			s.observer.OnEvent(event)
			switch event.Kind {
			case metadata.EventMalformed:
				summary.Malformed++
			case metadata.EventDegraded:
				summary.Degraded++
			}
			if event.Warning() {
				report.Warnings++
			}
		}

		if inspectErr != nil {
			summary.Skipped++
			report.Outcome = OutcomeSkipped
			s.observer.OnFile(report)
			continue
		}

		record := inspection.Record
		if err := out.Write(record); err != nil {
			summary.Duration = time.Since(start)
			logging.ErrorWithContext(logger, "output write failed", "scan_output_failed",
				logging.FilePath(file.Path),
				logging.Error(err),
				logging.Hint("check free space and permissions on the output path"),
			)
			return summary, fmt.Errorf("write record for %s: %w", file.RelPath, err)
		}
		summary.Processed++
		summary.ContentTypes[record.ContentType]++
		report.Outcome = OutcomeEmitted
		report.Record = &record
		s.observer.OnFile(report)
	}

	summary.Duration = time.Since(start)
	logger.Info("scan finished",
		logging.Int("discovered", summary.Discovered),
		logging.Int("processed", summary.Processed),
		logging.Int("skipped", summary.Skipped),
		logging.Int("malformed", summary.Malformed),
		logging.Duration("duration", summary.Duration),
	)
	s.observer.OnDone(summary)
	return summary, nil
}

// logEvent writes one source event at its level. Warnings carry a hint and
// the impact on the output.
func (s *Scanner) logEvent(ctx context.Context, logger *slog.Logger, event metadata.Event) {
	attrs := []logging.Attr{
		logging.FilePath(event.FilePath),
		logging.Source(event.Source),
	}
	if event.Err != nil {
		attrs = append(attrs, logging.Error(event.Err))
	}

	switch event.Kind {
	case metadata.EventMalformed:
		logging.WarnWithContext(logger, "metadata source malformed", string(event.Kind), append(attrs,
			logging.Reason(event.Message),
			logging.Hint(fmt.Sprintf("repair or remove the %s metadata for this file", event.Source)),
			logging.Impact("source ignored; record built from the remaining sources"),
		)...)
	case metadata.EventUnreadable:
		logging.WarnWithContext(logger, "audio file skipped", string(event.Kind), append(attrs,
			logging.Reason(event.Message),
			logging.Hint("check file permissions and storage health"),
			logging.Impact("file skipped; no record emitted"),
		)...)
	default:
		attrs = append(attrs, logging.String(logging.FieldEventType, string(event.Kind)))
		logger.Log(ctx, event.Level(), event.Message, logging.Args(attrs...)...)
	}
}

func checkReadable(file metadata.File) error {
	fh, err := os.Open(file.Path)
	if err != nil {
		return metadata.Wrap(metadata.ErrUnreadable, "scan", "open", file.RelPath, err)
	}
	return fh.Close()
}
