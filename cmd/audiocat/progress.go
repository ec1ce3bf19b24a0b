package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"audiocat/internal/logging"
	"audiocat/internal/metadata"
	"audiocat/internal/scan"
)

// progressObserver reports scan progress. On a terminal it redraws a single
// status line; otherwise it logs sampled progress records.
type progressObserver struct {
	w           io.Writer
	interactive bool
	logger      *slog.Logger
	sampler     *logging.ProgressSampler
	lastWidth   int
}

func newProgressObserver(w io.Writer, logger *slog.Logger) *progressObserver {
	return &progressObserver{
		w:           w,
		interactive: isTerminal(w),
		logger:      logging.NewComponentLogger(logger, "progress"),
		sampler:     logging.NewProgressSampler(10),
	}
}

func (p *progressObserver) OnStart(root string, total int) {
	p.sampler.Reset()
	if !p.interactive {
		p.logger.Info("scanning archive", logging.String("root", root), logging.Int("files", total))
	}
}

func (p *progressObserver) OnFile(report scan.FileReport) {
	if p.interactive {
		line := fmt.Sprintf("[%d/%d] %s", report.Index, report.Total, report.File.RelPath)
		pad := ""
		if n := p.lastWidth - len(line); n > 0 {
			pad = strings.Repeat(" ", n)
		}
		fmt.Fprintf(p.w, "\r%s%s", line, pad)
		p.lastWidth = len(line)
		return
	}
	if !p.sampler.ShouldLog(report.Index, report.Total) {
		return
	}
	percent := 100
	if report.Total > 0 {
		percent = report.Index * 100 / report.Total
	}
	p.logger.Info("scan progress",
		logging.Int("done", report.Index),
		logging.Int("total", report.Total),
		logging.Int("percent", percent),
	)
}

func (p *progressObserver) OnEvent(metadata.Event) {}

func (p *progressObserver) OnDone(scan.Summary) {
	if p.interactive && p.lastWidth > 0 {
		fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", p.lastWidth))
		p.lastWidth = 0
	}
}
