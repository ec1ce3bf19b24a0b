// Package logging assembles structured slog loggers and formatting helpers used
// across audiocat.
//
// It owns the console and JSON handlers, optional size-rotated file output,
// run-ID tagging for scans, and the WarnWithContext helper that keeps every
// warning shaped as cause, impact, and next step. Sources never log; the scan
// orchestrator turns their events into log records through this package.
//
// A no-op logger is provided for tests and wiring code that cannot fail.
package logging
