package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// runIDHandler stamps every record with the scan run identifier.
type runIDHandler struct {
	base  slog.Handler
	runID string
}

func (h *runIDHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *runIDHandler) Handle(ctx context.Context, record slog.Record) error {
	record.AddAttrs(slog.String(FieldRunID, h.runID))
	return h.base.Handle(ctx, record)
}

func (h *runIDHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &runIDHandler{base: h.base.WithAttrs(attrs), runID: h.runID}
}

func (h *runIDHandler) WithGroup(name string) slog.Handler {
	return &runIDHandler{base: h.base.WithGroup(name), runID: h.runID}
}

// NewRunID returns a fresh random run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID returns a logger whose records all carry run_id. A blank runID
// generates one.
func WithRunID(logger *slog.Logger, runID string) (*slog.Logger, string) {
	if runID == "" {
		runID = NewRunID()
	}
	if logger == nil {
		return NewNop(), runID
	}
	return slog.New(&runIDHandler{base: logger.Handler(), runID: runID}), runID
}
