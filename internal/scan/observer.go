package scan

import (
	"time"

	"audiocat/internal/metadata"
)

// Outcome is what happened to one discovered file.
type Outcome string

const (
	OutcomeEmitted Outcome = "emitted"
	OutcomeSkipped Outcome = "skipped"
)

// FileReport describes the handling of one file for observers.
type FileReport struct {
	Index    int // 1-based position in discovery order
	Total    int
	File     metadata.File
	Outcome  Outcome
	Record   *metadata.NormalizedRecord
	Warnings int
}

// Observer receives scan progress. Implementations must not block for long;
// they run on the scanning goroutine.
type Observer interface {
	OnStart(root string, total int)
	OnFile(report FileReport)
	OnEvent(event metadata.Event)
	OnDone(summary Summary)
}

// NopObserver ignores every callback.
type NopObserver struct{}

func (NopObserver) OnStart(string, int) {}

func (NopObserver) OnFile(FileReport) {}

func (NopObserver) OnEvent(metadata.Event) {}

func (NopObserver) OnDone(Summary) {}

// Summary holds the run counters reported when a scan finishes.
type Summary struct {
	RunID        string
	Root         string
	Discovered   int
	Processed    int
	Skipped      int
	Malformed    int
	Degraded     int
	ContentTypes map[string]int
	Duration     time.Duration
}
