package embedded

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dhowden/tag"

	"audiocat/internal/media/ffprobe"
	"audiocat/internal/metadata"
)

// Prober inspects technical stream properties. ffprobe.Prober satisfies it.
type Prober interface {
	Probe(ctx context.Context, path string) (ffprobe.Result, error)
}

// Source implements metadata.Extractor for embedded tags.
type Source struct {
	prober Prober
}

// New returns an embedded-tag source. A nil prober disables ffprobe and
// leaves only the MP3 decoder fallback for stream properties.
func New(prober Prober) Source {
	return Source{prober: prober}
}

func (Source) Source() metadata.Source { return metadata.SourceEmbedded }

func (s Source) Extract(ctx context.Context, file metadata.File) metadata.Result {
	fields := metadata.NewPartialRecord()
	fh, err := os.Open(file.Path)
	if err != nil {
		wrapped := metadata.Wrap(metadata.ErrUnreadable, "embedded", "open", file.Path, err)
		return metadata.Result{Fields: fields, Events: []metadata.Event{s.event(file, metadata.EventUnreadable, "audio file could not be opened", wrapped)}}
	}
	defer fh.Close()

	size := file.Size
	if info, err := fh.Stat(); err == nil {
		size = info.Size()
	}

	var events []metadata.Event
	m, err := tag.ReadFrom(fh)
	switch {
	case errors.Is(err, tag.ErrNoTagsFound):
		events = append(events, s.event(file, metadata.EventUnavailable, "no embedded tags", nil))
	case err != nil:
		// Corrupt tags: the stream layout is not trustworthy either, so no
		// technical properties are reported.
		wrapped := metadata.Wrap(metadata.ErrMalformed, "embedded", "read tags", file.Name, err)
		return metadata.Result{Fields: fields, Events: []metadata.Event{s.event(file, metadata.EventMalformed, "embedded tags ignored", wrapped)}}
	default:
		mapTags(m, fields)
	}

	tech, techEvents := s.technical(ctx, file, fh, size)
	events = append(events, techEvents...)
	return metadata.Result{Fields: fields, Technical: tech, Events: events}
}

func (Source) event(file metadata.File, kind metadata.EventKind, message string, err error) metadata.Event {
	return metadata.Event{
		Kind:     kind,
		Source:   metadata.SourceEmbedded.String(),
		FilePath: file.Path,
		Message:  message,
		Err:      err,
	}
}

func formatTrack(number, total int) string {
	if number <= 0 {
		return ""
	}
	if total > 0 {
		return fmt.Sprintf("%d/%d", number, total)
	}
	return fmt.Sprintf("%d", number)
}
