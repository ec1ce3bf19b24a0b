package embedded

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"audiocat/internal/media/ffprobe"
	"audiocat/internal/metadata"
	"audiocat/internal/testsupport"
)

type stubProber struct {
	result ffprobe.Result
	err    error
	calls  int
}

func (s *stubProber) Probe(context.Context, string) (ffprobe.Result, error) {
	s.calls++
	return s.result, s.err
}

func newFile(t *testing.T, root, rel string) metadata.File {
	t.Helper()
	return metadata.NewFile(root, filepath.Join(root, rel), 0)
}

func TestExtractID3Fields(t *testing.T) {
	root := t.TempDir()
	file := newFile(t, root, "books/tagged.mp3")
	testsupport.WriteID3File(t, file.Path, map[string]string{
		"TIT2": "Tagged Title",
		"TPE1": "Reader Name",
		"TALB": "Collected Stories",
		"TCON": "Audiobook",
		"TRCK": "3/12",
		"TYER": "1999",
		"TPUB": "Spoken Press",
		"TLAN": "eng",
		"COMM": "Unabridged",
	})

	res := New(nil).Extract(context.Background(), file)
	checks := map[metadata.Field]string{
		metadata.FieldTitle:       "Tagged Title",
		metadata.FieldAuthor:      "Reader Name",
		metadata.FieldAlbum:       "Collected Stories",
		metadata.FieldGenre:       "Audiobook",
		metadata.FieldTrackNumber: "3/12",
		metadata.FieldYear:        "1999",
		metadata.FieldPublisher:   "Spoken Press",
		metadata.FieldLanguage:    "eng",
		metadata.FieldDescription: "Unabridged",
	}
	for field, want := range checks {
		got, _ := res.Fields.Get(field)
		if got != want {
			t.Fatalf("field %s: expected %q, got %q", field, want, got)
		}
		if res.Fields[field].Source != metadata.SourceEmbedded {
			t.Fatalf("field %s: expected embedded source", field)
		}
	}
	if _, ok := res.Fields.Get(metadata.FieldRecordingDate); ok {
		t.Fatal("expected a bare year not to become a recording date")
	}
	for _, ev := range res.Events {
		if ev.Warning() {
			t.Fatalf("unexpected warning %+v", ev)
		}
	}
}

func TestExtractPrefersLongDescription(t *testing.T) {
	root := t.TempDir()
	file := newFile(t, root, "radio/described.mp3")
	testsupport.WriteID3File(t, file.Path, map[string]string{
		"TIT2": "Evening Talk",
		"TIT3": "A conversation about lighthouses",
		"COMM": "ripped from FM",
	})

	res := New(nil).Extract(context.Background(), file)
	got, _ := res.Fields.Get(metadata.FieldDescription)
	if got != "A conversation about lighthouses" {
		t.Fatalf("expected TIT3 description, got %q", got)
	}
}

func TestExtractFullDateFrame(t *testing.T) {
	root := t.TempDir()
	file := newFile(t, root, "dated.mp3")
	testsupport.WriteID3File(t, file.Path, map[string]string{
		"TIT2": "Dated",
		"TDRC": "2001-05-06T10:00:00",
	})

	res := New(nil).Extract(context.Background(), file)
	if got, _ := res.Fields.Get(metadata.FieldRecordingDate); got != "2001-05-06" {
		t.Fatalf("expected recording date 2001-05-06, got %q", got)
	}
	if got, _ := res.Fields.Get(metadata.FieldYear); got != "2001" {
		t.Fatalf("expected year 2001, got %q", got)
	}
}

func TestExtractNoTagsKeepsTechnical(t *testing.T) {
	root := t.TempDir()
	file := newFile(t, root, "plain.mp3")
	testsupport.WriteAudioFile(t, file.Path)

	res := New(nil).Extract(context.Background(), file)
	if len(res.Fields) != 0 {
		t.Fatalf("expected no fields, got %+v", res.Fields)
	}
	if res.Technical == nil || res.Technical.FileSizeBytes == nil {
		t.Fatal("expected file size to be reported")
	}
	if *res.Technical.FileSizeBytes != testsupport.AudioPayloadSize {
		t.Fatalf("expected size %d, got %d", testsupport.AudioPayloadSize, *res.Technical.FileSizeBytes)
	}
	if got := metadata.Deref(res.Technical.AudioFormat); got != "MP3" {
		t.Fatalf("expected MP3, got %q", got)
	}
	var unavailable bool
	for _, ev := range res.Events {
		if ev.Warning() {
			t.Fatalf("unexpected warning %+v", ev)
		}
		if ev.Kind == metadata.EventUnavailable {
			unavailable = true
		}
	}
	if !unavailable {
		t.Fatalf("expected an unavailable event, got %+v", res.Events)
	}
}

func TestExtractCorruptTags(t *testing.T) {
	root := t.TempDir()
	file := newFile(t, root, "corrupt.mp3")
	testsupport.WriteCorruptTagFile(t, file.Path)
	prober := &stubProber{}

	res := New(prober).Extract(context.Background(), file)
	if len(res.Fields) != 0 {
		t.Fatalf("expected no fields, got %+v", res.Fields)
	}
	if res.Technical != nil {
		t.Fatalf("expected technical properties to be omitted, got %+v", res.Technical)
	}
	if len(res.Events) != 1 || res.Events[0].Kind != metadata.EventMalformed {
		t.Fatalf("expected exactly one malformed event, got %+v", res.Events)
	}
	if !errors.Is(res.Events[0].Err, metadata.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", res.Events[0].Err)
	}
	if prober.calls != 0 {
		t.Fatalf("expected no probe for corrupt file, got %d calls", prober.calls)
	}
}

func TestExtractUsesProber(t *testing.T) {
	root := t.TempDir()
	file := newFile(t, root, "probed.m4a")
	testsupport.WriteAudioFile(t, file.Path)
	result, err := ffprobe.Decode([]byte(`{
	  "streams": [{"codec_type": "audio", "sample_rate": "22050", "channels": 1}],
	  "format": {"duration": "1800.4567", "bit_rate": "64400"}
	}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	prober := &stubProber{result: result}

	res := New(prober).Extract(context.Background(), file)
	tech := res.Technical
	if tech == nil {
		t.Fatal("expected technical properties")
	}
	if tech.DurationSeconds == nil || *tech.DurationSeconds != 1800.457 {
		t.Fatalf("expected duration 1800.457, got %v", tech.DurationSeconds)
	}
	if tech.BitrateKbps == nil || *tech.BitrateKbps != 64 {
		t.Fatalf("expected 64 kbps, got %v", tech.BitrateKbps)
	}
	if tech.SampleRateHz == nil || *tech.SampleRateHz != 22050 {
		t.Fatalf("expected 22050 Hz, got %v", tech.SampleRateHz)
	}
	if tech.AudioChannels == nil || *tech.AudioChannels != 1 {
		t.Fatalf("expected mono, got %v", tech.AudioChannels)
	}
	if got := metadata.Deref(tech.AudioFormat); got != "M4A" {
		t.Fatalf("expected M4A, got %q", got)
	}
	for _, ev := range res.Events {
		if ev.Kind == metadata.EventDegraded {
			t.Fatalf("unexpected degraded event %+v", ev)
		}
	}
}

func TestExtractProbeFailureDegrades(t *testing.T) {
	root := t.TempDir()
	file := newFile(t, root, "noprobe.flac")
	testsupport.WriteAudioFile(t, file.Path)
	prober := &stubProber{err: errors.New("exec: not found")}

	res := New(prober).Extract(context.Background(), file)
	var degraded *metadata.Event
	for i := range res.Events {
		if res.Events[i].Kind == metadata.EventDegraded {
			degraded = &res.Events[i]
		}
	}
	if degraded == nil {
		t.Fatalf("expected degraded event, got %+v", res.Events)
	}
	if degraded.Warning() {
		t.Fatal("degraded event must not be a warning")
	}
	if res.Technical == nil || res.Technical.FileSizeBytes == nil {
		t.Fatal("expected file size despite probe failure")
	}
}

func TestExtractMissingFile(t *testing.T) {
	root := t.TempDir()
	file := newFile(t, root, "gone.mp3")

	res := New(nil).Extract(context.Background(), file)
	if len(res.Events) != 1 || res.Events[0].Kind != metadata.EventUnreadable {
		t.Fatalf("expected unreadable event, got %+v", res.Events)
	}
}

func TestFormatTrack(t *testing.T) {
	tests := []struct {
		n, total int
		want     string
	}{
		{0, 0, ""},
		{4, 0, "4"},
		{4, 10, "4/10"},
	}
	for _, tt := range tests {
		if got := formatTrack(tt.n, tt.total); got != tt.want {
			t.Fatalf("formatTrack(%d, %d): expected %q, got %q", tt.n, tt.total, tt.want, got)
		}
	}
}
