package metadata

import (
	"sort"
	"strconv"
	"strings"
)

// FieldCandidate is one value for one field together with the tier that produced it.
type FieldCandidate struct {
	Value  string
	Source Source
}

// PartialRecord holds the candidates one source produced for one file. A
// source omits a field entirely when it has no basis for a value.
type PartialRecord map[Field]FieldCandidate

// NewPartialRecord returns an empty record.
func NewPartialRecord() PartialRecord {
	return make(PartialRecord)
}

// Set stores value for field after trimming whitespace. Blank values are not
// stored so that "absent" stays absent.
func (p PartialRecord) Set(field Field, value string, source Source) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	p[field] = FieldCandidate{Value: value, Source: source}
}

// SetInt stores value only when it is a whole number, normalised to its
// decimal form. Used for year and series_length.
func (p PartialRecord) SetInt(field Field, value string, source Source) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return
	}
	p[field] = FieldCandidate{Value: strconv.Itoa(n), Source: source}
}

// Get returns the candidate value for field, if present.
func (p PartialRecord) Get(field Field) (string, bool) {
	c, ok := p[field]
	if !ok {
		return "", false
	}
	return c.Value, true
}

// Fields returns the populated field names in output order.
func (p PartialRecord) Fields() []Field {
	out := make([]Field, 0, len(p))
	for f := range p {
		out = append(out, f)
	}
	order := make(map[Field]int, len(SemanticFields))
	for i, f := range SemanticFields {
		order[f] = i
	}
	sort.Slice(out, func(i, j int) bool {
		oi, iok := order[out[i]]
		oj, jok := order[out[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok:
			return true
		case jok:
			return false
		default:
			return out[i] < out[j]
		}
	})
	return out
}

// Technical carries stream and file properties. Only the embedded source
// (and file stat) populates it; nil fields are unknown.
type Technical struct {
	DurationSeconds *float64
	BitrateKbps     *int
	SampleRateHz    *int
	AudioChannels   *int
	FileSizeBytes   *int64
	AudioFormat     *string
}

// Empty reports whether no technical property is known.
func (t *Technical) Empty() bool {
	if t == nil {
		return true
	}
	return t.DurationSeconds == nil && t.BitrateKbps == nil && t.SampleRateHz == nil &&
		t.AudioChannels == nil && t.FileSizeBytes == nil && t.AudioFormat == nil
}

// NormalizedRecord is one output row. Field order matches the JSON Lines
// contract consumed by the archive loader; nil pointers encode as null.
type NormalizedRecord struct {
	FilePath       string   `json:"file_path"`
	FileName       string   `json:"file_name"`
	Title          *string  `json:"title"`
	Author         *string  `json:"author"`
	EpisodeChapter *string  `json:"episode_chapter"`
	RecordingDate  *string  `json:"recording_date"`
	Description    *string  `json:"description"`
	ContentType    string   `json:"content_type"`
	Channel        *string  `json:"channel"`
	Genre          *string  `json:"genre"`
	SeriesLength   *int     `json:"series_length"`
	Year           *int     `json:"year"`
	Album          *string  `json:"album"`
	TrackNumber    *string  `json:"track_number"`
	Publisher      *string  `json:"publisher"`
	Language       *string  `json:"language"`
	DurationSecs   *float64 `json:"duration_seconds"`
	BitrateKbps    *int     `json:"bitrate_kbps"`
	SampleRateHz   *int     `json:"sample_rate_hz"`
	AudioChannels  *int     `json:"audio_channels"`
	FileSizeBytes  *int64   `json:"file_size_bytes"`
	AudioFormat    *string  `json:"audio_format"`
	MetadataSource string   `json:"metadata_source"`
}

// RecordColumns lists the JSON keys of NormalizedRecord in output order.
var RecordColumns = []string{
	"file_path", "file_name", "title", "author", "episode_chapter",
	"recording_date", "description", "content_type", "channel", "genre",
	"series_length", "year", "album", "track_number", "publisher", "language",
	"duration_seconds", "bitrate_kbps", "sample_rate_hz", "audio_channels",
	"file_size_bytes", "audio_format", "metadata_source",
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string { return &s }

// IntPtr returns a pointer to a copy of v.
func IntPtr(v int) *int { return &v }

// Int64Ptr returns a pointer to a copy of v.
func Int64Ptr(v int64) *int64 { return &v }

// Float64Ptr returns a pointer to a copy of v.
func Float64Ptr(v float64) *float64 { return &v }

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
