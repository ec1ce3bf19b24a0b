package embedded

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dhowden/tag"

	"audiocat/internal/metadata"
)

// Raw keys by container: ID3v2.3/2.4 frame IDs, ID3v2.2 three-letter IDs,
// MP4 atoms, and lower-cased Vorbis comment names.
var (
	dateKeys      = []string{"TDRC", "TDRL", "TDOR", "TYER", "TDA", "TYE", "\xa9day", "date", "year"}
	publisherKeys = []string{"TPUB", "TPB", "publisher", "organization", "label"}
	languageKeys  = []string{"TLAN", "TLA", "language"}

	// Long descriptions outrank the free-form comment.
	descriptionKeys = []string{"TIT3", "TT3", "ldes", "desc", "description"}
)

func mapTags(m tag.Metadata, fields metadata.PartialRecord) {
	set := func(field metadata.Field, value string) {
		fields.Set(field, value, metadata.SourceEmbedded)
	}

	set(metadata.FieldTitle, m.Title())
	set(metadata.FieldAuthor, m.Artist())
	set(metadata.FieldAlbum, m.Album())
	set(metadata.FieldGenre, m.Genre())
	set(metadata.FieldTrackNumber, formatTrack(m.Track()))

	raw := m.Raw()
	set(metadata.FieldDescription, description(m, raw))
	if date := rawString(raw, dateKeys...); date != "" {
		applyDate(fields, date)
	}
	if _, ok := fields.Get(metadata.FieldYear); !ok && m.Year() > 0 {
		fields.SetInt(metadata.FieldYear, strconv.Itoa(m.Year()), metadata.SourceEmbedded)
	}
	set(metadata.FieldPublisher, rawString(raw, publisherKeys...))
	set(metadata.FieldLanguage, rawString(raw, languageKeys...))
}

func description(m tag.Metadata, raw map[string]interface{}) string {
	if d := rawString(raw, descriptionKeys...); d != "" {
		return d
	}
	if c := strings.TrimSpace(m.Comment()); c != "" {
		return c
	}
	// Repeated ID3 comment frames are stored as COMM, COMM_0, COMM_1 (COM in v2.2).
	var comms []string
	for key := range raw {
		if strings.HasPrefix(key, "COM") {
			comms = append(comms, key)
		}
	}
	sort.Strings(comms)
	return rawString(raw, comms...)
}

// applyDate routes a tag date: full dates become recording_date, a bare
// four-digit value becomes year.
func applyDate(fields metadata.PartialRecord, value string) {
	value = strings.TrimSpace(value)
	if len(value) >= 10 {
		if date, ok := metadata.NormalizeDate(value[:10]); ok {
			fields.Set(metadata.FieldRecordingDate, date, metadata.SourceEmbedded)
			fields.SetInt(metadata.FieldYear, date[:4], metadata.SourceEmbedded)
			return
		}
	}
	if len(value) >= 4 {
		fields.SetInt(metadata.FieldYear, value[:4], metadata.SourceEmbedded)
	}
}

func rawString(raw map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		var s string
		switch val := v.(type) {
		case string:
			s = val
		case []string:
			s = strings.Join(val, ", ")
		case *tag.Comm:
			s = val.Text
		case fmt.Stringer:
			s = val.String()
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}
