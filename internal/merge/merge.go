// Package merge resolves the candidates produced by all sources into one
// normalized record per file.
//
// Each semantic field is resolved on its own: the non-empty candidate from
// the highest-priority source wins. Classification and provenance run on the
// resolved values, never on raw candidates.
package merge

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	lang "audiocat/internal/language"
	"audiocat/internal/metadata"
)

var (
	chapterNumber = regexp.MustCompile(`^\d+$`)

	// "book" only as a whole word, so "Facebook Live" stays out.
	bookGenrePattern = regexp.MustCompile(`(?i)\b(audio ?)?books?\b`)
)

// Resolved maps each field to its winning candidate.
type Resolved map[metadata.Field]metadata.FieldCandidate

// Value returns the resolved value for field.
func (r Resolved) Value(field metadata.Field) (string, bool) {
	c, ok := r[field]
	if !ok {
		return "", false
	}
	return c.Value, true
}

// Resolve picks, for every field, the candidate from the highest-priority
// source. Partial records may be passed in any order and may be nil.
func Resolve(partials ...metadata.PartialRecord) Resolved {
	out := make(Resolved)
	for _, partial := range partials {
		for field, candidate := range partial {
			if strings.TrimSpace(candidate.Value) == "" {
				continue
			}
			current, ok := out[field]
			if !ok || candidate.Source.Priority() > current.Source.Priority() {
				out[field] = candidate
			}
		}
	}
	return out
}

// Merge resolves the partial records, normalizes values, classifies the
// content type, and attaches technical properties.
func Merge(file metadata.File, tech *metadata.Technical, partials ...metadata.PartialRecord) metadata.NormalizedRecord {
	resolved := Resolve(partials...)
	lower := cases.Lower(language.Und)

	rec := metadata.NormalizedRecord{
		FilePath: file.Path,
		FileName: file.Name,
	}
	str := func(field metadata.Field) *string {
		if v, ok := resolved.Value(field); ok {
			return metadata.StringPtr(v)
		}
		return nil
	}
	num := func(field metadata.Field) *int {
		v, ok := resolved.Value(field)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil
		}
		return metadata.IntPtr(n)
	}

	rec.Title = str(metadata.FieldTitle)
	rec.Author = str(metadata.FieldAuthor)
	rec.EpisodeChapter = str(metadata.FieldEpisodeChapter)
	rec.RecordingDate = str(metadata.FieldRecordingDate)
	rec.Description = str(metadata.FieldDescription)
	rec.Album = str(metadata.FieldAlbum)
	rec.TrackNumber = str(metadata.FieldTrackNumber)
	rec.Publisher = str(metadata.FieldPublisher)
	if v, ok := resolved.Value(metadata.FieldLanguage); ok {
		rec.Language = metadata.StringPtr(lang.Normalize(v))
	}
	rec.SeriesLength = num(metadata.FieldSeriesLength)
	rec.Year = num(metadata.FieldYear)
	if v, ok := resolved.Value(metadata.FieldChannel); ok {
		rec.Channel = metadata.StringPtr(lower.String(v))
	}
	if v, ok := resolved.Value(metadata.FieldGenre); ok {
		rec.Genre = metadata.StringPtr(NormalizeGenre(lower.String(v)))
	}

	rec.ContentType = Classify(resolved)
	rec.MetadataSource = Provenance(resolved)

	if tech != nil {
		rec.DurationSecs = tech.DurationSeconds
		rec.BitrateKbps = tech.BitrateKbps
		rec.SampleRateHz = tech.SampleRateHz
		rec.AudioChannels = tech.AudioChannels
		rec.FileSizeBytes = tech.FileSizeBytes
		rec.AudioFormat = tech.AudioFormat
	}
	return rec
}

// NormalizeGenre folds audiobook spellings into one value. Input is expected
// to be lower-cased already.
func NormalizeGenre(genre string) string {
	genre = strings.TrimSpace(genre)
	switch genre {
	case "audio book", "audiobooks", "audio books":
		return metadata.ContentAudiobook
	}
	return genre
}

// Classify derives content_type from resolved fields. The checks run in a
// fixed order: audiobook, radio programme, chapter, unknown.
func Classify(resolved Resolved) string {
	if _, ok := resolved.Value(metadata.FieldAuthor); ok {
		return metadata.ContentAudiobook
	}
	if genre, ok := resolved.Value(metadata.FieldGenre); ok && bookGenre(genre) {
		return metadata.ContentAudiobook
	}
	if _, ok := resolved.Value(metadata.FieldChannel); ok {
		return metadata.ContentRadioProgram
	}
	if hint, ok := resolved.Value(metadata.FieldContentType); ok && strings.EqualFold(hint, metadata.ContentRadioProgram) {
		return metadata.ContentRadioProgram
	}
	if ep, ok := resolved.Value(metadata.FieldEpisodeChapter); ok && chapterNumber.MatchString(ep) {
		return metadata.ContentChapter
	}
	return metadata.ContentUnknown
}

func bookGenre(genre string) bool {
	return bookGenrePattern.MatchString(genre)
}

// Provenance summarises which tier supplied the resolved fields:
//   - "embedded" when every resolved field came from embedded tags
//   - "hybrid" when embedded tags supplied some but not all fields
//   - otherwise the tier supplying the most fields, ties to the higher tier
//
// A mix of tiers without embedded tags is deliberately not "hybrid": a
// folder-derived record whose filename adds a chapter number still reports
// "folder". content_type is a classifier input, not a descriptive field, and
// is not counted. An empty resolution reports "folder".
func Provenance(resolved Resolved) string {
	counts := make(map[metadata.Source]int, len(metadata.Sources))
	total := 0
	for field, c := range resolved {
		if field == metadata.FieldContentType {
			continue
		}
		counts[c.Source]++
		total++
	}
	if total == 0 {
		return metadata.SourceFolder.ProvenanceLabel()
	}
	if embedded := counts[metadata.SourceEmbedded]; embedded > 0 {
		if embedded == total {
			return metadata.SourceEmbedded.ProvenanceLabel()
		}
		return metadata.ProvenanceHybrid
	}
	best := metadata.SourceFolder
	bestCount := -1
	for _, src := range metadata.Sources {
		if n := counts[src]; n >= bestCount && n > 0 {
			best, bestCount = src, n
		}
	}
	return best.ProvenanceLabel()
}
