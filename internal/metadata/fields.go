package metadata

// Field names a semantic field resolved independently during merge.
type Field string

const (
	FieldTitle          Field = "title"
	FieldAuthor         Field = "author"
	FieldEpisodeChapter Field = "episode_chapter"
	FieldRecordingDate  Field = "recording_date"
	FieldDescription    Field = "description"
	FieldContentType    Field = "content_type"
	FieldChannel        Field = "channel"
	FieldGenre          Field = "genre"
	FieldSeriesLength   Field = "series_length"
	FieldYear           Field = "year"
	FieldAlbum          Field = "album"
	FieldTrackNumber    Field = "track_number"
	FieldPublisher      Field = "publisher"
	FieldLanguage       Field = "language"
)

// SemanticFields lists every semantic field in output order.
var SemanticFields = []Field{
	FieldTitle,
	FieldAuthor,
	FieldEpisodeChapter,
	FieldRecordingDate,
	FieldDescription,
	FieldContentType,
	FieldChannel,
	FieldGenre,
	FieldSeriesLength,
	FieldYear,
	FieldAlbum,
	FieldTrackNumber,
	FieldPublisher,
	FieldLanguage,
}

// Content type values synthesized by the classifier.
const (
	ContentAudiobook    = "audiobook"
	ContentRadioProgram = "radio_program"
	ContentChapter      = "chapter"
	ContentUnknown      = "unknown"
)

// IsSemantic reports whether f is one of the known semantic fields.
func IsSemantic(f Field) bool {
	for _, known := range SemanticFields {
		if known == f {
			return true
		}
	}
	return false
}
