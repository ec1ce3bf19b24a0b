package manifest

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"audiocat/internal/metadata"
)

type rawElement struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type programmeDetails struct {
	Attrs    []xml.Attr   `xml:",any,attr"`
	Children []rawElement `xml:",any"`
}

// programmeFields maps lower-cased ProgrammeDetails keys to semantic fields.
var programmeFields = map[string]metadata.Field{
	"title":        metadata.FieldTitle,
	"episode":      metadata.FieldEpisodeChapter,
	"date":         metadata.FieldRecordingDate,
	"description":  metadata.FieldDescription,
	"channel":      metadata.FieldChannel,
	"genre":        metadata.FieldGenre,
	"serieslength": metadata.FieldSeriesLength,
	"author":       metadata.FieldAuthor,
	"publisher":    metadata.FieldPublisher,
	"language":     metadata.FieldLanguage,
	"year":         metadata.FieldYear,
}

func parseProgrammeManifest(decoder *xml.Decoder, fileName string) (metadata.PartialRecord, error) {
	fields := metadata.NewPartialRecord()
	found := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "ProgrammeDetails" || found {
			continue
		}
		var details programmeDetails
		if err := decoder.DecodeElement(&details, &start); err != nil {
			return nil, err
		}
		found = true
		// Attributes win over child elements of the same name.
		for _, child := range details.Children {
			setProgrammeField(fields, child.XMLName.Local, child.Value)
		}
		for _, attr := range details.Attrs {
			setProgrammeField(fields, attr.Name.Local, attr.Value)
		}
	}
	if !found {
		return fields, nil
	}

	if m := episodeToken.FindStringSubmatch(fileName); m != nil {
		fields.Set(metadata.FieldEpisodeChapter, fmt.Sprintf("%s/%s", m[1], m[2]), metadata.SourceManifest)
	}
	fields.Set(metadata.FieldContentType, metadata.ContentRadioProgram, metadata.SourceManifest)
	return fields, nil
}

func setProgrammeField(fields metadata.PartialRecord, key, value string) {
	field, ok := programmeFields[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return
	}
	setField(fields, field, value)
}

type legacyItem struct {
	File        string `xml:"file"`
	Title       string `xml:"title"`
	Author      string `xml:"author"`
	Type        string `xml:"type"`
	Genre       string `xml:"genre"`
	Date        string `xml:"date"`
	Description string `xml:"description"`
}

func parseLegacyArchive(decoder *xml.Decoder, fileName string) (metadata.PartialRecord, error) {
	fields := metadata.NewPartialRecord()
	matched := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "item" {
			continue
		}
		var item legacyItem
		if err := decoder.DecodeElement(&item, &start); err != nil {
			return nil, err
		}
		if matched || strings.TrimSpace(item.File) != fileName {
			continue
		}
		matched = true
		setField(fields, metadata.FieldTitle, item.Title)
		setField(fields, metadata.FieldAuthor, item.Author)
		setField(fields, metadata.FieldGenre, item.Genre)
		setField(fields, metadata.FieldRecordingDate, item.Date)
		setField(fields, metadata.FieldDescription, item.Description)
		fields.Set(metadata.FieldContentType, contentTypeHint(item.Type), metadata.SourceManifest)
	}
	return fields, drain(decoder)
}

func setField(fields metadata.PartialRecord, field metadata.Field, value string) {
	switch field {
	case metadata.FieldSeriesLength, metadata.FieldYear:
		fields.SetInt(field, value, metadata.SourceManifest)
	case metadata.FieldRecordingDate:
		if date, ok := metadata.NormalizeDate(value); ok {
			value = date
		}
		fields.Set(field, value, metadata.SourceManifest)
	default:
		fields.Set(field, value, metadata.SourceManifest)
	}
}

// contentTypeHint maps the legacy free-text type onto content type names.
func contentTypeHint(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "":
		return ""
	case "radio", "programme", "program", "radio programme", "radio program", metadata.ContentRadioProgram:
		return metadata.ContentRadioProgram
	case "audio book", "audiobooks", metadata.ContentAudiobook:
		return metadata.ContentAudiobook
	default:
		return value
	}
}
