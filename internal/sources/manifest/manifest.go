// Package manifest reads sidecar XML manifests that describe a programme,
// episode, or archive item next to an audio file.
//
// Two document shapes are recognised by their root element. Archive
// manifests (root name containing "Manifest", e.g. MP3Manifest) carry a
// ProgrammeDetails element whose attributes or children hold the descriptive
// fields. Legacy catalogues use <archive><item> entries keyed by <file>.
package manifest

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"audiocat/internal/metadata"
)

// SharedName is the directory-wide manifest consulted when no per-file
// sidecar exists.
const SharedName = "manifest.xml"

var episodeToken = regexp.MustCompile(`\[(\d+)-(\d+)\]`)

// htmlEntities maps HTML entities that are not valid XML to numeric references.
var htmlEntities = strings.NewReplacer(
	"&nbsp;", "&#160;",
	"&mdash;", "&#8212;",
	"&ndash;", "&#8211;",
	"&lsquo;", "&#8216;",
	"&rsquo;", "&#8217;",
	"&ldquo;", "&#8220;",
	"&rdquo;", "&#8221;",
	"&hellip;", "&#8230;",
	"&pound;", "&#163;",
	"&copy;", "&#169;",
	"&eacute;", "&#233;",
	"&egrave;", "&#232;",
	"&ouml;", "&#246;",
	"&uuml;", "&#252;",
	"&auml;", "&#228;",
)

// Source implements metadata.Extractor for sidecar manifests.
type Source struct{}

// New returns the manifest source.
func New() Source { return Source{} }

func (Source) Source() metadata.Source { return metadata.SourceManifest }

// Candidates returns the manifest paths consulted for file, in order.
func Candidates(file metadata.File) []string {
	dir := filepath.Dir(file.Path)
	return []string{
		filepath.Join(dir, file.Base+".xml"),
		filepath.Join(dir, SharedName),
	}
}

// Locate returns the first existing manifest for file.
func Locate(file metadata.File) (string, bool) {
	for _, candidate := range Candidates(file) {
		info, err := os.Stat(candidate)
		if err == nil && info.Mode().IsRegular() {
			return candidate, true
		}
	}
	return "", false
}

func (s Source) Extract(ctx context.Context, file metadata.File) metadata.Result {
	fields := metadata.NewPartialRecord()
	path, ok := Locate(file)
	if !ok {
		return metadata.Result{Fields: fields, Events: []metadata.Event{s.event(file, metadata.EventUnavailable, "no sidecar manifest", nil)}}
	}
	if err := ctx.Err(); err != nil {
		return metadata.Result{Fields: fields}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		wrapped := metadata.Wrap(metadata.ErrMalformed, "manifest", "read", path, err)
		if errors.Is(err, fs.ErrNotExist) {
			wrapped = metadata.Wrap(metadata.ErrUnavailable, "manifest", "read", path, err)
		}
		return metadata.Result{Fields: fields, Events: []metadata.Event{s.event(file, metadata.KindOf(wrapped), "manifest could not be read", wrapped)}}
	}

	parsed, err := Parse(data, file.Name)
	if err != nil {
		return metadata.Result{Fields: fields, Events: []metadata.Event{s.event(file, metadata.KindOf(err), "manifest ignored", err)}}
	}
	return metadata.Result{Fields: parsed}
}

func (Source) event(file metadata.File, kind metadata.EventKind, message string, err error) metadata.Event {
	return metadata.Event{
		Kind:     kind,
		Source:   metadata.SourceManifest.String(),
		FilePath: file.Path,
		Message:  message,
		Err:      err,
	}
}

// Parse decodes a manifest document and returns the fields it supplies for
// the audio file named fileName. Unknown document shapes are reported as
// metadata.ErrUnavailable; undecodable XML as metadata.ErrMalformed.
func Parse(data []byte, fileName string) (metadata.PartialRecord, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, metadata.Wrap(metadata.ErrMalformed, "manifest", "parse", "empty document", nil)
	}

	decoder := xml.NewDecoder(strings.NewReader(htmlEntities.Replace(string(data))))
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose

	root, err := rootElement(decoder)
	if err != nil {
		return nil, metadata.Wrap(metadata.ErrMalformed, "manifest", "parse", "no root element", err)
	}

	var fields metadata.PartialRecord
	switch {
	case strings.Contains(root.Name.Local, "Manifest"):
		fields, err = parseProgrammeManifest(decoder, fileName)
	case strings.EqualFold(root.Name.Local, "archive"):
		fields, err = parseLegacyArchive(decoder, fileName)
	default:
		return nil, metadata.Wrap(metadata.ErrUnavailable, "manifest", "parse", "unrecognised root element "+root.Name.Local, nil)
	}
	if err != nil {
		return nil, metadata.Wrap(metadata.ErrMalformed, "manifest", "parse", root.Name.Local, err)
	}
	return fields, nil
}

func rootElement(decoder *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return xml.StartElement{}, io.ErrUnexpectedEOF
		}
		if err != nil {
			return xml.StartElement{}, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start, nil
		}
	}
}

// drain consumes the rest of the document so that truncated or broken XML
// after the interesting element is still reported as malformed.
func drain(decoder *xml.Decoder) error {
	for {
		if _, err := decoder.Token(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}
