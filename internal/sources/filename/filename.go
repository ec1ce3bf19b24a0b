package filename

import (
	"context"
	"strings"

	"audiocat/internal/metadata"
)

// Match describes which pattern interpreted a name.
type Match struct {
	Pattern string
	Group   Group
	Fields  metadata.PartialRecord
}

// Parse applies the ordered pattern table to a base name (extension already
// stripped) and returns the first match.
func Parse(base string) (Match, bool) {
	base = strings.TrimSpace(base)
	if base == "" {
		return Match{}, false
	}
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(base)
		if m == nil {
			continue
		}
		rec := metadata.NewPartialRecord()
		p.apply(m, rec)
		return Match{Pattern: p.name, Group: p.group, Fields: rec}, true
	}
	return Match{}, false
}

// PatternNames lists pattern names in evaluation order.
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for _, p := range patterns {
		names = append(names, p.name)
	}
	return names
}

// Source implements metadata.Extractor over file base names.
type Source struct{}

// New returns the filename source.
func New() Source { return Source{} }

func (Source) Source() metadata.Source { return metadata.SourceFilename }

func (Source) Extract(_ context.Context, file metadata.File) metadata.Result {
	match, ok := Parse(file.Base)
	if !ok {
		return metadata.Result{
			Fields: metadata.NewPartialRecord(),
			Events: []metadata.Event{{
				Kind:     metadata.EventUnavailable,
				Source:   metadata.SourceFilename.String(),
				FilePath: file.Path,
				Message:  "no filename pattern matched",
			}},
		}
	}
	return metadata.Result{Fields: match.Fields}
}
