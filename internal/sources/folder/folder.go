// Package folder infers author, title, and year from the directory layout
// between the scanned root and an audio file.
package folder

import (
	"context"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"audiocat/internal/metadata"
)

const (
	DefaultYearMin = 1900
	DefaultYearMax = 2099
)

var yearToken = regexp.MustCompile(`(?:^|\D)(\d{4})(?:\D|$)`)

// Source implements metadata.Extractor for directory segments.
type Source struct {
	YearMin int
	YearMax int
}

// New returns a folder source accepting years in [yearMin, yearMax]. Zero
// bounds fall back to the defaults.
func New(yearMin, yearMax int) Source {
	if yearMin <= 0 {
		yearMin = DefaultYearMin
	}
	if yearMax <= 0 {
		yearMax = DefaultYearMax
	}
	return Source{YearMin: yearMin, YearMax: yearMax}
}

func (Source) Source() metadata.Source { return metadata.SourceFolder }

// Extract walks the directory segments below the root. The first segment is
// the author, the file's parent directory is the title, and the first
// plausible year found walking downward is the year.
func (s Source) Extract(_ context.Context, file metadata.File) metadata.Result {
	fields := metadata.NewPartialRecord()
	segments := Segments(file)
	if len(segments) == 0 {
		return metadata.Result{
			Fields: fields,
			Events: []metadata.Event{{
				Kind:     metadata.EventUnavailable,
				Source:   metadata.SourceFolder.String(),
				FilePath: file.Path,
				Message:  "file sits directly under the root",
			}},
		}
	}

	fields.Set(metadata.FieldAuthor, segments[0], metadata.SourceFolder)
	fields.Set(metadata.FieldTitle, segments[len(segments)-1], metadata.SourceFolder)
	if year, ok := s.findYear(segments); ok {
		fields.SetInt(metadata.FieldYear, strconv.Itoa(year), metadata.SourceFolder)
	}
	return metadata.Result{Fields: fields}
}

// Segments returns the directory names between the root and the file,
// outermost first. The file name itself is excluded.
func Segments(file metadata.File) []string {
	rel := filepath.ToSlash(filepath.Dir(file.RelPath))
	if rel == "." || rel == "" {
		return nil
	}
	parts := strings.Split(rel, "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" || part == "." || part == ".." {
			continue
		}
		out = append(out, part)
	}
	return out
}

func (s Source) findYear(segments []string) (int, bool) {
	for _, segment := range segments {
		for _, match := range yearToken.FindAllStringSubmatch(segment, -1) {
			year, err := strconv.Atoi(match[1])
			if err != nil {
				continue
			}
			if year >= s.YearMin && year <= s.YearMax {
				return year, true
			}
		}
	}
	return 0, false
}
