package metadata

import (
	"fmt"
	"strings"
)

// Source identifies the tier that produced a candidate value. Higher values win.
type Source int

const (
	SourceFolder Source = iota
	SourceFilename
	SourceManifest
	SourceEmbedded
)

// Sources lists every tier in ascending priority.
var Sources = []Source{SourceFolder, SourceFilename, SourceManifest, SourceEmbedded}

// String returns the tier name used in logs and candidate dumps.
func (s Source) String() string {
	switch s {
	case SourceFolder:
		return "folder"
	case SourceFilename:
		return "filename"
	case SourceManifest:
		return "manifest"
	case SourceEmbedded:
		return "embedded"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// ProvenanceLabel returns the value written to metadata_source when this tier
// is the summary provenance. The manifest tier is reported as "xml".
func (s Source) ProvenanceLabel() string {
	if s == SourceManifest {
		return "xml"
	}
	return s.String()
}

// Priority returns the ordering weight of the tier.
func (s Source) Priority() int {
	return int(s)
}

// ParseSource maps a tier name back to its Source.
func ParseSource(value string) (Source, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "folder":
		return SourceFolder, true
	case "filename":
		return SourceFilename, true
	case "manifest", "xml":
		return SourceManifest, true
	case "embedded":
		return SourceEmbedded, true
	default:
		return 0, false
	}
}

const (
	// ProvenanceHybrid marks records whose fields came partly from embedded tags
	// and partly from weaker tiers.
	ProvenanceHybrid = "hybrid"
)
