package testsupport

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"testing"
)

// WriteManifest writes an archive manifest whose ProgrammeDetails element
// carries attrs as XML attributes.
func WriteManifest(t testing.TB, path string, attrs map[string]string) {
	t.Helper()
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString("<MP3Manifest>\n  <ProgrammeDetails")
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=\"%s\"", k, escape(attrs[k]))
	}
	b.WriteString("/>\n</MP3Manifest>\n")
	writeBytes(t, path, []byte(b.String()))
}

// LegacyItem is one <item> entry of a legacy archive catalogue.
type LegacyItem struct {
	File        string `xml:"file"`
	Title       string `xml:"title,omitempty"`
	Author      string `xml:"author,omitempty"`
	Type        string `xml:"type,omitempty"`
	Genre       string `xml:"genre,omitempty"`
	Date        string `xml:"date,omitempty"`
	Description string `xml:"description,omitempty"`
}

// WriteLegacyManifest writes an <archive> catalogue with the given items.
func WriteLegacyManifest(t testing.TB, path string, items ...LegacyItem) {
	t.Helper()
	doc := struct {
		XMLName xml.Name     `xml:"archive"`
		Items   []LegacyItem `xml:"item"`
	}{Items: items}
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("marshal legacy manifest: %v", err)
	}
	writeBytes(t, path, append([]byte(xml.Header), data...))
}

func escape(value string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(value))
	return b.String()
}
