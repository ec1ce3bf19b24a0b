package language

import "strings"

type entry struct {
	code2   string // ISO 639-1
	code3   string // ISO 639-2/T
	alt3    string // ISO 639-2/B where it differs ("fre" vs "fra")
	display string
	words   []string // spelled-out forms, lower case
}

var languages = []entry{
	{"en", "eng", "", "English", []string{"english"}},
	{"cy", "cym", "wel", "Welsh", []string{"welsh", "cymraeg"}},
	{"ga", "gle", "", "Irish", []string{"irish", "gaeilge"}},
	{"gd", "gla", "", "Scottish Gaelic", []string{"scottish gaelic", "gaelic", "gàidhlig"}},
	{"fr", "fra", "fre", "French", []string{"french", "français"}},
	{"de", "deu", "ger", "German", []string{"german", "deutsch"}},
	{"es", "spa", "", "Spanish", []string{"spanish", "español"}},
	{"it", "ita", "", "Italian", []string{"italian", "italiano"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}},
	{"nl", "nld", "dut", "Dutch", []string{"dutch"}},
	{"ru", "rus", "", "Russian", []string{"russian"}},
	{"pl", "pol", "", "Polish", []string{"polish"}},
	{"sv", "swe", "", "Swedish", []string{"swedish"}},
	{"da", "dan", "", "Danish", []string{"danish"}},
	{"no", "nor", "", "Norwegian", []string{"norwegian"}},
	{"fi", "fin", "", "Finnish", []string{"finnish"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese"}},
	{"zh", "zho", "chi", "Chinese", []string{"chinese"}},
	{"ar", "ara", "", "Arabic", []string{"arabic"}},
	{"hi", "hin", "", "Hindi", []string{"hindi"}},
}

var index = buildIndex()

func buildIndex() map[string]*entry {
	idx := make(map[string]*entry, len(languages)*4)
	for i := range languages {
		e := &languages[i]
		idx[e.code2] = e
		idx[e.code3] = e
		if e.alt3 != "" {
			idx[e.alt3] = e
		}
		for _, w := range e.words {
			idx[w] = e
		}
	}
	return idx
}

// clean strips NUL padding left by tag writers and folds case. Region
// suffixes ("en-GB", "eng_uk") are dropped.
func clean(value string) string {
	value = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(value, "\u0000", "")))
	if i := strings.IndexAny(value, "-_"); i > 0 && i <= 3 {
		value = value[:i]
	}
	return value
}

// Normalize returns the ISO 639-2 code for a recognized code or language
// name. Unrecognized values are returned trimmed, with their original case,
// so no information is lost.
func Normalize(value string) string {
	trimmed := strings.TrimSpace(strings.ReplaceAll(value, "\u0000", ""))
	if trimmed == "" {
		return ""
	}
	if e, ok := index[clean(trimmed)]; ok {
		return e.code3
	}
	return trimmed
}

// Known reports whether value maps to a language in the table.
func Known(value string) bool {
	_, ok := index[clean(value)]
	return ok
}

// DisplayName returns a readable name for a recognized value, or the trimmed
// input otherwise.
func DisplayName(value string) string {
	if e, ok := index[clean(value)]; ok {
		return e.display
	}
	return strings.TrimSpace(value)
}
