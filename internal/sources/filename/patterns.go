package filename

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"audiocat/internal/metadata"
)

// Group orders pattern families.
type Group int

const (
	GroupDate Group = iota
	GroupSeries
	GroupChapter
	GroupMisc
)

func (g Group) String() string {
	switch g {
	case GroupDate:
		return "date"
	case GroupSeries:
		return "series"
	case GroupChapter:
		return "chapter"
	case GroupMisc:
		return "misc"
	default:
		return "unknown"
	}
}

type pattern struct {
	name  string
	group Group
	re    *regexp.Regexp
	apply func(m []string, rec metadata.PartialRecord)
}

// patterns is evaluated top to bottom; order is part of the contract.
var patterns = []pattern{
	{
		name:  "leading_date",
		group: GroupDate,
		re:    regexp.MustCompile(`(?i)^(\d{4}-\d{2}-\d{2})(?:(?:\s*[-_]\s*|\s+)(.+))?$`),
		apply: func(m []string, rec metadata.PartialRecord) {
			setDate(rec, m[1])
			set(rec, metadata.FieldTitle, m[2])
		},
	},
	{
		name:  "dotted_date_episode",
		group: GroupDate,
		re:    regexp.MustCompile(`(?i)^(.+?)\s+(\d{4})\.(\d{2})\.(\d{2})\s+s(\d{1,3})e(\d{1,3})\s*-\s*(.+)$`),
		apply: func(m []string, rec metadata.PartialRecord) {
			set(rec, metadata.FieldTitle, m[1])
			setDate(rec, m[2]+"-"+m[3]+"-"+m[4])
			set(rec, metadata.FieldEpisodeChapter, formatEpisode(m[5], m[6]))
			set(rec, metadata.FieldDescription, m[7])
		},
	},
	{
		name:  "series_code_date",
		group: GroupDate,
		re:    regexp.MustCompile(`(?i)^(.+?)\s*-\s*(\d{2})(\d{2})\s*-\s*(\d{4}-\d{2}-\d{2})$`),
		apply: func(m []string, rec metadata.PartialRecord) {
			set(rec, metadata.FieldTitle, m[1])
			set(rec, metadata.FieldEpisodeChapter, formatEpisode(m[2], m[3]))
			setDate(rec, m[4])
		},
	},
	{
		name:  "trailing_date",
		group: GroupDate,
		re:    regexp.MustCompile(`(?i)^(.+?)\s+(\d{4}-\d{2}-\d{2})(?:\s+(.+))?$`),
		apply: func(m []string, rec metadata.PartialRecord) {
			set(rec, metadata.FieldTitle, m[1])
			setDate(rec, m[2])
			set(rec, metadata.FieldEpisodeChapter, m[3])
		},
	},
	{
		name:  "compact_date",
		group: GroupDate,
		re:    regexp.MustCompile(`(?i)^(.+)_(\d{4})(\d{2})(\d{2})$`),
		apply: func(m []string, rec metadata.PartialRecord) {
			set(rec, metadata.FieldTitle, strings.ReplaceAll(m[1], "_", " "))
			setDate(rec, m[2]+"-"+m[3]+"-"+m[4])
		},
	},
	{
		name:  "short_series_episode",
		group: GroupSeries,
		re:    regexp.MustCompile(`(?i)^(\d{2})-(\d{2})\s+s\d+e\d+$`),
		apply: func(m []string, rec metadata.PartialRecord) {
			set(rec, metadata.FieldEpisodeChapter, formatEpisode(m[1], m[2]))
		},
	},
	{
		name:  "season_episode",
		group: GroupSeries,
		re:    regexp.MustCompile(`(?i)^(.*?)[\s._-]*\bs(\d{1,3})e(\d{1,3})\b(?:[\s._-]+([^\[]*?))?\s*(?:\[([^\]]+)\])?$`),
		apply: func(m []string, rec metadata.PartialRecord) {
			set(rec, metadata.FieldTitle, m[1])
			set(rec, metadata.FieldEpisodeChapter, formatEpisode(m[2], m[3]))
			set(rec, metadata.FieldDescription, m[4])
			set(rec, metadata.FieldGenre, m[5])
		},
	},
	{
		name:  "chapter",
		group: GroupChapter,
		re:    regexp.MustCompile(`(?i)^(?:(.+?)(?:\s*[-_]\s*|\s+))?chapter[\s._-]*(\d{1,4})(?:\s*[-_:]\s*(.+))?$`),
		apply: func(m []string, rec metadata.PartialRecord) {
			if !isDigits(strings.TrimSpace(m[1])) {
				set(rec, metadata.FieldTitle, m[1])
			}
			set(rec, metadata.FieldEpisodeChapter, m[2])
			set(rec, metadata.FieldDescription, m[3])
		},
	},
	{
		name:  "month_location",
		group: GroupMisc,
		re:    regexp.MustCompile(`(?i)^(.+?)\s+(\d{4})-(\d{2})\s+(.+?)(?:,\s*(.+))?$`),
		apply: func(m []string, rec metadata.PartialRecord) {
			set(rec, metadata.FieldTitle, m[1])
			setDate(rec, m[2]+"-"+m[3]+"-01")
			hint := strings.TrimSpace(m[4])
			if guest := strings.TrimSpace(m[5]); guest != "" {
				hint += ", " + guest
			}
			set(rec, metadata.FieldDescription, hint)
		},
	},
	{
		name:  "parenthetical_hint",
		group: GroupMisc,
		re:    regexp.MustCompile(`^(.+?)\s*\(([^()]+)\)$`),
		apply: func(m []string, rec metadata.PartialRecord) {
			set(rec, metadata.FieldTitle, m[1])
			set(rec, metadata.FieldDescription, m[2])
		},
	},
	{
		name:  "delimited_hint",
		group: GroupMisc,
		re:    regexp.MustCompile(`^(.+?)\s+-\s+(.+)$`),
		apply: func(m []string, rec metadata.PartialRecord) {
			set(rec, metadata.FieldTitle, m[1])
			set(rec, metadata.FieldDescription, m[2])
		},
	},
}

func set(rec metadata.PartialRecord, field metadata.Field, value string) {
	rec.Set(field, value, metadata.SourceFilename)
}

// setDate records the date only when it parses as a calendar date.
func setDate(rec metadata.PartialRecord, value string) {
	value = strings.TrimSpace(value)
	if _, err := time.Parse(time.DateOnly, value); err != nil {
		return
	}
	set(rec, metadata.FieldRecordingDate, value)
}

// formatEpisode renders series and episode numbers as SNN/EMM.
func formatEpisode(series, episode string) string {
	s, errS := strconv.Atoi(series)
	e, errE := strconv.Atoi(episode)
	if errS != nil || errE != nil {
		return ""
	}
	return fmt.Sprintf("S%02d/E%02d", s, e)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
