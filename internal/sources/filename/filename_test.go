package filename

import (
	"context"
	"testing"

	"audiocat/internal/metadata"
)

func TestParseTable(t *testing.T) {
	tests := []struct {
		base    string
		pattern string
		want    map[metadata.Field]string
	}{
		{
			base:    "2024-01-15_My Title",
			pattern: "leading_date",
			want: map[metadata.Field]string{
				metadata.FieldRecordingDate: "2024-01-15",
				metadata.FieldTitle:         "My Title",
			},
		},
		{
			base:    "2023-11-02 - Morning Edition",
			pattern: "leading_date",
			want: map[metadata.Field]string{
				metadata.FieldRecordingDate: "2023-11-02",
				metadata.FieldTitle:         "Morning Edition",
			},
		},
		{
			base:    "Archive Hour 2019.03.04 s02e07 - The Lost Tapes",
			pattern: "dotted_date_episode",
			want: map[metadata.Field]string{
				metadata.FieldTitle:          "Archive Hour",
				metadata.FieldRecordingDate:  "2019-03-04",
				metadata.FieldEpisodeChapter: "S02/E07",
				metadata.FieldDescription:    "The Lost Tapes",
			},
		},
		{
			base:    "Drama Hour - 0305 - 2001-06-30",
			pattern: "series_code_date",
			want: map[metadata.Field]string{
				metadata.FieldTitle:          "Drama Hour",
				metadata.FieldEpisodeChapter: "S03/E05",
				metadata.FieldRecordingDate:  "2001-06-30",
			},
		},
		{
			base:    "Evening Concert 1998-12-24 Part One",
			pattern: "trailing_date",
			want: map[metadata.Field]string{
				metadata.FieldTitle:          "Evening Concert",
				metadata.FieldRecordingDate:  "1998-12-24",
				metadata.FieldEpisodeChapter: "Part One",
			},
		},
		{
			base:    "Late_Night_Jazz_20050417",
			pattern: "compact_date",
			want: map[metadata.Field]string{
				metadata.FieldTitle:         "Late Night Jazz",
				metadata.FieldRecordingDate: "2005-04-17",
			},
		},
		{
			base:    "The Navy Lark s01e02 - Shore Leave [Comedy]",
			pattern: "season_episode",
			want: map[metadata.Field]string{
				metadata.FieldTitle:          "The Navy Lark",
				metadata.FieldEpisodeChapter: "S01/E02",
				metadata.FieldDescription:    "Shore Leave",
				metadata.FieldGenre:          "Comedy",
			},
		},
		{
			base:    "03-11 S3E11",
			pattern: "short_series_episode",
			want: map[metadata.Field]string{
				metadata.FieldEpisodeChapter: "S03/E11",
			},
		},
		{
			base:    "Chapter 02",
			pattern: "chapter",
			want: map[metadata.Field]string{
				metadata.FieldEpisodeChapter: "02",
			},
		},
		{
			base:    "Bleak House - Chapter 12 - In Fashion",
			pattern: "chapter",
			want: map[metadata.Field]string{
				metadata.FieldTitle:          "Bleak House",
				metadata.FieldEpisodeChapter: "12",
				metadata.FieldDescription:    "In Fashion",
			},
		},
		{
			base:    "Folk Session 1972-08 Cecil Sharp House, Shirley Collins",
			pattern: "month_location",
			want: map[metadata.Field]string{
				metadata.FieldTitle:         "Folk Session",
				metadata.FieldRecordingDate: "1972-08-01",
				metadata.FieldDescription:   "Cecil Sharp House, Shirley Collins",
			},
		},
		{
			base:    "Under Milk Wood (Original Cast)",
			pattern: "parenthetical_hint",
			want: map[metadata.Field]string{
				metadata.FieldTitle:       "Under Milk Wood",
				metadata.FieldDescription: "Original Cast",
			},
		},
		{
			base:    "Desert Island Discs - Final Broadcast",
			pattern: "delimited_hint",
			want: map[metadata.Field]string{
				metadata.FieldTitle:       "Desert Island Discs",
				metadata.FieldDescription: "Final Broadcast",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			match, ok := Parse(tt.base)
			if !ok {
				t.Fatalf("expected %q to match", tt.base)
			}
			if match.Pattern != tt.pattern {
				t.Fatalf("expected pattern %s, got %s", tt.pattern, match.Pattern)
			}
			if len(match.Fields) != len(tt.want) {
				t.Fatalf("expected %d fields, got %d: %+v", len(tt.want), len(match.Fields), match.Fields)
			}
			for field, want := range tt.want {
				got, _ := match.Fields.Get(field)
				if got != want {
					t.Fatalf("field %s: expected %q, got %q", field, want, got)
				}
				if match.Fields[field].Source != metadata.SourceFilename {
					t.Fatalf("field %s: expected filename source", field)
				}
			}
		})
	}
}

func TestLeadingDateIsNotChapter(t *testing.T) {
	match, ok := Parse("2024-01-15_My Title")
	if !ok {
		t.Fatal("expected match")
	}
	if match.Group != GroupDate {
		t.Fatalf("expected date group, got %s", match.Group)
	}
	if _, ok := match.Fields.Get(metadata.FieldEpisodeChapter); ok {
		t.Fatal("expected no episode_chapter")
	}
}

func TestInvalidDateDropped(t *testing.T) {
	match, ok := Parse("2024-13-45_Impossible")
	if !ok {
		t.Fatal("expected match")
	}
	if _, ok := match.Fields.Get(metadata.FieldRecordingDate); ok {
		t.Fatal("expected invalid date to be dropped")
	}
	if got, _ := match.Fields.Get(metadata.FieldTitle); got != "Impossible" {
		t.Fatalf("expected title Impossible, got %q", got)
	}
}

func TestChapterNumericPrefixIgnored(t *testing.T) {
	match, ok := Parse("01 Chapter 1")
	if !ok {
		t.Fatal("expected match")
	}
	if _, ok := match.Fields.Get(metadata.FieldTitle); ok {
		t.Fatal("expected numeric prefix not to become title")
	}
	if got, _ := match.Fields.Get(metadata.FieldEpisodeChapter); got != "1" {
		t.Fatalf("expected chapter 1, got %q", got)
	}
}

func TestExtractNoMatch(t *testing.T) {
	file := metadata.NewFile("/archive", "/archive/misc/track.mp3", 0)
	res := New().Extract(context.Background(), file)
	if len(res.Fields) != 0 {
		t.Fatalf("expected empty record, got %+v", res.Fields)
	}
	if len(res.Events) != 1 || res.Events[0].Kind != metadata.EventUnavailable {
		t.Fatalf("expected one unavailable event, got %+v", res.Events)
	}
	if res.Events[0].Warning() {
		t.Fatal("unavailable must not be a warning")
	}
}

func TestPatternOrderStable(t *testing.T) {
	names := PatternNames()
	if names[0] != "leading_date" || names[len(names)-1] != "delimited_hint" {
		t.Fatalf("unexpected pattern order %v", names)
	}
}
