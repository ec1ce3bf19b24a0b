package archivedb

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"audiocat/internal/metadata"
)

// recordColumns are the audio_files columns filled from a record.
var recordColumns = metadata.RecordColumns

// maxLineBytes bounds one JSON Lines record; descriptions can be long.
const maxLineBytes = 4 << 20

// ImportOptions controls an import.
type ImportOptions struct {
	// Clear empties the table inside the import transaction first.
	Clear bool
}

// ImportStats reports what an import did.
type ImportStats struct {
	Lines        int
	Imported     int
	Rejected     int
	InvalidDates int
}

// ImportFile imports the JSON Lines file at path.
func (d *DB) ImportFile(ctx context.Context, path string, opts ImportOptions) (ImportStats, error) {
	fh, err := os.Open(path)
	if err != nil {
		return ImportStats{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()
	return d.Import(ctx, fh, opts)
}

// Import upserts every record read from r, keyed on file_path. Blank lines
// are ignored; lines that do not decode or lack a file_path are counted as
// rejected. A recording_date that is not a calendar date is stored as NULL.
// The whole import runs in one transaction, so a failure leaves the table
// untouched.
func (d *DB) Import(ctx context.Context, r io.Reader, opts ImportOptions) (ImportStats, error) {
	var stats ImportStats
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if opts.Clear {
		query, args, err := sq.Delete(tableName).ToSql()
		if err != nil {
			return stats, fmt.Errorf("build clear: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return stats, fmt.Errorf("clear %s: %w", tableName, err)
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stats.Lines++

		var rec metadata.NormalizedRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil || strings.TrimSpace(rec.FilePath) == "" {
			stats.Rejected++
			continue
		}
		if rec.RecordingDate != nil && !metadata.ValidDate(*rec.RecordingDate) {
			rec.RecordingDate = nil
			stats.InvalidDates++
		}

		query, args, err := upsert(rec).ToSql()
		if err != nil {
			return stats, fmt.Errorf("build upsert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return stats, fmt.Errorf("upsert %s: %w", rec.FilePath, err)
		}
		stats.Imported++
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read records: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("commit import: %w", err)
	}
	return stats, nil
}

func upsert(rec metadata.NormalizedRecord) sq.InsertBuilder {
	updates := make([]string, 0, len(recordColumns)-1)
	for _, col := range recordColumns[1:] {
		updates = append(updates, fmt.Sprintf("%s = excluded.%s", col, col))
	}
	return sq.Insert(tableName).
		Columns(recordColumns...).
		Values(recordValues(rec)...).
		Suffix("ON CONFLICT(file_path) DO UPDATE SET " + strings.Join(updates, ", "))
}

func recordValues(rec metadata.NormalizedRecord) []any {
	return []any{
		rec.FilePath, rec.FileName, rec.Title, rec.Author, rec.EpisodeChapter,
		rec.RecordingDate, rec.Description, rec.ContentType, rec.Channel, rec.Genre,
		rec.SeriesLength, rec.Year, rec.Album, rec.TrackNumber, rec.Publisher, rec.Language,
		rec.DurationSecs, rec.BitrateKbps, rec.SampleRateHz, rec.AudioChannels,
		rec.FileSizeBytes, rec.AudioFormat, rec.MetadataSource,
	}
}
