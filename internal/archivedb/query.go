package archivedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"audiocat/internal/metadata"
)

// ErrNotFound is returned by Get when no row has the requested file_path.
var ErrNotFound = errors.New("record not found")

// groupableColumns are the columns CountBy accepts.
var groupableColumns = map[string]struct{}{
	"content_type":    {},
	"metadata_source": {},
	"author":          {},
	"channel":         {},
	"genre":           {},
	"audio_format":    {},
	"year":            {},
	"language":        {},
}

// GroupCount is one row of a CountBy result. A NULL group is reported as "".
type GroupCount struct {
	Value string
	Count int
}

// Count returns the number of catalogued files.
func (d *DB) Count(ctx context.Context) (int, error) {
	query, args, err := sq.Select("COUNT(*)").From(tableName).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var count int
	err = retryOnBusy(ctx, func() error {
		return d.db.QueryRowContext(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", tableName, err)
	}
	return count, nil
}

// CountBy groups the catalogue by column, largest groups first.
func (d *DB) CountBy(ctx context.Context, column string) ([]GroupCount, error) {
	column = strings.ToLower(strings.TrimSpace(column))
	if _, ok := groupableColumns[column]; !ok {
		return nil, fmt.Errorf("count by %q: unsupported column", column)
	}
	query, args, err := sq.Select(column, "COUNT(*)").
		From(tableName).
		GroupBy(column).
		OrderBy("COUNT(*) DESC", column).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count by: %w", err)
	}

	var out []GroupCount
	err = retryOnBusy(ctx, func() error {
		out = out[:0]
		rows, err := d.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var value sql.NullString
			var count int
			if err := rows.Scan(&value, &count); err != nil {
				return err
			}
			out = append(out, GroupCount{Value: value.String, Count: count})
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("count by %s: %w", column, err)
	}
	return out, nil
}

// Get loads the catalogued record for filePath.
func (d *DB) Get(ctx context.Context, filePath string) (metadata.NormalizedRecord, error) {
	query, args, err := sq.Select(recordColumns...).
		From(tableName).
		Where(sq.Eq{"file_path": filePath}).
		ToSql()
	if err != nil {
		return metadata.NormalizedRecord{}, fmt.Errorf("build get: %w", err)
	}

	var rec metadata.NormalizedRecord
	err = retryOnBusy(ctx, func() error {
		return scanRecord(d.db.QueryRowContext(ctx, query, args...), &rec)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return metadata.NormalizedRecord{}, fmt.Errorf("%w: %s", ErrNotFound, filePath)
	}
	if err != nil {
		return metadata.NormalizedRecord{}, fmt.Errorf("get %s: %w", filePath, err)
	}
	return rec, nil
}

func scanRecord(row *sql.Row, rec *metadata.NormalizedRecord) error {
	var (
		title, author, episode, date, description sql.NullString
		contentType, channel, genre, album        sql.NullString
		track, publisher, language, format        sql.NullString
		source                                    sql.NullString
		seriesLength, year, bitrate, sampleRate   sql.NullInt64
		channels, size                            sql.NullInt64
		duration                                  sql.NullFloat64
	)
	if err := row.Scan(
		&rec.FilePath, &rec.FileName, &title, &author, &episode,
		&date, &description, &contentType, &channel, &genre,
		&seriesLength, &year, &album, &track, &publisher, &language,
		&duration, &bitrate, &sampleRate, &channels,
		&size, &format, &source,
	); err != nil {
		return err
	}
	rec.Title = nullString(title)
	rec.Author = nullString(author)
	rec.EpisodeChapter = nullString(episode)
	rec.RecordingDate = nullString(date)
	rec.Description = nullString(description)
	rec.ContentType = contentType.String
	rec.Channel = nullString(channel)
	rec.Genre = nullString(genre)
	rec.SeriesLength = nullInt(seriesLength)
	rec.Year = nullInt(year)
	rec.Album = nullString(album)
	rec.TrackNumber = nullString(track)
	rec.Publisher = nullString(publisher)
	rec.Language = nullString(language)
	if duration.Valid {
		rec.DurationSecs = metadata.Float64Ptr(duration.Float64)
	}
	rec.BitrateKbps = nullInt(bitrate)
	rec.SampleRateHz = nullInt(sampleRate)
	rec.AudioChannels = nullInt(channels)
	if size.Valid {
		rec.FileSizeBytes = metadata.Int64Ptr(size.Int64)
	}
	rec.AudioFormat = nullString(format)
	rec.MetadataSource = source.String
	return nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return metadata.StringPtr(v.String)
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	return metadata.IntPtr(int(v.Int64))
}

// Rows is a rendered query result. NULL values are rendered as "NULL".
type Rows struct {
	Columns []string
	Values  [][]string
}

// Query runs an ad-hoc SQL statement against the catalogue and renders every
// value as text.
func (d *DB) Query(ctx context.Context, statement string) (Rows, error) {
	statement = strings.TrimSpace(statement)
	if statement == "" {
		return Rows{}, errors.New("query is empty")
	}
	var out Rows
	err := retryOnBusy(ctx, func() error {
		out = Rows{}
		rows, err := d.db.QueryContext(ctx, statement)
		if err != nil {
			return err
		}
		defer rows.Close()
		cols, err := rows.Columns()
		if err != nil {
			return err
		}
		out.Columns = cols
		for rows.Next() {
			raw := make([]any, len(cols))
			ptrs := make([]any, len(cols))
			for i := range raw {
				ptrs[i] = &raw[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				return err
			}
			row := make([]string, len(cols))
			for i, v := range raw {
				row[i] = renderValue(v)
			}
			out.Values = append(out.Values, row)
		}
		return rows.Err()
	})
	if err != nil {
		return Rows{}, fmt.Errorf("query: %w", err)
	}
	return out, nil
}

func renderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.DateTime)
	default:
		return fmt.Sprint(val)
	}
}
