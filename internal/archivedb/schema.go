package archivedb

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

//go:embed schema.sql
var schemaSQL string

// catalogueVersion tracks schema.sql. Catalogues are rebuilt from JSON Lines
// output, so there are no migrations: a mismatch means delete and reload.
const catalogueVersion = 1

// ErrSchemaMismatch reports a catalogue written by a different schema version.
var ErrSchemaMismatch = errors.New("catalogue schema version mismatch")

func (d *DB) initSchema(ctx context.Context) error {
	version, err := d.storedVersion(ctx)
	switch {
	case errors.Is(err, errNoVersion):
		return d.createSchema(ctx)
	case err != nil:
		return err
	case version != catalogueVersion:
		return fmt.Errorf("%w: %s has version %d, want %d; remove it and run audiocat load again",
			ErrSchemaMismatch, d.path, version, catalogueVersion)
	}
	return nil
}

var errNoVersion = errors.New("no schema version recorded")

func (d *DB) storedVersion(ctx context.Context) (int, error) {
	var tables int
	query, args, err := sq.Select("COUNT(1)").
		From("sqlite_master").
		Where(sq.Eq{"type": "table", "name": "schema_version"}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build schema lookup: %w", err)
	}
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&tables); err != nil {
		return 0, fmt.Errorf("look up schema_version table: %w", err)
	}
	if tables == 0 {
		return 0, errNoVersion
	}

	var version int
	err = d.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, errNoVersion
	}
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

func (d *DB) createSchema(ctx context.Context) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema.sql: %w", err)
	}
	stmt, args, err := sq.Insert("schema_version").Columns("version").Values(catalogueVersion).ToSql()
	if err != nil {
		return fmt.Errorf("build version insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}
