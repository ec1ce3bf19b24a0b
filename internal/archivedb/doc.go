// Package archivedb loads the JSON Lines handoff produced by a scan into a
// SQLite catalogue and answers summary queries over it.
//
// The audio_files table mirrors the output record one column per field, keyed
// by file_path. Re-importing a file updates its row in place. Schema changes
// bump catalogueVersion in schema.go; users delete the database to adopt them.
package archivedb
