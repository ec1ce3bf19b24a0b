// Package scan walks an archive root, runs every metadata source on each
// audio file, merges the results, and streams one JSON object per file to a
// JSON Lines output.
//
// Files are processed one at a time in relative-path order so that repeated
// runs over an unchanged tree produce identical output. Per-file problems
// never abort a run; only configuration failures (a missing root, a held
// output lock) and output write failures do.
package scan
