// Command audiocat indexes an audio archive. It scans a directory tree,
// combines folder names, file names, sidecar manifests, and embedded tags into
// one record per file, writes the records as JSON Lines, and loads them into a
// SQLite catalogue for querying.
package main
