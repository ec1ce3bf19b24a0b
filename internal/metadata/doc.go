// Package metadata defines the shared vocabulary of the extraction pipeline.
//
// Sources (folder, filename, manifest, embedded) each produce a
// PartialRecord of FieldCandidate values tagged with their Source tier. The
// merge engine folds those into exactly one NormalizedRecord per audio file,
// which is the row written to the JSON Lines handoff file.
//
// Key types:
//   - Source: the four provenance tiers, ordered by priority
//   - Field: semantic field names resolved independently per file
//   - PartialRecord: one source's candidates for one file
//   - Technical: stream properties reported only by the embedded source
//   - NormalizedRecord: the merged, classified output row
//   - Event: structured outcome emitted by a source instead of logging
//   - Extractor: the capability every source implements
//
// The package has no I/O of its own; it only holds types, error markers, and
// the small helpers that keep absent and empty values distinct.
package metadata
