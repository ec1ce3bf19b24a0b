// Package filename matches audio file base names against an ordered table of
// naming conventions found in broadcast and audiobook archives.
//
// Patterns are grouped and tried in a fixed order: date-bearing names first,
// then series/episode markers, then chapter markers, then loose hints. The
// first pattern that matches decides every field this source reports, so a
// name that satisfies several conventions is interpreted one way only.
package filename
