// Package embedded reads tags stored inside audio files (ID3v1/v2, MP4
// atoms, FLAC and Ogg Vorbis comments) and reports technical stream
// properties alongside them.
//
// Tag values are mapped onto semantic fields at this boundary; raw tag maps
// never leave the package. Technical properties come from ffprobe when a
// prober is configured, from the MP3 frame decoder for .mp3 files otherwise,
// and always include file size and container format.
package embedded
