package testsupport

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// AudioPayloadSize is the filler written after any tag so that readers which
// seek relative to the end of the file (ID3v1 probing) have room to do so.
const AudioPayloadSize = 4096

// WriteAudioFile writes an untagged file of filler bytes.
func WriteAudioFile(t testing.TB, path string) {
	t.Helper()
	WriteFile(t, path, AudioPayloadSize)
}

// WriteID3File writes a file starting with an ID3v2.3 tag holding the given
// text frames (frame ID -> text) followed by filler bytes. A "COMM" entry is
// encoded as a comment frame.
func WriteID3File(t testing.TB, path string, frames map[string]string) {
	t.Helper()
	writeBytes(t, path, append(BuildID3v23(frames), filler(AudioPayloadSize)...))
}

// WriteCorruptTagFile writes a file whose ID3 header declares an unsupported
// version, which tag readers reject as malformed.
func WriteCorruptTagFile(t testing.TB, path string) {
	t.Helper()
	header := []byte{'I', 'D', '3', 0x09, 0x00, 0x00, 0x00, 0x00, 0x02, 0x01}
	writeBytes(t, path, append(header, filler(AudioPayloadSize)...))
}

// BuildID3v23 encodes frames as an ID3v2.3 tag with ISO-8859-1 text.
func BuildID3v23(frames map[string]string) []byte {
	ids := make([]string, 0, len(frames))
	for id := range frames {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var body bytes.Buffer
	for _, id := range ids {
		var data []byte
		if id == "COMM" {
			data = append([]byte{0x00, 'e', 'n', 'g', 0x00}, frames[id]...)
		} else {
			data = append([]byte{0x00}, frames[id]...)
		}
		body.WriteString(id)
		size := make([]byte, 4)
		binary.BigEndian.PutUint32(size, uint32(len(data)))
		body.Write(size)
		body.Write([]byte{0x00, 0x00})
		body.Write(data)
	}

	header := []byte{'I', 'D', '3', 0x03, 0x00, 0x00}
	header = append(header, syncsafe(body.Len())...)
	return append(header, body.Bytes()...)
}

func syncsafe(n int) []byte {
	return []byte{
		byte(n>>21) & 0x7f,
		byte(n>>14) & 0x7f,
		byte(n>>7) & 0x7f,
		byte(n) & 0x7f,
	}
}

func filler(size int) []byte {
	return bytes.Repeat([]byte{0x42}, size)
}

func writeBytes(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
