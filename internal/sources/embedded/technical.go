package embedded

import (
	"context"
	"io"
	"math"
	"os"
	"strings"

	"github.com/hajimehoshi/go-mp3"

	"audiocat/internal/metadata"
)

// mp3SampleSize is the byte width of one decoded go-mp3 sample frame
// (16-bit stereo).
const mp3SampleSize = 4

func (s Source) technical(ctx context.Context, file metadata.File, fh *os.File, size int64) (*metadata.Technical, []metadata.Event) {
	tech := &metadata.Technical{FileSizeBytes: metadata.Int64Ptr(size)}
	if format := strings.ToUpper(strings.TrimPrefix(file.Ext, ".")); format != "" {
		tech.AudioFormat = metadata.StringPtr(format)
	}

	var probeErr error
	if s.prober != nil {
		result, err := s.prober.Probe(ctx, file.Path)
		if err == nil && result.AudioStreamCount() > 0 {
			if d := result.DurationSeconds(); d > 0 && !math.IsNaN(d) {
				tech.DurationSeconds = metadata.Float64Ptr(math.Round(d*1000) / 1000)
			}
			if br := result.BitRate(); br > 0 {
				tech.BitrateKbps = metadata.IntPtr(int(math.Round(float64(br) / 1000)))
			}
			if sr := result.SampleRate(); sr > 0 {
				tech.SampleRateHz = metadata.IntPtr(sr)
			}
			if ch := result.Channels(); ch > 0 {
				tech.AudioChannels = metadata.IntPtr(ch)
			}
			return tech, nil
		}
		probeErr = err
	}

	if file.Ext == ".mp3" {
		if ok := decodeMP3(fh, tech); ok {
			return tech, nil
		}
	}

	wrapped := metadata.Wrap(metadata.ErrUnavailable, "embedded", "stream properties", file.Name, probeErr)
	return tech, []metadata.Event{{
		Kind:     metadata.EventDegraded,
		Source:   metadata.SourceEmbedded.String(),
		FilePath: file.Path,
		Message:  "stream properties unavailable",
		Err:      wrapped,
	}}
}

// decodeMP3 fills sample rate, duration, and an average bitrate from the MP3
// frame stream.
func decodeMP3(fh *os.File, tech *metadata.Technical) bool {
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		return false
	}
	d, err := mp3.NewDecoder(fh)
	if err != nil || d.SampleRate() <= 0 {
		return false
	}
	tech.SampleRateHz = metadata.IntPtr(d.SampleRate())
	if length := d.Length(); length > 0 {
		seconds := float64(length/mp3SampleSize) / float64(d.SampleRate())
		tech.DurationSeconds = metadata.Float64Ptr(math.Round(seconds*1000) / 1000)
		if tech.FileSizeBytes != nil && seconds > 0 {
			kbps := float64(*tech.FileSizeBytes) * 8 / seconds / 1000
			tech.BitrateKbps = metadata.IntPtr(int(math.Round(kbps)))
		}
	}
	return true
}
