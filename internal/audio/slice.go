package audio

import (
	"fmt"
	"math"

	"github.com/mgpai22/voiceover/internal/subtitle"
)

// converts a time range to [start, end) sample indices within buf
func sampleRange(buf *Buffer, startSeconds, endSeconds float64) (int, int, error) {
	for _, v := range []float64{startSeconds, endSeconds} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, fmt.Errorf("%w: non-finite time %v", ErrInvalidRange, v)
		}
	}

	rate := float64(buf.SampleRate)
	start := math.Floor(startSeconds * rate)
	end := math.Floor(endSeconds * rate)

	if end-start <= 0 {
		return 0, 0, fmt.Errorf(
			"%w: %.3fs-%.3fs is empty at %d Hz",
			ErrInvalidRange,
			startSeconds,
			endSeconds,
			buf.SampleRate,
		)
	}
	if start < 0 || end > float64(buf.Len()) {
		return 0, 0, fmt.Errorf(
			"%w: samples %.0f-%.0f outside buffer of %d",
			ErrInvalidRange,
			start,
			end,
			buf.Len(),
		)
	}
	return int(start), int(end), nil
}

// Slice copies [startSeconds, endSeconds) of buf into a new Buffer. Ranges
// reaching past the end of buf are rejected, not truncated.
func Slice(buf *Buffer, startSeconds, endSeconds float64) (*Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	start, end, err := sampleRange(buf, startSeconds, endSeconds)
	if err != nil {
		return nil, err
	}

	clip := NewBuffer(buf.SampleRate, buf.NumChannels(), end-start)
	for ch, samples := range buf.Channels {
		copy(clip.Channels[ch], samples[start:end])
	}
	return clip, nil
}

// Clip slices buf and encodes the result as WAV.
func Clip(buf *Buffer, startSeconds, endSeconds float64) ([]byte, error) {
	clip, err := Slice(buf, startSeconds, endSeconds)
	if err != nil {
		return nil, err
	}
	return EncodeWAV(clip)
}

// ClipEntry cuts the audio under one caption entry.
func ClipEntry(buf *Buffer, entry subtitle.Entry) ([]byte, error) {
	start, end, err := entry.Span()
	if err != nil {
		return nil, err
	}
	return Clip(buf, start, end)
}
