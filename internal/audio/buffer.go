package audio

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidRange  = errors.New("invalid sample range")
	ErrInvalidBuffer = errors.New("invalid audio buffer")
	ErrDecode        = errors.New("audio decode failed")
)

// Buffer is decoded linear PCM: one float slice per channel, samples in
// [-1, 1], every channel the same length. Functions in this package only
// read from a Buffer they are given.
type Buffer struct {
	SampleRate int
	Channels   [][]float32
}

// allocates a silent buffer
func NewBuffer(sampleRate, channels, length int) *Buffer {
	data := make([][]float32, channels)
	for i := range data {
		data[i] = make([]float32, length)
	}
	return &Buffer{SampleRate: sampleRate, Channels: data}
}

func (b *Buffer) NumChannels() int {
	return len(b.Channels)
}

// samples per channel
func (b *Buffer) Len() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(b.Len()) / float64(b.SampleRate) * float64(time.Second))
}

func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidBuffer)
	}
	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidBuffer, b.SampleRate)
	}
	if len(b.Channels) == 0 {
		return fmt.Errorf("%w: no channels", ErrInvalidBuffer)
	}
	length := len(b.Channels[0])
	for i, ch := range b.Channels {
		if len(ch) != length {
			return fmt.Errorf(
				"%w: channel %d has %d samples, channel 0 has %d",
				ErrInvalidBuffer,
				i,
				len(ch),
				length,
			)
		}
	}
	return nil
}

// builds a Buffer from interleaved samples
func deinterleave(samples []float32, sampleRate, channels int) *Buffer {
	frames := len(samples) / channels
	buf := NewBuffer(sampleRate, channels, frames)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			buf.Channels[ch][i] = samples[i*channels+ch]
		}
	}
	return buf
}
