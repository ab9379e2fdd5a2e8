package audio

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	wavHeaderSize    = 44
	wavFormatPCM     = 1
	wavBitsPerSample = 16
)

// EncodeWAV serializes buf as a canonical 44-byte-header RIFF/WAVE file with
// 16-bit little-endian interleaved samples.
func EncodeWAV(buf *Buffer) ([]byte, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	channels := buf.NumChannels()
	frames := buf.Len()
	blockAlign := channels * wavBitsPerSample / 8
	dataSize := uint64(frames) * uint64(blockAlign)
	if dataSize > math.MaxUint32-36 {
		return nil, fmt.Errorf("%w: %d bytes of samples exceed the WAV size limit", ErrInvalidBuffer, dataSize)
	}

	out := make([]byte, wavHeaderSize+int(dataSize))
	le := binary.LittleEndian

	copy(out[0:4], "RIFF")
	le.PutUint32(out[4:8], uint32(36+dataSize))
	copy(out[8:12], "WAVE")

	copy(out[12:16], "fmt ")
	le.PutUint32(out[16:20], 16)
	le.PutUint16(out[20:22], wavFormatPCM)
	le.PutUint16(out[22:24], uint16(channels))
	le.PutUint32(out[24:28], uint32(buf.SampleRate))
	le.PutUint32(out[28:32], uint32(buf.SampleRate*blockAlign))
	le.PutUint16(out[32:34], uint16(blockAlign))
	le.PutUint16(out[34:36], wavBitsPerSample)

	copy(out[36:40], "data")
	le.PutUint32(out[40:44], uint32(dataSize))

	offset := wavHeaderSize
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			le.PutUint16(out[offset:], uint16(quantize(buf.Channels[ch][i])))
			offset += 2
		}
	}

	return out, nil
}

// Negative samples scale by 32768 and the rest by 32767, so -1 and 1 both
// hit full scale. Out of range input is clamped instead of wrapping.
func quantize(sample float32) int16 {
	s := float64(sample)
	if math.IsNaN(s) {
		return 0
	}

	var scaled float64
	if s < 0 {
		scaled = math.Round(s * 32768)
	} else {
		scaled = math.Round(s * 32767)
	}

	switch {
	case scaled > math.MaxInt16:
		return math.MaxInt16
	case scaled < math.MinInt16:
		return math.MinInt16
	default:
		return int16(scaled)
	}
}

func dequantize(v int16) float32 {
	if v < 0 {
		return float32(v) / 32768
	}
	return float32(v) / 32767
}

// DecodeWAV reads 16-bit PCM RIFF/WAVE data. Chunks other than "fmt " and
// "data" are skipped.
func DecodeWAV(data []byte) (*Buffer, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("%w: not a RIFF/WAVE file", ErrDecode)
	}

	le := binary.LittleEndian
	var (
		channels   int
		sampleRate int
		haveFormat bool
	)

	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(le.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		if size < 0 || body+size > len(data) {
			return nil, fmt.Errorf("%w: chunk %q overruns file", ErrDecode, id)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("%w: short fmt chunk", ErrDecode)
			}
			format := le.Uint16(data[body : body+2])
			bits := le.Uint16(data[body+14 : body+16])
			if format != wavFormatPCM || bits != wavBitsPerSample {
				return nil, fmt.Errorf(
					"%w: unsupported encoding (format %d, %d bits)",
					ErrDecode,
					format,
					bits,
				)
			}
			channels = int(le.Uint16(data[body+2 : body+4]))
			sampleRate = int(le.Uint32(data[body+4 : body+8]))
			haveFormat = true

		case "data":
			if !haveFormat {
				return nil, fmt.Errorf("%w: data chunk before fmt chunk", ErrDecode)
			}
			frameSize := 2 * max(channels, 1)
			return DecodePCM16(data[body:body+size-size%frameSize], sampleRate, channels)
		}

		// chunks are word aligned
		pos = body + size + size%2
	}

	return nil, fmt.Errorf("%w: no data chunk", ErrDecode)
}

// DecodePCM16 converts raw interleaved signed 16-bit little-endian samples,
// the output of most speech synthesis APIs, into a Buffer.
func DecodePCM16(data []byte, sampleRate, channels int) (*Buffer, error) {
	if channels < 1 || sampleRate < 1 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrDecode, channels, sampleRate)
	}
	if len(data)%(2*channels) != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of frames", ErrDecode, len(data))
	}

	le := binary.LittleEndian
	samples := make([]float32, len(data)/2)
	for i := range samples {
		samples[i] = dequantize(int16(le.Uint16(data[2*i:])))
	}
	return deinterleave(samples, sampleRate, channels), nil
}
