package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWAVHeader(t *testing.T) {
	buf := &Buffer{SampleRate: 44100, Channels: [][]float32{{1, -1}}}

	data, err := EncodeWAV(buf)
	require.NoError(t, err)

	want := []byte{
		'R', 'I', 'F', 'F', 0x28, 0x00, 0x00, 0x00,
		'W', 'A', 'V', 'E',
		'f', 'm', 't', ' ', 0x10, 0x00, 0x00, 0x00,
		0x01, 0x00, // PCM
		0x01, 0x00, // channels
		0x44, 0xAC, 0x00, 0x00, // 44100 Hz
		0x88, 0x58, 0x01, 0x00, // byte rate
		0x02, 0x00, // block align
		0x10, 0x00, // bits per sample
		'd', 'a', 't', 'a', 0x04, 0x00, 0x00, 0x00,
		0xFF, 0x7F, // 32767
		0x00, 0x80, // -32768
	}
	assert.Equal(t, want, data)
}

func TestEncodeWAVInterleavesChannels(t *testing.T) {
	buf := &Buffer{
		SampleRate: 8000,
		Channels: [][]float32{
			{0.5, 0},
			{-0.5, 0.25},
		},
	}

	data, err := EncodeWAV(buf)
	require.NoError(t, err)
	require.Len(t, data, wavHeaderSize+8)

	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(data[22:24]))
	assert.Equal(t, uint32(8000*4), binary.LittleEndian.Uint32(data[28:32]))
	assert.Equal(t, uint16(4), binary.LittleEndian.Uint16(data[32:34]))

	var samples [4]int16
	require.NoError(t, binary.Read(bytes.NewReader(data[wavHeaderSize:]), binary.LittleEndian, &samples))
	assert.Equal(t, [4]int16{16384, -16384, 0, 8192}, samples)
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		in   float32
		want int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32768},
		{0.5, 16384},
		{-0.5, -16384},
		{2, 32767},
		{-3, -32768},
		{float32(math.NaN()), 0},
		{float32(math.Inf(1)), 32767},
	}
	for _, tt := range tests {
		if got := quantize(tt.in); got != tt.want {
			t.Errorf("quantize(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDecodeWAVRoundTrip(t *testing.T) {
	buf := rampBuffer()

	data, err := EncodeWAV(buf)
	require.NoError(t, err)

	decoded, err := DecodeWAV(data)
	require.NoError(t, err)
	assert.Equal(t, buf.SampleRate, decoded.SampleRate)
	assert.Equal(t, buf.NumChannels(), decoded.NumChannels())
	require.Equal(t, buf.Len(), decoded.Len())
	for ch := range buf.Channels {
		for i := range buf.Channels[ch] {
			assert.InDelta(t, buf.Channels[ch][i], decoded.Channels[ch][i], 1.0/32767)
		}
	}
}

func TestDecodeWAVSkipsUnknownChunks(t *testing.T) {
	data, err := EncodeWAV(&Buffer{SampleRate: 16000, Channels: [][]float32{{0.5, -0.5}}})
	require.NoError(t, err)

	// splice an odd-sized LIST chunk (padded to even) between fmt and data
	list := []byte{'L', 'I', 'S', 'T', 0x03, 0x00, 0x00, 0x00, 'a', 'b', 'c', 0x00}
	spliced := append(append(append([]byte{}, data[:36]...), list...), data[36:]...)

	decoded, err := DecodeWAV(spliced)
	require.NoError(t, err)
	assert.Equal(t, 2, decoded.Len())
	assert.InDelta(t, 0.5, decoded.Channels[0][0], 1e-4)
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	tests := map[string][]byte{
		"empty":    nil,
		"not riff": []byte("OggS0000WAVE"),
		"no data":  []byte("RIFF\x04\x00\x00\x00WAVE"),
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeWAV(input)
			require.ErrorIs(t, err, ErrDecode)
		})
	}

	// 8-bit PCM
	data, err := EncodeWAV(&Buffer{SampleRate: 8000, Channels: [][]float32{{0}}})
	require.NoError(t, err)
	binary.LittleEndian.PutUint16(data[34:36], 8)
	_, err = DecodeWAV(data)
	require.ErrorIs(t, err, ErrDecode)
}

func TestDecodePCM16(t *testing.T) {
	// mono: 16384, -32768, 32767
	raw := []byte{0x00, 0x40, 0x00, 0x80, 0xff, 0x7f}
	buf, err := DecodePCM16(raw, 24000, 1)
	require.NoError(t, err)
	assert.Equal(t, 24000, buf.SampleRate)
	require.Equal(t, 3, buf.Len())
	assert.InDelta(t, 0.5, buf.Channels[0][0], 1e-4)
	assert.Equal(t, float32(-1), buf.Channels[0][1])
	assert.Equal(t, float32(1), buf.Channels[0][2])

	_, err = DecodePCM16(raw[:5], 24000, 1)
	require.ErrorIs(t, err, ErrDecode)
	_, err = DecodePCM16(raw[:4], 24000, 0)
	require.ErrorIs(t, err, ErrDecode)
}
