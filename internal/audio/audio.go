package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mgpai22/voiceover/internal/ffmpeg"
)

// stream properties reported by ffprobe
type Info struct {
	Duration   time.Duration
	SampleRate int
	Channels   int
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
	} `json:"streams"`
}

// reads duration and the first audio stream's layout
func Probe(filePath string) (*Info, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}

	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: ffprobe failed: %v", ErrDecode, err)
	}

	return parseProbeOutput(out.Bytes())
}

func parseProbeOutput(data []byte) (*Info, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: failed to parse ffprobe output: %v", ErrDecode, err)
	}

	info := &Info{}
	if probe.Format.Duration != "" {
		seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse duration: %v", ErrDecode, err)
		}
		info.Duration = time.Duration(seconds * float64(time.Second))
	}

	for _, stream := range probe.Streams {
		if stream.CodecType != "audio" {
			continue
		}
		rate, err := strconv.Atoi(stream.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("%w: bad sample rate %q", ErrDecode, stream.SampleRate)
		}
		info.SampleRate = rate
		info.Channels = stream.Channels
		return info, nil
	}

	return nil, fmt.Errorf("%w: no audio stream", ErrDecode)
}

// turns audio bytes on disk into a Buffer
type Decoder interface {
	Decode(ctx context.Context, path string) (*Buffer, error)
}

// decodes anything ffmpeg understands, including video containers
type FFmpegDecoder struct {
	SampleRate int // 0 keeps the source rate
	Channels   int // 0 keeps the source layout
}

func NewFFmpegDecoder() *FFmpegDecoder {
	return &FFmpegDecoder{}
}

func (d *FFmpegDecoder) Decode(ctx context.Context, path string) (*Buffer, error) {
	info, err := Probe(path)
	if err != nil {
		return nil, err
	}

	sampleRate := info.SampleRate
	if d.SampleRate > 0 {
		sampleRate = d.SampleRate
	}
	channels := info.Channels
	if d.Channels > 0 {
		channels = d.Channels
	}
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrDecode, channels, sampleRate)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	kwargs := ffmpeg.KwArgs{
		"vn":     "",          // No video
		"f":      "f32le",     // Raw float samples
		"acodec": "pcm_f32le", // 32-bit float
		"ar":     sampleRate,  // Sample rate
		"ac":     channels,    // Channels
	}

	var out, stderr bytes.Buffer
	err = ffmpeg.Input(path).
		Output("pipe:", kwargs).
		WithOutput(&out).
		WithErrorOutput(&stderr).
		SetFfmpegPath(ffmpegPath).
		Run()
	if err != nil {
		return nil, fmt.Errorf(
			"%w: ffmpeg: %v: %s",
			ErrDecode,
			err,
			lastLine(stderr.String()),
		)
	}

	return bufferFromFloat32LE(out.Bytes(), sampleRate, channels)
}

func bufferFromFloat32LE(raw []byte, sampleRate, channels int) (*Buffer, error) {
	frameBytes := 4 * channels
	if len(raw)%frameBytes != 0 {
		return nil, fmt.Errorf(
			"%w: %d bytes is not a whole number of %d-channel frames",
			ErrDecode,
			len(raw),
			channels,
		)
	}

	samples := make([]float32, len(raw)/4)
	for i := range samples {
		samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return deinterleave(samples, sampleRate, channels), nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.LastIndex(s, "\n"); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// decodes 16-bit PCM .wav files without ffmpeg
type WAVDecoder struct{}

func (WAVDecoder) Decode(ctx context.Context, path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}
	return DecodeWAV(data)
}

// DecodeFile tries the pure Go WAV reader for .wav input and falls back
// to ffmpeg for everything else, or for WAV encodings it cannot read.
func DecodeFile(ctx context.Context, path string, fallback Decoder) (*Buffer, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		buf, err := (WAVDecoder{}).Decode(ctx, path)
		if err == nil {
			return buf, nil
		}
	}
	return fallback.Decode(ctx, path)
}

// checks if the file is a video based on extension
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	videoExts := map[string]bool{
		".mp4":  true,
		".mkv":  true,
		".avi":  true,
		".mov":  true,
		".webm": true,
		".m4v":  true,
	}
	return videoExts[ext]
}

// checks if the file is an audio file based on extension
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	audioExts := map[string]bool{
		".mp3":  true,
		".wav":  true,
		".aac":  true,
		".flac": true,
		".ogg":  true,
		".opus": true,
		".m4a":  true,
	}
	return audioExts[ext]
}

// checks if the file is either audio or video
func IsMediaFile(path string) bool {
	return IsAudioFile(path) || IsVideoFile(path)
}
