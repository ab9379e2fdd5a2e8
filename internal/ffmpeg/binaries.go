package ffmpeg

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
)

type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

var (
	mu         sync.Mutex
	configured BinaryPaths
)

// Configure pins binary locations, usually from the config file or
// VOICEOVER_FFMPEG_PATH / VOICEOVER_FFPROBE_PATH. Empty fields fall back
// to a PATH lookup.
func Configure(paths BinaryPaths) {
	mu.Lock()
	defer mu.Unlock()
	configured = paths
}

func Ensure() (BinaryPaths, error) {
	mu.Lock()
	paths := configured
	mu.Unlock()

	ffmpegPath, err := locate("ffmpeg", paths.FFmpeg)
	if err != nil {
		return BinaryPaths{}, err
	}
	ffprobePath, err := locate("ffprobe", paths.FFprobe)
	if err != nil {
		return BinaryPaths{}, err
	}
	return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}

func FFmpegPath() (string, error) {
	mu.Lock()
	path := configured.FFmpeg
	mu.Unlock()
	return locate("ffmpeg", path)
}

func FFprobePath() (string, error) {
	mu.Lock()
	path := configured.FFprobe
	mu.Unlock()
	return locate("ffprobe", path)
}

func locate(name, explicit string) (string, error) {
	if explicit != "" {
		if !fileExists(explicit) {
			return "", fmt.Errorf("%s not found at %s", name, explicit)
		}
		return explicit, nil
	}

	found, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf(
			"%s not found in PATH: install it or set ffmpeg_path/ffprobe_path in the config: %w",
			name,
			err,
		)
	}
	return found, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}
