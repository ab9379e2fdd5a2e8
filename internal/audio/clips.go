package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/mgpai22/voiceover/internal/subtitle"
)

// written clip info
type ClipInfo struct {
	Path         string
	Index        int
	StartSeconds float64
	EndSeconds   float64
}

// file name for the clip of entry index (0-based) of a caption set
func ClipName(sourceName string, index int) string {
	return fmt.Sprintf("%s_%d.wav", sourceName, index+1)
}

// ExportClips writes one WAV file per entry into outputDir. Every entry's
// range is checked before any file is written. If concurrency is 0 or
// negative, it defaults to 4 workers.
func ExportClips(
	ctx context.Context,
	buf *Buffer,
	entries []subtitle.Entry,
	sourceName string,
	outputDir string,
	concurrency int,
) ([]ClipInfo, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	if concurrency <= 0 {
		concurrency = 4
	}

	jobs := make([]ClipInfo, 0, len(entries))
	for i, entry := range entries {
		startSeconds, endSeconds, err := entry.Span()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		if _, _, err := sampleRange(buf, startSeconds, endSeconds); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		jobs = append(jobs, ClipInfo{
			Path:         filepath.Join(outputDir, ClipName(sourceName, i)),
			Index:        i,
			StartSeconds: startSeconds,
			EndSeconds:   endSeconds,
		})
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var (
		mu       sync.Mutex
		clips    []ClipInfo
		firstErr error
		wg       sync.WaitGroup
	)

	// Create a semaphore to limit concurrency
	sem := make(chan struct{}, concurrency)

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		default:
		}

		mu.Lock()
		hasErr := firstErr != nil
		mu.Unlock()
		if hasErr {
			break
		}

		wg.Add(1)
		go func(j ClipInfo) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			err := writeClip(buf, j)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("failed to write clip %d: %w", j.Index+1, err)
				}
				return
			}
			clips = append(clips, j)
		}(job)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// sort clips by index to maintain order
	sort.Slice(clips, func(i, j int) bool {
		return clips[i].Index < clips[j].Index
	})

	return clips, nil
}

func writeClip(buf *Buffer, j ClipInfo) error {
	data, err := Clip(buf, j.StartSeconds, j.EndSeconds)
	if err != nil {
		return err
	}
	return os.WriteFile(j.Path, data, 0644)
}
