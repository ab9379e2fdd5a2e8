package narrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/mgpai22/voiceover/internal/audio"
	"github.com/mgpai22/voiceover/internal/subtitle"
)

// written narration info
type Narration struct {
	Path  string
	Index int
	Text  string
}

// NarrateAll synthesizes every entry with non-blank text into
// outputDir/<source>_<n>.wav, n being the 1-based entry position. If
// concurrency is 0 or negative, it defaults to 3 workers.
func NarrateAll(
	ctx context.Context,
	synth Synthesizer,
	entries []subtitle.Entry,
	sourceName string,
	outputDir string,
	concurrency int,
) ([]Narration, error) {
	if concurrency <= 0 {
		concurrency = 3
	}

	var jobs []Narration
	for i, entry := range entries {
		if strings.TrimSpace(entry.Text) == "" {
			continue
		}
		jobs = append(jobs, Narration{
			Path:  filepath.Join(outputDir, audio.ClipName(sourceName, i)),
			Index: i,
			Text:  entry.Text,
		})
	}
	if len(jobs) == 0 {
		return []Narration{}, nil
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		written  []Narration
		firstErr error
		wg       sync.WaitGroup
	)

	sem := make(chan struct{}, concurrency)

	for _, job := range jobs {
		wg.Add(1)
		go func(n Narration) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			err := narrateOne(ctx, synth, n)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("failed to narrate entry %d: %w", n.Index+1, err)
					cancel()
				}
				return
			}
			written = append(written, n)
		}(job)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if len(written) != len(jobs) {
		return nil, ctx.Err()
	}

	sort.Slice(written, func(i, j int) bool {
		return written[i].Index < written[j].Index
	})

	return written, nil
}

func narrateOne(ctx context.Context, synth Synthesizer, n Narration) error {
	buf, err := synth.Synthesize(ctx, n.Text)
	if err != nil {
		return err
	}
	data, err := audio.EncodeWAV(buf)
	if err != nil {
		return err
	}
	return os.WriteFile(n.Path, data, 0644)
}
