package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/voiceover/internal/audio"
	"github.com/mgpai22/voiceover/internal/ffmpeg"
	"github.com/mgpai22/voiceover/internal/subtitle"
	"github.com/spf13/cobra"
)

var clipCmd = &cobra.Command{
	Use:   "clip [subtitle_file] [media_file]",
	Short: "Cut the audio of each caption entry into WAV clips",
	Long: `Decode an audio or video file and write the samples covered by each caption
entry as a 16-bit PCM WAV file named <captions>_<n>.wav, n being the 1-based
entry index.

16-bit PCM .wav input is read directly; everything else is decoded with ffmpeg.
Every entry's time range is checked against the audio before any clip is
written.

Examples:
  voiceover clip talk.srt talk.mp3
  voiceover clip talk.vtt talk.mp4 --out-dir clips --concurrency 8
  voiceover clip talk.srt talk.wav --index 4`,
	Args: cobra.ExactArgs(2),
	RunE: runClip,
}

func init() {
	rootCmd.AddCommand(clipCmd)

	clipCmd.Flags().IntP("index", "i", 0, "Only clip this 1-based entry")
	clipCmd.Flags().
		String("out-dir", "", "Directory for the clips (default <captions>_clips next to the caption file)")
	clipCmd.Flags().
		Int("sample-rate", 0, "Resample to this rate in Hz when decoding with ffmpeg (0 keeps the source rate)")
	clipCmd.Flags().
		Int("concurrency", 4, "Number of parallel clip writers")
}

func runClip(cmd *cobra.Command, args []string) error {
	captionPath, mediaPath := args[0], args[1]
	ctx := context.Background()

	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", mediaPath)
	}
	if !audio.IsMediaFile(mediaPath) {
		return fmt.Errorf("unsupported file type: %s (expected audio or video file)", filepath.Ext(mediaPath))
	}

	store, err := openCaptions(captionPath)
	if err != nil {
		return err
	}
	if store.Format() == subtitle.FormatTXT {
		logger.Warnw("Plain text captions carry synthetic 3 second timings",
			"input", captionPath,
		)
	}

	index, single, err := entryIndex(cmd, store)
	if err != nil {
		return err
	}

	sampleRate, _ := cmd.Flags().GetInt("sample-rate")
	concurrency := intSetting(cmd, "concurrency", cfg.Concurrency)
	outDir, _ := cmd.Flags().GetString("out-dir")
	if outDir == "" {
		outDir = filepath.Join(filepath.Dir(captionPath), store.SourceName()+"_clips")
	}

	if !strings.EqualFold(filepath.Ext(mediaPath), ".wav") {
		paths, err := ffmpeg.Ensure()
		if err != nil {
			return err
		}
		logger.Debugw("Using ffmpeg", "ffmpeg", paths.FFmpeg, "ffprobe", paths.FFprobe)
	}

	logger.Infow("Decoding audio", "input", mediaPath)
	decoder := &audio.FFmpegDecoder{SampleRate: sampleRate}
	buf, err := audio.DecodeFile(ctx, mediaPath, decoder)
	if err != nil {
		return fmt.Errorf("failed to decode audio: %w", err)
	}

	logger.Infow("Audio decoded",
		"duration", buf.Duration().String(),
		"sample_rate", buf.SampleRate,
		"channels", buf.NumChannels(),
	)

	if single {
		return writeSingleClip(cmd, store, buf, index, outDir)
	}

	logger.Infow("Writing clips",
		"entries", store.Len(),
		"output_dir", outDir,
		"concurrency", concurrency,
	)

	clips, err := audio.ExportClips(
		ctx,
		buf,
		store.Entries(),
		store.SourceName(),
		outDir,
		concurrency,
	)
	if err != nil {
		return fmt.Errorf("clipping failed: %w", err)
	}

	absDir, _ := filepath.Abs(outDir)
	fmt.Fprintf(cmd.OutOrStdout(), "Clips written: %s\n", absDir)
	fmt.Fprintf(cmd.OutOrStdout(), "  Clips: %d\n", len(clips))
	return nil
}

func writeSingleClip(
	cmd *cobra.Command,
	store *subtitle.Store,
	buf *audio.Buffer,
	index int,
	outDir string,
) error {
	entry, err := store.Entry(index)
	if err != nil {
		return err
	}

	data, err := audio.ClipEntry(buf, entry)
	if err != nil {
		return fmt.Errorf("failed to clip entry %d: %w", index+1, err)
	}

	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		path = filepath.Join(outDir, audio.ClipName(store.SourceName(), index))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write clip: %w", err)
	}

	absOutput, _ := filepath.Abs(path)
	fmt.Fprintf(cmd.OutOrStdout(), "Clip written: %s\n", absOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "  Entry: %d (%s --> %s)\n", index+1, entry.StartTime, entry.EndTime)
	return nil
}
