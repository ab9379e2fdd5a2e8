package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mgpai22/voiceover/internal/config"
	"github.com/mgpai22/voiceover/internal/narrate"
	"github.com/spf13/cobra"
)

var narrateCmd = &cobra.Command{
	Use:   "narrate [subtitle_file]",
	Short: "Synthesize speech for every caption entry",
	Long: `Send the text of each caption entry to a speech synthesis provider and save
the result as <captions>_<n>.wav, n being the 1-based entry index. Entries
with blank text are skipped.

Providers: openai (tts-1, voices such as alloy, nova, onyx) and gemini
(gemini-2.5-flash-preview-tts, voices such as Kore, Puck).

Examples:
  voiceover narrate talk.srt
  voiceover narrate talk.vtt --provider gemini --voice Puck --out-dir voice
  voiceover narrate talk.srt --voice onyx --speed 1.2`,
	Args: cobra.ExactArgs(1),
	RunE: runNarrate,
}

func init() {
	rootCmd.AddCommand(narrateCmd)

	narrateCmd.Flags().
		String("provider", "openai", "Speech provider (openai, gemini)")
	narrateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set OPENAI_API_KEY/GEMINI_API_KEY env var)")
	narrateCmd.Flags().
		String("model", "", "Speech model (provider-specific, uses sensible defaults)")
	narrateCmd.Flags().String("voice", "", "Voice name (provider-specific)")
	narrateCmd.Flags().
		Float64("speed", 1.0, "Speaking speed, 0.25 to 4.0 (openai only)")
	narrateCmd.Flags().
		String("out-dir", "", "Directory for the narration (default <captions>_narration next to the caption file)")
	narrateCmd.Flags().
		Int("concurrency", 3, "Number of parallel synthesis requests")
}

func runNarrate(cmd *cobra.Command, args []string) error {
	captionPath := args[0]
	ctx := context.Background()

	providerStr := stringSetting(cmd, "provider", cfg.Narrate.Provider)
	apiKeyFlag, _ := cmd.Flags().GetString("api-key")
	concurrency := intSetting(cmd, "concurrency", cfg.Concurrency)
	outDir, _ := cmd.Flags().GetString("out-dir")

	if concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", concurrency)
	}

	apiKey, err := config.APIKey(providerStr, apiKeyFlag)
	if err != nil {
		return err
	}

	store, err := openCaptions(captionPath)
	if err != nil {
		return err
	}
	if store.Len() == 0 {
		return fmt.Errorf("subtitle file contains no entries")
	}

	if outDir == "" {
		outDir = filepath.Join(filepath.Dir(captionPath), store.SourceName()+"_narration")
	}

	opts := narrate.Options{
		Model: stringSetting(cmd, "model", cfg.Narrate.Model),
		Voice: stringSetting(cmd, "voice", cfg.Narrate.Voice),
		Speed: floatSetting(cmd, "speed", cfg.Narrate.Speed),
	}

	synth, err := narrate.Factory(ctx, narrate.Provider(providerStr), apiKey, opts)
	if err != nil {
		return fmt.Errorf("failed to create synthesizer: %w", err)
	}

	logger.Infow("Narrating subtitles",
		"provider", providerStr,
		"voice", opts.Voice,
		"entries", store.Len(),
		"output_dir", outDir,
		"concurrency", concurrency,
	)

	written, err := narrate.NarrateAll(
		ctx,
		synth,
		store.Entries(),
		store.SourceName(),
		outDir,
		concurrency,
	)
	if err != nil {
		return fmt.Errorf("narration failed: %w", err)
	}

	for _, n := range written {
		logger.Debugw("Narration written", "index", n.Index+1, "path", n.Path)
	}

	absDir, _ := filepath.Abs(outDir)
	fmt.Fprintf(cmd.OutOrStdout(), "Narration written: %s\n", absDir)
	fmt.Fprintf(cmd.OutOrStdout(), "  Files: %d of %d entries\n", len(written), store.Len())
	return nil
}
