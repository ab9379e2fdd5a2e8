package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mgpai22/voiceover/internal/config"
	"github.com/mgpai22/voiceover/internal/translate"
	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate [subtitle_file]",
	Short: "Translate caption text to another language using AI",
	Long: `Translate the text of every entry of a caption file using AI. Timing is kept
as is and the output uses the input format.

The --overlay flag creates bilingual captions with the translated text
first, followed by the original text on the next line.

Examples:
  voiceover translate talk.srt --target-language japanese
  voiceover translate talk.vtt -t es --overlay
  voiceover translate talk.srt -l english -t german --provider anthropic -o talk.de.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	translateCmd.Flags().
		StringP("language", "l", "", "Language of the input captions (optional)")
	translateCmd.Flags().
		Bool("overlay", false, "Overlay translated text with original (bilingual captions)")
	translateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY env var)")
	translateCmd.Flags().
		String("model", "", "Model to use for translation (provider-specific, uses sensible defaults)")
	translateCmd.Flags().
		String("provider", "gemini", "Translation provider (gemini, openai, anthropic)")
	translateCmd.Flags().
		String("prompt", "", "Additional instructions for the translator")
	translateCmd.Flags().
		Int("concurrency", 3, "Number of parallel translation workers")
	translateCmd.Flags().
		Int("batch-size", translate.DefaultBatchSize, "Number of caption entries per API request")

	_ = translateCmd.MarkFlagRequired("target-language")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	captionPath := args[0]
	ctx := context.Background()

	targetLang, _ := cmd.Flags().GetString("target-language")
	inputLang, _ := cmd.Flags().GetString("language")
	overlay, _ := cmd.Flags().GetBool("overlay")
	apiKeyFlag, _ := cmd.Flags().GetString("api-key")
	prompt, _ := cmd.Flags().GetString("prompt")
	providerStr := stringSetting(cmd, "provider", cfg.Translate.Provider)
	model := stringSetting(cmd, "model", cfg.Translate.Model)
	concurrency := intSetting(cmd, "concurrency", cfg.Concurrency)
	batchSize := intSetting(cmd, "batch-size", cfg.Translate.BatchSize)

	if targetLang == "" {
		return fmt.Errorf("target language is required")
	}

	if inputLang != "" &&
		strings.EqualFold(
			strings.TrimSpace(inputLang),
			strings.TrimSpace(targetLang),
		) {
		return fmt.Errorf(
			"input language %q and target language %q cannot be the same",
			inputLang,
			targetLang,
		)
	}

	if concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", concurrency)
	}
	if batchSize <= 0 {
		return fmt.Errorf("batch-size must be positive, got %d", batchSize)
	}

	apiKey, err := config.APIKey(providerStr, apiKeyFlag)
	if err != nil {
		return err
	}

	store, err := openCaptions(captionPath)
	if err != nil {
		return err
	}

	items := translate.ItemsFromStore(store)
	if len(items) == 0 {
		return fmt.Errorf("subtitle file contains no text to translate")
	}

	suffix := "." + targetLang
	if overlay {
		suffix += ".overlay"
	}
	out := outputPath(cmd, captionPath, suffix, store.Format())

	logger.Infow("Starting subtitle translation",
		"input", captionPath,
		"output", out,
		"target_language", targetLang,
		"input_language", inputLang,
		"overlay", overlay,
		"provider", providerStr,
		"model", model,
	)

	opts := translate.Options{
		InputLanguage:  inputLang,
		TargetLanguage: targetLang,
		Model:          model,
		Prompt:         prompt,
		BatchSize:      batchSize,
	}

	translator, err := translate.Factory(ctx, translate.Provider(providerStr), apiKey, opts)
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	logger.Infow("Translating subtitles",
		"items", len(items),
		"concurrency", concurrency,
	)

	results, err := translator.TranslateWithConcurrency(ctx, items, concurrency)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	logger.Infow("Translation complete", "results", len(results))

	if err := translate.Apply(store, results, overlay); err != nil {
		return err
	}

	if err := writeCaptions(cmd, store, out); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Target language: %s\n", targetLang)
	if overlay {
		fmt.Fprintf(cmd.OutOrStdout(), "  Mode: bilingual overlay\n")
	}
	return nil
}
