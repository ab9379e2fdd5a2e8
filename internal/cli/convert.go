package cli

import (
	"fmt"

	"github.com/mgpai22/voiceover/internal/subtitle"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [subtitle_file]",
	Short: "Convert a caption file to another format",
	Long: `Read a caption file and write it out in another format.

Converting to plain text drops all timing. Converting plain text to SRT or
WebVTT uses synthetic times, one entry every 3 seconds.

Examples:
  voiceover convert talk.srt --format vtt
  voiceover convert talk.vtt -f srt -o subs/talk.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		StringP("format", "f", "", "Output subtitle format (srt, vtt, txt; default from config)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	format, err := subtitle.ParseFormat(stringSetting(cmd, "format", cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: use srt, vtt, or txt", err)
	}

	store, err := openCaptions(inputPath)
	if err != nil {
		return err
	}

	suffix := ""
	if format == store.Format() {
		suffix = ".converted"
	}
	out := outputPath(cmd, inputPath, suffix, format)

	if err := store.SetFormat(format); err != nil {
		return err
	}

	logger.Infow("Converting subtitles", "input", inputPath, "output", out, "format", format)
	return writeCaptions(cmd, store, out)
}
