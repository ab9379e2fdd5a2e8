package cli

import (
	"fmt"

	"github.com/mgpai22/voiceover/internal/subtitle"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [subtitle_file]",
	Short: "Change the text or timing of one entry",
	Long: `Replace the text, start time or end time of a single entry and write the
result. Fields that are not given keep their current value. Times accept
HH:MM:SS.mmm or MM:SS.mmm with '.' or ',' before the milliseconds.

Without -o the input file is rewritten in place.

Examples:
  voiceover edit talk.srt --index 3 --text "Hello there"
  voiceover edit talk.vtt -i 1 --start 00:00:01.500 --end 00:00:03.000
  voiceover edit talk.srt -i 2 --text "Hi" --format vtt -o talk.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().IntP("index", "i", 0, "1-based entry index (required)")
	editCmd.Flags().String("text", "", "New entry text")
	editCmd.Flags().String("start", "", "New start time")
	editCmd.Flags().String("end", "", "New end time")
	editCmd.Flags().
		StringP("format", "f", "", "Output subtitle format (defaults to the input format)")

	_ = editCmd.MarkFlagRequired("index")
}

func runEdit(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	store, err := openCaptions(inputPath)
	if err != nil {
		return err
	}

	index, _, err := entryIndex(cmd, store)
	if err != nil {
		return err
	}

	entry, err := store.Entry(index)
	if err != nil {
		return err
	}

	changed := false
	if cmd.Flags().Changed("text") {
		entry.Text, _ = cmd.Flags().GetString("text")
		changed = true
	}
	if cmd.Flags().Changed("start") {
		entry.StartTime, _ = cmd.Flags().GetString("start")
		changed = true
	}
	if cmd.Flags().Changed("end") {
		entry.EndTime, _ = cmd.Flags().GetString("end")
		changed = true
	}
	if !changed {
		return fmt.Errorf("nothing to change: give --text, --start or --end")
	}

	if err := store.UpdateEntry(index, entry); err != nil {
		return fmt.Errorf("failed to update entry %d: %w", index+1, err)
	}

	if cmd.Flags().Changed("format") {
		name, _ := cmd.Flags().GetString("format")
		format, err := subtitle.ParseFormat(name)
		if err != nil {
			return err
		}
		if err := store.SetFormat(format); err != nil {
			return err
		}
	}

	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		out = inputPath
		if store.Format() != inputFormat(inputPath) {
			out = outputPath(cmd, inputPath, "", store.Format())
		}
	}

	logger.Infow("Updated entry",
		"index", index+1,
		"start", entry.StartTime,
		"end", entry.EndTime,
	)
	return writeCaptions(cmd, store, out)
}

// format of a path that already opened successfully
func inputFormat(path string) subtitle.Format {
	format, _ := subtitle.FormatFromExtension(path)
	return format
}
