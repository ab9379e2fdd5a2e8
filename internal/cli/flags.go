package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mgpai22/voiceover/internal/subtitle"
	"github.com/spf13/cobra"
)

// flag value when set on the command line, otherwise the configured one
func stringSetting(cmd *cobra.Command, name, configured string) string {
	if cmd.Flags().Changed(name) || configured == "" {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return configured
}

func intSetting(cmd *cobra.Command, name string, configured int) int {
	if cmd.Flags().Changed(name) || configured == 0 {
		v, _ := cmd.Flags().GetInt(name)
		return v
	}
	return configured
}

func floatSetting(cmd *cobra.Command, name string, configured float64) float64 {
	if cmd.Flags().Changed(name) || configured == 0 {
		v, _ := cmd.Flags().GetFloat64(name)
		return v
	}
	return configured
}

// opens a caption file after checking it exists
func openCaptions(path string) (*subtitle.Store, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("subtitle file not found: %s", path)
	}

	store, err := subtitle.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse subtitle file: %w", err)
	}

	logger.Infow("Parsed subtitle file",
		"input", path,
		"entries", store.Len(),
		"format", store.Format(),
	)
	return store, nil
}

// output path from -o, or next to the input with a suffix and the
// extension of format
func outputPath(cmd *cobra.Command, inputPath, suffix string, format subtitle.Format) string {
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		return out
	}
	base := filepath.Join(filepath.Dir(inputPath), subtitle.SourceName(inputPath))
	return base + suffix + subtitle.ExtensionForFormat(format)
}

// 1-based --index value to a store position; 0 means unset
func entryIndex(cmd *cobra.Command, store *subtitle.Store) (int, bool, error) {
	n, _ := cmd.Flags().GetInt("index")
	if !cmd.Flags().Changed("index") {
		return 0, false, nil
	}
	if n < 1 || n > store.Len() {
		return 0, false, fmt.Errorf(
			"%w: --index %d, file has %d entries",
			subtitle.ErrIndexOutOfRange,
			n,
			store.Len(),
		)
	}
	return n - 1, true, nil
}

func writeCaptions(cmd *cobra.Command, store *subtitle.Store, path string) error {
	logger.Infow("Writing output file", "output", path, "format", store.Format())
	if err := store.WriteFile(path); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	absOutput, _ := filepath.Abs(path)
	fmt.Fprintf(cmd.OutOrStdout(), "Subtitles written: %s\n", absOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "  Entries: %d\n", store.Len())
	return nil
}
