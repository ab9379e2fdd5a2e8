package cli

import (
	"fmt"

	"github.com/mgpai22/voiceover/internal/config"
	"github.com/mgpai22/voiceover/internal/ffmpeg"
	"github.com/mgpai22/voiceover/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configFile string
	cfg        *config.Config
	logger     *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "voiceover",
	Short: "Caption editing, audio clipping and narration",
	Long: `Voiceover is a CLI tool for working with caption files.

It reads and writes SRT, WebVTT and plain text captions, edits entries,
cuts the matching audio for each entry into WAV clips, and can narrate
or translate caption text with AI providers.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose).WithRun()

		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded

		ffmpeg.Configure(ffmpeg.BinaryPaths{
			FFmpeg:  cfg.FFmpegPath,
			FFprobe: cfg.FFprobePath,
		})

		logger.Debugw("Configuration loaded",
			"config", configFile,
			"format", cfg.Format,
			"concurrency", cfg.Concurrency,
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Errorw("Command failed", "error", err)
		}
		return fmt.Errorf("voiceover: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringVar(&configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/voiceover/config.yaml)")
}
