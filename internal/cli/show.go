package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [subtitle_file]",
	Short: "List the entries of a caption file",
	Long: `List every entry of an SRT, WebVTT or plain text caption file with its
1-based index, start and end time and text. Multi-line text is joined
with " / ".

Examples:
  voiceover show talk.srt
  voiceover show notes.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	store, err := openCaptions(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSTART\tEND\tTEXT")
	for i, entry := range store.Entries() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			i+1,
			entry.StartTime,
			entry.EndTime,
			strings.ReplaceAll(entry.Text, "\n", " / "),
		)
	}
	return w.Flush()
}
