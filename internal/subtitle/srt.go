package subtitle

import (
	"fmt"
	"strings"
)

// SubRip format
type srtCodec struct{}

// Each block is index, timing line, then one or more text lines. The index
// line is not checked; blocks shorter than three lines or without a timing
// marker on line two are skipped.
func (srtCodec) parse(text string) []Entry {
	var entries []Entry
	for _, block := range splitBlocks(text) {
		if len(block) < 3 {
			continue
		}
		start, end, ok := splitTiming(block[1])
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			StartTime: start,
			EndTime:   end,
			Text:      strings.TrimSpace(strings.Join(block[2:], "\n")),
		})
	}
	return entries
}

func (srtCodec) generate(entries []Entry) string {
	var sb strings.Builder
	for i, entry := range entries {
		if i > 0 {
			sb.WriteString("\n")
		}

		// index (1-based)
		fmt.Fprintf(&sb, "%d\n", i+1)

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(withSeparator(entry.StartTime, ','))
		sb.WriteString(timingSeparator)
		sb.WriteString(withSeparator(entry.EndTime, ','))
		sb.WriteString("\n")

		sb.WriteString(entry.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}
