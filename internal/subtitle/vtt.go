package subtitle

import (
	"fmt"
	"strings"
)

const vttHeader = "WEBVTT"

// WebVTT format
type vttCodec struct{}

func (vttCodec) parse(text string) []Entry {
	lines := strings.Split(text, "\n")

	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i < len(lines) && strings.Contains(lines[i], vttHeader) {
		i++
	}

	var (
		entries   []Entry
		current   *Entry
		textLines []string
	)

	// a cue is emitted once, when its text ends
	flush := func() {
		if current != nil && len(textLines) > 0 {
			current.Text = strings.Join(textLines, "\n")
			entries = append(entries, *current)
		}
		current = nil
		textLines = nil
	}

	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if line == "" {
			flush()
			continue
		}

		if current == nil && isVTTMetadataBlock(line) {
			for i+1 < len(lines) && strings.TrimSpace(lines[i+1]) != "" {
				i++
			}
			continue
		}

		if strings.Contains(line, timingSeparator) {
			flush()
			if start, end, ok := splitTiming(line); ok {
				current = &Entry{StartTime: start, EndTime: end}
			}
			continue
		}

		// cue identifiers and header metadata land here with no open cue
		if current != nil {
			textLines = append(textLines, line)
		}
	}
	flush()

	return entries
}

func (vttCodec) generate(entries []Entry) string {
	var sb strings.Builder

	sb.WriteString(vttHeader)
	sb.WriteString("\n\n")

	for i, entry := range entries {
		// optional cue identifier
		fmt.Fprintf(&sb, "%d\n", i+1)

		// timestamps: 00:00:00.000 --> 00:00:00.000
		sb.WriteString(withSeparator(entry.StartTime, '.'))
		sb.WriteString(timingSeparator)
		sb.WriteString(withSeparator(entry.EndTime, '.'))
		sb.WriteString("\n")

		sb.WriteString(entry.Text)
		sb.WriteString("\n\n")
	}

	return sb.String()
}

func isVTTMetadataBlock(line string) bool {
	for _, keyword := range []string{"NOTE", "STYLE", "REGION"} {
		if line == keyword || strings.HasPrefix(line, keyword+" ") ||
			strings.HasPrefix(line, keyword+"\t") {
			return true
		}
	}
	return false
}
