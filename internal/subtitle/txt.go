package subtitle

import (
	"strings"
)

// seconds assigned to each line of a plain text import
const txtLineSeconds = 3

// plain text, one caption per line
type txtCodec struct{}

func (txtCodec) parse(text string) []Entry {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	entries := make([]Entry, len(lines))
	for i, line := range lines {
		entries[i] = Entry{
			StartTime: FormatSeconds(float64(i * txtLineSeconds)),
			EndTime:   FormatSeconds(float64((i + 1) * txtLineSeconds)),
			Text:      strings.TrimSpace(line),
		}
	}
	return entries
}

// timestamps are dropped
func (txtCodec) generate(entries []Entry) string {
	texts := make([]string, len(entries))
	for i, entry := range entries {
		texts[i] = entry.Text
	}
	return strings.Join(texts, "\n")
}
