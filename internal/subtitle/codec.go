package subtitle

import (
	"fmt"
	"strings"
)

// one parser/generator pair per format
type codec interface {
	parse(text string) []Entry
	generate(entries []Entry) string
}

var codecs = map[Format]codec{
	FormatSRT: srtCodec{},
	FormatVTT: vttCodec{},
	FormatTXT: txtCodec{},
}

func codecFor(format Format) (codec, error) {
	c, ok := codecs[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return c, nil
}

// Parse decodes caption text in the given format. Blocks that do not carry
// a usable timing line are dropped, not reported.
func Parse(text string, format Format) ([]Entry, error) {
	c, err := codecFor(format)
	if err != nil {
		return nil, err
	}
	return c.parse(normalizeText(text)), nil
}

// Generate encodes entries in the given format.
func Generate(entries []Entry, format Format) (string, error) {
	c, err := codecFor(format)
	if err != nil {
		return "", err
	}
	return c.generate(entries), nil
}

// strips a UTF-8 BOM and converts CRLF/CR line endings to LF
func normalizeText(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// splits "START --> END [settings]" and checks both sides are timestamps
func splitTiming(line string) (start, end string, ok bool) {
	idx := strings.Index(line, timingSeparator)
	if idx < 0 {
		return "", "", false
	}

	start = strings.TrimSpace(line[:idx])
	rest := strings.Fields(line[idx+len(timingSeparator):])
	if len(rest) == 0 {
		return "", "", false
	}
	end = rest[0]

	if _, err := ParseTimestamp(start); err != nil {
		return "", "", false
	}
	if _, err := ParseTimestamp(end); err != nil {
		return "", "", false
	}
	return start, end, true
}

// groups lines into blocks separated by whitespace-only lines
func splitBlocks(text string) [][]string {
	var blocks [][]string
	var current []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}
