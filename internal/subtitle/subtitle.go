package subtitle

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrUnsupportedFormat  = errors.New("unsupported subtitle format")
	ErrIndexOutOfRange    = errors.New("entry index out of range")
	ErrInvalidEntry       = errors.New("invalid subtitle entry")
)

// timing marker shared by SRT and WebVTT
const timingSeparator = " --> "

// represents single subtitle entry; times are kept in their source notation
type Entry struct {
	StartTime string
	EndTime   string
	Text      string
}

// resolves both timestamps to seconds
func (e Entry) Span() (start, end float64, err error) {
	start, err = ParseTimestamp(e.StartTime)
	if err != nil {
		return 0, 0, fmt.Errorf("start time: %w", err)
	}
	end, err = ParseTimestamp(e.EndTime)
	if err != nil {
		return 0, 0, fmt.Errorf("end time: %w", err)
	}
	return start, end, nil
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
	FormatTXT Format = "txt"
)

func (f Format) Valid() bool {
	switch f {
	case FormatSRT, FormatVTT, FormatTXT:
		return true
	default:
		return false
	}
}

// ParseFormat accepts a format name such as "srt" or ".VTT".
func ParseFormat(name string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "."))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	return f, nil
}

// subtitle format based on file extension
func FormatFromExtension(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return FormatSRT, nil
	case ".vtt":
		return FormatVTT, nil
	case ".txt":
		return FormatTXT, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// file extension for a format
func ExtensionForFormat(format Format) string {
	return "." + string(format)
}

// MIME label handed to the export collaborator
func MIMEType(format Format) string {
	return "text/" + string(format)
}

// download name for an exported caption set
func ExportName(sourceName string, format Format) string {
	return sourceName + ExtensionForFormat(format)
}

// base name of a path with its extension stripped
func SourceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
