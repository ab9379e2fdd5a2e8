package subtitle

import (
	"fmt"
)

// Store is the caption set being edited: ordered entries, the name of the
// file they came from and the active output format. Entry order is the
// display and export order and is never re-sorted by time.
//
// A Store has one owner and no internal locking.
type Store struct {
	entries    []Entry
	sourceName string
	format     Format
}

func NewStore() *Store {
	return &Store{}
}

// Load replaces the whole state. On error nothing changes.
func (s *Store) Load(entries []Entry, sourceName string, format Format) error {
	if !format.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	copied := make([]Entry, len(entries))
	copy(copied, entries)

	s.entries = copied
	s.sourceName = sourceName
	s.format = format
	return nil
}

// SetFormat changes the export format; entries keep their timestamp notation.
func (s *Store) SetFormat(format Format) error {
	if !format.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	s.format = format
	return nil
}

// UpdateEntry replaces the entry at index. The replacement must carry two
// parseable timestamps with start <= end.
func (s *Store) UpdateEntry(index int, entry Entry) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	if err := ValidateEntry(entry); err != nil {
		return err
	}
	s.entries[index] = entry
	return nil
}

// UpdateText replaces only the text of the entry at index.
func (s *Store) UpdateText(index int, text string) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.entries[index].Text = text
	return nil
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.entries) {
		return fmt.Errorf(
			"%w: index %d (0-%d)",
			ErrIndexOutOfRange,
			index,
			len(s.entries)-1,
		)
	}
	return nil
}

// ValidateEntry checks both timestamps parse and start does not follow end.
func ValidateEntry(entry Entry) error {
	start, end, err := entry.Span()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	if start > end {
		return fmt.Errorf(
			"%w: start %s is after end %s",
			ErrInvalidEntry,
			entry.StartTime,
			entry.EndTime,
		)
	}
	return nil
}

// copy of the current entries
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Entry(index int) (Entry, error) {
	if err := s.checkIndex(index); err != nil {
		return Entry{}, err
	}
	return s.entries[index], nil
}

func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) SourceName() string {
	return s.sourceName
}

func (s *Store) Format() Format {
	return s.format
}

// what the export collaborator needs to offer a download
type Export struct {
	Name     string
	MIMEType string
	Body     string
}

// Export renders the entries in the active format.
func (s *Store) Export() (Export, error) {
	body, err := Generate(s.entries, s.format)
	if err != nil {
		return Export{}, err
	}
	return Export{
		Name:     ExportName(s.sourceName, s.format),
		MIMEType: MIMEType(s.format),
		Body:     body,
	}, nil
}
