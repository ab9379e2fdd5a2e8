package subtitle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Open reads a caption file, picking the format from its extension.
func Open(path string) (*Store, error) {
	format, err := FormatFromExtension(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open subtitle file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return Read(file, SourceName(path), format)
}

// Read parses caption text from r into a new Store.
func Read(r io.Reader, sourceName string, format Format) (*Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle data: %w", err)
	}

	entries, err := Parse(string(data), format)
	if err != nil {
		return nil, err
	}

	store := NewStore()
	if err := store.Load(entries, sourceName, format); err != nil {
		return nil, err
	}
	return store, nil
}

// WriteFile writes the store in its active format to path.
func (s *Store) WriteFile(path string) error {
	export, err := s.Export()
	if err != nil {
		return err
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(export.Body), 0644)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
