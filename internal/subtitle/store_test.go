package subtitle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []Entry {
	return []Entry{
		{StartTime: "00:00:01,000", EndTime: "00:00:02,000", Text: "one"},
		{StartTime: "00:00:02,000", EndTime: "00:00:03,000", Text: "two"},
		{StartTime: "00:00:03,000", EndTime: "00:00:04,000", Text: "three"},
	}
}

func TestStoreStartsEmpty(t *testing.T) {
	store := NewStore()
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.Entries())
	assert.Equal(t, "", store.SourceName())

	err := store.UpdateEntry(0, Entry{StartTime: "00:00", EndTime: "00:01"})
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestStoreLoadCopiesInput(t *testing.T) {
	entries := sampleEntries()
	store := NewStore()
	require.NoError(t, store.Load(entries, "episode", FormatSRT))

	entries[0].Text = "mutated"
	got, err := store.Entry(0)
	require.NoError(t, err)
	assert.Equal(t, "one", got.Text)

	out := store.Entries()
	out[1].Text = "mutated"
	got, err = store.Entry(1)
	require.NoError(t, err)
	assert.Equal(t, "two", got.Text)
}

func TestStoreLoadRejectsUnsupportedFormat(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Load(sampleEntries(), "episode", FormatSRT))

	err := store.Load(nil, "other", Format("ass"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	assert.Equal(t, 3, store.Len())
	assert.Equal(t, "episode", store.SourceName())
	assert.Equal(t, FormatSRT, store.Format())
}

func TestStoreUpdateEntryIsolation(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Load(sampleEntries(), "episode", FormatSRT))

	replacement := Entry{StartTime: "00:00:02.500", EndTime: "00:00:02.900", Text: "TWO"}
	require.NoError(t, store.UpdateEntry(1, replacement))

	want := sampleEntries()
	want[1] = replacement
	assert.Equal(t, want, store.Entries())
}

func TestStoreUpdateEntryFailuresKeepState(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		entry   Entry
		wantErr error
	}{
		{"negative index", -1, Entry{StartTime: "00:00", EndTime: "00:01"}, ErrIndexOutOfRange},
		{"index past end", 3, Entry{StartTime: "00:00", EndTime: "00:01"}, ErrIndexOutOfRange},
		{"malformed start", 0, Entry{StartTime: "soon", EndTime: "00:01"}, ErrInvalidEntry},
		{"start after end", 0, Entry{StartTime: "00:00:05,000", EndTime: "00:00:01,000"}, ErrInvalidEntry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore()
			require.NoError(t, store.Load(sampleEntries(), "episode", FormatSRT))

			err := store.UpdateEntry(tt.index, tt.entry)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, sampleEntries(), store.Entries())
		})
	}
}

func TestStoreUpdateText(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Load(sampleEntries(), "episode", FormatSRT))

	require.NoError(t, store.UpdateText(2, "THREE"))
	got, err := store.Entry(2)
	require.NoError(t, err)
	assert.Equal(t, Entry{StartTime: "00:00:03,000", EndTime: "00:00:04,000", Text: "THREE"}, got)

	require.ErrorIs(t, store.UpdateText(5, "x"), ErrIndexOutOfRange)
}

func TestStoreSetFormatAndExport(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Load(sampleEntries()[:1], "episode", FormatSRT))

	require.NoError(t, store.SetFormat(FormatVTT))
	require.ErrorIs(t, store.SetFormat(Format("sub")), ErrUnsupportedFormat)
	assert.Equal(t, FormatVTT, store.Format())

	// entries keep their original notation until export
	got, err := store.Entry(0)
	require.NoError(t, err)
	assert.Equal(t, "00:00:01,000", got.StartTime)

	export, err := store.Export()
	require.NoError(t, err)
	assert.Equal(t, "episode.vtt", export.Name)
	assert.Equal(t, "text/vtt", export.MIMEType)
	assert.Equal(t, "WEBVTT\n\n1\n00:00:01.000 --> 00:00:02.000\none\n\n", export.Body)
}

func TestOpenAndWriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	srtPath := filepath.Join(tmpDir, "episode.final.srt")
	require.NoError(t, os.WriteFile(srtPath, []byte(scenarioSRT), 0644))

	store, err := Open(srtPath)
	require.NoError(t, err)
	assert.Equal(t, "episode.final", store.SourceName())
	assert.Equal(t, FormatSRT, store.Format())
	require.Equal(t, 2, store.Len())

	require.NoError(t, store.SetFormat(FormatTXT))
	outPath := filepath.Join(tmpDir, "out", "episode.txt")
	require.NoError(t, store.WriteFile(outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "Hello\nWorld", string(data))
}

func TestOpenRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "episode.ass")
	require.NoError(t, os.WriteFile(path, []byte("[Script Info]\n"), 0644))

	_, err := Open(path)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.srt", FormatSRT},
		{"dir/b.VTT", FormatVTT},
		{"c.txt", FormatTXT},
	}
	for _, tt := range tests {
		got, err := FormatFromExtension(tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := FormatFromExtension("d.ssa")
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	f, err := ParseFormat(".VTT")
	require.NoError(t, err)
	assert.Equal(t, FormatVTT, f)
	_, err = ParseFormat("ass")
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	assert.Equal(t, "talk.srt", ExportName("talk", FormatSRT))
	assert.Equal(t, "text/txt", MIMEType(FormatTXT))
	assert.Equal(t, "talk", SourceName("/tmp/talk.vtt"))
}
