package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgpai22/voiceover/internal/audio"
	"github.com/mgpai22/voiceover/internal/config"
	"github.com/mgpai22/voiceover/internal/logging"
	"github.com/mgpai22/voiceover/internal/subtitle"
)

const talkSRT = `1
00:00:00,250 --> 00:00:01,000
Hello
world

2
00:00:01,000 --> 00:00:01,750
Second line
`

// resets every flag so commands can run more than once per test binary
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeTalk(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "talk.srt")
	require.NoError(t, os.WriteFile(path, []byte(talkSRT), 0644))
	return path
}

func TestShow(t *testing.T) {
	out, err := execute(t, "show", writeTalk(t))
	require.NoError(t, err)
	assert.Contains(t, out, "START")
	assert.Contains(t, out, "00:00:00,250")
	assert.Contains(t, out, "Hello / world")
	assert.Contains(t, out, "Second line")
}

func TestShowMissingFile(t *testing.T) {
	_, err := execute(t, "show", filepath.Join(t.TempDir(), "absent.srt"))
	require.ErrorContains(t, err, "subtitle file not found")
}

func TestConvertToVTT(t *testing.T) {
	input := writeTalk(t)
	out := filepath.Join(t.TempDir(), "nested", "talk.vtt")

	_, err := execute(t, "convert", input, "--format", "vtt", "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "WEBVTT\n\n"+
		"1\n00:00:00.250 --> 00:00:01.000\nHello\nworld\n\n"+
		"2\n00:00:01.000 --> 00:00:01.750\nSecond line\n\n", string(data))
}

func TestConvertDefaultOutputPath(t *testing.T) {
	input := writeTalk(t)

	_, err := execute(t, "convert", input, "-f", "txt")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(filepath.Dir(input), "talk.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Hello\nworld\nSecond line", string(data))
}

func TestConvertRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "convert", writeTalk(t), "-f", "ass")
	require.ErrorIs(t, err, subtitle.ErrUnsupportedFormat)
}

func TestEdit(t *testing.T) {
	input := writeTalk(t)
	out := filepath.Join(t.TempDir(), "edited.srt")

	_, err := execute(t, "edit", input, "--index", "2", "--text", "Changed", "--end", "00:00:02.000", "-o", out)
	require.NoError(t, err)

	store, err := subtitle.Open(out)
	require.NoError(t, err)
	entry, err := store.Entry(1)
	require.NoError(t, err)
	assert.Equal(t, subtitle.Entry{
		StartTime: "00:00:01,000",
		EndTime:   "00:00:02,000",
		Text:      "Changed",
	}, entry)

	first, err := store.Entry(0)
	require.NoError(t, err)
	assert.Equal(t, "Hello\nworld", first.Text)
}

func TestEditInPlaceWithFormatChange(t *testing.T) {
	input := writeTalk(t)

	_, err := execute(t, "edit", input, "-i", "1", "--text", "Hi", "-f", "vtt")
	require.NoError(t, err)

	original, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, talkSRT, string(original))

	store, err := subtitle.Open(filepath.Join(filepath.Dir(input), "talk.vtt"))
	require.NoError(t, err)
	entry, err := store.Entry(0)
	require.NoError(t, err)
	assert.Equal(t, "Hi", entry.Text)
}

func TestEditRejectsBadInput(t *testing.T) {
	input := writeTalk(t)

	_, err := execute(t, "edit", input, "--index", "9", "--text", "x")
	require.ErrorIs(t, err, subtitle.ErrIndexOutOfRange)

	_, err = execute(t, "edit", input, "--index", "1", "--start", "soon")
	require.ErrorIs(t, err, subtitle.ErrInvalidEntry)

	_, err = execute(t, "edit", input, "--index", "1")
	require.ErrorContains(t, err, "nothing to change")

	data, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, talkSRT, string(data))
}

func TestClipFromWAV(t *testing.T) {
	dir := t.TempDir()
	captions := writeTalk(t)

	// 2 seconds of mono audio at 8 kHz
	buf := audio.NewBuffer(8000, 1, 16000)
	for i := range buf.Channels[0] {
		buf.Channels[0][i] = 0.25
	}
	wav, err := audio.EncodeWAV(buf)
	require.NoError(t, err)
	mediaPath := filepath.Join(dir, "talk.wav")
	require.NoError(t, os.WriteFile(mediaPath, wav, 0644))

	outDir := filepath.Join(dir, "clips")
	out, err := execute(t, "clip", captions, mediaPath, "--out-dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Clips: 2")

	data, err := os.ReadFile(filepath.Join(outDir, "talk_1.wav"))
	require.NoError(t, err)
	clip, err := audio.DecodeWAV(data)
	require.NoError(t, err)
	assert.Equal(t, 6000, clip.Len())

	data, err = os.ReadFile(filepath.Join(outDir, "talk_2.wav"))
	require.NoError(t, err)
	clip, err = audio.DecodeWAV(data)
	require.NoError(t, err)
	assert.Equal(t, 6000, clip.Len())
}

func TestClipSingleEntryOutOfRange(t *testing.T) {
	dir := t.TempDir()
	captions := writeTalk(t)

	// half a second, shorter than entry 2
	wav, err := audio.EncodeWAV(audio.NewBuffer(8000, 1, 4000))
	require.NoError(t, err)
	mediaPath := filepath.Join(dir, "short.wav")
	require.NoError(t, os.WriteFile(mediaPath, wav, 0644))

	_, err = execute(t, "clip", captions, mediaPath, "--index", "2", "--out-dir", dir)
	require.ErrorIs(t, err, audio.ErrInvalidRange)
}

func TestTranslateRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	_, err := execute(t, "translate", writeTalk(t), "-t", "es")
	require.ErrorContains(t, err, "GEMINI_API_KEY")
}

func TestTranslateRejectsSameLanguage(t *testing.T) {
	_, err := execute(t, "translate", writeTalk(t), "-t", "Spanish", "-l", " spanish ")
	require.ErrorContains(t, err, "cannot be the same")
}

func TestNarrateRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := execute(t, "narrate", writeTalk(t))
	require.ErrorContains(t, err, "OPENAI_API_KEY")
}

func TestSettingsPreferChangedFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "probe"}
	cmd.Flags().String("provider", "openai", "")
	cmd.Flags().Int("concurrency", 3, "")
	cmd.Flags().Float64("speed", 1.0, "")

	assert.Equal(t, "gemini", stringSetting(cmd, "provider", "gemini"))
	assert.Equal(t, "openai", stringSetting(cmd, "provider", ""))
	assert.Equal(t, 8, intSetting(cmd, "concurrency", 8))
	assert.Equal(t, 1.5, floatSetting(cmd, "speed", 1.5))

	require.NoError(t, cmd.Flags().Set("provider", "anthropic"))
	require.NoError(t, cmd.Flags().Set("concurrency", "2"))
	require.NoError(t, cmd.Flags().Set("speed", "0.5"))
	assert.Equal(t, "anthropic", stringSetting(cmd, "provider", "gemini"))
	assert.Equal(t, 2, intSetting(cmd, "concurrency", 8))
	assert.Equal(t, 0.5, floatSetting(cmd, "speed", 1.5))
}

func TestOutputPath(t *testing.T) {
	cmd := &cobra.Command{Use: "probe"}
	cmd.Flags().StringP("output", "o", "", "")

	got := outputPath(cmd, filepath.Join("media", "talk.srt"), ".es", subtitle.FormatSRT)
	assert.Equal(t, filepath.Join("media", "talk.es.srt"), got)

	require.NoError(t, cmd.Flags().Set("output", "x.vtt"))
	assert.Equal(t, "x.vtt", outputPath(cmd, "talk.srt", ".es", subtitle.FormatSRT))
}

func TestOpenCaptionsLogsToLogger(t *testing.T) {
	logger = logging.NewNop()
	cfg = &config.Config{}

	store, err := openCaptions(writeTalk(t))
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, "talk", store.SourceName())
}
