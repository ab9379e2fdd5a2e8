package narrate

import (
	"context"
	"fmt"
	"io"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/mgpai22/voiceover/internal/audio"
)

const defaultOpenAIVoice = "nova"

// implements Synthesizer using the OpenAI speech endpoint
type OpenAISynthesizer struct {
	client openai.Client
	model  openai.SpeechModel
	voice  string
	speed  float64
}

func NewOpenAISynthesizer(apiKey string, opts Options) (*OpenAISynthesizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	model := openai.SpeechModel(opts.Model)
	if opts.Model == "" {
		model = openai.SpeechModelTTS1
	}

	voice := opts.Voice
	if voice == "" {
		voice = defaultOpenAIVoice
	}

	speed := opts.Speed
	if speed <= 0 || speed > 4.0 {
		speed = 1.0
	}

	return &OpenAISynthesizer{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		voice:  voice,
		speed:  speed,
	}, nil
}

func (s *OpenAISynthesizer) Synthesize(
	ctx context.Context,
	text string,
) (*audio.Buffer, error) {
	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Input:          text,
		Model:          s.model,
		Voice:          openai.AudioSpeechNewParamsVoice(s.voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatPCM,
		Speed:          openai.Float(s.speed),
	})
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	pcm, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read speech response: %w", err)
	}

	return decodeSpeech(pcm)
}

// mono 16-bit PCM at the speech sample rate; a trailing odd byte is dropped
func decodeSpeech(pcm []byte) (*audio.Buffer, error) {
	if len(pcm) == 0 {
		return nil, fmt.Errorf("empty audio in speech response")
	}
	return audio.DecodePCM16(pcm[:len(pcm)-len(pcm)%2], speechSampleRate, 1)
}
