package narrate

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/mgpai22/voiceover/internal/audio"
)

const (
	defaultGeminiModel = "gemini-2.5-flash-preview-tts"
	defaultGeminiVoice = "Kore"
)

// implements Synthesizer using Gemini native audio output
type GeminiSynthesizer struct {
	client *genai.Client
	model  string
	voice  string
}

func NewGeminiSynthesizer(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*GeminiSynthesizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = defaultGeminiModel
	}
	voice := opts.Voice
	if voice == "" {
		voice = defaultGeminiVoice
	}

	return &GeminiSynthesizer{client: client, model: model, voice: voice}, nil
}

func (s *GeminiSynthesizer) Synthesize(
	ctx context.Context,
	text string,
) (*audio.Buffer, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: s.voice,
				},
			},
		},
	}

	result, err := s.client.Models.GenerateContent(
		ctx,
		s.model,
		genai.Text(text),
		config,
	)
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}

	pcm, err := inlineAudio(result)
	if err != nil {
		return nil, err
	}
	return decodeSpeech(pcm)
}

// concatenated inline audio of the first candidate carrying any
func inlineAudio(result *genai.GenerateContentResponse) ([]byte, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		var pcm []byte
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil {
				pcm = append(pcm, part.InlineData.Data...)
			}
		}
		if len(pcm) > 0 {
			return pcm, nil
		}
	}

	return nil, fmt.Errorf("no audio in Gemini response")
}
