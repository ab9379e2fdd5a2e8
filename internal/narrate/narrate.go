package narrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/mgpai22/voiceover/internal/audio"
)

// sample rate of the raw PCM returned by the speech APIs
const speechSampleRate = 24000

// turns one caption text into audio
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*audio.Buffer, error)
}

// speech synthesis provider
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

type Options struct {
	Model string
	Voice string
	Speed float64 // OpenAI only, 0.25 to 4.0
}

// creates Synthesizer based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Synthesizer, error) {
	switch Provider(strings.ToLower(string(provider))) {
	case ProviderOpenAI:
		return NewOpenAISynthesizer(apiKey, opts)
	case ProviderGemini:
		return NewGeminiSynthesizer(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported speech provider: %s", provider)
	}
}
