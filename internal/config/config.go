package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "VOICEOVER"

type Config struct {
	Format      string          `mapstructure:"format"`
	FFmpegPath  string          `mapstructure:"ffmpeg_path"`
	FFprobePath string          `mapstructure:"ffprobe_path"`
	Concurrency int             `mapstructure:"concurrency"`
	Narrate     NarrateConfig   `mapstructure:"narrate"`
	Translate   TranslateConfig `mapstructure:"translate"`
}

// speech synthesis settings
type NarrateConfig struct {
	Provider string  `mapstructure:"provider"`
	Model    string  `mapstructure:"model"`
	Voice    string  `mapstructure:"voice"`
	Speed    float64 `mapstructure:"speed"`
}

type TranslateConfig struct {
	Provider  string `mapstructure:"provider"`
	Model     string `mapstructure:"model"`
	BatchSize int    `mapstructure:"batch_size"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("format", "srt")
	v.SetDefault("ffmpeg_path", "")
	v.SetDefault("ffprobe_path", "")
	v.SetDefault("concurrency", 4)
	v.SetDefault("narrate.provider", "openai")
	v.SetDefault("narrate.model", "")
	v.SetDefault("narrate.voice", "")
	v.SetDefault("narrate.speed", 1.0)
	v.SetDefault("translate.provider", "gemini")
	v.SetDefault("translate.model", "")
	v.SetDefault("translate.batch_size", 50)
}

// Load reads defaults, then the config file, then VOICEOVER_* environment
// variables. An explicit path that does not exist is an error; a missing
// default config file is not.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "voiceover"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// environment variable holding the API key for a provider
func APIKeyEnv(provider string) string {
	switch strings.ToLower(provider) {
	case "gemini":
		return "GEMINI_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	default:
		return "API_KEY"
	}
}

// APIKey prefers the explicit flag value over the provider's env var.
func APIKey(provider, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	envVar := APIKeyEnv(provider)
	if key := os.Getenv(envVar); key != "" {
		return key, nil
	}
	return "", fmt.Errorf(
		"API key is required: use --api-key flag or set %s environment variable",
		envVar,
	)
}
