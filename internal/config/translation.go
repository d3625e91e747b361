package config

import "time"

type Translation struct {
	Provider TranslationProvider `envPrefix:"PROVIDER_"`

	// Source language, ISO code or "auto" for detection
	Source string `env:"SOURCE,expand" envDefault:"en"`
	Target string `env:"TARGET,expand" envDefault:"pt"`

	// Per-request character ceiling of the backend
	MaxChars int `env:"MAX_CHARS,expand" envDefault:"4500"`

	MaxRetries  int           `env:"MAX_RETRIES,expand" envDefault:"3"`
	BaseBackoff time.Duration `env:"BASE_BACKOFF" envDefault:"1s"`
	MinInterval time.Duration `env:"MIN_INTERVAL" envDefault:"1s"`
}

type TranslationProvider struct {
	Name                string `env:"NAME,expand" envDefault:"openai"`
	BaseURL             string `env:"BASE_URL,expand" envDefault:"https://api.mistral.ai/v1/"`
	Key                 string `env:"KEY,expand"`
	ChatCompletionModel string `env:"CHAT_COMPLETION_MODEL,expand" envDefault:"mistral-small-latest"`
}
