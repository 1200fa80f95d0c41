package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
	openrouterx "github.com/tanpawarit/Recruitment-Dispatcher/pkg/openrouter"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"

	openAIBaseURL = "https://api.openai.com/v1"
)

var defaultModels = map[string]string{
	ProviderOpenRouter: "anthropic/claude-3.5-sonnet",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderGemini:     "gemini-2.5-flash",
}

// Config describes the external tip generator. An empty APIKey disables the
// external tier entirely.
type Config struct {
	Provider        string        `envconfig:"PROVIDER" split_words:"true" default:"openrouter"`
	APIKey          string        `envconfig:"API_KEY" split_words:"true"`
	Model           string        `envconfig:"MODEL" split_words:"true"`
	BaseURL         string        `envconfig:"BASE_URL" split_words:"true"`
	MaxOutputTokens int           `envconfig:"MAX_OUTPUT_TOKENS" split_words:"true" default:"100"`
	Temperature     float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout         time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"15s"`
	SiteURL         string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName        string        `envconfig:"SITE_NAME" split_words:"true"`
}

func (c Config) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func (c Config) provider() string {
	p := strings.ToLower(strings.TrimSpace(c.Provider))
	if p == "" {
		return ProviderOpenRouter
	}
	return p
}

func (c Config) model() string {
	if m := strings.TrimSpace(c.Model); m != "" {
		return m
	}
	return defaultModels[c.provider()]
}

func (c Config) Validate() error {
	if _, ok := defaultModels[c.provider()]; !ok {
		return fmt.Errorf("%w: unsupported generator provider=%q", contractx.ErrValidation, c.Provider)
	}
	if c.MaxOutputTokens < 0 {
		return fmt.Errorf("%w: max output tokens must be >= 0", contractx.ErrValidation)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must be >= 0", contractx.ErrValidation)
	}
	return nil
}

// OpenRouter maps the generator config onto the OpenAI-compatible client
// config. The openai provider reuses it with the OpenAI endpoint.
func (c Config) OpenRouter() openrouterx.Config {
	baseURL := strings.TrimSpace(c.BaseURL)
	if baseURL == "" {
		baseURL = openrouterx.DefaultBaseURL
		if c.provider() == ProviderOpenAI {
			baseURL = openAIBaseURL
		}
	}

	maxTokens := c.MaxOutputTokens
	return openrouterx.Config{
		BaseURL:            baseURL,
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              c.model(),
		MaxCompletionToken: &maxTokens,
		Temperature:        c.Temperature,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
