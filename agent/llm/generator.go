package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	openaisdk "github.com/openai/openai-go"
	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
	openrouterx "github.com/tanpawarit/Recruitment-Dispatcher/pkg/openrouter"
	"google.golang.org/genai"
)

// BuildPrompt renders the bounded prompt sent to the external generator.
func BuildPrompt(req contractx.GenerateRequest) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(req.Instruction))
	b.WriteString("\n\nJob Description: ")
	b.WriteString(strings.TrimSpace(req.Description))
	b.WriteString("\n\nTip:")
	return b.String()
}

// New returns the generator for the configured provider, or nil when no
// credential is configured.
func New(ctx context.Context, cfg Config) (contractx.TextGenerator, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.provider() {
	case ProviderOpenRouter:
		orCfg := cfg.OpenRouter()
		chatModel, err := orCfg.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
		}
		return NewChatModelGenerator(chatModel), nil
	case ProviderOpenAI:
		client := openrouterx.NewClient(cfg.OpenRouter())
		if client == nil {
			return nil, fmt.Errorf("%w: openai client", contractx.ErrGeneratorUnavailable)
		}
		return NewOpenAIGenerator(client, cfg.model()), nil
	case ProviderGemini:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  strings.TrimSpace(cfg.APIKey),
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: create genai client: %v", contractx.ErrModelInvoke, err)
		}
		return NewGeminiGenerator(client.Models, cfg.model()), nil
	default:
		return nil, fmt.Errorf("%w: unsupported generator provider=%q", contractx.ErrValidation, cfg.Provider)
	}
}

// ChatModelGenerator drives any eino chat model.
type ChatModelGenerator struct {
	model einomodel.BaseChatModel
}

func NewChatModelGenerator(m einomodel.BaseChatModel) *ChatModelGenerator {
	return &ChatModelGenerator{model: m}
}

func (g *ChatModelGenerator) Generate(ctx context.Context, req contractx.GenerateRequest) (string, error) {
	if g == nil || g.model == nil {
		return "", contractx.ErrGeneratorUnavailable
	}

	opts := []einomodel.Option{}
	if req.MaxOutputTokens > 0 {
		opts = append(opts, einomodel.WithMaxTokens(req.MaxOutputTokens))
	}

	msg, err := g.model.Generate(ctx, []*schema.Message{schema.UserMessage(BuildPrompt(req))}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil {
		return "", fmt.Errorf("%w: empty chat model response", contractx.ErrModelInvoke)
	}
	return nonEmpty(msg.Content)
}

// OpenAIGenerator calls the chat completions API through openai-go.
type OpenAIGenerator struct {
	completions completionCreator
	model       string
}

type completionCreator func(ctx context.Context, params openaisdk.ChatCompletionNewParams) (*openaisdk.ChatCompletion, error)

func NewOpenAIGenerator(client *openaisdk.Client, model string) *OpenAIGenerator {
	return &OpenAIGenerator{
		completions: func(ctx context.Context, params openaisdk.ChatCompletionNewParams) (*openaisdk.ChatCompletion, error) {
			return client.Chat.Completions.New(ctx, params)
		},
		model: model,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req contractx.GenerateRequest) (string, error) {
	if g == nil || g.completions == nil {
		return "", contractx.ErrGeneratorUnavailable
	}

	params := openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(g.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(BuildPrompt(req)),
		},
	}
	if req.MaxOutputTokens > 0 {
		params.MaxCompletionTokens = openaisdk.Int(int64(req.MaxOutputTokens))
	}

	resp, err := g.completions(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %v", contractx.ErrModelInvoke, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: chat completion returned no choices", contractx.ErrModelInvoke)
	}
	return nonEmpty(resp.Choices[0].Message.Content)
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator calls the Gemini API through the genai SDK.
type GeminiGenerator struct {
	models contentGenerator
	model  string
}

func NewGeminiGenerator(models contentGenerator, model string) *GeminiGenerator {
	return &GeminiGenerator{models: models, model: model}
}

func (g *GeminiGenerator) Generate(ctx context.Context, req contractx.GenerateRequest) (string, error) {
	if g == nil || g.models == nil {
		return "", contractx.ErrGeneratorUnavailable
	}

	cfg := &genai.GenerateContentConfig{}
	if req.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxOutputTokens)
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(req)), cfg)
	if err != nil {
		return "", fmt.Errorf("%w: generate content: %v", contractx.ErrModelInvoke, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: empty gemini response", contractx.ErrModelInvoke)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}
	return nonEmpty(builder.String())
}

func nonEmpty(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: %v", contractx.ErrModelInvoke, errEmptyResponse)
	}
	return text, nil
}

var errEmptyResponse = errors.New("generator returned empty text")
