package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Provider names a model backend.
type Provider string

const (
	ProviderScripted  Provider = "scripted"
	ProviderOpenAI    Provider = "openai"
	ProviderOllama    Provider = "ollama"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogleAI  Provider = "googleai"
)

// Options configures an LLM gateway.
type Options struct {
	Provider    Provider
	Model       string
	BaseURL     string
	APIKey      string
	Temperature float64
	MaxTokens   int
}

// LLM writes dialogue with a language model.
type LLM struct {
	model   llms.Model
	options Options
}

// NewLLM wraps an existing model, mostly for tests and custom backends.
func NewLLM(model llms.Model, options Options) *LLM {
	return &LLM{model: model, options: options}
}

// Dial creates the model for options.Provider.
func Dial(ctx context.Context, options Options) (*LLM, error) {
	var (
		model llms.Model
		err   error
	)

	slog.Debug("creating gateway model",
		"provider", string(options.Provider),
		"model", options.Model,
		"base_url", options.BaseURL,
	)

	switch options.Provider {
	case ProviderOpenAI:
		opts := []openai.Option{openai.WithToken(options.APIKey)}
		if options.Model != "" {
			opts = append(opts, openai.WithModel(options.Model))
		}
		if options.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(options.BaseURL))
		}
		model, err = openai.New(opts...)
	case ProviderOllama:
		if options.BaseURL == "" {
			options.BaseURL = "http://localhost:11434"
		}
		if options.Model == "" {
			options.Model = "llama3"
		}
		model, err = ollama.New(
			ollama.WithServerURL(options.BaseURL),
			ollama.WithModel(options.Model),
		)
	case ProviderAnthropic:
		opts := []anthropic.Option{anthropic.WithToken(options.APIKey)}
		if options.Model != "" {
			opts = append(opts, anthropic.WithModel(options.Model))
		}
		model, err = anthropic.New(opts...)
	case ProviderGoogleAI:
		opts := []googleai.Option{googleai.WithAPIKey(options.APIKey)}
		if options.Model != "" {
			opts = append(opts, googleai.WithDefaultModel(options.Model))
		}
		model, err = googleai.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, options.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("creating %s model: %w", options.Provider, err)
	}

	return NewLLM(model, options), nil
}

// New builds the gateway named by options: Scripted for "scripted" or empty,
// otherwise an LLM. The API key is read from apiKeyEnv when options has none.
func New(ctx context.Context, options Options, apiKeyEnv string, seed int64) (Gateway, error) {
	if options.Provider == "" || options.Provider == ProviderScripted {
		return NewScripted(seed), nil
	}
	if options.APIKey == "" && apiKeyEnv != "" {
		options.APIKey = os.Getenv(apiKeyEnv)
	}
	return Dial(ctx, options)
}

func (g *LLM) call(ctx context.Context, prompt string) (string, error) {
	opts := []llms.CallOption{llms.WithTemperature(g.options.Temperature)}
	if g.options.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(g.options.MaxTokens))
	}
	if g.options.Model != "" {
		opts = append(opts, llms.WithModel(g.options.Model))
	}
	out, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt, opts...)
	if err != nil {
		return "", fmt.Errorf("%s generate: %w", g.options.Provider, err)
	}
	return out, nil
}

// Converse asks the model for an exchange between req.A and req.B.
func (g *LLM) Converse(ctx context.Context, req ConversationRequest) (Conversation, error) {
	raw, err := g.call(ctx, ConversationPrompt(req))
	if err != nil {
		return Conversation{}, err
	}
	conv, err := ParseConversation(raw, req.A.Name, req.B.Name)
	if err != nil {
		return Conversation{}, fmt.Errorf("parsing conversation: %w", err)
	}
	if len(conv.Messages) == 0 {
		return conv, ErrEmptyReply
	}
	return conv, nil
}

// React asks the model for a one-line reaction.
func (g *LLM) React(ctx context.Context, req ReactionRequest) (string, error) {
	raw, err := g.call(ctx, ReactionPrompt(req))
	if err != nil {
		return "", err
	}
	line := ParseReaction(raw)
	if line == "" {
		return "", ErrEmptyReply
	}
	return line, nil
}

// Decree asks the model how every villager replies to a decree.
func (g *LLM) Decree(ctx context.Context, message string, agents []Profile) ([]DecreeReaction, error) {
	raw, err := g.call(ctx, DecreePrompt(message, agents))
	if err != nil {
		return nil, err
	}
	reactions, err := ParseDecree(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing decree: %w", err)
	}
	return reactions, nil
}
