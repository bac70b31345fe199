// Package provider abstracts the LLM backends the benchmark can query.
//
// Every backend implements the same Generate call; the factory picks
// one by name. Backends with no API key report unavailable and the
// caller decides whether to fall back to the mock.
package provider

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"haltbench/internal/types"
)

var (
	ErrUnknownProvider = errors.New("unknown provider")
	ErrNoAPIKey        = errors.New("api key not configured")
	ErrEmptyCompletion = errors.New("empty completion")
	ErrMaxRetries      = errors.New("max retries exceeded")
)

// Response is one completion from a backend.
type Response struct {
	Content      string           `json:"content"`
	Confidence   *float64         `json:"confidence,omitempty"`
	Model        string           `json:"model"`
	FinishReason string           `json:"finish_reason,omitempty"`
	LatencyMs    int64            `json:"latency_ms"`
	Usage        types.TokenUsage `json:"usage"`
}

// Provider is a single LLM backend.
type Provider interface {
	// Name returns the short provider identifier used in reports.
	Name() string

	// Available reports whether the backend can be queried at all,
	// typically whether its API key is set.
	Available() bool

	// Generate completes the prompt. systemPrompt may be empty.
	Generate(ctx context.Context, prompt, systemPrompt string) (*Response, error)
}

// Config carries per-backend settings. Zero values fall back to the
// backend's defaults.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

func (c Config) withDefaults(model, baseURL string, timeout time.Duration) Config {
	if c.Model == "" {
		c.Model = model
	}
	if c.BaseURL == "" {
		c.BaseURL = baseURL
	}
	if c.Timeout == 0 {
		c.Timeout = timeout
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 2048
	}
	return c
}

// New builds the named provider. API keys default to the conventional
// environment variables when the config leaves them empty.
func New(name string, cfg Config, log *zap.Logger) (Provider, error) {
	if log == nil {
		log = zap.NewNop()
	}

	switch strings.ToLower(name) {
	case "mock", "":
		return NewMock(), nil
	case "openai":
		cfg.APIKey = keyOr(cfg.APIKey, "OPENAI_API_KEY")
		cfg = cfg.withDefaults("gpt-4o", "https://api.openai.com/v1", 60*time.Second)
		return newOpenAICompatible("openai", cfg, log), nil
	case "mistral":
		cfg.APIKey = keyOr(cfg.APIKey, "MISTRAL_API_KEY")
		cfg = cfg.withDefaults("mistral-large-latest", "https://api.mistral.ai/v1", 60*time.Second)
		return newOpenAICompatible("mistral", cfg, log), nil
	case "deepseek":
		cfg.APIKey = keyOr(cfg.APIKey, "DEEPSEEK_API_KEY")
		cfg = cfg.withDefaults("deepseek-chat", "https://api.deepseek.com/v1", 5*time.Minute)
		return newOpenAICompatible("deepseek", cfg, log), nil
	case "ollama":
		cfg = cfg.withDefaults("llama3.1", "http://localhost:11434/v1", 2*time.Minute)
		c := newOpenAICompatible("ollama", cfg, log)
		c.keyOptional = true
		return c, nil
	case "anthropic", "claude":
		cfg.APIKey = keyOr(cfg.APIKey, "ANTHROPIC_API_KEY")
		cfg = cfg.withDefaults("claude-3-5-sonnet-20241022", "https://api.anthropic.com/v1", 60*time.Second)
		return newAnthropic(cfg, log), nil
	case "gemini":
		cfg.APIKey = keyOr(cfg.APIKey, "GOOGLE_API_KEY")
		cfg = cfg.withDefaults("gemini-2.0-flash-exp", "", 60*time.Second)
		return newGemini(cfg, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}

// Names lists the providers the factory accepts.
func Names() []string {
	return []string{"mock", "openai", "anthropic", "mistral", "deepseek", "gemini", "ollama"}
}

func keyOr(key, envVar string) string {
	if key != "" {
		return key
	}
	return os.Getenv(envVar)
}
