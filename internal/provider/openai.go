package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"haltbench/internal/types"
)

const maxRetries = 3

// openAICompatible talks the chat-completions dialect shared by
// OpenAI, Mistral, DeepSeek, and a local Ollama server.
type openAICompatible struct {
	name        string
	cfg         Config
	keyOptional bool
	httpClient  *http.Client
	log         *zap.Logger
}

func newOpenAICompatible(name string, cfg Config, log *zap.Logger) *openAICompatible {
	return &openAICompatible{
		name:       name,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log.Named(name),
	}
}

func (c *openAICompatible) Name() string { return c.name }

func (c *openAICompatible) Available() bool {
	return c.keyOptional || c.cfg.APIKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Model string `json:"model"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *openAICompatible) Generate(ctx context.Context, prompt, systemPrompt string) (*Response, error) {
	if !c.Available() {
		return nil, fmt.Errorf("%w: %s", ErrNoAPIKey, c.name)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	messages := make([]chatMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	start := time.Now()
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(1<<uint(attempt-1)) * time.Second):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.cfg.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			c.log.Debug("request failed, retrying", zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("transient status %d: %s", resp.StatusCode, string(respBody))
			c.log.Debug("transient error, retrying",
				zap.Int("attempt", attempt), zap.Int("status", resp.StatusCode))
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("api status %d: %s", resp.StatusCode, string(respBody))
		}

		var parsed chatResponse
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			return nil, fmt.Errorf("parse response: %w", err)
		}
		if parsed.Error != nil {
			return nil, fmt.Errorf("api error: %s", parsed.Error.Message)
		}
		if len(parsed.Choices) == 0 {
			return nil, ErrEmptyCompletion
		}

		content := strings.TrimSpace(parsed.Choices[0].Message.Content)
		elapsed := time.Since(start)
		c.log.Debug("completion ok",
			zap.Duration("elapsed", elapsed),
			zap.Int("response_len", len(content)))

		model := parsed.Model
		if model == "" {
			model = c.cfg.Model
		}

		return &Response{
			Content:      content,
			Model:        model,
			FinishReason: parsed.Choices[0].FinishReason,
			LatencyMs:    elapsed.Milliseconds(),
			Usage: types.TokenUsage{
				PromptTokens:     parsed.Usage.PromptTokens,
				CompletionTokens: parsed.Usage.CompletionTokens,
				TotalTokens:      parsed.Usage.TotalTokens,
			},
		}, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrMaxRetries, lastErr)
}
