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

// anthropicProvider talks the Anthropic messages API directly; its
// wire format differs enough from the chat-completions dialect to
// need its own client.
type anthropicProvider struct {
	cfg        Config
	httpClient *http.Client
	log        *zap.Logger
}

func newAnthropic(cfg Config, log *zap.Logger) *anthropicProvider {
	return &anthropicProvider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log.Named("anthropic"),
	}
}

func (p *anthropicProvider) Name() string { return "anthropic" }

func (p *anthropicProvider) Available() bool { return p.cfg.APIKey != "" }

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *anthropicProvider) Generate(ctx context.Context, prompt, systemPrompt string) (*Response, error) {
	if !p.Available() {
		return nil, fmt.Errorf("%w: anthropic", ErrNoAPIKey)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(anthropicRequest{
		Model:       p.cfg.Model,
		MaxTokens:   p.cfg.MaxTokens,
		System:      systemPrompt,
		Messages:    []anthropicMessage{{Role: "user", Content: prompt}},
		Temperature: p.cfg.Temperature,
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

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/messages", bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-api-key", p.cfg.APIKey)
		req.Header.Set("anthropic-version", "2023-06-01")

		resp, err := p.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("transient status %d", resp.StatusCode)
			p.log.Debug("transient error, retrying",
				zap.Int("attempt", attempt), zap.Int("status", resp.StatusCode))
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("api status %d: %s", resp.StatusCode, string(respBody))
		}

		var parsed anthropicResponse
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			return nil, fmt.Errorf("parse response: %w", err)
		}
		if parsed.Error != nil {
			return nil, fmt.Errorf("api error: %s", parsed.Error.Message)
		}
		if len(parsed.Content) == 0 {
			return nil, ErrEmptyCompletion
		}

		var sb strings.Builder
		for _, block := range parsed.Content {
			if block.Type == "text" {
				sb.WriteString(block.Text)
			}
		}

		elapsed := time.Since(start)
		model := parsed.Model
		if model == "" {
			model = p.cfg.Model
		}

		return &Response{
			Content:      strings.TrimSpace(sb.String()),
			Model:        model,
			FinishReason: parsed.StopReason,
			LatencyMs:    elapsed.Milliseconds(),
			Usage: types.TokenUsage{
				PromptTokens:     parsed.Usage.InputTokens,
				CompletionTokens: parsed.Usage.OutputTokens,
				TotalTokens:      parsed.Usage.InputTokens + parsed.Usage.OutputTokens,
			},
		}, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrMaxRetries, lastErr)
}
