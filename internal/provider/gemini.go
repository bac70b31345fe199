package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"haltbench/internal/types"
)

// geminiProvider uses the Google GenAI SDK rather than raw HTTP. The
// client is built lazily on first use so an unused provider never
// dials out.
type geminiProvider struct {
	cfg Config
	log *zap.Logger

	mu     sync.Mutex
	client *genai.Client
}

func newGemini(cfg Config, log *zap.Logger) *geminiProvider {
	return &geminiProvider{cfg: cfg, log: log.Named("gemini")}
}

func (p *geminiProvider) Name() string { return "gemini" }

func (p *geminiProvider) Available() bool { return p.cfg.APIKey != "" }

func (p *geminiProvider) ensureClient(ctx context.Context) (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: p.cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	p.client = client
	return client, nil
}

func (p *geminiProvider) Generate(ctx context.Context, prompt, systemPrompt string) (*Response, error) {
	if !p.Available() {
		return nil, fmt.Errorf("%w: gemini", ErrNoAPIKey)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	client, err := p.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(p.cfg.Temperature)),
		MaxOutputTokens: int32(p.cfg.MaxTokens),
	}
	if systemPrompt != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	start := time.Now()

	result, err := client.Models.GenerateContent(ctx, p.cfg.Model, genai.Text(prompt), genCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	content := strings.TrimSpace(result.Text())
	if content == "" {
		return nil, ErrEmptyCompletion
	}

	elapsed := time.Since(start)
	p.log.Debug("completion ok",
		zap.Duration("elapsed", elapsed),
		zap.Int("response_len", len(content)))

	usage := types.TokenUsage{}
	if result.UsageMetadata != nil {
		usage.PromptTokens = int(result.UsageMetadata.PromptTokenCount)
		usage.CompletionTokens = int(result.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int(result.UsageMetadata.TotalTokenCount)
	}

	finish := ""
	if len(result.Candidates) > 0 {
		finish = string(result.Candidates[0].FinishReason)
	}

	return &Response{
		Content:      content,
		Model:        p.cfg.Model,
		FinishReason: finish,
		LatencyMs:    elapsed.Milliseconds(),
		Usage:        usage,
	}, nil
}
