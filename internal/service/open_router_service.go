package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/skillsnap/internal/config"
	"github.com/fadilmartias/skillsnap/internal/logger"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const openRouterSystemPrompt = "You are an ATS and career intelligence engine. Answer with a single JSON object only."

// HTTPStatusError is a non-2xx answer from an HTTP provider.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}

type OpenRouterService struct {
	client          *resty.Client
	model           string
	maxOutputTokens int
	log             *logger.Logger
}

func NewOpenRouterService(cfg *config.LLMConfig, log *logger.Logger) (*OpenRouterService, error) {
	if cfg.OpenRouterAPIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY not set")
	}
	if log == nil {
		log = logger.Nop()
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.OpenRouterBaseURL, "/")).
		SetAuthToken(cfg.OpenRouterAPIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(90 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == 429 || r.StatusCode() >= 500
		})

	return &OpenRouterService{
		client:          client,
		model:           cfg.OpenRouterModel,
		maxOutputTokens: cfg.MaxOutputTokens,
		log:             log.With("provider", "openrouter"),
	}, nil
}

func (s *OpenRouterService) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model": s.model,
			"messages": []map[string]string{
				{"role": "system", "content": openRouterSystemPrompt},
				{"role": "user", "content": prompt},
			},
			"max_tokens":      s.maxOutputTokens,
			"temperature":     0.7,
			"response_format": map[string]string{"type": "json_object"},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}
	if resp.IsError() {
		return "", &HTTPStatusError{StatusCode: resp.StatusCode(), Body: truncateBody(resp.String())}
	}

	body := resp.String()
	if msg := gjson.Get(body, "error.message"); msg.Exists() {
		code := int(gjson.Get(body, "error.code").Int())
		return "", &HTTPStatusError{StatusCode: code, Body: msg.String()}
	}

	text := gjson.Get(body, "choices.0.message.content").String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	s.log.Debug("openrouter response received",
		"model", s.model,
		"chars", len(text),
		"finish_reason", gjson.Get(body, "choices.0.finish_reason").String())
	return text, nil
}

func truncateBody(s string) string {
	if len(s) > 300 {
		return s[:300]
	}
	return s
}
