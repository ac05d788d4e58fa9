package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fadilmartias/skillsnap/internal/config"
	"github.com/fadilmartias/skillsnap/internal/logger"
	"google.golang.org/genai"
)

// maxEmbeddingChars bounds the text sent to the embedding model.
const maxEmbeddingChars = 10000

var ErrCircuitOpen = errors.New("circuit breaker open")

type GeminiService struct {
	Client          *genai.Client
	Model           string
	EmbeddingModel  string
	MaxOutputTokens int
	MaxRetries      int
	BaseDelay       time.Duration
	MaxDelay        time.Duration
	RequestTimeout  time.Duration
	// CircuitCooldown is how long the breaker stays open before one trial
	// call is let through.
	CircuitCooldown time.Duration

	log               *logger.Logger
	now               func() time.Time
	consecutiveErrors atomic.Int32
	openedAt          atomic.Int64
	circuitBreakerMax int32
}

func NewGeminiService(ctx context.Context, cfg *config.LLMConfig, log *logger.Logger) (*GeminiService, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &GeminiService{
		Client:            client,
		Model:             cfg.GeminiModel,
		EmbeddingModel:    cfg.GeminiEmbeddingModel,
		MaxOutputTokens:   cfg.MaxOutputTokens,
		MaxRetries:        3,
		BaseDelay:         time.Second,
		MaxDelay:          30 * time.Second,
		RequestTimeout:    90 * time.Second,
		CircuitCooldown:   30 * time.Second,
		log:               log.With("provider", "gemini"),
		circuitBreakerMax: 5,
	}, nil
}

func (s *GeminiService) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.7)),
		TopK:             genai.Ptr(float32(40)),
		TopP:             genai.Ptr(float32(0.95)),
		MaxOutputTokens:  int32(s.MaxOutputTokens),
		ResponseMIMEType: "application/json",
	}

	var text string
	err := s.withRetry(ctx, "GenerateContent", func(ctx context.Context) error {
		result, err := s.Client.Models.GenerateContent(ctx, s.Model, genai.Text(prompt), genConfig)
		if err != nil {
			return err
		}
		if err := validateGenerateResponse(result); err != nil {
			return permanent(fmt.Errorf("invalid response: %w", err))
		}
		text = result.Text()
		return nil
	})
	if err != nil {
		return "", err
	}

	s.log.Debug("gemini response received", "model", s.Model, "chars", len(text))
	return text, nil
}

func (s *GeminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("text for embedding cannot be empty")
	}
	if r := []rune(trimmed); len(r) > maxEmbeddingChars {
		s.log.Warn("embedding input truncated", "chars", len(r), "limit", maxEmbeddingChars)
		trimmed = string(r[:maxEmbeddingChars])
	}

	content := []*genai.Content{genai.NewContentFromText(trimmed, genai.RoleUser)}

	var values []float32
	err := s.withRetry(ctx, "EmbedContent", func(ctx context.Context) error {
		result, err := s.Client.Models.EmbedContent(ctx, s.EmbeddingModel, content, nil)
		if err != nil {
			return err
		}
		values, err = validateEmbeddingResponse(result)
		if err != nil {
			return permanent(fmt.Errorf("invalid embedding response: %w", err))
		}
		return nil
	})
	return values, err
}

// permanentError marks an error the retry loop must not retry.
type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

func permanent(err error) error { return permanentError{err: err} }

func (s *GeminiService) withRetry(ctx context.Context, op string, call func(ctx context.Context) error) error {
	if !s.allowCall() {
		n, _ := s.CircuitBreakerStatus()
		return fmt.Errorf("%w: too many consecutive errors (%d)", ErrCircuitOpen, n)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			s.log.Info("retrying gemini call", "op", op, "attempt", attempt, "max", s.MaxRetries, "delay", delay)

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				s.recordFailure(ctx, timeoutCtx.Err())
				return fmt.Errorf("context timeout during retry of %s: %w", op, errors.Join(timeoutCtx.Err(), lastErr))
			}
		}

		err := call(timeoutCtx)
		if err == nil {
			s.consecutiveErrors.Store(0)
			return nil
		}
		lastErr = err

		var perm permanentError
		if errors.As(err, &perm) {
			return fmt.Errorf("%s: %w", op, perm.err)
		}
		if !isRetryableError(err) {
			s.log.Warn("non-retryable gemini error", "op", op, "error", err)
			s.recordFailure(ctx, err)
			return fmt.Errorf("%s failed: %w", op, err)
		}
		s.log.Warn("retryable gemini error", "op", op, "attempt", attempt+1, "error", err)
	}

	s.recordFailure(ctx, lastErr)
	return fmt.Errorf("max retries (%d) exceeded for %s: %w", s.MaxRetries, op, lastErr)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}
	// +/-12.5% jitter
	jitter := time.Duration(float64(delay) * 0.25)
	if jitter > 0 {
		delay = delay - jitter/2 + time.Duration(rand.Int64N(int64(jitter)))
	}
	return delay
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if code := statusCodeOf(err); code != 0 {
		switch code {
		case 429, 500, 502, 503, 504:
			return true
		default:
			return false
		}
	}

	msg := err.Error()
	for _, frag := range []string{"connection refused", "connection reset", "timeout", "temporary failure", "EOF"} {
		if strings.Contains(msg, frag) {
			return true
		}
	}
	return false
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}
	return nil
}

func validateEmbeddingResponse(resp *genai.EmbedContentResponse) ([]float32, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}
	if len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, fmt.Errorf("no embeddings returned")
	}

	values := resp.Embeddings[0].Values
	if len(values) == 0 {
		return nil, fmt.Errorf("embedding vector is empty")
	}
	for i, v := range values {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return nil, fmt.Errorf("invalid embedding value at index %d: %v", i, v)
		}
	}
	return values, nil
}

// recordFailure counts a provider failure. Cancellation by the caller is not
// the provider's fault and is ignored.
func (s *GeminiService) recordFailure(ctx context.Context, err error) {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return
	}
	if s.consecutiveErrors.Add(1) >= s.circuitBreakerMax {
		s.openedAt.Store(s.clock().UnixNano())
	}
}

// allowCall reports whether a call may go out. After the cooldown the breaker
// is half-open: the first caller claims the trial and the others keep
// failing fast until it resolves.
func (s *GeminiService) allowCall() bool {
	if s.consecutiveErrors.Load() < s.circuitBreakerMax {
		return true
	}
	opened := s.openedAt.Load()
	now := s.clock().UnixNano()
	if time.Duration(now-opened) < s.CircuitCooldown {
		return false
	}
	return s.openedAt.CompareAndSwap(opened, now)
}

func (s *GeminiService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *GeminiService) ResetCircuitBreaker() {
	s.consecutiveErrors.Store(0)
	s.openedAt.Store(0)
	s.log.Info("circuit breaker reset")
}

// CircuitBreakerStatus reports the failure streak and whether calls are
// currently refused.
func (s *GeminiService) CircuitBreakerStatus() (consecutiveErrors int, isOpen bool) {
	n := s.consecutiveErrors.Load()
	if n < s.circuitBreakerMax {
		return int(n), false
	}
	opened := time.Unix(0, s.openedAt.Load())
	return int(n), s.clock().Sub(opened) < s.CircuitCooldown
}
