package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fadilmartias/skillsnap/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestClassifyLLMError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		reason AIFailureReason
	}{
		{name: "gemini 403", err: genai.APIError{Code: 403, Message: "denied"}, reason: ReasonAuth},
		{name: "gemini 429 wrapped", err: fmt.Errorf("call: %w", genai.APIError{Code: 429}), reason: ReasonQuota},
		{name: "http 404", err: &HTTPStatusError{StatusCode: 404, Body: "no such model"}, reason: ReasonModel},
		{name: "api key text", err: errors.New("GEMINI_API_KEY not set"), reason: ReasonAuth},
		{name: "quota text", err: errors.New("RESOURCE_EXHAUSTED: quota"), reason: ReasonQuota},
		{name: "model text", err: errors.New("model gemini-x not found"), reason: ReasonModel},
		{name: "transport", err: errors.New("connection reset by peer"), reason: ReasonUnavailable},
		{name: "server 500", err: &HTTPStatusError{StatusCode: 500}, reason: ReasonUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClassifyLLMError(tt.err)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrAIUnavailable)
			assert.Contains(t, err.Error(), tt.err.Error())

			var aiErr *AIError
			require.True(t, errors.As(err, &aiErr))
			assert.Equal(t, tt.reason, aiErr.Reason)
			assert.NotEmpty(t, aiErr.Message())
		})
	}

	assert.NoError(t, ClassifyLLMError(nil))

	once := ClassifyLLMError(errors.New("boom"))
	assert.Same(t, once, ClassifyLLMError(once))
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(genai.APIError{Code: 503}))
	assert.True(t, isRetryableError(&HTTPStatusError{StatusCode: 429}))
	assert.True(t, isRetryableError(errors.New("unexpected EOF")))
	assert.False(t, isRetryableError(genai.APIError{Code: 400}))
	assert.False(t, isRetryableError(fmt.Errorf("wrapped: %w", context.Canceled)))
	assert.False(t, isRetryableError(errors.New("invalid argument")))
	assert.False(t, isRetryableError(nil))
}

func newTestGemini() *GeminiService {
	return &GeminiService{
		MaxRetries:        2,
		BaseDelay:         time.Millisecond,
		MaxDelay:          4 * time.Millisecond,
		RequestTimeout:    time.Second,
		CircuitCooldown:   30 * time.Second,
		log:               logger.Nop(),
		circuitBreakerMax: 2,
	}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestCalculateBackoff(t *testing.T) {
	s := newTestGemini()
	s.BaseDelay = 100 * time.Millisecond
	s.MaxDelay = 300 * time.Millisecond

	for attempt, base := range map[int]time.Duration{1: 100 * time.Millisecond, 2: 200 * time.Millisecond, 5: 300 * time.Millisecond} {
		d := s.calculateBackoff(attempt)
		assert.GreaterOrEqual(t, d, base-base/8, "attempt %d", attempt)
		assert.LessOrEqual(t, d, base+base/8, "attempt %d", attempt)
	}
}

func TestWithRetry(t *testing.T) {
	t.Run("retries transient errors then succeeds", func(t *testing.T) {
		s := newTestGemini()
		calls := 0
		err := s.withRetry(context.Background(), "op", func(context.Context) error {
			calls++
			if calls < 3 {
				return genai.APIError{Code: 503}
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		n, open := s.CircuitBreakerStatus()
		assert.Equal(t, 0, n)
		assert.False(t, open)
	})

	t.Run("permanent errors are not retried", func(t *testing.T) {
		s := newTestGemini()
		calls := 0
		err := s.withRetry(context.Background(), "op", func(context.Context) error {
			calls++
			return permanent(errors.New("no candidates"))
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.Contains(t, err.Error(), "no candidates")
	})

	t.Run("circuit opens after consecutive failures", func(t *testing.T) {
		s := newTestGemini()
		fail := func(context.Context) error { return genai.APIError{Code: 401} }

		require.Error(t, s.withRetry(context.Background(), "op", fail))
		require.Error(t, s.withRetry(context.Background(), "op", fail))

		err := s.withRetry(context.Background(), "op", fail)
		assert.ErrorIs(t, err, ErrCircuitOpen)

		s.ResetCircuitBreaker()
		_, open := s.CircuitBreakerStatus()
		assert.False(t, open)
	})

	t.Run("circuit half-opens after the cooldown", func(t *testing.T) {
		s := newTestGemini()
		clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
		s.now = clock.Now
		bad := func(context.Context) error { return genai.APIError{Code: 400} }
		calls := 0
		ok := func(context.Context) error { calls++; return nil }

		require.Error(t, s.withRetry(context.Background(), "op", bad))
		require.Error(t, s.withRetry(context.Background(), "op", bad))
		assert.ErrorIs(t, s.withRetry(context.Background(), "op", ok), ErrCircuitOpen)
		assert.Zero(t, calls)

		clock.Advance(31 * time.Second)
		for i := 0; i < 3; i++ {
			require.NoError(t, s.withRetry(context.Background(), "op", ok))
		}
		assert.Equal(t, 3, calls)
		n, open := s.CircuitBreakerStatus()
		assert.Zero(t, n)
		assert.False(t, open)
	})

	t.Run("failed trial reopens the circuit", func(t *testing.T) {
		s := newTestGemini()
		clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
		s.now = clock.Now
		bad := func(context.Context) error { return genai.APIError{Code: 400} }

		require.Error(t, s.withRetry(context.Background(), "op", bad))
		require.Error(t, s.withRetry(context.Background(), "op", bad))
		clock.Advance(31 * time.Second)

		err := s.withRetry(context.Background(), "op", bad)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrCircuitOpen, "the trial call goes out")
		assert.ErrorIs(t, s.withRetry(context.Background(), "op", bad), ErrCircuitOpen)
	})

	t.Run("caller cancellation is not counted", func(t *testing.T) {
		s := newTestGemini()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		for i := 0; i < 3; i++ {
			err := s.withRetry(ctx, "op", func(ctx context.Context) error { return ctx.Err() })
			require.ErrorIs(t, err, context.Canceled)
		}
		n, open := s.CircuitBreakerStatus()
		assert.Zero(t, n)
		assert.False(t, open)
	})
}

func TestValidateEmbeddingResponse(t *testing.T) {
	_, err := validateEmbeddingResponse(&genai.EmbedContentResponse{})
	assert.Error(t, err)

	values, err := validateEmbeddingResponse(&genai.EmbedContentResponse{
		Embeddings: []*genai.ContentEmbedding{{Values: []float32{0.1, 0.2}}},
	})
	require.NoError(t, err)
	assert.Len(t, values, 2)
}

func TestBuildAnalysisPrompt(t *testing.T) {
	prompt := BuildAnalysisPrompt("  my resume {{JOB_DESCRIPTION}} ", "the jd")

	assert.Contains(t, prompt, "RESUME:\nmy resume {{JOB_DESCRIPTION}}\n")
	assert.Contains(t, prompt, "JOB DESCRIPTION:\nthe jd\n")
	assert.Equal(t, 1, strings.Count(prompt, "the jd"))
	assert.Contains(t, prompt, `"phasedRoadmap"`)
	assert.NotContains(t, prompt, "{{RESUME}}")
}
