package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// LLMServiceInterface is a provider that answers a prompt with JSON text.
type LLMServiceInterface interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

type EmbeddingServiceInterface interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

var ErrAIUnavailable = errors.New("AI service refused the request or was unavailable")

type AIFailureReason string

const (
	ReasonAuth        AIFailureReason = "auth"
	ReasonQuota       AIFailureReason = "quota"
	ReasonModel       AIFailureReason = "model"
	ReasonUnavailable AIFailureReason = "unavailable"
)

var aiFailureMessages = map[AIFailureReason]string{
	ReasonAuth:        "AI service authentication failed. Please contact support.",
	ReasonQuota:       "AI service quota exceeded. Please try again later or contact support to upgrade the plan.",
	ReasonModel:       "AI model is not available. Please try again later.",
	ReasonUnavailable: "AI service is temporarily unavailable. Please try again later.",
}

// AIError is a provider failure. It matches ErrAIUnavailable and the
// underlying provider error.
type AIError struct {
	Reason AIFailureReason
	Err    error
}

func (e *AIError) Error() string {
	return e.Message() + " (" + e.Err.Error() + ")"
}

// Message is the user-facing wording for the failure.
func (e *AIError) Message() string {
	return aiFailureMessages[e.Reason]
}

func (e *AIError) Unwrap() []error {
	return []error{ErrAIUnavailable, e.Err}
}

// ClassifyLLMError wraps a provider error into an *AIError.
func ClassifyLLMError(err error) error {
	if err == nil {
		return nil
	}
	var aiErr *AIError
	if errors.As(err, &aiErr) {
		return err
	}

	if code := statusCodeOf(err); code != 0 {
		switch code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &AIError{Reason: ReasonAuth, Err: err}
		case http.StatusTooManyRequests:
			return &AIError{Reason: ReasonQuota, Err: err}
		case http.StatusNotFound:
			return &AIError{Reason: ReasonModel, Err: err}
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key"), strings.Contains(msg, "authentication"), strings.Contains(msg, "not set"):
		return &AIError{Reason: ReasonAuth, Err: err}
	case strings.Contains(msg, "quota"), strings.Contains(msg, "resource_exhausted"), strings.Contains(msg, "too many requests"):
		return &AIError{Reason: ReasonQuota, Err: err}
	case strings.Contains(msg, "model") && strings.Contains(msg, "not found"):
		return &AIError{Reason: ReasonModel, Err: err}
	}
	return &AIError{Reason: ReasonUnavailable, Err: err}
}

func statusCodeOf(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}
	var httpErr *HTTPStatusError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
