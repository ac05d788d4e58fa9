package normalizer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTruncatedResponse    = errors.New("AI response was truncated or invalid")
	ErrIncompleteResponse   = errors.New("AI response incomplete")
	ErrInvalidResponseShape = errors.New("AI response has an invalid shape")
)

// IncompleteResponseError names the required fields the response lacked.
type IncompleteResponseError struct {
	Missing []string
}

func (e *IncompleteResponseError) Error() string {
	return fmt.Sprintf("%s. Missing: %s", ErrIncompleteResponse, strings.Join(e.Missing, ", "))
}

func (e *IncompleteResponseError) Unwrap() error {
	return ErrIncompleteResponse
}

// IsMalformed reports whether err means the model answered but the answer
// could not be used.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrTruncatedResponse) ||
		errors.Is(err, ErrIncompleteResponse) ||
		errors.Is(err, ErrInvalidResponseShape)
}
