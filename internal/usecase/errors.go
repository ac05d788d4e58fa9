package usecase

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrAnalysisNotFound   = errors.New("resume analysis not found")
	ErrStepNotFound       = errors.New("roadmap step not found")
	ErrAIMalformed        = errors.New("malformed AI response")
)

// InputError is a rejected request field. It matches ErrInvalidInput and the
// underlying cause.
type InputError struct {
	Field string
	Err   error
}

func (e *InputError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *InputError) Unwrap() []error {
	return []error{ErrInvalidInput, e.Err}
}

func invalidInput(field string, err error) error {
	return &InputError{Field: field, Err: err}
}
