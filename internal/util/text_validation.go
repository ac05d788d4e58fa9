package util

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinDocumentChars = 50
	MaxDocumentChars = 100000
)

var (
	ErrTextEmpty    = errors.New("text is empty")
	ErrTextTooShort = errors.New("text is too short (minimum 50 characters)")
	ErrTextTooLong  = errors.New("text is too long (maximum 100,000 characters)")
)

var (
	emailPattern   = regexp.MustCompile(`\S+@\S+\.\S+`)
	phonePattern   = regexp.MustCompile(`\+?\d{10,}`)
	sectionPattern = regexp.MustCompile(`(?i)experience|education|skills|projects`)
)

// TextCheck is the outcome of a passed document check.
type TextCheck struct {
	Length  int
	Warning string
}

// CheckDocumentText enforces the length bounds on the trimmed text. Text that
// has no contact details and no common resume section passes with a warning.
func CheckDocumentText(text string) (TextCheck, error) {
	trimmed := strings.TrimSpace(text)
	n := utf8.RuneCountInString(trimmed)
	switch {
	case n == 0:
		return TextCheck{}, ErrTextEmpty
	case n < MinDocumentChars:
		return TextCheck{}, ErrTextTooShort
	case n > MaxDocumentChars:
		return TextCheck{}, ErrTextTooLong
	}

	check := TextCheck{Length: n}
	if !emailPattern.MatchString(trimmed) && !phonePattern.MatchString(trimmed) && !sectionPattern.MatchString(trimmed) {
		check.Warning = "Document may be missing standard sections (contact info, experience, skills, etc.)"
	}
	return check, nil
}
