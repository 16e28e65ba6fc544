package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxTextLength bounds every caption and the main text, in runes.
const MaxTextLength = 200

// ValidateText checks a caption or main text field.
// Empty text is allowed here; whether the main text may be empty is a
// layout decision.
func ValidateText(field, text string) error {
	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidInput, "%s is not valid UTF-8", field)
	}
	if n := utf8.RuneCountInString(text); n > MaxTextLength {
		return New(ErrCodeInvalidInput, "%s too long (%d runes, max %d)", field, n, MaxTextLength)
	}
	for _, r := range text {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains control characters", field)
		}
	}
	return nil
}

// ValidateFilename ensures a download name is a plain basename.
func ValidateFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "filename cannot be empty")
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return New(ErrCodeInvalidInput, "filename cannot contain path separators")
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidInput, "filename cannot be a hidden file")
	}
	return nil
}
