package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Request size limits (in bytes)
const (
	// MaxRequestBodySize bounds a whole JSON request, write content included
	MaxRequestBodySize = 16 * 1024 * 1024
)

// String length limits
const (
	MaxPathLength     = 4096
	MaxPatternLength  = 1024
	MaxEncodingLength = 64
)

// EncodingLabelPattern allows the characters that appear in charset labels
var EncodingLabelPattern = regexp.MustCompile(`^[a-zA-Z0-9._:-]+$`)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil // Optional field, empty is OK
	}

	if !utf8.ValidString(value) {
		return fmt.Errorf("%s is not valid UTF-8", fieldName)
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	// Check for null bytes (security issue)
	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidatePath validates a caller-supplied path before it reaches the sandbox
func ValidatePath(path string) error {
	return ValidateString(path, "path", 1, MaxPathLength, true)
}

// ValidatePattern validates a glob pattern
func ValidatePattern(pattern string) error {
	return ValidateString(pattern, "pattern", 1, MaxPatternLength, true)
}

// ValidateEncoding validates an optional encoding label
func ValidateEncoding(label string) error {
	if err := ValidateString(label, "encoding", 0, MaxEncodingLength, false); err != nil {
		return err
	}

	if label != "" && !EncodingLabelPattern.MatchString(label) {
		return fmt.Errorf("encoding contains invalid characters")
	}

	return nil
}
