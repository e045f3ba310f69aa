package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates a file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http, https, or webcal as used by
// many calendar providers).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") &&
		!strings.HasPrefix(rawURL, "https://") &&
		!strings.HasPrefix(rawURL, "webcal://") {
		return New(ErrCodeInvalidInput, "URL must use http, https, or webcal scheme")
	}

	return nil
}

// dateRegex matches ISO dates in YYYY-MM-DD form.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateDate validates an ISO date string (YYYY-MM-DD).
// Calendar validity (month/day ranges) is left to time.Parse at the call site;
// this only rejects values that are not even date-shaped.
func ValidateDate(date string) error {
	if date == "" {
		return New(ErrCodeInvalidInput, "date cannot be empty")
	}

	if !dateRegex.MatchString(date) {
		return New(ErrCodeInvalidInput, "invalid date %q (expected YYYY-MM-DD)", date)
	}

	return nil
}

// groupKeyRegex matches valid event grouping keys.
var groupKeyRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateGroupKey validates an event grouping key (event type tag).
// Empty keys are valid and mean "ungrouped".
func ValidateGroupKey(key string) error {
	if key == "" {
		return nil
	}

	if len(key) > 64 {
		return New(ErrCodeInvalidEvent, "grouping key too long (max 64 characters)")
	}

	if !groupKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidEvent, "invalid grouping key: %q", key)
	}

	return nil
}
