package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// handleRegex matches account handles: letters, digits and underscores,
// at most 15 characters.
var handleRegex = regexp.MustCompile(`^[A-Za-z0-9_]{1,15}$`)

// NormalizeHandle strips surrounding blanks and a leading "@" from an
// account handle.
func NormalizeHandle(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}

// ValidateHandle validates an account handle after normalization.
// It rejects names that could not be sent to the provider as a screen name.
func ValidateHandle(handle string) error {
	h := NormalizeHandle(handle)
	if h == "" {
		return New(ErrCodeInvalidInput, "handle cannot be empty")
	}
	if !handleRegex.MatchString(h) {
		return New(ErrCodeInvalidInput, "invalid handle %q: expected up to 15 letters, digits or underscores", handle)
	}
	return nil
}

// ValidateOutputPath validates the path of an edge log.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No null bytes or control characters
//   - No trailing separator (the log is a file, not a directory)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidInput, "output path must name a file, not a directory")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
