package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// procedureIDRegex matches procedure identifiers such as "proc_001" or "5gmm-reg.initial".
var procedureIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateProcedureID validates a procedure identifier for safety.
// Procedure IDs double as file names in local stores, so the rules are
// intentionally conservative:
//   - No empty IDs
//   - Maximum length of 128 characters
//   - No control characters
//   - No path traversal sequences or separators
//   - Letters, digits, '.', '_' and '-' only, starting with a letter or digit
func ValidateProcedureID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "procedure id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "procedure id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "procedure id contains invalid control characters")
		}
	}

	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "procedure id contains invalid characters: %q", "..")
	}

	if !procedureIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid procedure id: %q", id)
	}

	return nil
}

// ValidatePath validates a relative file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
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

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
