package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// validateIdentifier applies the conservative rules shared by panel and tab
// ids. Ids travel through URLs, file names, and database keys, so anything
// that could smuggle a path component is rejected here.
func validateIdentifier(kind Code, what, id string) error {
	if id == "" {
		return New(kind, "%s id cannot be empty", what)
	}

	if len(id) > 128 {
		return New(kind, "%s id too long (max 128 characters)", what)
	}

	// Check for control characters and null bytes
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(kind, "%s id contains invalid control characters", what)
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(kind, "%s id contains invalid characters: %q", what, pattern)
		}
	}

	return nil
}

// panelIDRegex matches valid panel ids: lowercase alphanumerics separated by
// single dashes or underscores.
var panelIDRegex = regexp.MustCompile(`^[a-z0-9]+([_-][a-z0-9]+)*$`)

// ValidatePanelID validates a panel id from a manifest or snapshot.
func ValidatePanelID(id string) error {
	if err := validateIdentifier(ErrCodeInvalidPanel, "panel", id); err != nil {
		return err
	}

	if !panelIDRegex.MatchString(id) {
		return New(ErrCodeInvalidPanel, "invalid panel id: %q", id)
	}

	return nil
}

// ValidateTabID validates a tab id used as a persistence key. Tab ids are
// user-visible names, so mixed case and dots are allowed; path components
// are not.
func ValidateTabID(id string) error {
	return validateIdentifier(ErrCodeInvalidInput, "tab", id)
}
