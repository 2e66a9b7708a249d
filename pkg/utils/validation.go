package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateURL trims and validates a URL string, returning a normalized value
// or an error if the URL is empty or invalid.
func ValidateURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("URL is required")
	}
	if _, err := url.Parse(s); err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	return s, nil
}

// ValidateTitle trims an agent title and rejects blank input.
func ValidateTitle(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("please enter an agent title")
	}
	return s, nil
}

// ParseWebsites splits comma or newline separated input into trimmed,
// non-empty entries. At least one entry is required.
func ParseWebsites(raw string) ([]string, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})

	websites := make([]string, 0, len(fields))
	for _, f := range fields {
		if s := strings.TrimSpace(f); s != "" {
			websites = append(websites, s)
		}
	}
	if len(websites) == 0 {
		return nil, fmt.Errorf("please enter at least one website URL")
	}
	return websites, nil
}
