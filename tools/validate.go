package tools

import (
	"fmt"
)

const (
	maxBodySize    = 10 * 1024 * 1024 // 10 MB
	maxSubjectSize = 998              // RFC 2822 line length limit

	defaultListResults = 5
	maxListResults     = 100
)

// validateEmailID checks that a message id carries no control characters.
func validateEmailID(id string) error {
	if id == "" {
		return fmt.Errorf("email_id is required")
	}

	for _, r := range id {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("email_id contains invalid characters")
		}
	}

	return nil
}

// validateBodySize checks that body content doesn't exceed limits.
func validateBodySize(body string) error {
	if len(body) > maxBodySize {
		return fmt.Errorf("body exceeds maximum size of %d bytes", maxBodySize)
	}
	return nil
}

// validateSubjectSize checks that subject doesn't exceed limits.
func validateSubjectSize(subject string) error {
	if len(subject) > maxSubjectSize {
		return fmt.Errorf("subject exceeds maximum length of %d characters", maxSubjectSize)
	}
	return nil
}

// clampListResults bounds the page size of listing operations.
func clampListResults(v float64) int64 {
	n := int64(v)
	if n <= 0 {
		return defaultListResults
	}
	if n > maxListResults {
		return maxListResults
	}
	return n
}
