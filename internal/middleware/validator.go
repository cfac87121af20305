package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

var reportIDPattern = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)

// ValidateReportID validates report ID format (UUID assigned at creation)
func ValidateReportID(id string) error {
	if id == "" {
		return fmt.Errorf("report ID cannot be empty")
	}
	if !reportIDPattern.MatchString(strings.ToLower(id)) {
		return fmt.Errorf("invalid report ID format")
	}
	return nil
}

// ValidateMediaType checks if an uploaded attachment type is supported
func ValidateMediaType(contentType string) error {
	allowed := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
		"image/gif":  true,
	}
	if !allowed[strings.ToLower(contentType)] {
		return fmt.Errorf("unsupported media type: %s (allowed: jpeg, png, webp, gif)", contentType)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateMediaCount caps the number of attachments per request
func ValidateMediaCount(n int) error {
	const maxMedia = 6
	if n > maxMedia {
		return fmt.Errorf("too many media attachments: %d (max %d)", n, maxMedia)
	}
	return nil
}
