package http

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Input validation constants
const (
	MaxSlugLength   = 64
	MaxIDLength     = 64
	MaxQueryLength  = 128
	MaxStatusLength = 32
)

var (
	slugPattern   = regexp.MustCompile(`^[a-z0-9-]+$`)
	idPattern     = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	statusPattern = regexp.MustCompile(`^[a-z_]+$`)
)

// ValidSlug checks a tenant slug (lowercase alphanumeric + hyphen)
func ValidSlug(s string) bool {
	return s != "" && len(s) <= MaxSlugLength && slugPattern.MatchString(s)
}

// ValidRecordID checks a conversation, order or viewing id
func ValidRecordID(s string) bool {
	return s != "" && len(s) <= MaxIDLength && idPattern.MatchString(s)
}

// ValidStatus checks a status value or selector
func ValidStatus(s string) bool {
	return s != "" && len(s) <= MaxStatusLength && statusPattern.MatchString(s)
}

// SanitizeString removes null bytes and invalid UTF-8
func SanitizeString(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	return s
}

// ValidateLength checks if string is within bounds (in runes)
func ValidateLength(s string, min, max int) bool {
	l := utf8.RuneCountInString(s)
	return l >= min && l <= max
}
