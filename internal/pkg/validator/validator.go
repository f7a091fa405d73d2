package validator

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// IsValidWebsite accepts absolute http and https URLs with a host.
func IsValidWebsite(website string) bool {
	u, err := url.ParseRequestURI(strings.TrimSpace(website))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// ParseCompanyCode parses a positive company code from a path segment.
func ParseCompanyCode(s string) (int64, bool) {
	if !IsNumeric(s) {
		return 0, false
	}
	code, err := strconv.ParseInt(s, 10, 64)
	if err != nil || code <= 0 {
		return 0, false
	}
	return code, true
}
