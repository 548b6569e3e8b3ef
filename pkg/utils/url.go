package utils

import (
	"net/url"
	"strings"
)

// IsValidURL reports whether s is a well-formed absolute http(s) URL.
// Pure check, no I/O.
func IsValidURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" || !strings.Contains(u.Host, ".") {
		return false
	}
	return true
}
